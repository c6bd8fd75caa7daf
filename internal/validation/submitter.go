package validation

import (
	"context"
	"errors"
	"time"

	"github.com/jmorascalyr/jarvis-coding/internal/client"
	"github.com/jmorascalyr/jarvis-coding/internal/logging"
	"github.com/jmorascalyr/jarvis-coding/internal/tagger"
	"github.com/jmorascalyr/jarvis-coding/internal/taxonomy"
)

// EventSender is the ingestion boundary as the submitter sees it.
// *client.IngestClient satisfies it.
type EventSender interface {
	SendEvent(ctx context.Context, event map[string]any, sourcetype string) (int, error)
	SendRaw(ctx context.Context, line, sourcetype string) (int, error)
}

// GenerateFunc produces one synthetic event for a product. It is the
// external generator collaborator's single contract.
type GenerateFunc func(*taxonomy.Product) (any, error)

// Submitter tags synthetic events with their tracking token and
// transmits them through the ingestion boundary. It never retries:
// retries are an orchestrator-level decision.
type Submitter struct {
	sender     EventSender
	correlator *Correlator
	generate   GenerateFunc
	log        *logging.Logger
	now        func() time.Time
}

// NewSubmitter creates a Submitter.
func NewSubmitter(sender EventSender, correlator *Correlator, generate GenerateFunc, log *logging.Logger) *Submitter {
	return &Submitter{
		sender:     sender,
		correlator: correlator,
		generate:   generate,
		log:        log,
		now:        time.Now,
	}
}

// Submit generates one event for the product, injects the tracking
// token at a format-appropriate location, and sends it. The returned
// record reflects the submission outcome either way; a non-nil error
// is always a *SubmissionError and means the event must be excluded
// from polling.
func (s *Submitter) Submit(ctx context.Context, p *taxonomy.Product, token string) (*SubmissionRecord, error) {
	event, err := s.generate(p)
	if err != nil {
		return nil, &SubmissionError{Product: p.Name, Err: err}
	}

	tg, err := tagger.ForFormat(p.Format)
	if err != nil {
		return nil, &SubmissionError{Product: p.Name, Err: err}
	}
	tagged, err := tg.Inject(event, token)
	if err != nil {
		return nil, &SubmissionError{Product: p.Name, Err: err}
	}

	submittedAt := s.now()
	var status int
	switch p.Format {
	case taxonomy.FormatJSON:
		status, err = s.sender.SendEvent(ctx, tagged.(map[string]any), p.Parser)
	default:
		status, err = s.sender.SendRaw(ctx, tagged.(string), p.Parser)
	}

	ok := err == nil
	if cerr := s.correlator.Complete(token, tagged, submittedAt, ok, status); cerr != nil {
		return nil, &SubmissionError{Product: p.Name, Err: cerr}
	}
	rec, _ := s.correlator.Resolve(token)

	if err != nil {
		var se *client.StatusError
		if errors.As(err, &se) {
			s.log.Warn("ingestion rejected payload",
				logging.Product(p.Name), logging.Token(token), logging.Status(se.Code))
			return rec, &SubmissionError{Product: p.Name, Status: se.Code, Err: err}
		}
		s.log.Warn("ingestion transport failure",
			logging.Product(p.Name), logging.Token(token), logging.Error(err))
		return rec, &SubmissionError{Product: p.Name, Err: err}
	}

	s.log.Debug("event submitted",
		logging.Product(p.Name), logging.Token(token), logging.Format(string(p.Format)))
	return rec, nil
}
