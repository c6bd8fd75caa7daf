package validation

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jmorascalyr/jarvis-coding/internal/logging"
	"github.com/jmorascalyr/jarvis-coding/internal/taxonomy"
)

// ErrBoundariesUnreachable is returned when every product in the run
// failed at a transport boundary: there is nothing to rank and the
// run as a whole is considered aborted.
var ErrBoundariesUnreachable = errors.New("all products failed: ingestion and query boundaries unreachable")

// OrchestratorConfig bounds a validation run.
type OrchestratorConfig struct {
	// MaxInFlight caps how many products are processed concurrently.
	MaxInFlight int
	// Settle is the pause between a successful submission and the
	// first poll attempt, tracking the boundary's indexing latency.
	Settle time.Duration
	// SpacingMin and SpacingMax bound the jittered pause taken before
	// each submission, keeping bursts off the ingestion endpoint.
	// Zero disables pacing.
	SpacingMin time.Duration
	SpacingMax time.Duration
	// RunDeadline, when positive, bounds the whole run; pending
	// polling is cancelled once it expires.
	RunDeadline time.Duration
}

// spacing picks the pre-submission pause for one product.
func (c OrchestratorConfig) spacing() time.Duration {
	if c.SpacingMax <= 0 {
		return 0
	}
	min := c.SpacingMin
	if min < 0 {
		min = 0
	}
	if c.SpacingMax <= min {
		return min
	}
	return min + rand.N(c.SpacingMax-min)
}

// Orchestrator drives products through mint → submit → poll → score
// with bounded parallelism and aggregates the ranked report.
type Orchestrator struct {
	correlator *Correlator
	submitter  *Submitter
	poller     *Poller
	scorer     *Scorer
	cfg        OrchestratorConfig
	log        *logging.Logger

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(correlator *Correlator, submitter *Submitter, poller *Poller, scorer *Scorer, cfg OrchestratorConfig, log *logging.Logger) *Orchestrator {
	if cfg.MaxInFlight <= 0 {
		cfg.MaxInFlight = 8
	}
	return &Orchestrator{
		correlator: correlator,
		submitter:  submitter,
		poller:     poller,
		scorer:     scorer,
		cfg:        cfg,
		log:        log,
		now:        time.Now,
		sleep:      sleepCtx,
	}
}

// Run validates every product and returns the ranked report. Product
// failures are isolated: they become report entries, never run
// aborts. Every input product appears exactly once in the report.
func (o *Orchestrator) Run(ctx context.Context, products []*taxonomy.Product) (*ValidationReport, error) {
	report := &ValidationReport{
		RunID:     o.correlator.RunID(),
		StartedAt: o.now(),
		Entries:   make([]ReportEntry, 0, len(products)),
	}

	if o.cfg.RunDeadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.RunDeadline)
		defer cancel()
	}

	var (
		mu             sync.Mutex
		transportFails int
	)

	g := new(errgroup.Group)
	g.SetLimit(o.cfg.MaxInFlight)

	for _, p := range products {
		g.Go(func() error {
			entry, transport := o.runProduct(ctx, p)
			mu.Lock()
			report.Entries = append(report.Entries, entry)
			if transport {
				transportFails++
			}
			mu.Unlock()
			return nil
		})
	}

	// No partial report: results aggregate only after every product
	// task reaches a terminal state.
	g.Wait()

	sort.SliceStable(report.Entries, func(i, j int) bool {
		if report.Entries[i].CoveragePct != report.Entries[j].CoveragePct {
			return report.Entries[i].CoveragePct > report.Entries[j].CoveragePct
		}
		return report.Entries[i].Product < report.Entries[j].Product
	})
	report.FinishedAt = o.now()

	if len(products) > 0 && transportFails == len(products) {
		return report, ErrBoundariesUnreachable
	}
	return report, nil
}

// runProduct takes one product to a terminal state. The second return
// reports whether the failure was transport-level (used to detect a
// run where no boundary was reachable at all).
func (o *Orchestrator) runProduct(ctx context.Context, p *taxonomy.Product) (ReportEntry, bool) {
	log := o.log.With(logging.Product(p.Name), logging.Parser(p.Parser))

	if d := o.cfg.spacing(); d > 0 {
		if err := o.sleep(ctx, d); err != nil {
			return failureEntry(p, GradeSubmissionFailure, ReasonRunDeadline), false
		}
	}

	token, err := o.correlator.Mint(p)
	if err != nil {
		// DuplicateTokenError: programming-error-level fault; abort
		// this product, never overwrite the live token.
		log.Error("token mint failed", logging.Error(err))
		return failureEntry(p, GradeSubmissionFailure, err.Error()), false
	}

	if _, err := o.submitter.Submit(ctx, p, token); err != nil {
		var se *SubmissionError
		reason := err.Error()
		transport := true
		if errors.As(err, &se) && se.Status != 0 {
			reason = fmt.Sprintf("ingestion rejected: %d", se.Status)
			transport = false
		}
		return failureEntry(p, GradeSubmissionFailure, reason), transport
	}

	if o.cfg.Settle > 0 {
		if err := o.sleep(ctx, o.cfg.Settle); err != nil {
			score := o.scorer.Score(p, &RetrievalResult{Token: token, Reason: ReasonRunDeadline})
			return entryFromScore(p, score, 0), false
		}
	}

	result, err := o.poller.AwaitParsed(ctx, token)
	if err != nil {
		// Transport error: terminal, surfaced distinctly from "not
		// yet indexed".
		log.Warn("retrieval failed", logging.Token(token), logging.Error(err))
		score := o.scorer.Score(p, result)
		return entryFromScore(p, score, result.Attempts), true
	}

	score := o.scorer.Score(p, result)
	log.Info("product scored",
		logging.Grade(string(score.Grade)),
		logging.Coverage(score.CoveragePct),
		logging.Attempts(result.Attempts))
	return entryFromScore(p, score, result.Attempts), false
}

func failureEntry(p *taxonomy.Product, grade Grade, reason string) ReportEntry {
	return ReportEntry{
		Product: p.Name,
		Parser:  p.Parser,
		Grade:   grade,
		Reason:  reason,
	}
}

func entryFromScore(p *taxonomy.Product, score FieldScore, attempts int) ReportEntry {
	return ReportEntry{
		Product:        p.Name,
		Parser:         p.Parser,
		Grade:          score.Grade,
		CoveragePct:    score.CoveragePct,
		CompliancePct:  score.CompliancePct,
		ExtractedCount: score.ExtractedCount,
		Attempts:       attempts,
		Reason:         score.Reason,
	}
}
