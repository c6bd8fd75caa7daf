package validation

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/jmorascalyr/jarvis-coding/internal/client"
	"github.com/jmorascalyr/jarvis-coding/internal/logging"
)

// Failure reasons carried on terminal, not-found retrieval results.
const (
	ReasonNeverIndexed   = "never indexed within deadline"
	ReasonRunDeadline    = "run deadline exceeded"
	ReasonQueryTransport = "query boundary unreachable"
)

// pollState is the poller's explicit state machine.
type pollState int

const (
	stateWaiting pollState = iota
	stateFound
	stateTimedOut
	stateTransportError
)

// QuerySearcher is the query boundary as the poller sees it.
// *client.QueryClient satisfies it.
type QuerySearcher interface {
	Search(ctx context.Context, filter string, from, to time.Time) ([]map[string]any, error)
}

// PollPolicy bounds one token's polling loop.
type PollPolicy struct {
	BaseInterval time.Duration // first wait between attempts
	MaxInterval  time.Duration // backoff cap
	Deadline     time.Duration // wall-clock limit per token
	Lookback     time.Duration // query window reaching back from now
}

// DefaultPollPolicy matches the ingestion pipeline's typical indexing
// latency.
func DefaultPollPolicy() PollPolicy {
	return PollPolicy{
		BaseInterval: time.Second,
		MaxInterval:  8 * time.Second,
		Deadline:     90 * time.Second,
		Lookback:     2 * time.Hour,
	}
}

// Poller waits for a submitted event to surface, parsed, at the query
// boundary. Each token's loop is an independently schedulable unit of
// work; nothing blocks one token on another.
type Poller struct {
	searcher QuerySearcher
	policy   PollPolicy
	log      *logging.Logger

	// Injected for tests.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewPoller creates a Poller with the given policy.
func NewPoller(searcher QuerySearcher, policy PollPolicy, log *logging.Logger) *Poller {
	return &Poller{
		searcher: searcher,
		policy:   policy,
		log:      log,
		now:      time.Now,
		sleep:    sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// newBackOff builds the poll interval policy: exponential from
// BaseInterval, capped at MaxInterval, no randomization so that
// successive intervals are non-decreasing.
func (p *Poller) newBackOff() *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.policy.BaseInterval
	bo.MaxInterval = p.policy.MaxInterval
	bo.Multiplier = 2
	bo.RandomizationFactor = 0
	bo.MaxElapsedTime = 0 // the deadline is enforced here, not by the policy
	bo.Reset()
	return bo
}

// AwaitParsed polls the query boundary for records matching the token
// until one appears, the per-token deadline expires, or the boundary
// fails. The result is terminal: Found never transitions back to
// false, and an exhausted token is not retried within the run.
//
// Terminal outcomes:
//   - found:            result.Found true, nil error
//   - deadline expired: result.Found false, Reason set, nil error
//   - cancelled run:    result.Found false, ReasonRunDeadline, nil error
//   - transport error:  result.Found false, *RetrievalTransportError
func (p *Poller) AwaitParsed(ctx context.Context, token string) (*RetrievalResult, error) {
	start := p.now()
	deadline := start.Add(p.policy.Deadline)
	bo := p.newBackOff()

	result := &RetrievalResult{Token: token}
	state := stateWaiting

	for state == stateWaiting {
		if ctx.Err() != nil {
			result.Reason = ReasonRunDeadline
			result.RetrievedAt = p.now()
			return result, nil
		}

		result.Attempts++
		from := p.now().Add(-p.policy.Lookback)
		records, err := p.searcher.Search(ctx, client.ContainsFilter(token), from, p.now())
		switch {
		case err != nil && ctx.Err() != nil:
			// The run was cancelled mid-request; not a boundary fault.
			result.Reason = ReasonRunDeadline
			result.RetrievedAt = p.now()
			return result, nil
		case err != nil:
			state = stateTransportError
			result.Reason = ReasonQueryTransport
			result.RetrievedAt = p.now()
			p.log.Warn("query boundary error",
				logging.Token(token), logging.Attempts(result.Attempts), logging.Error(err))
			return result, &RetrievalTransportError{Token: token, Err: err}
		case len(records) > 0:
			state = stateFound
			result.Found = true
			result.Record = records[0]
			result.RetrievedAt = p.now()
			p.log.Debug("token resolved",
				logging.Token(token), logging.Attempts(result.Attempts))
			return result, nil
		}

		// Not yet indexed: the expected transient state.
		wait := bo.NextBackOff()
		if wait == backoff.Stop {
			state = stateTimedOut
			break
		}
		remaining := deadline.Sub(p.now())
		if remaining <= 0 {
			state = stateTimedOut
			break
		}
		if wait > remaining {
			// One last attempt right at the deadline.
			wait = remaining
		}
		if err := p.sleep(ctx, wait); err != nil {
			result.Reason = ReasonRunDeadline
			result.RetrievedAt = p.now()
			return result, nil
		}
	}

	result.Reason = ReasonNeverIndexed
	result.RetrievedAt = p.now()
	p.log.Debug("token never indexed",
		logging.Token(token), logging.Attempts(result.Attempts))
	return result, nil
}
