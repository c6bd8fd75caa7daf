package validation

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/jmorascalyr/jarvis-coding/internal/taxonomy"
)

// Correlator mints unique tracking tokens and maintains the
// token → submission mapping for one validation run. It performs no
// I/O; the registry is the only structure shared across product
// tasks, guarded by a mutex with insert-once semantics.
type Correlator struct {
	runID string
	seq   atomic.Uint64

	mu      sync.Mutex
	records map[string]*SubmissionRecord
}

// NewCorrelator creates a Correlator for a run. An empty runID gets a
// random one.
func NewCorrelator(runID string) *Correlator {
	if runID == "" {
		runID = strings.SplitN(uuid.NewString(), "-", 2)[0]
	}
	return &Correlator{
		runID:   runID,
		records: make(map[string]*SubmissionRecord),
	}
}

// RunID returns the run identifier embedded in every minted token.
func (c *Correlator) RunID() string { return c.runID }

// Mint generates a fresh tracking token for the product and registers
// it. Tokens combine the run identifier, a monotonic sequence number
// and a random suffix, so a collision within a run cannot be
// constructed; if one is observed anyway the registry refuses the
// insert and returns DuplicateTokenError.
func (c *Correlator) Mint(p *taxonomy.Product) (string, error) {
	seq := c.seq.Add(1)
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	token := fmt.Sprintf("jv-%s-%d-%s", c.runID, seq, suffix)

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.records[token]; exists {
		return "", &DuplicateTokenError{Token: token}
	}
	c.records[token] = &SubmissionRecord{
		Token:       token,
		Product:     p,
		SubmittedAt: time.Time{},
	}
	return token, nil
}

// Complete attaches the submission outcome to a minted token.
func (c *Correlator) Complete(token string, payload any, submittedAt time.Time, ok bool, status int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, exists := c.records[token]
	if !exists {
		return fmt.Errorf("%w: %s", ErrTokenNotFound, token)
	}
	rec.Payload = payload
	rec.SubmittedAt = submittedAt
	rec.OK = ok
	rec.Status = status
	return nil
}

// Resolve returns the submission record for a token, or
// ErrTokenNotFound.
func (c *Correlator) Resolve(token string) (*SubmissionRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, exists := c.records[token]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrTokenNotFound, token)
	}
	return rec, nil
}

// Len returns the number of minted tokens.
func (c *Correlator) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}
