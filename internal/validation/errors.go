package validation

import (
	"errors"
	"fmt"
)

// ErrTokenNotFound is returned by Correlator.Resolve for tokens that
// were never minted in this run.
var ErrTokenNotFound = errors.New("tracking token not found")

// SubmissionError reports a failed event submission. It is isolated
// to one product and never aborts the run.
type SubmissionError struct {
	Product string
	Status  int // 0 when the transport failed before a response
	Err     error
}

func (e *SubmissionError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("submission for %s rejected: %d", e.Product, e.Status)
	}
	return fmt.Sprintf("submission for %s failed: %v", e.Product, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// RetrievalTimeoutError reports that a token was never resolved
// before its deadline. Terminal; the product is scored as failing.
type RetrievalTimeoutError struct {
	Token    string
	Attempts int
}

func (e *RetrievalTimeoutError) Error() string {
	return fmt.Sprintf("token %s never indexed within deadline (%d attempts)", e.Token, e.Attempts)
}

// RetrievalTransportError reports that the query boundary was
// unreachable or erroring. Terminal, and distinct from a timeout.
type RetrievalTransportError struct {
	Token string
	Err   error
}

func (e *RetrievalTransportError) Error() string {
	return fmt.Sprintf("query boundary error for token %s: %v", e.Token, e.Err)
}

func (e *RetrievalTransportError) Unwrap() error { return e.Err }

// DuplicateTokenError reports a correlator invariant violation. Token
// minting makes collisions structurally impossible, so observing this
// is a programming-error-level fault: the affected product is aborted
// rather than silently overwritten.
type DuplicateTokenError struct {
	Token string
}

func (e *DuplicateTokenError) Error() string {
	return fmt.Sprintf("duplicate tracking token: %s", e.Token)
}
