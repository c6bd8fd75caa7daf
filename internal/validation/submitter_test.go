package validation

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmorascalyr/jarvis-coding/internal/client"
	"github.com/jmorascalyr/jarvis-coding/internal/logging"
	"github.com/jmorascalyr/jarvis-coding/internal/tagger"
	"github.com/jmorascalyr/jarvis-coding/internal/taxonomy"
)

// fakeSender captures submissions and scripts outcomes per product
// parser.
type fakeSender struct {
	mu         sync.Mutex
	events     []map[string]any
	lines      []string
	statusCode int   // non-200 triggers a StatusError
	err        error // transport failure
}

func (f *fakeSender) SendEvent(ctx context.Context, event map[string]any, sourcetype string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	if f.statusCode != 0 && f.statusCode != http.StatusOK {
		return f.statusCode, &client.StatusError{Code: f.statusCode, Body: "no"}
	}
	f.events = append(f.events, event)
	return http.StatusOK, nil
}

func (f *fakeSender) SendRaw(ctx context.Context, line, sourcetype string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	if f.statusCode != 0 && f.statusCode != http.StatusOK {
		return f.statusCode, &client.StatusError{Code: f.statusCode, Body: "no"}
	}
	f.lines = append(f.lines, line)
	return http.StatusOK, nil
}

func staticGenerator(event any) GenerateFunc {
	return func(*taxonomy.Product) (any, error) { return event, nil }
}

func testLogger() *logging.Logger {
	return logging.New(slog.LevelError, "text")
}

func TestSubmit_JSONEventTagged(t *testing.T) {
	c := NewCorrelator("run1")
	p := testProduct("okta", taxonomy.FormatJSON)
	sender := &fakeSender{}
	s := NewSubmitter(sender, c, staticGenerator(map[string]any{"eventType": "user.session.start"}), testLogger())

	token, err := c.Mint(p)
	require.NoError(t, err)

	rec, err := s.Submit(context.Background(), p, token)
	require.NoError(t, err)

	assert.True(t, rec.OK)
	assert.Equal(t, http.StatusOK, rec.Status)
	require.Len(t, sender.events, 1)
	assert.Equal(t, token, sender.events[0][tagger.TokenField])
	assert.Equal(t, "user.session.start", sender.events[0]["eventType"])
}

func TestSubmit_RawLineTagged(t *testing.T) {
	c := NewCorrelator("run1")
	p := testProduct("fortigate", taxonomy.FormatKeyValue)
	sender := &fakeSender{}
	s := NewSubmitter(sender, c, staticGenerator(`srcip=10.0.0.5 action="accept"`), testLogger())

	token, _ := c.Mint(p)
	rec, err := s.Submit(context.Background(), p, token)
	require.NoError(t, err)

	assert.True(t, rec.OK)
	require.Len(t, sender.lines, 1)
	assert.Contains(t, sender.lines[0], tagger.TokenField+"="+token)
}

func TestSubmit_RejectedPayloadRecorded(t *testing.T) {
	c := NewCorrelator("run1")
	p := testProduct("ciscoftd", taxonomy.FormatSyslog)
	sender := &fakeSender{statusCode: http.StatusServiceUnavailable}
	s := NewSubmitter(sender, c, staticGenerator("raw"), testLogger())

	token, _ := c.Mint(p)
	rec, err := s.Submit(context.Background(), p, token)

	require.Error(t, err)
	var se *SubmissionError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.Status)

	// Outcome is recorded either way; the record is terminal.
	require.NotNil(t, rec)
	assert.False(t, rec.OK)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Status)

	resolved, rerr := c.Resolve(token)
	require.NoError(t, rerr)
	assert.False(t, resolved.OK)
}

func TestSubmit_TransportFailure(t *testing.T) {
	c := NewCorrelator("run1")
	p := testProduct("okta", taxonomy.FormatJSON)
	sender := &fakeSender{err: errors.New("dial tcp: connection refused")}
	s := NewSubmitter(sender, c, staticGenerator(map[string]any{"k": "v"}), testLogger())

	token, _ := c.Mint(p)
	rec, err := s.Submit(context.Background(), p, token)

	require.Error(t, err)
	var se *SubmissionError
	require.ErrorAs(t, err, &se)
	assert.Zero(t, se.Status)
	assert.False(t, rec.OK)
}

func TestSubmit_GeneratorFailure(t *testing.T) {
	c := NewCorrelator("run1")
	p := testProduct("okta", taxonomy.FormatJSON)
	s := NewSubmitter(&fakeSender{}, c,
		func(*taxonomy.Product) (any, error) { return nil, errors.New("boom") }, testLogger())

	token, _ := c.Mint(p)
	_, err := s.Submit(context.Background(), p, token)

	var se *SubmissionError
	require.ErrorAs(t, err, &se)
}

func TestSubmit_NeverRetries(t *testing.T) {
	c := NewCorrelator("run1")
	p := testProduct("okta", taxonomy.FormatJSON)
	sender := &fakeSender{err: errors.New("refused")}
	s := NewSubmitter(sender, c, staticGenerator(map[string]any{"k": "v"}), testLogger())

	token, _ := c.Mint(p)
	s.Submit(context.Background(), p, token)

	sender.mu.Lock()
	defer sender.mu.Unlock()
	assert.Empty(t, sender.events)
	assert.Empty(t, sender.lines)
}
