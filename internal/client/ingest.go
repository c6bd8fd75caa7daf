package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// IngestClient sends events to the HEC-compatible ingestion boundary.
type IngestClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewIngestClient creates an IngestClient pointing at the given base
// URL, authenticating with the given HEC token.
func NewIngestClient(baseURL, token string) *IngestClient {
	return &IngestClient{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// StatusError is returned when the ingestion boundary rejects a
// payload. Status code and body are surfaced verbatim.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ingest rejected with status %d: %s", e.Code, e.Body)
}

// SendEvent posts a structured event wrapped in a HEC envelope to the
// /services/collector/event endpoint.
func (c *IngestClient) SendEvent(ctx context.Context, event map[string]any, sourcetype string) (int, error) {
	payload := map[string]any{
		"event":      event,
		"sourcetype": sourcetype,
		"time":       time.Now().Unix(),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}
	return c.post(ctx, "/services/collector/event", "application/json", body)
}

// SendRaw posts a raw textual event (keyvalue, syslog, csv) to the
// /services/collector/raw endpoint. The sourcetype query parameter
// routes the line to the right parser.
func (c *IngestClient) SendRaw(ctx context.Context, line, sourcetype string) (int, error) {
	path := "/services/collector/raw?sourcetype=" + sourcetype
	return c.post(ctx, path, "text/plain", []byte(line))
}

func (c *IngestClient) post(ctx context.Context, path, contentType string, body []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Splunk "+c.token)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return resp.StatusCode, &StatusError{Code: resp.StatusCode, Body: string(respBody)}
	}

	return resp.StatusCode, nil
}
