package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// QueryClient retrieves parsed records from the query boundary. The
// boundary is eventually consistent: events submitted through
// ingestion appear in query results only after indexing.
type QueryClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewQueryClient creates a QueryClient pointing at the given base URL,
// authenticating with the given API token.
func NewQueryClient(baseURL, token string) *QueryClient {
	return &QueryClient{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// queryRequest is the wire shape of a log query.
type queryRequest struct {
	QueryType string `json:"queryType"`
	Filter    string `json:"filter"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// queryResponse is the wire shape of the boundary's answer. Each
// match carries the parsed fields in attributes plus a handful of
// envelope fields.
type queryResponse struct {
	Matches []struct {
		Attributes map[string]any `json:"attributes"`
		Timestamp  string         `json:"timestamp"`
		Severity   string         `json:"severity"`
		Message    string         `json:"message"`
	} `json:"matches"`
}

// Search runs a free-text filter over the given time range and
// returns the matching parsed records as field-name → value mappings.
// Zero matches is not an error.
func (c *QueryClient) Search(ctx context.Context, filter string, from, to time.Time) ([]map[string]any, error) {
	reqBody, err := json.Marshal(queryRequest{
		QueryType: "log",
		Filter:    filter,
		StartTime: from.UTC().Format(time.RFC3339),
		EndTime:   to.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("query failed with status %d", resp.StatusCode)
	}

	var qr queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&qr); err != nil {
		return nil, fmt.Errorf("failed to decode query response: %w", err)
	}

	records := make([]map[string]any, 0, len(qr.Matches))
	for _, m := range qr.Matches {
		record := make(map[string]any, len(m.Attributes)+3)
		for k, v := range m.Attributes {
			record[k] = v
		}
		if m.Timestamp != "" {
			record["timestamp"] = m.Timestamp
		}
		if m.Severity != "" {
			record["severity"] = m.Severity
		}
		if m.Message != "" {
			record["message"] = m.Message
		}
		records = append(records, record)
	}
	return records, nil
}

// ContainsFilter builds the free-text filter matching records that
// embed the given tracking token.
func ContainsFilter(token string) string {
	return fmt.Sprintf(`* contains "%s"`, token)
}
