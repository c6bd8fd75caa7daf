package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_Success(t *testing.T) {
	from := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "Bearer query-token", r.Header.Get("Authorization"))

		var req queryRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		require.NoError(t, err)

		assert.Equal(t, "log", req.QueryType)
		assert.Equal(t, `* contains "jv-run1-1-abcd1234"`, req.Filter)
		assert.Equal(t, "2026-08-30T10:00:00Z", req.StartTime)
		assert.Equal(t, "2026-08-30T12:00:00Z", req.EndTime)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"matches": [
				{
					"attributes": {"class_uid": 4001, "src_endpoint.ip": "10.0.0.5"},
					"timestamp": "2026-08-30T11:59:58Z",
					"severity": "Informational"
				}
			]
		}`))
	}))
	defer server.Close()

	c := NewQueryClient(server.URL, "query-token")
	records, err := c.Search(context.Background(), ContainsFilter("jv-run1-1-abcd1234"), from, to)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, float64(4001), records[0]["class_uid"])
	assert.Equal(t, "10.0.0.5", records[0]["src_endpoint.ip"])
	assert.Equal(t, "2026-08-30T11:59:58Z", records[0]["timestamp"])
	assert.Equal(t, "Informational", records[0]["severity"])
}

func TestSearch_NoMatches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"matches": []}`))
	}))
	defer server.Close()

	c := NewQueryClient(server.URL, "tok")
	records, err := c.Search(context.Background(), ContainsFilter("jv-x"), time.Now().Add(-time.Hour), time.Now())

	// Absence is the expected transient state, never an error.
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSearch_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := NewQueryClient(server.URL, "tok")
	_, err := c.Search(context.Background(), "*", time.Now().Add(-time.Hour), time.Now())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestSearch_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	c := NewQueryClient(server.URL, "tok")
	_, err := c.Search(context.Background(), "*", time.Now().Add(-time.Hour), time.Now())
	assert.Error(t, err)
}

func TestContainsFilter(t *testing.T) {
	assert.Equal(t, `* contains "jv-abc"`, ContainsFilter("jv-abc"))
}
