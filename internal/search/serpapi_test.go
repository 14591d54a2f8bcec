// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/company-research/internal/httputil"
	"github.com/pdiddy/company-research/pkg/types"
)

const sampleOrganicJSON = `{
  "search_metadata": {"status": "Success"},
  "organic_results": [
    {"position": 1, "title": "Acme Corp – Official", "link": "https://acme.example", "snippet": "Acme makes widgets."},
    {"position": 2, "title": "Acme Corp - Wikipedia", "link": "https://en.wikipedia.org/wiki/Acme"}
  ]
}`

const sampleJobsJSON = `{
  "jobs_results": [
    {
      "title": "Backend Engineer",
      "company_name": "Acme Corp",
      "location": "Berlin, Germany",
      "via": "LinkedIn",
      "detected_extensions": {"posted_at": "3 days ago", "schedule_type": "Full-time"},
      "apply_options": [
        {"title": "LinkedIn", "link": "https://linkedin.example/jobs/1"},
        {"title": "Indeed", "link": "https://indeed.example/jobs/1"}
      ]
    },
    {"title": "Recruiter"}
  ]
}`

// serpTestServer records every request's query parameters.
func serpTestServer(t *testing.T, statusCode int, body string, seen *[]url.Values) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			*seen = append(*seen, r.URL.Query())
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func testClient(ts *httptest.Server) *SerpAPIClient {
	return &SerpAPIClient{
		Client:    ts.Client(),
		APIKey:    "test-key",
		UserAgent: "test/0.1",
		BaseURL:   ts.URL,
	}
}

func TestSerpAPISearch_Organic(t *testing.T) {
	var seen []url.Values
	ts := serpTestServer(t, http.StatusOK, sampleOrganicJSON, &seen)

	resp, err := testClient(ts).Search(context.Background(), Params{
		Engine: EngineGoogle,
		Query:  "Acme Corp company profile details",
	})
	require.NoError(t, err)
	require.Len(t, resp.OrganicResults, 2)

	r0 := resp.OrganicResults[0]
	assert.Equal(t, "Acme Corp – Official", r0.Title)
	assert.Equal(t, "https://acme.example", r0.Link)
	assert.Equal(t, "Acme makes widgets.", r0.Snippet)
	assert.Empty(t, resp.OrganicResults[1].Snippet)

	require.Len(t, seen, 1)
	assert.Equal(t, "google", seen[0].Get("engine"))
	assert.Equal(t, "Acme Corp company profile details", seen[0].Get("q"))
	assert.Equal(t, "test-key", seen[0].Get("api_key"))
	assert.False(t, seen[0].Has("start"), "start=0 should be omitted")
}

func TestSerpAPISearch_Jobs(t *testing.T) {
	ts := serpTestServer(t, http.StatusOK, sampleJobsJSON, nil)

	resp, err := testClient(ts).Search(context.Background(), Params{Engine: EngineGoogleJobs, Query: "Acme Corp jobs"})
	require.NoError(t, err)
	require.Len(t, resp.JobsResults, 2)

	j0 := resp.JobsResults[0]
	assert.Equal(t, "Backend Engineer", j0.Title)
	assert.Equal(t, "3 days ago", j0.DetectedExtensions.PostedAt)
	require.Len(t, j0.ApplyOptions, 2)
	assert.Equal(t, "https://linkedin.example/jobs/1", j0.ApplyOptions[0].Link)

	j1 := resp.JobsResults[1]
	assert.Empty(t, j1.Location)
	assert.Empty(t, j1.ApplyOptions)
}

func TestSerpAPISearch_StartOffset(t *testing.T) {
	var seen []url.Values
	ts := serpTestServer(t, http.StatusOK, `{}`, &seen)

	_, err := testClient(ts).Search(context.Background(), Params{Query: "q", Start: 20})
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Equal(t, "20", seen[0].Get("start"))
	assert.Equal(t, "google", seen[0].Get("engine"), "engine defaults to google")
}

func TestSerpAPISearch_EmptyResultsWithProviderMessage(t *testing.T) {
	ts := serpTestServer(t, http.StatusOK, `{"error": "Google hasn't returned any results for this query."}`, nil)

	resp, err := testClient(ts).Search(context.Background(), Params{Query: "zzz"})
	require.NoError(t, err)
	assert.Empty(t, resp.OrganicResults)
	assert.Contains(t, resp.Error, "hasn't returned any results")
}

func TestSerpAPISearch_HTTPError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"provider error field", http.StatusUnauthorized, `{"error": "Invalid API key. Your API key should be here: https://serpapi.com/manage-api-key"}`, "HTTP 401: Invalid API key"},
		{"plain body", http.StatusInternalServerError, "upstream exploded", "HTTP 500: upstream exploded"},
		{"empty body", http.StatusBadGateway, "", "HTTP 502: empty response body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := serpTestServer(t, tt.status, tt.body, nil)
			_, err := testClient(ts).Search(context.Background(), Params{Query: "acme"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)

			var statusErr *httputil.StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tt.status, statusErr.StatusCode)
		})
	}
}

func TestSerpAPISearch_MalformedJSON(t *testing.T) {
	ts := serpTestServer(t, http.StatusOK, `{"organic_results": [`, nil)

	_, err := testClient(ts).Search(context.Background(), Params{Query: "acme"})
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "parsing SerpAPI response"), "got %q", err)
}

func TestSerpAPISearch_MissingAPIKey(t *testing.T) {
	c := &SerpAPIClient{Client: http.DefaultClient}
	_, err := c.Search(context.Background(), Params{Query: "acme"})
	assert.True(t, errors.Is(err, ErrMissingAPIKey))
}

func TestSerpAPISearch_ContextCancelled(t *testing.T) {
	ts := serpTestServer(t, http.StatusOK, sampleOrganicJSON, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testClient(ts).Search(ctx, Params{Query: "acme"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSerpAPISearch_DefaultBase(t *testing.T) {
	ts := serpTestServer(t, http.StatusOK, `{}`, nil)

	old := serpAPIBase
	serpAPIBase = ts.URL
	defer func() { serpAPIBase = old }()

	c := NewSerpAPIClient(types.ProviderConfig{APIKey: "k"}, nil)
	c.Client = ts.Client()
	_, err := c.Search(context.Background(), Params{Query: "acme"})
	require.NoError(t, err)
}

func TestSerpAPISearch_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	okServer := serpTestServer(t, http.StatusOK, sampleOrganicJSON, nil)
	badServer := serpTestServer(t, http.StatusForbidden, `{"error":"no"}`, nil)

	c := testClient(okServer)
	c.Metrics = metrics
	_, err := c.Search(context.Background(), Params{Engine: EngineGoogle, Query: "a"})
	require.NoError(t, err)

	c = testClient(badServer)
	c.Metrics = metrics
	_, err = c.Search(context.Background(), Params{Engine: EngineGoogleJobs, Query: "a"})
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Requests.WithLabelValues("google", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Requests.WithLabelValues("google_jobs", "http_error")))
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.IncRequest(EngineGoogle, "ok")
}
