// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pdiddy/company-research/internal/httputil"
	"github.com/pdiddy/company-research/pkg/types"
)

// serpAPIBase is the SerpAPI search endpoint. Declared as a var so tests
// can substitute an httptest server.
var serpAPIBase = "https://serpapi.com/search.json"

// SerpAPIClient queries SerpAPI with a static API key.
type SerpAPIClient struct {
	Client    *http.Client
	APIKey    string
	UserAgent string
	// BaseURL overrides serpAPIBase when set.
	BaseURL string
	// Metrics is optional.
	Metrics *Metrics
}

// NewSerpAPIClient builds a client from provider configuration.
func NewSerpAPIClient(cfg types.ProviderConfig, metrics *Metrics) *SerpAPIClient {
	return &SerpAPIClient{
		Client:    &http.Client{Timeout: cfg.Timeout},
		APIKey:    cfg.APIKey,
		UserAgent: cfg.UserAgent,
		BaseURL:   cfg.BaseURL,
		Metrics:   metrics,
	}
}

// Search issues one request and decodes the response. Provider errors are
// returned as-is; the caller decides what to do with them.
func (c *SerpAPIClient) Search(ctx context.Context, params Params) (*Response, error) {
	if c.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if params.Engine == "" {
		params.Engine = EngineGoogle
	}

	reqURL := c.buildURL(params)

	var resp Response
	err := httputil.GetJSON(ctx, c.Client, reqURL, c.UserAgent, &resp)

	var statusErr *httputil.StatusError
	var decodeErr *httputil.DecodeError
	switch {
	case err == nil:
		c.Metrics.IncRequest(params.Engine, "ok")
		return &resp, nil
	case errors.As(err, &statusErr):
		c.Metrics.IncRequest(params.Engine, "http_error")
		return nil, fmt.Errorf("SerpAPI returned %w", &httputil.StatusError{
			StatusCode: statusErr.StatusCode,
			Body:       providerMessage(statusErr.Body),
		})
	case errors.As(err, &decodeErr):
		c.Metrics.IncRequest(params.Engine, "decode_error")
		return nil, fmt.Errorf("parsing SerpAPI response: %w", decodeErr.Err)
	default:
		c.Metrics.IncRequest(params.Engine, "transport_error")
		return nil, fmt.Errorf("SerpAPI request: %w", err)
	}
}

func (c *SerpAPIClient) buildURL(params Params) string {
	base := c.BaseURL
	if base == "" {
		base = serpAPIBase
	}

	v := url.Values{
		"engine":  {string(params.Engine)},
		"q":       {params.Query},
		"api_key": {c.APIKey},
	}
	if params.Start > 0 {
		v.Set("start", strconv.Itoa(params.Start))
	}
	return base + "?" + v.Encode()
}

// providerMessage extracts SerpAPI's {"error": "..."} text from an error
// body, falling back to the raw body.
func providerMessage(body string) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal([]byte(body), &e) == nil && e.Error != "" {
		return e.Error
	}
	if body == "" {
		return "empty response body"
	}
	return body
}
