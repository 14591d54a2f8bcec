// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries the SerpAPI search provider and returns its
// structured result fields. The provider contract is owned by SerpAPI; this
// package only builds requests and decodes the fields the research queries
// consume.
package search

import (
	"context"
	"errors"
)

// Engine selects the provider search mode.
type Engine string

const (
	EngineGoogle     Engine = "google"
	EngineGoogleJobs Engine = "google_jobs"
)

// ErrMissingAPIKey is returned when a request is attempted without a credential.
var ErrMissingAPIKey = errors.New("search provider API key is not configured")

// Provider runs one search request. SerpAPIClient is the production
// implementation; tests substitute fakes.
type Provider interface {
	Search(ctx context.Context, params Params) (*Response, error)
}

// Params holds the parameters of one provider request.
type Params struct {
	Engine Engine
	Query  string
	// Start is the zero-based result offset used for pagination. Zero is
	// omitted from the request.
	Start int
}

// Response holds the provider fields the research queries use. Fields the
// provider omits decode as empty values.
type Response struct {
	OrganicResults []OrganicResult `json:"organic_results"`
	JobsResults    []JobResult     `json:"jobs_results"`

	// Error is the provider's own message, e.g. "Google hasn't returned any
	// results for this query." It accompanies empty result sets.
	Error string `json:"error,omitempty"`
}

// OrganicResult is one general web search hit.
type OrganicResult struct {
	Position int    `json:"position"`
	Title    string `json:"title"`
	Link     string `json:"link"`
	Snippet  string `json:"snippet"`
}

// JobResult is one posting from the job search mode.
type JobResult struct {
	Title              string             `json:"title"`
	CompanyName        string             `json:"company_name"`
	Location           string             `json:"location"`
	Via                string             `json:"via"`
	DetectedExtensions DetectedExtensions `json:"detected_extensions"`
	ApplyOptions       []ApplyOption      `json:"apply_options"`
}

// DetectedExtensions holds the structured tags the provider parsed from a posting.
type DetectedExtensions struct {
	PostedAt     string `json:"posted_at"`
	ScheduleType string `json:"schedule_type"`
}

// ApplyOption is one place a job can be applied to.
type ApplyOption struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}
