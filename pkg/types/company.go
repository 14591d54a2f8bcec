// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the value structures shared by the research,
// report, and web packages. All of them are call-scoped: they are built for
// one company name and discarded afterwards.
package types

import "time"

// Placeholder values used when the provider omits a field.
const (
	NotAvailable = "N/A"
	NoLink       = "#"
)

// ProfileNotFound is the marker text carried by a CompanyProfile when the
// provider returned no organic results.
const ProfileNotFound = "No company details found"

// ContactLinkLabel is the caption shown for every contact profile link.
const ContactLinkLabel = "LinkedIn Profile"

// CompanyProfile identifies a company by its top web search result.
type CompanyProfile struct {
	// Title is the page title of the first organic result.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Link is the URL of the first organic result.
	Link string `json:"link,omitempty" yaml:"link,omitempty"`

	// Snippet is the description the provider extracted for the result.
	Snippet string `json:"snippet,omitempty" yaml:"snippet,omitempty"`

	// NotFound is set when the provider returned no organic results. The
	// other fields are empty in that case and Error holds ProfileNotFound.
	NotFound bool   `json:"not_found,omitempty" yaml:"not_found,omitempty"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
}

// NotFoundProfile returns the explicit "no result" marker.
func NotFoundProfile() CompanyProfile {
	return CompanyProfile{NotFound: true, Error: ProfileNotFound}
}

// Job is one open position returned by the job search.
type Job struct {
	Title     string `json:"title" yaml:"title"`
	Location  string `json:"location" yaml:"location"`
	PostedAt  string `json:"posted_at" yaml:"posted_at"`
	ApplyLink string `json:"apply_link" yaml:"apply_link"`
}

// Contact is one HR or talent-acquisition profile found by contact discovery.
type Contact struct {
	// Name is the search result title, usually "Name - Role - Company".
	Name string `json:"name" yaml:"name"`

	// Label is the caption rendered for ProfileLink.
	Label string `json:"label" yaml:"label"`

	// ProfileLink is the professional-network profile URL. It is unique
	// within one discovery run.
	ProfileLink string `json:"profile_link" yaml:"profile_link"`
}

// Report binds the three result sets gathered for one company name.
type Report struct {
	Company     string         `json:"company" yaml:"company"`
	Profile     CompanyProfile `json:"profile" yaml:"profile"`
	Jobs        []Job          `json:"jobs" yaml:"jobs"`
	Contacts    []Contact      `json:"contacts" yaml:"contacts"`
	GeneratedAt time.Time      `json:"generated_at" yaml:"generated_at"`
}
