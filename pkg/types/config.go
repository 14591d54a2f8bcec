package types

import "time"

// HTTPConfig holds shared HTTP settings for outbound provider requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "company-research/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ProviderConfig holds the search provider credential and endpoint.
type ProviderConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey is the static SerpAPI credential. It is read-only for the
	// lifetime of the process.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the provider endpoint (default
	// https://serpapi.com/search.json).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

// ResearchConfig is passed to all three queries so they share one set of
// limits instead of duplicated literals.
type ResearchConfig struct {
	// MaxLeads caps the number of contacts returned (default 10).
	MaxLeads int `json:"max_leads" yaml:"max_leads"`

	// PageSize is the number of results requested per contact page (default 10).
	PageSize int `json:"page_size" yaml:"page_size"`

	// PageDelay is the pause between successive contact pages (default 1s).
	// A negative value (NoPageDelay) disables the pause.
	PageDelay time.Duration `json:"page_delay" yaml:"page_delay"`

	// Timeout bounds one whole research run; zero means no bound beyond
	// the HTTP client timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// Defaults for ResearchConfig.
const (
	DefaultMaxLeads  = 10
	DefaultPageSize  = 10
	DefaultPageDelay = time.Second

	// NoPageDelay turns the pause between contact pages off.
	NoPageDelay time.Duration = -1
)

// WithDefaults returns a copy of c with zero fields replaced by defaults.
// A negative PageDelay is left as is and means no pause.
func (c ResearchConfig) WithDefaults() ResearchConfig {
	if c.MaxLeads <= 0 {
		c.MaxLeads = DefaultMaxLeads
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.PageDelay == 0 {
		c.PageDelay = DefaultPageDelay
	}
	return c
}

// ServerConfig holds settings for the web UI.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// ReportFilename is the name offered for the downloaded PDF.
	ReportFilename string `json:"report_filename" yaml:"report_filename"`
}

// LogConfig selects the logger level and output format.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// AppConfig groups every configuration section.
type AppConfig struct {
	Provider ProviderConfig `json:"provider" yaml:"provider"`
	Research ResearchConfig `json:"research" yaml:"research"`
	Server   ServerConfig   `json:"server" yaml:"server"`
	Log      LogConfig      `json:"log" yaml:"log"`
}
