package types

import "time"

// HTTPConfig holds shared HTTP settings used when documents are fetched over the network.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "dpe-reader/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// DefaultMaxDocumentBytes caps a single document at 10 MiB.
const DefaultMaxDocumentBytes int64 = 10 << 20

// SourceConfig holds settings for reading DPE documents.
type SourceConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxRetries is the number of retry attempts on HTTP 429 and 503 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// MaxDocumentBytes rejects documents larger than this many bytes
	// (default DefaultMaxDocumentBytes).
	MaxDocumentBytes int64 `json:"max_document_bytes" yaml:"max_document_bytes"`

	// Token is an optional bearer token sent to HTTP sources.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`
}

// OutputFormat selects how parsed records are written.
type OutputFormat string

const (
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
	OutputText OutputFormat = "text"
)

// Valid reports whether f is one of the supported formats.
func (f OutputFormat) Valid() bool {
	switch f {
	case OutputJSON, OutputYAML, OutputText:
		return true
	}
	return false
}

// OutputConfig holds settings for writing records.
type OutputConfig struct {
	// Format selects the output format: json, yaml, or text.
	Format OutputFormat `json:"format" yaml:"format"`
}

// ReaderConfig groups the dpe-reader configuration sections.
type ReaderConfig struct {
	Source SourceConfig `json:"source" yaml:"source"`
	Output OutputConfig `json:"output" yaml:"output"`
}
