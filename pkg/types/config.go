// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// LLMConfig holds settings for the model gateway. Retry and timeout
// policy live here, with the gateway, not with the workflow engine.
type LLMConfig struct {
	// Model is the chat model identifier (e.g. "gpt-4o-mini").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the LLM API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the API endpoint for OpenAI-compatible providers.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// MaxRetries is the number of retry attempts for transient API
	// failures (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// Timeout bounds a single completion round trip (default 90s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// WriterConfig holds settings for the generation workflow.
type WriterConfig struct {
	LLMConfig `yaml:",inline"`

	// Language is the default output language when the request does not
	// specify one.
	Language string `json:"language" yaml:"language"`

	// OutputDir is where compiled articles are written (e.g. "output/articles").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Archive controls whether completed runs are recorded in the
	// article archive.
	Archive bool `json:"archive" yaml:"archive"`
}

// ArchiveConfig holds settings for the article history database.
type ArchiveConfig struct {
	// Dir is the base directory holding the archive database and exports.
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of history rows returned
	// (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// LoggingConfig holds settings for structured logging.
type LoggingConfig struct {
	// Level is the minimum level: debug, info, warn, or error (default info).
	Level string `json:"level" yaml:"level"`

	// Format selects "console" or "json" output (default console).
	Format string `json:"format" yaml:"format"`
}
