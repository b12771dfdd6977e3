// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// IntentResult is the writing-intent decision for one user request.
type IntentResult struct {
	// ShouldWrite reports whether the request calls for document generation.
	ShouldWrite bool `json:"should_write" yaml:"should_write"`

	// Confidence is the model's self-reported confidence in [0, 1].
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// Reason is a short human-readable justification.
	Reason string `json:"reason" yaml:"reason"`
}

// WriterParameters holds the normalized generation parameters extracted
// from a free-form request. All numeric fields are clamped at construction
// by intent.Normalize and never mutated afterwards.
type WriterParameters struct {
	// Title is the working title of the document.
	Title string `json:"title" yaml:"title"`

	// Topic is the subject the document covers.
	Topic string `json:"topic" yaml:"topic"`

	// Language is the lowercase output language code (e.g. "en", "zh").
	Language string `json:"language" yaml:"language"`

	// Tone describes the requested writing voice.
	Tone string `json:"tone" yaml:"tone"`

	// Audience identifies the target readership.
	Audience string `json:"audience" yaml:"audience"`

	// ParagraphCount is the number of sections to draft, clamped to [3, 12].
	ParagraphCount int `json:"paragraph_count" yaml:"paragraph_count"`

	// Temperature is the sampling temperature for drafting, clamped to [0, 1.5].
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// MaxTokens is the per-call completion budget, clamped to [600, 4000].
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// Keywords lists terms the document must work in. Order is preserved;
	// empty entries are filtered out during normalization.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// Format names the document genre (e.g. "article", "whitepaper").
	Format string `json:"format" yaml:"format"`
}

// OutlineEntry is one planned section: a heading plus a one-line summary.
// The engine produces exactly ParagraphCount entries per run, padding or
// truncating whatever the model returned.
type OutlineEntry struct {
	Title   string `json:"title" yaml:"title"`
	Summary string `json:"summary" yaml:"summary"`
}

// Section is a drafted block of text corresponding to one outline entry.
// Sections are appended in outline order and immutable once appended.
type Section struct {
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
}

// Article is the compiled output of a completed workflow run.
type Article struct {
	Title    string `json:"title" yaml:"title"`
	Markdown string `json:"markdown" yaml:"markdown"`
	HTML     string `json:"html" yaml:"html"`
}
