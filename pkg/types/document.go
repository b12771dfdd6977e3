// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Paragraph is an addressable unit of an editable document. The ID is
// assigned once at creation and never renumbered by edits; Index is the
// paragraph's current ordinal position and is rewritten after every
// structural mutation so that indexes stay contiguous from 0.
type Paragraph struct {
	// ID is the stable identifier (e.g. "para-3").
	ID string `json:"id" yaml:"id"`

	// Index is the current 0-based position in the document.
	Index int `json:"index" yaml:"index"`

	// Content is the HTML payload of the paragraph.
	Content string `json:"content" yaml:"content"`

	// Text is the tag-stripped plain text derived from Content.
	Text string `json:"text" yaml:"text"`
}
