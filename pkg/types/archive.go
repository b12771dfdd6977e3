// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ArticleRecord is one archived generation run. Records are immutable
// once saved; the archive only appends and deletes.
type ArticleRecord struct {
	ID             string           `json:"id" yaml:"id"`
	CreatedAt      time.Time        `json:"created_at" yaml:"created_at"`
	Title          string           `json:"title" yaml:"title"`
	Topic          string           `json:"topic" yaml:"topic"`
	Language       string           `json:"language" yaml:"language"`
	ParagraphCount int              `json:"paragraph_count" yaml:"paragraph_count"`
	Request        string           `json:"request" yaml:"request"`
	Markdown       string           `json:"markdown" yaml:"markdown"`
	HTML           string           `json:"html" yaml:"html"`
	Parameters     WriterParameters `json:"parameters" yaml:"parameters"`
}
