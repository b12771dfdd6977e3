// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/docmaster/autowriter/pkg/types"
)

var (
	tagPattern   = regexp.MustCompile(`<[^>]+>`)
	blockPattern = regexp.MustCompile(`(?is)<p[^>]*>.*?</p>|<h[1-6][^>]*>.*?</h[1-6]>|<li[^>]*>.*?</li>`)
)

// StripTags removes markup tags and surrounding whitespace, leaving
// the plain text of a fragment.
func StripTags(content string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(content, ""))
}

// SplitHTML breaks a document into paragraph entities, one per block
// element (p, h1-h6, li). Loose text between recognized blocks is
// wrapped in a p element; other markup between blocks is discarded.
// Content that yields no blocks at all becomes a single paragraph so
// the store never starts empty for non-empty input.
func SplitHTML(html string) []types.Paragraph {
	var paras []types.Paragraph

	appendPara := func(content, text string) {
		paras = append(paras, types.Paragraph{
			ID:      fmt.Sprintf("para-%d", len(paras)),
			Index:   len(paras),
			Content: content,
			Text:    text,
		})
	}

	last := 0
	for _, loc := range blockPattern.FindAllStringIndex(html, -1) {
		if gap := strings.TrimSpace(html[last:loc[0]]); gap != "" && !strings.HasPrefix(gap, "<") {
			appendPara("<p>"+gap+"</p>", gap)
		}
		block := html[loc[0]:loc[1]]
		if text := StripTags(block); text != "" {
			appendPara(block, text)
		}
		last = loc[1]
	}
	if gap := strings.TrimSpace(html[last:]); gap != "" && !strings.HasPrefix(gap, "<") {
		appendPara("<p>"+gap+"</p>", gap)
	}

	if len(paras) == 0 {
		if text := StripTags(html); text != "" {
			appendPara(html, text)
		}
	}

	return paras
}

// JoinHTML renders the paragraph sequence back into a document,
// ordered by index.
func JoinHTML(paras []types.Paragraph) string {
	ordered := make([]types.Paragraph, len(paras))
	copy(ordered, paras)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Index < ordered[j].Index })

	parts := make([]string, len(ordered))
	for i, p := range ordered {
		parts[i] = p.Content
	}
	return strings.Join(parts, "\n")
}

// FromMarkdown converts a markdown document to HTML and splits it
// into paragraphs.
func FromMarkdown(markdown string) ([]types.Paragraph, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}
	return SplitHTML(buf.String()), nil
}
