// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package writer

import (
	"fmt"
	"strings"

	"github.com/docmaster/autowriter/pkg/types"
)

// BuildMarkdown renders completed sections into the final Markdown
// document: one "##" heading per section, sections in draft order.
// The rendering is deterministic, so compiling the same sequence twice
// yields byte-identical output.
func BuildMarkdown(sections []types.Section) string {
	parts := make([]string, 0, len(sections))
	for _, section := range sections {
		parts = append(parts, fmt.Sprintf("## %s\n\n%s\n", section.Title, section.Content))
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// BuildHTML renders sections into the linear HTML form used for live
// previews and the final artifact: an <h2> per section followed by one
// <p> per non-empty content line.
func BuildHTML(sections []types.Section) string {
	var b strings.Builder
	for _, section := range sections {
		fmt.Fprintf(&b, "<h2>%s</h2>", section.Title)
		for _, line := range strings.Split(section.Content, "\n") {
			if clean := strings.TrimSpace(line); clean != "" {
				fmt.Fprintf(&b, "<p>%s</p>", clean)
			}
		}
	}
	return b.String()
}
