// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package writer

import (
	"fmt"
	"strings"

	"github.com/docmaster/autowriter/pkg/types"
)

// previewLength bounds how much of each completed section the next
// drafting prompt carries. Titles plus short previews give the model
// continuity without unbounded prompt growth.
const previewLength = 120

func buildSectionPrompt(params types.WriterParameters, entry types.OutlineEntry, previous []types.Section) string {
	keywords := strings.Join(params.Keywords, ", ")
	if keywords == "" {
		keywords = "none"
	}
	previews := sectionPreviews(previous)
	if previews == "" {
		previews = "none"
	}

	return fmt.Sprintf("You are a professional writer working in %s.\n", params.Language) +
		fmt.Sprintf("Topic: %s\n", params.Topic) +
		fmt.Sprintf("Target audience: %s\n", params.Audience) +
		fmt.Sprintf("Tone: %s\n", params.Tone) +
		fmt.Sprintf("Required keywords: %s\n", keywords) +
		fmt.Sprintf("Previously drafted sections (for continuity):\n%s\n", previews) +
		fmt.Sprintf("Write the section titled %q. Stay close to its summary: %s. Aim for 250-400 words.\n", entry.Title, entry.Summary) +
		"Use clear structure and natural paragraphs; keep the language fluent."
}

// sectionPreviews renders a numbered digest of completed sections:
// the title plus the first previewLength characters of the content.
func sectionPreviews(sections []types.Section) string {
	lines := make([]string, 0, len(sections))
	for i, section := range sections {
		lines = append(lines, fmt.Sprintf("%d. %s: %s", i+1, section.Title, truncateRunes(section.Content, previewLength)))
	}
	return strings.Join(lines, "\n")
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
