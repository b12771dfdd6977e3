// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package writer

import (
	"encoding/json"
	"fmt"

	"github.com/docmaster/autowriter/internal/intent"
	"github.com/docmaster/autowriter/pkg/types"
)

// outlineTemperature keeps structure planning conservative regardless of
// the requested drafting temperature.
const outlineTemperature = 0.4

func buildOutlinePrompt(request string, params types.WriterParameters) string {
	return "You are a senior structured-writing expert. Produce a section outline " +
		"for the requested document.\n" +
		fmt.Sprintf("User request: %s\n", request) +
		fmt.Sprintf("Section count: %d\n", params.ParagraphCount) +
		fmt.Sprintf("Tone: %s, target audience: %s\n", params.Tone, params.Audience) +
		"Output a JSON array where each element has this shape:\n" +
		"{\n" +
		"  \"title\": \"section heading\",\n" +
		"  \"summary\": \"one-line summary, 50 words max\"\n" +
		"}\n"
}

// decodeOutline turns a raw model response into exactly count entries.
// It accepts a bare array or an object wrapping an "outline" array,
// synthesizes a placeholder for every missing or malformed element, pads
// short results, and truncates long ones. It never fails.
func decodeOutline(raw string, count int, topic string) []types.OutlineEntry {
	var elements []json.RawMessage
	if !intent.DecodeJSONBlock(raw, &elements) {
		var wrapper struct {
			Outline []json.RawMessage `json:"outline"`
		}
		if intent.DecodeJSONBlock(raw, &wrapper) {
			elements = wrapper.Outline
		}
	}

	outline := make([]types.OutlineEntry, 0, count)
	for i, element := range elements {
		if i >= count {
			break
		}
		outline = append(outline, decodeOutlineEntry(element, i, topic))
	}

	for len(outline) < count {
		outline = append(outline, placeholderEntry(len(outline), topic))
	}

	return outline
}

// decodeOutlineEntry tolerates non-object elements and blank fields.
func decodeOutlineEntry(element json.RawMessage, i int, topic string) types.OutlineEntry {
	var entry types.OutlineEntry
	if err := json.Unmarshal(element, &entry); err != nil {
		return placeholderEntry(i, topic)
	}
	if entry.Title == "" {
		entry.Title = placeholderTitle(i)
	}
	if entry.Summary == "" {
		entry.Summary = topic
	}
	return entry
}

func placeholderEntry(i int, topic string) types.OutlineEntry {
	return types.OutlineEntry{Title: placeholderTitle(i), Summary: topic}
}

// placeholderTitle is 1-based: the first synthesized entry is "Section 1".
func placeholderTitle(i int) string {
	return fmt.Sprintf("Section %d", i+1)
}
