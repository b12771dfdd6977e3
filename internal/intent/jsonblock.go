// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package intent turns a free-form user request into a write/no-write
// decision and a normalized parameter record. Model output is parsed
// permissively: malformed responses degrade to safe defaults, never to
// errors.
package intent

import (
	"encoding/json"
	"strings"
)

// ExtractJSONBlock returns the JSON payload inside a raw model response.
// It tolerates fenced blocks (```json ... ```), generic code fences, and
// plain JSON text.
func ExtractJSONBlock(text string) string {
	stripped := strings.TrimSpace(text)
	if stripped == "" {
		return ""
	}

	if idx := strings.Index(stripped, "```json"); idx >= 0 {
		start := idx + len("```json")
		end := strings.Index(stripped[start:], "```")
		if end >= 0 {
			return strings.TrimSpace(stripped[start : start+end])
		}
		return strings.TrimSpace(stripped[start:])
	}

	if strings.HasPrefix(stripped, "```") {
		start := len("```")
		end := strings.Index(stripped[start:], "```")
		if end >= 0 {
			return strings.TrimSpace(stripped[start : start+end])
		}
		return strings.TrimSpace(stripped[start:])
	}

	return stripped
}

// DecodeJSONBlock unmarshals the payload of a model response into v.
// It reports false on empty or unparseable input so callers can fall
// back to defaults instead of failing the run.
func DecodeJSONBlock(text string, v any) bool {
	payload := ExtractJSONBlock(text)
	if payload == "" {
		return false
	}
	return json.Unmarshal([]byte(payload), v) == nil
}
