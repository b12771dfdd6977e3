// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package intent

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/docmaster/autowriter/internal/llm"
	"github.com/docmaster/autowriter/pkg/types"
)

// Bounds and defaults for normalized writer parameters.
const (
	minParagraphs     = 3
	maxParagraphs     = 12
	defaultParagraphs = 5

	minTemperature     = 0.0
	maxTemperature     = 1.5
	defaultTemperature = 0.7

	minTokens     = 600
	maxTokens     = 4000
	defaultTokens = 1200

	defaultTitle    = "AI Generated Article"
	defaultLanguage = "en"
	defaultTone     = "professional"
	defaultAudience = "general"
	defaultFormat   = "article"
)

// rawParameters accepts whatever shapes the model produces: counts may
// arrive as numbers or numeric strings, keywords as a list or a bare
// string. Anything uncoercible falls back to its default.
type rawParameters struct {
	Title          string `json:"title"`
	Topic          string `json:"topic"`
	Language       string `json:"language"`
	Tone           string `json:"tone"`
	Audience       string `json:"audience"`
	Format         string `json:"format"`
	ParagraphCount any    `json:"paragraph_count"`
	Segments       any    `json:"segments"`
	Temperature    any    `json:"temperature"`
	MaxTokens      any    `json:"max_tokens"`
	Keywords       any    `json:"keywords"`
}

// ExtractParameters makes one gateway call and returns normalized writer
// parameters. This function never fails on malformed model output; only
// a gateway error is returned.
func ExtractParameters(ctx context.Context, client llm.Client, log zerolog.Logger, request string) (types.WriterParameters, error) {
	raw, err := client.Complete(ctx, llm.Request{User: buildParameterPrompt(request)})
	if err != nil {
		return types.WriterParameters{}, err
	}

	var decoded rawParameters
	DecodeJSONBlock(raw, &decoded)

	params := normalizeParameters(decoded)

	log.Info().
		Str("title", params.Title).
		Int("paragraph_count", params.ParagraphCount).
		Str("tone", params.Tone).
		Float64("temperature", params.Temperature).
		Msg("writer parameters extracted")

	return params, nil
}

// normalizeParameters applies the defaulting and clamping rules that
// every parameter record must satisfy, regardless of what the model
// returned. The result is read-only for the rest of the run.
func normalizeParameters(raw rawParameters) types.WriterParameters {
	count := toInt(raw.ParagraphCount, 0)
	if count == 0 {
		count = toInt(raw.Segments, defaultParagraphs)
	}
	if count == 0 {
		count = defaultParagraphs
	}

	params := types.WriterParameters{
		Title:          firstNonEmpty(raw.Title, raw.Topic, defaultTitle),
		Topic:          firstNonEmpty(raw.Topic, raw.Title, defaultTitle),
		Language:       strings.ToLower(firstNonEmpty(raw.Language, defaultLanguage)),
		Tone:           firstNonEmpty(raw.Tone, defaultTone),
		Audience:       firstNonEmpty(raw.Audience, defaultAudience),
		Format:         firstNonEmpty(raw.Format, defaultFormat),
		ParagraphCount: clampInt(count, minParagraphs, maxParagraphs),
		Temperature:    clampFloat(toFloat(raw.Temperature, defaultTemperature), minTemperature, maxTemperature),
		MaxTokens:      clampInt(toInt(raw.MaxTokens, defaultTokens), minTokens, maxTokens),
		Keywords:       toKeywords(raw.Keywords),
	}

	return params
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// toInt coerces JSON numbers and numeric strings; anything else yields
// the fallback.
func toInt(v any, fallback int) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return parsed
		}
	}
	return fallback
}

func toFloat(v any, fallback float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return parsed
		}
	}
	return fallback
}

// toKeywords coerces the keywords field into an ordered list of trimmed,
// non-empty strings. Any non-list input becomes the empty list.
func toKeywords(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return []string{}
	}
	keywords := make([]string, 0, len(list))
	for _, item := range list {
		var s string
		switch v := item.(type) {
		case string:
			s = v
		case float64:
			s = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			continue
		}
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return keywords
}
