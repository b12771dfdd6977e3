// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package intent

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/docmaster/autowriter/internal/llm"
	"github.com/docmaster/autowriter/pkg/types"
)

// Defaults applied when the model's intent response cannot be parsed.
// The classifier fails open: silently refusing to write is worse than
// attempting generation.
const (
	defaultConfidence = 0.75
	defaultReason     = "model indicated the request needs document writing"
)

// rawIntent mirrors the expected response shape with pointer fields so a
// missing key is distinguishable from an explicit false/zero.
type rawIntent struct {
	ShouldWrite *bool    `json:"should_write"`
	Confidence  *float64 `json:"confidence"`
	Reason      string   `json:"reason"`
}

// Classify makes one gateway call and returns the write/no-write
// decision. Parse failures degrade to should_write=true with default
// confidence; gateway errors propagate to the caller as run-fatal.
func Classify(ctx context.Context, client llm.Client, log zerolog.Logger, request string) (types.IntentResult, error) {
	raw, err := client.Complete(ctx, llm.Request{User: buildIntentPrompt(request)})
	if err != nil {
		return types.IntentResult{}, err
	}

	result := types.IntentResult{
		ShouldWrite: true,
		Confidence:  defaultConfidence,
		Reason:      defaultReason,
	}

	var decoded rawIntent
	if DecodeJSONBlock(raw, &decoded) {
		if decoded.ShouldWrite != nil {
			result.ShouldWrite = *decoded.ShouldWrite
		}
		if decoded.Confidence != nil {
			result.Confidence = clampFloat(*decoded.Confidence, 0, 1)
		}
		if decoded.Reason != "" {
			result.Reason = decoded.Reason
		}
	} else {
		log.Debug().Str("preview", preview(raw, 200)).Msg("intent response not parseable, failing open")
	}

	log.Info().
		Bool("should_write", result.ShouldWrite).
		Float64("confidence", result.Confidence).
		Msg("intent decision")

	return result, nil
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
