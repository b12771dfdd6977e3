// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/docmaster/autowriter/internal/llm"
)

// scriptedClient returns canned responses in order, or a forced error.
type scriptedClient struct {
	responses []string
	err       error
	calls     int
	requests  []llm.Request
}

func (c *scriptedClient) Complete(_ context.Context, req llm.Request) (string, error) {
	c.calls++
	c.requests = append(c.requests, req)
	if c.err != nil {
		return "", c.err
	}
	if len(c.responses) == 0 {
		return "", nil
	}
	resp := c.responses[0]
	c.responses = c.responses[1:]
	return resp, nil
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name           string
		response       string
		wantWrite      bool
		wantConfidence float64
		wantReason     string
	}{
		{
			name:           "explicit refusal",
			response:       `{"should_write": false, "confidence": 0.9, "reason": "just a question"}`,
			wantWrite:      false,
			wantConfidence: 0.9,
			wantReason:     "just a question",
		},
		{
			name:           "fenced response",
			response:       "```json\n{\"should_write\": true, \"confidence\": 0.8, \"reason\": \"report requested\"}\n```",
			wantWrite:      true,
			wantConfidence: 0.8,
			wantReason:     "report requested",
		},
		{
			name:           "unparseable fails open",
			response:       "I think you probably want an article here.",
			wantWrite:      true,
			wantConfidence: defaultConfidence,
			wantReason:     defaultReason,
		},
		{
			name:           "empty response fails open",
			response:       "",
			wantWrite:      true,
			wantConfidence: defaultConfidence,
			wantReason:     defaultReason,
		},
		{
			name:           "confidence clamped to unit interval",
			response:       `{"should_write": true, "confidence": 3.2, "reason": "sure"}`,
			wantWrite:      true,
			wantConfidence: 1.0,
			wantReason:     "sure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &scriptedClient{responses: []string{tt.response}}
			result, err := Classify(context.Background(), client, zerolog.Nop(), "write something")
			if err != nil {
				t.Fatalf("Classify returned error: %v", err)
			}
			if result.ShouldWrite != tt.wantWrite {
				t.Errorf("ShouldWrite = %v, want %v", result.ShouldWrite, tt.wantWrite)
			}
			if result.Confidence != tt.wantConfidence {
				t.Errorf("Confidence = %v, want %v", result.Confidence, tt.wantConfidence)
			}
			if result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
			if client.calls != 1 {
				t.Errorf("gateway called %d times, want 1", client.calls)
			}
		})
	}
}

func TestClassifyGatewayErrorPropagates(t *testing.T) {
	client := &scriptedClient{err: errors.New("upstream timeout")}
	_, err := Classify(context.Background(), client, zerolog.Nop(), "write something")
	if err == nil {
		t.Fatal("expected gateway error to propagate")
	}
}
