// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm abstracts the chat-completion gateway so the workflow and
// tests can supply alternative backends. Retry and timeout policy belong
// to the gateway implementation, not to callers.
package llm

import "context"

// Request is a single completion round trip. System may be empty for
// plain user prompts. Temperature and MaxTokens override the provider
// defaults when non-zero.
type Request struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// Client performs one blocking completion call and returns the raw text.
// Implementations handle their own transient-failure retries; errors that
// surface here are fatal to the calling run.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}
