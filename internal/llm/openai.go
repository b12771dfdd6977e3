// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"errors"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/docmaster/autowriter/pkg/types"
)

const (
	defaultMaxRetries = 3
	defaultTimeout    = 90 * time.Second
)

// OpenAIClient implements Client using the official openai-go SDK
// (chat completions). It works against any OpenAI-compatible endpoint
// via LLMConfig.BaseURL.
type OpenAIClient struct {
	model  string
	client openai.Client
}

// NewOpenAIClient validates cfg and builds a client. Missing key or
// model is a configuration error, reported up front rather than on the
// first call.
func NewOpenAIClient(cfg types.LLMConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key missing; provide llm.api_key or .secrets/openai-api-key")
	}
	if cfg.Model == "" {
		return nil, errors.New("llm model is required")
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(maxRetries),
		option.WithRequestTimeout(timeout),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIClient{model: cfg.Model, client: openai.NewClient(opts...)}, nil
}

// Complete performs one chat-completion round trip.
func (c *OpenAIClient) Complete(ctx context.Context, req Request) (string, error) {
	var msgs []openai.ChatCompletionMessageParamUnion
	if req.System != "" {
		msgs = append(msgs, openai.SystemMessage(req.System))
	}
	if req.User != "" {
		msgs = append(msgs, openai.UserMessage(req.User))
	}
	if len(msgs) == 0 {
		return "", errors.New("llm: empty request")
	}

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    msgs,
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
