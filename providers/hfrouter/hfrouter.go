// SPDX-License-Identifier: Apache-2.0

// Package hfrouter provides a Parley provider for the Hugging Face serverless
// inference router, which speaks the OpenAI chat-completions protocol.
package hfrouter

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/sunnydevs-club/parley/pkg/llm"
)

// DefaultBaseURL is the chat-completions endpoint of the inference router.
const DefaultBaseURL = "https://router.huggingface.co/v1"

// Provider implements llm.Provider for the inference router.
type Provider struct {
	client openai.Client
	model  string
}

// Option configures the Provider.
type Option func(*config)

type config struct {
	baseURL string
	model   string
}

// WithBaseURL sets a custom router endpoint.
func WithBaseURL(url string) Option {
	return func(c *config) {
		c.baseURL = url
	}
}

// WithModel sets the default model.
func WithModel(model string) Option {
	return func(c *config) {
		c.model = model
	}
}

// New creates a new inference-router provider with the given API token.
func New(apiKey string, opts ...Option) *Provider {
	cfg := config{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Provider{
		client: openai.NewClient(
			option.WithBaseURL(cfg.baseURL),
			option.WithAPIKey(apiKey),
		),
		model: cfg.model,
	}
}

// Chat implements llm.Provider.
func (p *Provider) Chat(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	model := req.Model
	if model == "" {
		model = p.model
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, convertMessage(msg))
	}

	params := openai.ChatCompletionNewParams{
		Model:    model,
		Messages: messages,
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("inference router chat completion failed: %w", err)
	}

	return convertResponse(completion), nil
}

// convertMessage converts a Parley message to OpenAI format. The internal
// assistant role maps to the protocol's "assistant".
func convertMessage(msg llm.Message) openai.ChatCompletionMessageParamUnion {
	switch msg.Role {
	case llm.RoleSystem:
		return openai.SystemMessage(msg.Content)
	case llm.RoleAssistant:
		return openai.AssistantMessage(msg.Content)
	default:
		return openai.UserMessage(msg.Content)
	}
}

// convertResponse converts an OpenAI completion to Parley format.
func convertResponse(completion *openai.ChatCompletion) *llm.ChatResponse {
	resp := &llm.ChatResponse{
		Usage: llm.Usage{
			PromptTokens:     int(completion.Usage.PromptTokens),
			CompletionTokens: int(completion.Usage.CompletionTokens),
			TotalTokens:      int(completion.Usage.TotalTokens),
		},
	}
	if len(completion.Choices) > 0 {
		resp.Content = completion.Choices[0].Message.Content
	}
	return resp
}

// Ensure Provider implements llm.Provider.
var _ llm.Provider = (*Provider)(nil)
