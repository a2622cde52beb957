// SPDX-License-Identifier: Apache-2.0

package llm

import (
	"context"

	"github.com/sunnydevs-club/parley/pkg/errors"
	"github.com/sunnydevs-club/parley/pkg/resilience"
)

// Dispatcher selects a provider branch by model name and issues one
// synchronous chat call. Providers are injected at wiring time; a branch
// without a provider reports missing credentials instead of dialing.
type Dispatcher struct {
	providers   map[ProviderKind]Provider
	temperature float64
	retry       *resilience.RetryConfig
}

// DispatcherOption customizes a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithRetry retries failed provider calls with the given policy. Without
// this option every call is a single attempt.
func WithRetry(rc resilience.RetryConfig) DispatcherOption {
	return func(d *Dispatcher) { d.retry = &rc }
}

// NewDispatcher creates a Dispatcher over the given providers. A nil entry
// (or an absent key) marks that branch as unavailable.
func NewDispatcher(providers map[ProviderKind]Provider, temperature float64, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{providers: providers, temperature: temperature}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Generate routes the request by model name, prepends the persona prompt as
// a system message, appends the user prompt as the final user turn and
// returns the model's reply.
func (d *Dispatcher) Generate(ctx context.Context, model, personaPrompt string, history []Message, userPrompt string) (string, error) {
	kind, err := Route(model)
	if err != nil {
		return "", err
	}

	provider := d.providers[kind]
	if provider == nil {
		return "", errors.Newf(errors.CodeCredentialsMissing,
			"no credentials configured for provider %q", kind)
	}

	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: RoleSystem, Content: personaPrompt})
	messages = append(messages, history...)
	messages = append(messages, Message{Role: RoleUser, Content: userPrompt})

	resp, err := d.chat(ctx, provider, ChatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: d.temperature,
	})
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			return "", e
		}
		return "", errors.New(errors.CodeLLMError, "chat call failed", err)
	}
	return resp.Content, nil
}

func (d *Dispatcher) chat(ctx context.Context, provider Provider, req ChatRequest) (*ChatResponse, error) {
	if d.retry == nil {
		return provider.Chat(ctx, req)
	}
	var resp *ChatResponse
	err := d.retry.Do(ctx, func() error {
		var chatErr error
		resp, chatErr = provider.Chat(ctx, req)
		return chatErr
	})
	return resp, err
}
