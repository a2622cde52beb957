// SPDX-License-Identifier: Apache-2.0

package llm

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/sunnydevs-club/parley/pkg/errors"
	"github.com/sunnydevs-club/parley/pkg/resilience"
)

func TestDispatcherGenerate(t *testing.T) {
	var captured ChatRequest
	mock := &MockProvider{
		ChatFunc: func(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
			captured = req
			return &ChatResponse{Content: "a measured reply"}, nil
		},
	}
	d := NewDispatcher(map[ProviderKind]Provider{KindGemini: mock}, 0.8)

	history := []Message{
		{Role: RoleUser, Content: "opening question"},
		{Role: RoleAssistant, Content: "previous answer"},
	}
	text, err := d.Generate(context.Background(), "gemini-2.5-flash", "persona prompt", history, "follow-up")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if text != "a measured reply" {
		t.Errorf("unexpected reply %q", text)
	}

	if captured.Model != "gemini-2.5-flash" {
		t.Errorf("model not forwarded, got %q", captured.Model)
	}
	if captured.Temperature != 0.8 {
		t.Errorf("temperature not forwarded, got %v", captured.Temperature)
	}
	if len(captured.Messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(captured.Messages))
	}
	if captured.Messages[0].Role != RoleSystem || captured.Messages[0].Content != "persona prompt" {
		t.Errorf("persona prompt should lead as a system message, got %+v", captured.Messages[0])
	}
	last := captured.Messages[len(captured.Messages)-1]
	if last.Role != RoleUser || last.Content != "follow-up" {
		t.Errorf("user prompt should be the final user turn, got %+v", last)
	}
}

func TestDispatcherUnconfiguredModel(t *testing.T) {
	d := NewDispatcher(map[ProviderKind]Provider{}, 0)
	_, err := d.Generate(context.Background(), "unknown-model", "", nil, "hi")
	if errors.CodeOf(err) != errors.CodeModelNotConfigured {
		t.Errorf("expected MODEL_NOT_CONFIGURED, got %v", err)
	}
}

func TestDispatcherMissingProvider(t *testing.T) {
	d := NewDispatcher(map[ProviderKind]Provider{}, 0)
	_, err := d.Generate(context.Background(), "zai-org/GLM-4.5", "", nil, "hi")
	if errors.CodeOf(err) != errors.CodeCredentialsMissing {
		t.Errorf("expected CREDENTIALS_MISSING, got %v", err)
	}
}

func TestDispatcherWrapsProviderError(t *testing.T) {
	cause := stderrors.New("upstream 503")
	d := NewDispatcher(map[ProviderKind]Provider{
		KindHFServerless: &MockProvider{Err: cause},
	}, 0)
	_, err := d.Generate(context.Background(), "zai-org/GLM-4.5", "", nil, "hi")
	if errors.CodeOf(err) != errors.CodeLLMError {
		t.Errorf("expected LLM_ERROR, got %v", err)
	}
	if !stderrors.Is(err, cause) {
		t.Errorf("cause should stay in the chain")
	}
}

func TestDispatcherRetriesTransientFailures(t *testing.T) {
	calls := 0
	mock := &MockProvider{
		ChatFunc: func(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
			calls++
			if calls < 3 {
				return nil, stderrors.New("upstream 503")
			}
			return &ChatResponse{Content: "recovered"}, nil
		},
	}
	d := NewDispatcher(map[ProviderKind]Provider{KindGemini: mock}, 0,
		WithRetry(resilience.DefaultRetryConfig().WithInitialDelay(time.Millisecond)))

	text, err := d.Generate(context.Background(), "gemini-2.5-flash", "", nil, "hi")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if text != "recovered" {
		t.Errorf("unexpected reply %q", text)
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
}

func TestScriptedMockProvider(t *testing.T) {
	s := NewScriptedMockProvider("first", "second")
	for i, want := range []string{"first", "second", "second"} {
		resp, err := s.Chat(context.Background(), ChatRequest{})
		if err != nil {
			t.Fatalf("call %d failed: %v", i, err)
		}
		if resp.Content != want {
			t.Errorf("call %d = %q, want %q", i, resp.Content, want)
		}
	}
	if s.CallCount != 3 {
		t.Errorf("expected 3 calls recorded, got %d", s.CallCount)
	}
}
