// SPDX-License-Identifier: Apache-2.0

package gemini

import (
	"testing"

	"github.com/sunnydevs-club/parley/pkg/llm"
)

func TestProviderImplementsInterface(t *testing.T) {
	var _ llm.Provider = (*Provider)(nil)
}

func TestWithModel(t *testing.T) {
	opt := WithModel("gemini-2.5-pro")
	p := &Provider{model: "gemini-2.5-flash"}
	opt(p)
	if p.model != "gemini-2.5-pro" {
		t.Errorf("expected model gemini-2.5-pro, got %s", p.model)
	}
}

func TestConvertMessages(t *testing.T) {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: "You are a calm lecturer"},
		{Role: llm.RoleUser, Content: "Explain recursion"},
		{Role: llm.RoleAssistant, Content: "Let us look to this case"},
	}

	contents, systemInstruction := convertMessages(messages)

	if systemInstruction != "You are a calm lecturer" {
		t.Errorf("system instruction not extracted, got %q", systemInstruction)
	}

	// System is lifted out, so two contents remain.
	if len(contents) != 2 {
		t.Fatalf("expected 2 contents, got %d", len(contents))
	}
	if contents[0].Role != "user" {
		t.Errorf("expected first content role user, got %s", contents[0].Role)
	}
	if contents[1].Role != "model" {
		t.Errorf("assistant turn should map to the model role, got %s", contents[1].Role)
	}
}

func TestConvertMessagesNoSystem(t *testing.T) {
	contents, systemInstruction := convertMessages([]llm.Message{
		{Role: llm.RoleUser, Content: "hi"},
	})
	if systemInstruction != "" {
		t.Errorf("expected empty system instruction, got %q", systemInstruction)
	}
	if len(contents) != 1 {
		t.Errorf("expected 1 content, got %d", len(contents))
	}
}
