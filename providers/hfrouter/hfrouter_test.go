// SPDX-License-Identifier: Apache-2.0

package hfrouter

import (
	"testing"

	"github.com/sunnydevs-club/parley/pkg/llm"
)

func TestProviderImplementsInterface(t *testing.T) {
	var _ llm.Provider = (*Provider)(nil)
}

func TestNewProvider(t *testing.T) {
	p := New("test-token")
	if p == nil {
		t.Fatal("expected non-nil provider")
	}
}

func TestWithModel(t *testing.T) {
	p := New("test-token", WithModel("zai-org/GLM-4.5"))
	if p.model != "zai-org/GLM-4.5" {
		t.Errorf("expected model zai-org/GLM-4.5, got %s", p.model)
	}
}

func TestConvertMessageRoles(t *testing.T) {
	system := convertMessage(llm.Message{Role: llm.RoleSystem, Content: "persona"})
	if system.OfSystem == nil {
		t.Errorf("system role should map to a system message")
	}

	assistant := convertMessage(llm.Message{Role: llm.RoleAssistant, Content: "reply"})
	if assistant.OfAssistant == nil {
		t.Errorf("assistant role should map to an assistant message")
	}

	user := convertMessage(llm.Message{Role: llm.RoleUser, Content: "question"})
	if user.OfUser == nil {
		t.Errorf("user role should map to a user message")
	}
}
