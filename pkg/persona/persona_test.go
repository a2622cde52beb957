// SPDX-License-Identifier: Apache-2.0

package persona

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sunnydevs-club/parley/pkg/errors"
)

func writeDescriptor(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agent.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write descriptor: %v", err)
	}
	return path
}

const sampleDescriptor = `
persona:
  name: "Prof. Ashish Seth"
  archetype: "Calm, wise, methodical academic lecturer."
  signature_phrases:
    - "Yes, yes, yes."
    - "Do you understand, or I need to repeat?"

core_mannerisms:
  - "Always speak slowly, with deliberate pauses."
  - "Maintain calm body language and gentle tone."

style:
  tone: "Calm, wise, thoughtful."
  structure:
    intro: "Begin with a short intuitive foundation."
    outro: "Conclude with a concise summary."

memory_policy: |
  Treat past messages as academic continuity only.
`

func TestRenderSections(t *testing.T) {
	path := writeDescriptor(t, sampleDescriptor)
	prompt, err := Render(path)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	for _, want := range []string{
		"### SYSTEM INSTRUCTION FILE START ###",
		"### SYSTEM INSTRUCTION FILE END ###",
		"<PERSONA>",
		"Name: Prof. Ashish Seth",
		"Signature Phrases: Yes, yes, yes.; Do you understand, or I need to repeat?",
		"<CORE_MANNERISMS>",
		"- Always speak slowly, with deliberate pauses.",
		"<STYLE>",
		"Tone: Calm, wise, thoughtful.",
		"  intro: Begin with a short intuitive foundation.",
		"<MEMORY_POLICY>",
		"Treat past messages as academic continuity only.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("rendered prompt missing %q", want)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	path := writeDescriptor(t, sampleDescriptor)
	first, err := Render(path)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	second, err := Render(path)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if first != second {
		t.Errorf("rendering the same descriptor twice produced different prompts")
	}
}

func TestRenderSkipsEmptyValues(t *testing.T) {
	path := writeDescriptor(t, "persona:\n  name: \"A\"\n  empty: \"\"\nabsent:\nblank_list: []\n")
	prompt, err := Render(path)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if strings.Contains(prompt, "Empty") {
		t.Errorf("empty field should not appear in output")
	}
	if strings.Contains(prompt, "<ABSENT>") || strings.Contains(prompt, "<BLANK_LIST>") {
		t.Errorf("absent fields should not appear in output:\n%s", prompt)
	}
}

func TestRenderEmptyDescriptor(t *testing.T) {
	path := writeDescriptor(t, "")
	prompt, err := Render(path)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(prompt, "No configuration provided.") {
		t.Errorf("empty descriptor should render the placeholder prompt, got:\n%s", prompt)
	}
}

func TestRenderMissingFile(t *testing.T) {
	_, err := Render(filepath.Join(t.TempDir(), "nope.yaml"))
	if errors.CodeOf(err) != errors.CodeNotFound {
		t.Errorf("expected NOT_FOUND for missing descriptor, got %v", err)
	}
}

func TestRenderMalformedYAML(t *testing.T) {
	path := writeDescriptor(t, "persona: [unclosed\n")
	_, err := Render(path)
	if errors.CodeOf(err) != errors.CodeInvalidInput {
		t.Errorf("expected INVALID_INPUT for malformed descriptor, got %v", err)
	}
}

func TestTagName(t *testing.T) {
	cases := map[string]string{
		"core mannerisms": "CORE_MANNERISMS",
		"speech-patterns": "SPEECH_PATTERNS",
		"goals":           "GOALS",
	}
	for in, want := range cases {
		if got := tagName(in); got != want {
			t.Errorf("tagName(%q) = %q, want %q", in, got, want)
		}
	}
}
