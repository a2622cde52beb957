// SPDX-License-Identifier: Apache-2.0

package tts

import (
	"regexp"
	"strings"
)

var (
	thinkBlockRE = regexp.MustCompile(`(?s)<think>.*?</think>`)
	whitespaceRE = regexp.MustCompile(`\s+`)
)

const trailingArtifact = "Thank you for reading."

// Clean prepares LLM output for synthesis: it strips any <think> block,
// collapses runs of whitespace and drops a known trailing artifact. Clean is
// pure and idempotent.
func Clean(text string) string {
	text = thinkBlockRE.ReplaceAllString(text, "")
	text = strings.TrimSpace(whitespaceRE.ReplaceAllString(text, " "))
	text = strings.TrimSuffix(text, trailingArtifact)
	return strings.TrimSpace(text)
}
