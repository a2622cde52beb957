// SPDX-License-Identifier: Apache-2.0

// Package registry owns the persona agents: their identifiers, model
// assignments and the derived locations of their prompt descriptors and
// reference voice clips.
package registry

import (
	"path/filepath"
	"strings"
)

// Agent is one persona entry. The ID is immutable once created.
type Agent struct {
	ID    string `json:"agent_id"`
	Model string `json:"model_name"`
}

// PromptPath returns the agent's YAML persona descriptor under dataDir.
func (a Agent) PromptPath(dataDir string) string {
	return filepath.Join(dataDir, "sys_prompts", strings.ToLower(a.ID)+".yaml")
}

// VoiceDir returns the directory of the agent's reference voice clips.
func (a Agent) VoiceDir(dataDir string) string {
	return filepath.Join(dataDir, "speaker_wavs", strings.ToUpper(a.ID))
}
