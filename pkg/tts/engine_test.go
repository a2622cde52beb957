// SPDX-License-Identifier: Apache-2.0

package tts

import (
	"bytes"
	"context"
	"testing"

	"github.com/sunnydevs-club/parley/pkg/errors"
)

func TestMockEngine(t *testing.T) {
	engine := &MockEngine{}
	result, err := engine.Synthesize(context.Background(), "hello there", SynthesizeOpts{
		SpeakerID: "HONG",
		Language:  "en",
		Speed:     0.8,
	})
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if len(result.WAV) == 0 {
		t.Errorf("expected non-empty waveform")
	}
	if !bytes.HasPrefix(result.WAV, []byte("RIFF")) {
		t.Errorf("waveform should be a WAV container")
	}
	if result.SampleRate != 24000 {
		t.Errorf("expected default sample rate 24000, got %d", result.SampleRate)
	}
	if len(engine.Calls) != 1 || engine.Calls[0] != "hello there" {
		t.Errorf("call not recorded: %+v", engine.Calls)
	}
	if engine.LastOpts.Speed != 0.8 {
		t.Errorf("opts not recorded: %+v", engine.LastOpts)
	}
}

func TestNewXTTSMissingRunner(t *testing.T) {
	_, err := NewXTTS("definitely-not-a-real-binary-name", t.TempDir(), "", 24000)
	if errors.CodeOf(err) != errors.CodeTTSError {
		t.Errorf("expected TTS_ERROR for missing runner, got %v", err)
	}
}

func TestXTTSRejectsMissingClips(t *testing.T) {
	// Exercise the reference-clip check without a real runner.
	engine := &XTTS{runner: "/bin/true", modelDir: t.TempDir(), sampleRate: 24000}
	_, err := engine.Synthesize(context.Background(), "text", SynthesizeOpts{
		VoiceDir: t.TempDir(),
	})
	if errors.CodeOf(err) != errors.CodeInvalidInput {
		t.Errorf("expected INVALID_INPUT for empty voice dir, got %v", err)
	}
}

func TestXTTSRejectsEmptyText(t *testing.T) {
	engine := &XTTS{runner: "/bin/true", modelDir: t.TempDir(), sampleRate: 24000}
	_, err := engine.Synthesize(context.Background(), "", SynthesizeOpts{})
	if errors.CodeOf(err) != errors.CodeInvalidInput {
		t.Errorf("expected INVALID_INPUT for empty text, got %v", err)
	}
}
