// SPDX-License-Identifier: Apache-2.0

// Package tts converts persona replies into speech with a locally-installed
// voice-cloning model, and prepares LLM output text for synthesis.
package tts

import "context"

// SynthesizeOpts controls one synthesis call.
type SynthesizeOpts struct {
	// SpeakerID identifies the persona, used for the debug waveform name.
	SpeakerID string

	// Language is the ISO-639-1 code selecting the synthesis language.
	Language string

	// Speed is the speaking-rate multiplier; zero means normal pace.
	Speed float64

	// VoiceDir holds the reference voice clips (*.wav) to clone from.
	VoiceDir string
}

// Result holds the output of one synthesis call.
type Result struct {
	// WAV is the synthesized audio as a complete WAV file.
	WAV []byte

	// SampleRate is the audio sample rate in Hz.
	SampleRate int
}

// Engine converts text to audio.
type Engine interface {
	Synthesize(ctx context.Context, text string, opts SynthesizeOpts) (*Result, error)
}
