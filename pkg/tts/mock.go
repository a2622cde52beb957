// SPDX-License-Identifier: Apache-2.0

package tts

import (
	"context"
	"sync"
)

// MockEngine is a testing and fixture-mode implementation of Engine. It
// returns a fixed waveform and records every call.
type MockEngine struct {
	mu sync.Mutex

	// WAV is the canned waveform to return; a tiny silent clip by default.
	WAV []byte
	// SampleRate defaults to 24000.
	SampleRate int
	// Err, when set, fails every call.
	Err error

	// Calls records the text passed to each Synthesize call.
	Calls []string
	// LastOpts holds the options of the most recent call.
	LastOpts SynthesizeOpts
}

func (m *MockEngine) Synthesize(ctx context.Context, text string, opts SynthesizeOpts) (*Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, text)
	m.LastOpts = opts

	if m.Err != nil {
		return nil, m.Err
	}

	wav := m.WAV
	if wav == nil {
		wav = silentWAV()
	}
	rate := m.SampleRate
	if rate == 0 {
		rate = 24000
	}
	return &Result{WAV: wav, SampleRate: rate}, nil
}

// silentWAV builds a minimal valid mono 16-bit WAV with a handful of zero
// samples.
func silentWAV() []byte {
	const samples = 16
	dataLen := samples * 2

	header := []byte("RIFF")
	header = appendUint32(header, uint32(36+dataLen))
	header = append(header, []byte("WAVEfmt ")...)
	header = appendUint32(header, 16)          // fmt chunk size
	header = append(header, 1, 0, 1, 0)        // PCM, mono
	header = appendUint32(header, 24000)       // sample rate
	header = appendUint32(header, 24000*2)     // byte rate
	header = append(header, 2, 0, 16, 0)       // block align, bits
	header = append(header, []byte("data")...) // data chunk
	header = appendUint32(header, uint32(dataLen))
	return append(header, make([]byte, dataLen)...)
}

func appendUint32(b []byte, v uint32) []byte {
	return append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

var _ Engine = (*MockEngine)(nil)
