// SPDX-License-Identifier: Apache-2.0

package tts

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sunnydevs-club/parley/pkg/errors"
)

// XTTS synthesizes speech by invoking the local XTTS runner once per call.
// The runner wraps the multilingual XTTS-v2 voice-cloning checkpoint; it
// reads the text on stdin and writes a WAV file to the requested path.
type XTTS struct {
	runner     string
	modelDir   string
	outputDir  string
	sampleRate int
}

// NewXTTS verifies the runner binary and the model checkpoint up front, so a
// constructed engine is always ready to synthesize.
func NewXTTS(runner, modelDir, outputDir string, sampleRate int) (*XTTS, error) {
	path, err := exec.LookPath(runner)
	if err != nil {
		return nil, errors.Newf(errors.CodeTTSError, "xtts runner %q not found in PATH", runner)
	}
	if info, err := os.Stat(modelDir); err != nil || !info.IsDir() {
		return nil, errors.Newf(errors.CodeTTSError, "xtts model dir %q not found", modelDir)
	}
	return &XTTS{
		runner:     path,
		modelDir:   modelDir,
		outputDir:  outputDir,
		sampleRate: sampleRate,
	}, nil
}

// Synthesize clones the voice from the reference clips in opts.VoiceDir and
// returns the synthesized waveform.
func (x *XTTS) Synthesize(ctx context.Context, text string, opts SynthesizeOpts) (*Result, error) {
	if text == "" {
		return nil, errors.Newf(errors.CodeInvalidInput, "empty synthesis text")
	}

	refs, err := filepath.Glob(filepath.Join(opts.VoiceDir, "*.wav"))
	if err != nil {
		return nil, errors.New(errors.CodeTTSError, "scanning voice clips", err)
	}
	if len(refs) == 0 {
		return nil, errors.Newf(errors.CodeInvalidInput,
			"no reference voice clips in %q", opts.VoiceDir)
	}

	speed := opts.Speed
	if speed == 0 {
		speed = 1.0
	}
	language := opts.Language
	if language == "" {
		language = "en"
	}

	outPath := filepath.Join(os.TempDir(), fmt.Sprintf("xtts_out_%d.wav", time.Now().UnixNano()))
	defer os.Remove(outPath)

	args := []string{
		"--model-dir", x.modelDir,
		"--language", language,
		"--speed", strconv.FormatFloat(speed, 'f', 2, 64),
		"--sample-rate", strconv.Itoa(x.sampleRate),
		"--output-file", outPath,
	}
	for _, ref := range refs {
		args = append(args, "--speaker-wav", ref)
	}

	cmd := exec.CommandContext(ctx, x.runner, args...)
	cmd.Stdin = bytes.NewBufferString(text)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, errors.New(errors.CodeTTSError,
			fmt.Sprintf("xtts runner failed: %s", stderr.String()), err)
	}

	wav, err := os.ReadFile(outPath)
	if err != nil {
		return nil, errors.New(errors.CodeTTSError, "reading synthesized audio", err)
	}

	x.writeDebugCopy(opts.SpeakerID, wav)

	return &Result{WAV: wav, SampleRate: x.sampleRate}, nil
}

// writeDebugCopy mirrors the waveform to a per-agent file for inspection.
// Failures are logged, never surfaced.
func (x *XTTS) writeDebugCopy(speakerID string, wav []byte) {
	if x.outputDir == "" || speakerID == "" {
		return
	}
	path := filepath.Join(x.outputDir, fmt.Sprintf("generated_%s.wav", speakerID))
	if err := os.WriteFile(path, wav, 0o644); err != nil {
		slog.Warn("could not write debug waveform", "path", path, "error", err)
		return
	}
	slog.Debug("debug waveform saved", "path", path)
}

var _ Engine = (*XTTS)(nil)
