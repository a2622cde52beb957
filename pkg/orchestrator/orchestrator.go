// SPDX-License-Identifier: Apache-2.0

// Package orchestrator runs one conversation turn end to end: registry
// lookup, persona prompt assembly, LLM dispatch, text cleanup and speech
// synthesis. All collaborators are explicit dependencies.
package orchestrator

import (
	"context"
	"encoding/base64"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/sunnydevs-club/parley/pkg/errors"
	"github.com/sunnydevs-club/parley/pkg/llm"
	"github.com/sunnydevs-club/parley/pkg/persona"
	"github.com/sunnydevs-club/parley/pkg/registry"
	"github.com/sunnydevs-club/parley/pkg/telemetry"
	"github.com/sunnydevs-club/parley/pkg/tts"
)

// HistoryItem is one prior (role, content) pair. Roles follow the frontend
// convention: "user", "model" or "system".
type HistoryItem struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TurnRequest asks for the next turn of the conversation.
type TurnRequest struct {
	History       []HistoryItem `json:"conversation_history"`
	NextSpeakerID string        `json:"next_speaker_id"`
	UserPrompt    string        `json:"user_prompt"`
}

// TurnResult is the generated turn: the raw model text (thinking block
// included, the frontend decides how to display it) and the spoken audio.
type TurnResult struct {
	SpeakerID   string `json:"speaker_id"`
	Text        string `json:"text"`
	AudioBase64 string `json:"audio_base64"`
}

// Orchestrator threads one turn through the registry, the dispatcher and the
// speech engine.
type Orchestrator struct {
	Store      registry.Store
	Dispatcher *llm.Dispatcher
	Engine     tts.Engine
	DataDir    string

	// Languages maps agent id to synthesis language; absent ids speak "en".
	Languages map[string]string
	// SpeedOverrides maps agent id to speaking rate; absent ids use 1.0.
	SpeedOverrides map[string]float64

	// Metrics is optional; nil disables recording.
	Metrics *telemetry.TurnMetrics
}

var tracer = otel.Tracer("parley/orchestrator")

// NextTurn generates the next turn for the requested speaker.
func (o *Orchestrator) NextTurn(ctx context.Context, req TurnRequest) (*TurnResult, error) {
	ctx, span := tracer.Start(ctx, "orchestrator.NextTurn")
	defer span.End()
	span.SetAttributes(attribute.String("speaker_id", req.NextSpeakerID))

	result, err := o.nextTurn(ctx, req)
	if err != nil {
		o.Metrics.RecordTurnError(ctx, string(errors.CodeOf(err)))
		return nil, err
	}
	o.Metrics.RecordTurn(ctx, req.NextSpeakerID)
	return result, nil
}

func (o *Orchestrator) nextTurn(ctx context.Context, req TurnRequest) (*TurnResult, error) {
	agent, err := o.Store.Get(req.NextSpeakerID)
	if err != nil {
		return nil, err
	}

	prompt, err := persona.Render(agent.PromptPath(o.DataDir))
	if err != nil {
		return nil, err
	}

	history := make([]llm.Message, 0, len(req.History))
	for _, item := range req.History {
		history = append(history, llm.Message{
			Role:    convertRole(item.Role),
			Content: item.Content,
		})
	}

	llmStart := time.Now()
	text, err := o.Dispatcher.Generate(ctx, agent.Model, prompt, history, req.UserPrompt)
	if err != nil {
		return nil, err
	}
	o.Metrics.RecordLLMDuration(ctx, agent.Model, time.Since(llmStart))

	slog.InfoContext(ctx, "llm reply generated",
		"speaker_id", agent.ID, "model", agent.Model, "chars", len(text))

	spoken := tts.Clean(text)

	synthStart := time.Now()
	audio, err := o.Engine.Synthesize(ctx, spoken, tts.SynthesizeOpts{
		SpeakerID: agent.ID,
		Language:  o.language(agent.ID),
		Speed:     o.speed(agent.ID),
		VoiceDir:  agent.VoiceDir(o.DataDir),
	})
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			return nil, e
		}
		return nil, errors.New(errors.CodeTTSError, "speech synthesis failed", err)
	}
	o.Metrics.RecordSynthDuration(ctx, agent.ID, time.Since(synthStart))

	return &TurnResult{
		SpeakerID:   agent.ID,
		Text:        text,
		AudioBase64: base64.StdEncoding.EncodeToString(audio.WAV),
	}, nil
}

func (o *Orchestrator) language(agentID string) string {
	if lang, ok := o.Languages[agentID]; ok && lang != "" {
		return lang
	}
	return "en"
}

func (o *Orchestrator) speed(agentID string) float64 {
	if speed, ok := o.SpeedOverrides[agentID]; ok && speed > 0 {
		return speed
	}
	return 1.0
}

// convertRole maps the frontend's "model" role onto the provider-facing
// assistant role.
func convertRole(role string) llm.Role {
	switch role {
	case "model":
		return llm.RoleAssistant
	case "system":
		return llm.RoleSystem
	default:
		return llm.RoleUser
	}
}
