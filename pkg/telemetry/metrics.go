// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// TurnMetrics tracks conversation-turn throughput and latency.
type TurnMetrics struct {
	turnCounter  metric.Int64Counter
	turnErrors   metric.Int64Counter
	llmLatency   metric.Float64Histogram
	synthLatency metric.Float64Histogram
}

// NewTurnMetrics creates the turn metrics instruments on the global meter.
func NewTurnMetrics() (*TurnMetrics, error) {
	meter := otel.Meter("parley/turns")

	turnCounter, err := meter.Int64Counter(
		"parley.turns.total",
		metric.WithDescription("Completed conversation turns by speaker"),
	)
	if err != nil {
		return nil, err
	}

	turnErrors, err := meter.Int64Counter(
		"parley.turns.errors",
		metric.WithDescription("Failed conversation turns by error code"),
	)
	if err != nil {
		return nil, err
	}

	llmLatency, err := meter.Float64Histogram(
		"parley.llm.duration",
		metric.WithDescription("LLM call duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	synthLatency, err := meter.Float64Histogram(
		"parley.tts.duration",
		metric.WithDescription("Speech synthesis duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &TurnMetrics{
		turnCounter:  turnCounter,
		turnErrors:   turnErrors,
		llmLatency:   llmLatency,
		synthLatency: synthLatency,
	}, nil
}

// RecordTurn counts a completed turn for the given speaker.
func (m *TurnMetrics) RecordTurn(ctx context.Context, speakerID string) {
	if m == nil {
		return
	}
	m.turnCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("speaker_id", speakerID),
	))
}

// RecordTurnError counts a failed turn by error code.
func (m *TurnMetrics) RecordTurnError(ctx context.Context, code string) {
	if m == nil {
		return
	}
	m.turnErrors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("code", code),
	))
}

// RecordLLMDuration records one LLM call duration.
func (m *TurnMetrics) RecordLLMDuration(ctx context.Context, model string, d time.Duration) {
	if m == nil {
		return
	}
	m.llmLatency.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("model", model),
	))
}

// RecordSynthDuration records one synthesis duration.
func (m *TurnMetrics) RecordSynthDuration(ctx context.Context, speakerID string, d time.Duration) {
	if m == nil {
		return
	}
	m.synthLatency.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("speaker_id", speakerID),
	))
}
