// SPDX-License-Identifier: Apache-2.0

// Package config loads Parley configuration from defaults, an optional YAML
// file and PARLEY_-prefixed environment variables, in that order.
package config

import (
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	LLM       LLMConfig       `koanf:"llm"`
	TTS       TTSConfig       `koanf:"tts"`
	Registry  RegistryConfig  `koanf:"registry"`
	Data      DataConfig      `koanf:"data"`
	Agents    AgentsConfig    `koanf:"agents"`
}

// AgentsConfig carries per-agent synthesis tweaks keyed by agent id.
type AgentsConfig struct {
	// Languages overrides the synthesis language (default "en").
	Languages map[string]string `koanf:"languages"`
	// SpeedOverrides adjusts the speaking rate (default 1.0).
	SpeedOverrides map[string]float64 `koanf:"speed_overrides"`
}

type ServerConfig struct {
	Addr string `koanf:"addr"`
	// AllowedOrigin is the frontend origin granted CORS access.
	AllowedOrigin string `koanf:"allowed_origin"`
	// FixtureMode replaces every external call with canned responses.
	FixtureMode bool `koanf:"fixture_mode"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // json, text
}

type TelemetryConfig struct {
	Exporter     string `koanf:"exporter"` // stdout, otlp, none
	OTLPEndpoint string `koanf:"otlp_endpoint"`
	OTLPInsecure bool   `koanf:"otlp_insecure"`
}

type LLMConfig struct {
	GeminiAPIKey string  `koanf:"gemini_api_key"`
	HFAPIKey     string  `koanf:"hf_api_key"`
	HFBaseURL    string  `koanf:"hf_base_url"`
	Temperature  float64 `koanf:"temperature"`
	// MaxAttempts bounds the retries of a failed provider call.
	MaxAttempts int `koanf:"max_attempts"`
}

type TTSConfig struct {
	// Runner is the local XTTS runner executable.
	Runner string `koanf:"runner"`
	// ModelDir holds the voice-cloning model checkpoint.
	ModelDir string `koanf:"model_dir"`
	// OutputDir receives the per-agent debug waveforms.
	OutputDir  string `koanf:"output_dir"`
	SampleRate int    `koanf:"sample_rate"`
}

type RegistryConfig struct {
	Backend string `koanf:"backend"` // json, sqlite
	Path    string `koanf:"path"`
}

type DataConfig struct {
	// Dir is the root of the agent data tree: <dir>/sys_prompts/<id>.yaml
	// and <dir>/speaker_wavs/<ID>/*.wav.
	Dir string `koanf:"dir"`
}

// Load reads configuration from the optional YAML file at path and from the
// environment.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Defaults
	k.Set("server.addr", ":8000")
	k.Set("server.allowed_origin", "http://localhost:5173")
	k.Set("server.fixture_mode", false)
	k.Set("log.level", "info")
	k.Set("log.format", "text")
	k.Set("telemetry.exporter", "stdout")
	k.Set("llm.hf_base_url", "https://router.huggingface.co/v1")
	k.Set("llm.temperature", 0.8)
	k.Set("llm.max_attempts", 3)
	k.Set("tts.runner", "xtts-run")
	k.Set("tts.model_dir", "models/xtts_v2")
	k.Set("tts.output_dir", ".")
	k.Set("tts.sample_rate", 24000)
	k.Set("registry.backend", "json")
	k.Set("registry.path", "agents_data/agents.json")
	k.Set("data.dir", "agents_data")

	// 1. Load from file
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// 2. Load from ENV (PARLEY_LLM_GEMINI_API_KEY -> llm.gemini_api_key).
	// Only the first underscore separates section from key, so the key part
	// keeps its underscores.
	if err := k.Load(env.Provider("PARLEY_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, "PARLEY_")), "_", ".", 1)
	}), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
