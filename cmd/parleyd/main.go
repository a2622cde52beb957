// SPDX-License-Identifier: Apache-2.0

// Command parleyd serves the Parley discussion backend: agent registry,
// turn orchestration and local speech synthesis behind one HTTP API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sunnydevs-club/parley/pkg/config"
	"github.com/sunnydevs-club/parley/pkg/httpapi"
	"github.com/sunnydevs-club/parley/pkg/llm"
	"github.com/sunnydevs-club/parley/pkg/orchestrator"
	"github.com/sunnydevs-club/parley/pkg/registry"
	"github.com/sunnydevs-club/parley/pkg/resilience"
	"github.com/sunnydevs-club/parley/pkg/telemetry"
	"github.com/sunnydevs-club/parley/pkg/tts"
	"github.com/sunnydevs-club/parley/providers/gemini"
	"github.com/sunnydevs-club/parley/providers/hfrouter"
)

const version = "0.3.0"

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("parleyd " + version)
		return
	}

	if err := run(*configPath); err != nil {
		slog.Error("parleyd exited", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := telemetry.ConfigureSlog(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.InitWithConfig("parleyd", version, telemetry.Config{
		Exporter:     cfg.Telemetry.Exporter,
		OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
		OTLPInsecure: cfg.Telemetry.OTLPInsecure,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			slog.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	providers, engine, err := buildBackends(ctx, cfg)
	if err != nil {
		return err
	}

	metrics, err := telemetry.NewTurnMetrics()
	if err != nil {
		return fmt.Errorf("creating metrics: %w", err)
	}

	dispatcher := llm.NewDispatcher(providers, cfg.LLM.Temperature,
		llm.WithRetry(resilience.DefaultRetryConfig().WithMaxAttempts(cfg.LLM.MaxAttempts)))

	orch := &orchestrator.Orchestrator{
		Store:          store,
		Dispatcher:     dispatcher,
		Engine:         engine,
		DataDir:        cfg.Data.Dir,
		Languages:      cfg.Agents.Languages,
		SpeedOverrides: cfg.Agents.SpeedOverrides,
		Metrics:        metrics,
	}

	api := httpapi.New(store, orch, cfg.Server.AllowedOrigin)
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("parleyd listening", "addr", cfg.Server.Addr, "version", version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// openStore selects the registry backend. The JSON file store is the
// default; sqlite keeps the same contract behind database/sql.
func openStore(cfg *config.Config) (registry.Store, func(), error) {
	switch cfg.Registry.Backend {
	case "json", "":
		return registry.NewFileStore(cfg.Registry.Path), func() {}, nil
	case "sqlite":
		store, err := registry.OpenSQLiteStore(cfg.Registry.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite registry: %w", err)
		}
		return store, func() {
			if err := store.Close(); err != nil {
				slog.Warn("closing sqlite registry failed", "error", err)
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown registry backend %q", cfg.Registry.Backend)
	}
}

// buildBackends wires the LLM provider branches and the speech engine.
// Fixture mode swaps every external call for canned responses so the
// frontend can be exercised without credentials or a local model.
func buildBackends(ctx context.Context, cfg *config.Config) (map[llm.ProviderKind]llm.Provider, tts.Engine, error) {
	if cfg.Server.FixtureMode {
		slog.Info("fixture mode active, external calls disabled")
		fixture := llm.NewScriptedMockProvider(
			"<think>Considering the discussion so far.</think> That is a fair point, though I would frame it differently.",
			"I agree with the previous speaker on the essentials.",
			"Let me offer a counterexample before we settle this.",
		)
		providers := map[llm.ProviderKind]llm.Provider{
			llm.KindGemini:       fixture,
			llm.KindHFServerless: fixture,
		}
		return providers, &tts.MockEngine{}, nil
	}

	providers := make(map[llm.ProviderKind]llm.Provider)

	if cfg.LLM.GeminiAPIKey != "" {
		provider, err := gemini.New(ctx, cfg.LLM.GeminiAPIKey)
		if err != nil {
			return nil, nil, fmt.Errorf("creating gemini provider: %w", err)
		}
		providers[llm.KindGemini] = provider
	} else {
		slog.Warn("gemini api key not set, gemini models unavailable")
	}

	if cfg.LLM.HFAPIKey != "" {
		providers[llm.KindHFServerless] = hfrouter.New(cfg.LLM.HFAPIKey,
			hfrouter.WithBaseURL(cfg.LLM.HFBaseURL))
	} else {
		slog.Warn("hugging face api key not set, router models unavailable")
	}

	engine, err := tts.NewXTTS(cfg.TTS.Runner, cfg.TTS.ModelDir, cfg.TTS.OutputDir, cfg.TTS.SampleRate)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing speech engine: %w", err)
	}
	return providers, engine, nil
}
