// Package main provides the HTTP server for Sarathi.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devyanip/sarathi/internal/config"
	"github.com/devyanip/sarathi/internal/db"
	"github.com/devyanip/sarathi/internal/llm"
	"github.com/devyanip/sarathi/internal/metrics"
	"github.com/devyanip/sarathi/internal/persona"
	"github.com/devyanip/sarathi/internal/server"
	"github.com/devyanip/sarathi/internal/service"
	"github.com/devyanip/sarathi/internal/speech"
)

func main() {
	wipeDB := flag.Bool("wipe", false, "wipe all data from database on startup (testing only)")
	flag.Parse()

	cfg := config.Load()

	logger, closeLog := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer func() {
		if err := closeLog(); err != nil {
			slog.Error("failed to close log file", "error", err)
		}
	}()
	slog.SetDefault(logger)

	slog.Info("starting sarathi-server", "port", cfg.ServerPort, "provider", cfg.LLMProvider)

	collector := metrics.NewCollector()

	// The store is optional: with no URL configured, or a failed connect,
	// the server runs degraded on the built-in persona.
	var store service.Store
	var dbClient *db.Client
	if cfg.SurrealDBURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		var err error
		dbClient, err = db.NewClient(ctx, db.Config{
			URL:       cfg.SurrealDBURL,
			Namespace: cfg.SurrealDBNamespace,
			Database:  cfg.SurrealDBDatabase,
			Username:  cfg.SurrealDBUser,
			Password:  cfg.SurrealDBPass,
			AuthLevel: cfg.SurrealDBAuthLevel,
		}, logger, collector)
		if err != nil {
			slog.Warn("database unavailable, running degraded", "error", err)
		} else {
			if err := setupStore(ctx, dbClient, *wipeDB); err != nil {
				slog.Error("failed to set up database", "error", err)
				cancel()
				os.Exit(1)
			}
			store = dbClient
		}
		cancel()
	} else {
		slog.Warn("no database configured, running degraded")
	}
	defer func() {
		if dbClient != nil {
			if err := dbClient.Close(context.Background()); err != nil {
				slog.Error("failed to close database", "error", err)
			}
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	model, err := llm.NewModel(ctx, cfg, collector)
	cancel()
	if err != nil {
		slog.Error("failed to create LLM model", "error", err)
		os.Exit(1)
	}

	var speechClient *speech.Client
	if cfg.SpeechAPIKey != "" {
		speechClient = speech.NewClient(speech.Config{
			APIKey:   cfg.SpeechAPIKey,
			BaseURL:  cfg.SpeechBaseURL,
			TTSModel: cfg.TTSModel,
			TTSVoice: cfg.TTSVoice,
			TTSSpeed: cfg.TTSSpeed,
			STTModel: cfg.STTModel,
		}, collector)
	} else {
		slog.Warn("no speech API key configured, voice endpoints disabled")
	}

	personas := service.NewPersonaService(store, logger)
	conversations := service.NewConversationService(store, logger)
	chat := service.NewChatService(personas, conversations, model, cfg.GuidanceContext, logger)

	srv := server.New(server.Config{
		Personas:      personas,
		Conversations: conversations,
		Chat:          chat,
		Speech:        speechClient,
		Metrics:       collector,
		Logger:        logger,
	})

	httpServer := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      srv.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Long for LLM and speech responses
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("API available", "url", "http://localhost:"+cfg.ServerPort+"/api/krishna")

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

// setupStore initializes the schema, optionally wipes data, and seeds the
// built-in persona so a fresh database serves it from the store.
func setupStore(ctx context.Context, client *db.Client, wipe bool) error {
	if err := client.InitSchema(ctx); err != nil {
		return err
	}

	if wipe || os.Getenv("SARATHI_WIPE_DB") == "true" {
		if err := client.WipeData(ctx); err != nil {
			return err
		}
	}

	return client.UpsertPersona(ctx, persona.Fallback())
}
