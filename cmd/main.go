package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/joho/godotenv/autoload"
	gommonlog "github.com/labstack/gommon/log"

	"plotlines/pkg/config"
	"plotlines/pkg/illustration"
	"plotlines/pkg/inference"
	"plotlines/pkg/server"
	"plotlines/pkg/story"
)

func main() {
	ctx, done := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", "error", err)
	}

	level := log.InfoLevel
	if cfg.IsDev() {
		level = log.DebugLevel
	}
	if cfg.LogLevel != "" {
		if parsed, err := log.ParseLevel(cfg.LogLevel); err == nil {
			level = parsed
		} else {
			log.Warn("ignoring LOG_LEVEL", "value", cfg.LogLevel, "error", err)
		}
	}
	log.SetLevel(level)
	log.SetReportTimestamp(true)

	deriver := story.NewDeriver(newInferencer(cfg), cfg.Model(), cfg.StructuredOutput)

	images := &http.Client{Timeout: cfg.ImageTimeout}
	resolver := illustration.NewResolver(
		illustration.Placeholder{BaseURL: cfg.PlaceholderURL},
		illustration.NewOpenverse(cfg.OpenverseURL, images),
		illustration.NewWikimedia(cfg.WikimediaURL, images),
	)

	srv := server.NewServer(ctx, cfg, deriver, resolver)
	if cfg.IsDev() {
		srv.Echo.Logger.SetLevel(gommonlog.DEBUG)
	}

	finishedShutDown := make(chan struct{})
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown failed", "error", err)
		}
		done()
		close(finishedShutDown)
	}()

	if err := srv.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server stopped", "error", err)
		done()
		os.Exit(1)
	}
	<-finishedShutDown
}

// newInferencer builds the text provider. Missing keys are reported on the
// first generation request, not here.
func newInferencer(cfg *config.Config) inference.Inferencer {
	if cfg.AIProvider == "gemini" {
		if cfg.GeminiKey == "" {
			log.Warn("GEMINI_API_KEY is not set; story generation will fail")
		}
		return inference.NewGeminiInferencer(cfg.GeminiKey, cfg.GeminiModel)
	}

	openAI := inference.NewOpenAIInferencer(cfg.OpenAIKey, cfg.OpenAIModel)
	if cfg.OpenAIBaseURL != "" {
		openAI.ChangeBaseURL(cfg.OpenAIBaseURL)
	} else if cfg.OpenAIKey == "" {
		log.Warn("OPENAI_API_KEY is not set; story generation will fail")
	}
	return openAI
}
