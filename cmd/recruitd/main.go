package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/FAKE-SURYA/smartrecruitai-app/internal/common"
	"github.com/FAKE-SURYA/smartrecruitai-app/internal/embedding"
	"github.com/FAKE-SURYA/smartrecruitai-app/internal/export"
	"github.com/FAKE-SURYA/smartrecruitai-app/internal/extract"
	"github.com/FAKE-SURYA/smartrecruitai-app/internal/history"
	"github.com/FAKE-SURYA/smartrecruitai-app/internal/llm/openai"
	"github.com/FAKE-SURYA/smartrecruitai-app/internal/recommend"
	"github.com/FAKE-SURYA/smartrecruitai-app/internal/server"
)

func main() {
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Remote path only when a credential is configured.
	var remote recommend.RemoteRecommender
	if cfg.LLM.APIKey != "" {
		remote = openai.NewClient(openai.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
			Timeout:     cfg.LLM.Timeout,
		}, log)
		log.Info("remote recommender enabled", "model", cfg.LLM.Model)
	} else {
		log.Info("no OPENAI_API_KEY set; heuristic recommender only")
	}

	// Optional similarity refinement for the heuristic path.
	var similarity recommend.SimilarityProvider
	if remote == nil && cfg.Embedding.BaseURL != "" {
		provider, err := embedding.NewOllamaProvider(cfg.Embedding.BaseURL, cfg.Embedding.Model, log)
		if err != nil {
			log.Warn("embedding provider unavailable; keeping heuristic scores", "error", err)
		} else {
			similarity = provider
			log.Info("similarity refinement enabled", "model", cfg.Embedding.Model)
		}
	}

	var hist *history.Store
	var exporter *export.Service
	if cfg.History.Path != "" {
		var err error
		hist, err = history.Open(ctx, cfg.History.Path)
		if err != nil {
			log.Error("opening history store", "error", err)
			os.Exit(1)
		}
		defer hist.Close()
		exporter = export.NewService(log)
		log.Info("history store open", "path", cfg.History.Path)
	}

	orch := recommend.NewOrchestrator(remote, similarity, log)
	srv := server.New(extract.NewFileExtractor(log), orch, hist, exporter, log)

	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("http serving", "addr", cfg.Server.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", "error", err)
	}
	log.Info("stopped")
}
