// Package server exposes the resume analyzer over HTTP.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/FAKE-SURYA/smartrecruitai-app/internal/export"
	"github.com/FAKE-SURYA/smartrecruitai-app/internal/extract"
	"github.com/FAKE-SURYA/smartrecruitai-app/internal/history"
	"github.com/FAKE-SURYA/smartrecruitai-app/internal/recommend"
)

// maxUploadBytes caps the accepted resume upload size.
const maxUploadBytes = 20 << 20

// Server wires the extraction and recommendation pipeline behind a chi router.
// History and exporter are optional; the analyze endpoint works without them.
type Server struct {
	extractor extract.TextExtractor
	orch      *recommend.Orchestrator
	hist      *history.Store
	exporter  *export.Service
	log       *slog.Logger
}

func New(extractor extract.TextExtractor, orch *recommend.Orchestrator, hist *history.Store, exporter *export.Service, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		extractor: extractor,
		orch:      orch,
		hist:      hist,
		exporter:  exporter,
		log:       log,
	}
}

// Router builds the HTTP handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/history", s.handleHistory)
		r.Get("/report/{id}", s.handleReport)
		r.Get("/export/xlsx", s.handleExportXLSX)
	})
	return r
}
