package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/FAKE-SURYA/smartrecruitai-app/internal/common"
	"github.com/FAKE-SURYA/smartrecruitai-app/internal/history"
	"github.com/FAKE-SURYA/smartrecruitai-app/internal/recommend"
)

// analyzeResponse wraps the recommendation with upload metadata.
type analyzeResponse struct {
	Filename string `json:"filename"`
	Source   string `json:"source"`
	recommend.Result
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read upload")
		return
	}

	text := s.extractor.Extract(header.Filename, data)
	if text == "" {
		s.log.Warn("analyze.empty_text",
			"req_id", common.RequestIDFromContext(r.Context()),
			"filename", header.Filename,
			"bytes", len(data),
		)
	}

	// Empty text still yields a valid result via the heuristic fallback title.
	res, source := s.orch.Recommend(r.Context(), text)

	if s.hist != nil {
		if _, err := s.hist.Record(r.Context(), history.Entry{
			Filename:    header.Filename,
			Source:      string(source),
			Titles:      res.RecommendedTitles,
			Scores:      res.ConfidenceScores,
			Explanation: res.Explanation,
		}); err != nil {
			// History is best-effort; the recommendation is still returned.
			s.log.Warn("analyze.history_record_failed",
				"req_id", common.RequestIDFromContext(r.Context()),
				"error", err,
			)
		}
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		Filename: header.Filename,
		Source:   string(source),
		Result:   res,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.hist == nil {
		writeError(w, http.StatusNotFound, "history is not enabled")
		return
	}
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	entries, err := s.hist.List(r.Context(), limit)
	if err != nil {
		s.log.Error("history.list_failed",
			"req_id", common.RequestIDFromContext(r.Context()),
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "could not list history")
		return
	}
	writeJSON(w, http.StatusOK, toHistoryResponses(entries))
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if s.hist == nil {
		writeError(w, http.StatusNotFound, "history is not enabled")
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid report id")
		return
	}
	entry, err := s.hist.GetByID(r.Context(), id)
	if errors.Is(err, history.ErrNotFound) {
		writeError(w, http.StatusNotFound, "report not found")
		return
	}
	if err != nil {
		s.log.Error("history.get_failed",
			"req_id", common.RequestIDFromContext(r.Context()),
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "could not load report")
		return
	}
	writeJSON(w, http.StatusOK, toHistoryResponse(entry))
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	if s.hist == nil || s.exporter == nil {
		writeError(w, http.StatusNotFound, "history is not enabled")
		return
	}
	entries, err := s.hist.List(r.Context(), 0)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not list history")
		return
	}
	data, err := s.exporter.HistoryXLSX(entries)
	if err != nil {
		s.log.Error("export.xlsx_failed",
			"req_id", common.RequestIDFromContext(r.Context()),
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "could not build export")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="analyses.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type historyResponse struct {
	ID          string             `json:"id"`
	Filename    string             `json:"filename"`
	Source      string             `json:"source"`
	Titles      []string           `json:"recommended_titles"`
	Scores      map[string]float64 `json:"confidence_scores"`
	Explanation string             `json:"explanation"`
	CreatedAt   string             `json:"created_at"`
}

func toHistoryResponse(e history.Entry) historyResponse {
	return historyResponse{
		ID:          e.ID.String(),
		Filename:    e.Filename,
		Source:      e.Source,
		Titles:      e.Titles,
		Scores:      e.Scores,
		Explanation: e.Explanation,
		CreatedAt:   e.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

func toHistoryResponses(entries []history.Entry) []historyResponse {
	out := make([]historyResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toHistoryResponse(e))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
