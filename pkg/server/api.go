package server

import (
	"encoding/json"
	"net/http"
	"time"
)

// ResultsResponse is the payload served on /api.
type ResultsResponse struct {
	Results map[string]string `json:"results"`
	LastRun int64             `json:"lastrun"`
}

// SummaryResponse is the payload served on /api/summary.
type SummaryResponse struct {
	Total   int   `json:"total"`
	Up      int   `json:"up"`
	Down    int   `json:"down"`
	LastRun int64 `json:"lastrun"`
}

func (s *Server) handleResults(w http.ResponseWriter, _ *http.Request) {
	results, lastRun := s.snapshot()

	writeJSON(w, ResultsResponse{
		Results: results,
		LastRun: unixOrZero(lastRun),
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	results, lastRun := s.snapshot()
	sum := summarize(results)

	writeJSON(w, SummaryResponse{
		Total:   sum.Total,
		Up:      sum.Up,
		Down:    sum.Down,
		LastRun: unixOrZero(lastRun),
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// unixOrZero keeps the zero time out of API responses.
func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}
