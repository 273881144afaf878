package server

import (
	"net/http"

	"golang.org/x/time/rate"
)

// handler builds the full HTTP handler stack for the API. The rate
// limiter bounds requests to the status API itself; probe traffic is
// bounded only by the worker count.
func (s *Server) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api", s.handleResults)
	mux.HandleFunc("/api/summary", s.handleSummary)
	mux.Handle("/metrics", s.metrics.handler())

	rl := newRateLimitMiddleware(rate.NewLimiter(rate.Limit(50), 100))
	return requireGET(rl(securityHeadersMiddleware(mux)))
}
