// Package server runs urlstat as a long-lived service: it re-checks a
// URL file on a fixed interval and serves the latest results over a
// small JSON API plus a Prometheus metrics endpoint.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/urlstat/urlstat/pkg/checker"
)

const (
	// DefaultListenAddr is the default API listen address.
	DefaultListenAddr = ":8080"

	// DefaultInterval is the default delay between check runs.
	DefaultInterval = time.Minute

	// DefaultWorkers is the default worker count for scheduled runs.
	DefaultWorkers = 16

	// shutdownGrace is how long Stop waits for in-flight API requests.
	shutdownGrace = 5 * time.Second
)

// Server periodically checks every URL in a file and caches the latest
// completed ResultSet for the API handlers. A run that fails keeps the
// previous results in place.
type Server struct {
	file     string
	listen   string
	interval time.Duration
	workers  int
	timeout  time.Duration
	logger   *logrus.Logger

	mu      sync.RWMutex
	results checker.ResultSet
	lastRun time.Time

	metrics *metrics
	httpSrv *http.Server
	done    chan struct{}
	wg      sync.WaitGroup
}

// Option is a functional option for configuring a Server.
type Option func(*Server) error

// WithListenAddr sets the API listen address.
func WithListenAddr(addr string) Option {
	return func(s *Server) error {
		if addr == "" {
			return fmt.Errorf("listen address must not be empty")
		}
		s.listen = addr
		return nil
	}
}

// WithInterval sets the delay between check runs.
func WithInterval(d time.Duration) Option {
	return func(s *Server) error {
		if d <= 0 {
			return fmt.Errorf("interval must be positive, got %v", d)
		}
		s.interval = d
		return nil
	}
}

// WithWorkers sets the worker count used for each run.
func WithWorkers(n int) Option {
	return func(s *Server) error {
		if n < 1 {
			return fmt.Errorf("worker count must be positive, got %d", n)
		}
		s.workers = n
		return nil
	}
}

// WithTimeout sets the per-probe timeout used for each run.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) error {
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %v", d)
		}
		s.timeout = d
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l *logrus.Logger) Option {
	return func(s *Server) error {
		if l == nil {
			return fmt.Errorf("logger must not be nil")
		}
		s.logger = l
		return nil
	}
}

// New creates a Server checking the URLs listed in file.
func New(file string, opts ...Option) (*Server, error) {
	if file == "" {
		return nil, fmt.Errorf("server: a url file is required")
	}

	s := &Server{
		file:     file,
		listen:   DefaultListenAddr,
		interval: DefaultInterval,
		workers:  DefaultWorkers,
		timeout:  checker.DefaultTimeout,
		metrics:  newMetrics(),
		done:     make(chan struct{}),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("server: %w", err)
		}
	}

	if s.logger == nil {
		s.logger = logrus.StandardLogger()
	}

	return s, nil
}

// Start launches the API server and the check loop. It returns
// immediately; use Stop to shut down.
func (s *Server) Start() {
	s.startAPI()

	s.wg.Add(1)
	go s.loop()
}

// Stop shuts down the check loop and the API server, waiting for both.
func (s *Server) Stop() {
	close(s.done)

	if s.httpSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := s.httpSrv.Shutdown(ctx); err != nil {
			s.logger.Errorf("Failed to shut down API server: %v", err)
		}
	}

	s.wg.Wait()
	s.logger.Info("Server stopped.")
}

// loop runs the first check immediately, then re-checks on the
// configured interval until Stop is called.
func (s *Server) loop() {
	defer s.wg.Done()

	s.runCheck()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runCheck()
		case <-s.done:
			s.logger.Info("Check loop received shutdown signal.")
			return
		}
	}
}

// runCheck performs one full check of the URL file and swaps in the new
// results. The file is reopened every run so edits are picked up. Any
// failure leaves the previous results serving.
func (s *Server) runCheck() {
	f, err := os.Open(s.file)
	if err != nil {
		s.logger.Errorf("Cannot open url file %s: %v", s.file, err)
		return
	}

	c, err := checker.New(f,
		checker.WithWorkers(s.workers),
		checker.WithTimeout(s.timeout),
		checker.WithLogger(s.logger),
	)
	if err != nil {
		s.logger.Errorf("Cannot build checker: %v", err)
		f.Close()
		return
	}

	start := time.Now()
	results, err := c.Run(context.Background())
	elapsed := time.Since(start)
	if err != nil {
		s.logger.Errorf("Check run failed: %v", err)
		return
	}

	now := time.Now()
	s.mu.Lock()
	s.results = results
	s.lastRun = now
	s.mu.Unlock()

	s.metrics.record(results, elapsed, now)
	s.logger.Infof("Checked %d urls in %v", len(results), elapsed)
}

// snapshot returns the latest results and run time without holding the
// lock while handlers encode the response.
func (s *Server) snapshot() (checker.ResultSet, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make(checker.ResultSet, len(s.results))
	for u, outcome := range s.results {
		results[u] = outcome
	}
	return results, s.lastRun
}

// startAPI starts the HTTP API in a goroutine.
func (s *Server) startAPI() {
	s.httpSrv = &http.Server{
		Addr:              s.listen,
		Handler:           s.handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		s.logger.Infof("Starting API server on %s...", s.listen)
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Errorf("API server failed: %v", err)
		}
	}()
}
