// Package checker orchestrates concurrent URL status checks.
//
// A Checker reads URLs line by line from a source reader, probes each
// one on a bounded worker pool, and returns the outcomes as a single
// URL-keyed map once every probe has finished. Per-URL failures become
// outcome strings; only a failure of the source itself or of the drain
// wait aborts the run, and then no partial map is returned.
package checker

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/urlstat/urlstat/pkg/pool"
	"github.com/urlstat/urlstat/pkg/probe"
)

const (
	// DefaultWorkers is the default worker count.
	DefaultWorkers = 4

	// DefaultTimeout is the default per-probe timeout.
	DefaultTimeout = 2 * time.Second
)

var (
	// ErrSourceRead reports that the URL source failed mid-enumeration.
	ErrSourceRead = errors.New("checker: reading url source failed")

	// ErrDrain reports that waiting for probe completions was aborted.
	ErrDrain = errors.New("checker: awaiting completions failed")
)

// ResultSet maps each checked URL to its outcome string. Duplicate
// URLs in the source collapse to the last outcome seen.
type ResultSet map[string]string

// Checker runs one check over a URL source. A Checker consumes its
// source; create a new one with a fresh reader to run again.
type Checker struct {
	source  io.Reader
	workers int
	timeout time.Duration
	logger  *logrus.Logger
}

// Option is a functional option for configuring a Checker.
type Option func(*Checker) error

// WithWorkers sets the worker count.
func WithWorkers(n int) Option {
	return func(c *Checker) error {
		if n < 1 {
			return fmt.Errorf("worker count must be positive, got %d", n)
		}
		c.workers = n
		return nil
	}
}

// WithTimeout sets the per-probe timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) error {
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %v", d)
		}
		c.timeout = d
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l *logrus.Logger) Option {
	return func(c *Checker) error {
		if l == nil {
			return fmt.Errorf("logger must not be nil")
		}
		c.logger = l
		return nil
	}
}

// New creates a Checker reading URLs from r, one per line.
func New(r io.Reader, opts ...Option) (*Checker, error) {
	if r == nil {
		return nil, fmt.Errorf("checker: a source reader is required")
	}

	c := &Checker{
		source:  r,
		workers: DefaultWorkers,
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("checker: %w", err)
		}
	}

	if c.logger == nil {
		c.logger = logrus.StandardLogger()
	}

	return c, nil
}

// Run checks every URL in the source and returns the completed
// ResultSet. Submission and draining are two distinct phases: the
// source is read to the end first, then exactly one completion per
// submitted URL is collected. On a source read failure or an aborted
// drain Run returns nil and an error wrapping ErrSourceRead or
// ErrDrain respectively; the pool is shut down on every exit path.
func (c *Checker) Run(ctx context.Context) (ResultSet, error) {
	prober, err := probe.New(probe.WithTimeout(c.timeout))
	if err != nil {
		return nil, err
	}

	p := pool.New(c.workers)
	defer p.Shutdown()

	outstanding := 0
	scanner := bufio.NewScanner(c.source)
	for scanner.Scan() {
		target := probe.Normalize(scanner.Text())
		err := p.Submit(func() probe.Result {
			return prober.Do(ctx, target)
		})
		if err != nil {
			return nil, fmt.Errorf("checker: submitting probe: %w", err)
		}
		outstanding++
	}

	readErr := scanner.Err()
	c.closeSource()
	if readErr != nil {
		c.logger.WithError(readErr).Error("Failed to read url source")
		return nil, fmt.Errorf("%w: %v", ErrSourceRead, readErr)
	}

	c.logger.Debugf("Submitted %d probes with %d workers", outstanding, c.workers)

	results := make(ResultSet, outstanding)
	for outstanding > 0 {
		res, err := p.Take(ctx)
		if err != nil {
			c.logger.WithError(err).Error("Aborted while awaiting probe completions")
			return nil, fmt.Errorf("%w: %v", ErrDrain, err)
		}
		results[res.URL] = res.Outcome
		outstanding--
	}

	return results, nil
}

// closeSource closes the source when it is a Closer. A close failure
// is not critical; it is logged and the run continues.
func (c *Checker) closeSource() {
	closer, ok := c.source.(io.Closer)
	if !ok {
		return
	}
	if err := closer.Close(); err != nil {
		c.logger.WithError(err).Warn("Failed to close url source")
	}
}
