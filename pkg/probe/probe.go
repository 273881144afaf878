// Package probe performs single-shot HTTP reachability probes.
//
// A probe issues one HEAD request against a URL and reduces whatever
// happens to a single outcome string: the numeric status code when the
// server answered, or a failure description otherwise. Failures never
// escape a probe as errors; they are part of the result. This keeps one
// bad URL from affecting the rest of a batch.
package probe

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultTimeout is the default per-request timeout.
const DefaultTimeout = 2 * time.Second

// Result pairs a URL with the outcome of probing it. Outcome is either
// a numeric HTTP status code rendered as text (e.g. "200", "301") or a
// failure description. A Result is never mutated after construction.
type Result struct {
	URL     string
	Outcome string
}

// Prober issues HTTP HEAD probes with a fixed per-request timeout.
// Redirects are never followed; a 3xx answer is reported as-is.
type Prober struct {
	timeout time.Duration
	client  *http.Client
}

// Option is a functional option for configuring a Prober.
type Option func(*Prober) error

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(p *Prober) error {
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %v", d)
		}
		p.timeout = d
		return nil
	}
}

// New creates a Prober with the given options.
func New(opts ...Option) (*Prober, error) {
	p := &Prober{
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, fmt.Errorf("probe: %w", err)
		}
	}

	p.client = &http.Client{
		Timeout: p.timeout,
		CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return p, nil
}

// Do probes a single URL and returns its Result. The target should
// already be normalized (see Normalize); it may still be malformed, in
// which case the parse error text becomes the outcome and no connection
// is attempted. Every failure during the request is captured in the
// outcome, never returned. The response body is closed on every path.
func (p *Prober) Do(ctx context.Context, target string) Result {
	if _, err := url.Parse(target); err != nil {
		return Result{URL: target, Outcome: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return Result{URL: target, Outcome: describeFailure(err)}
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return Result{URL: target, Outcome: describeFailure(err)}
	}
	defer resp.Body.Close()

	return Result{URL: target, Outcome: strconv.Itoa(resp.StatusCode)}
}
