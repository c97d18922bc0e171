// Package dispatch executes one HTTP call per due job and classifies the
// result into an Outcome for the log stream.
package dispatch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"webcron/internal/job"
)

// SecretHeader carries the shared process secret on every request. A
// job-supplied header with this name is ignored; the process value wins.
const SecretHeader = "X-Cron-Secret"

// Options configures a Dispatcher.
type Options struct {
	// Timeout bounds one attempt end to end (dial, request, response).
	Timeout time.Duration

	// MaxPerSec caps dispatches across all jobs; 0 disables the cap.
	// Waiting happens inside the dispatch goroutine, never in the tick loop.
	MaxPerSec int

	// UserAgent is applied when the job supplies no User-Agent header.
	UserAgent string
}

// Dispatcher fires jobs. One attempt per due tick, no retries: the job's
// own schedule is the retry mechanism. Dispatch never panics out and never
// returns more or less than one Outcome.
type Dispatcher struct {
	client    *http.Client
	secret    string
	userAgent string
	limiter   *rate.Limiter
	log       zerolog.Logger
}

func New(secret string, opts Options, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		client:    &http.Client{Timeout: opts.Timeout},
		secret:    secret,
		userAgent: opts.UserAgent,
		log:       log,
	}
	if d.userAgent == "" {
		d.userAgent = "webcron/1.0"
	}
	if opts.MaxPerSec > 0 {
		d.limiter = rate.NewLimiter(rate.Limit(opts.MaxPerSec), opts.MaxPerSec)
	}
	return d
}

// Dispatch issues the job's HTTP request and classifies the result.
// tick is the scheduler instant that made the job due; it becomes the
// outcome timestamp regardless of how long the call takes.
func (d *Dispatcher) Dispatch(ctx context.Context, j job.Job, tick time.Time) (out Outcome) {
	out = Outcome{Tick: tick, Method: j.Method, URL: j.URL}

	// A dispatch must always terminate in exactly one outcome, whatever
	// goes wrong below (bad header values, transport internals, ...).
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().Interface("panic", r).Str("url", j.URL).
				Str("stack", string(debug.Stack())).Msg("panic in dispatch")
			out = transportFailure(out, fmt.Errorf("panic: %v", r))
		}
	}()

	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			return transportFailure(out, err)
		}
	}

	req, err := d.buildRequest(ctx, j)
	if err != nil {
		return transportFailure(out, err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return transportFailure(out, err)
	}
	defer func() {
		// Drain a little so keep-alive connections can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		return httpFailure(out, resp.StatusCode)
	}
	return success(out, resp.StatusCode)
}

func (d *Dispatcher) buildRequest(ctx context.Context, j job.Job) (*http.Request, error) {
	var body io.Reader
	if j.Body != "" {
		body = strings.NewReader(j.Body)
	}
	req, err := http.NewRequestWithContext(ctx, j.Method, j.URL, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set(SecretHeader, d.secret)
	hasUA := false
	for _, h := range j.Headers {
		if strings.EqualFold(h.Name, SecretHeader) {
			continue
		}
		if strings.EqualFold(h.Name, "User-Agent") {
			hasUA = true
		}
		req.Header.Add(h.Name, h.Value)
	}
	if !hasUA {
		req.Header.Set("User-Agent", d.userAgent)
	}
	return req, nil
}
