// Package health exposes a thin read-only probe of the shared store.
package health

import (
	"context"
	"log/slog"
	"time"

	"chatops.app/courier/common/logger"
)

// Pinger is the slice of the store handle the probe needs.
type Pinger interface {
	Ping(ctx context.Context) error
	SampleKeys(ctx context.Context, n int) ([]string, error)
}

// Status is the probe result. Connected false always comes with a non-nil
// Error. SampleKeys is best-effort evidence that the store holds data.
type Status struct {
	Connected  bool     `json:"connected"`
	Error      *string  `json:"error"`
	SampleKeys []string `json:"sampleKeys"`
}

type Config struct {
	Timeout    time.Duration
	SampleSize int
}

// Probe checks store connectivity within the configured timeout. It never
// hangs: an unreachable store yields a deterministic failure status within
// the bound, not an error.
func Probe(ctx context.Context, store Pinger, cfg Config) Status {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	sampleSize := cfg.SampleSize
	if sampleSize <= 0 {
		sampleSize = 5
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "courier.health"})
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type pingResult struct {
		keys []string
		err  error
	}
	resultCh := make(chan pingResult, 1)

	go func() {
		if err := store.Ping(ctx); err != nil {
			resultCh <- pingResult{err: err}
			return
		}
		keys, err := store.SampleKeys(ctx, sampleSize)
		if err != nil {
			// Connectivity is proven by the ping; a failed sample scan is
			// reported but doesn't flip the status.
			slog.WarnContext(ctx, "health probe key sample failed", "error", err)
			keys = nil
		}
		resultCh <- pingResult{keys: keys}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			msg := res.err.Error()
			return Status{Connected: false, Error: &msg, SampleKeys: []string{}}
		}
		if res.keys == nil {
			res.keys = []string{}
		}
		return Status{Connected: true, SampleKeys: res.keys}
	case <-ctx.Done():
		msg := "store probe timed out after " + timeout.String()
		slog.WarnContext(ctx, "health probe timed out", "timeout", timeout)
		return Status{Connected: false, Error: &msg, SampleKeys: []string{}}
	}
}
