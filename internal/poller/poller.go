// Package poller maintains a periodically refreshed read view of the
// directory for interactive consumers.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"chatops.app/courier/common/logger"
	"chatops.app/courier/internal/model"
)

// Loader is the read side of the directory store the poller refreshes from.
type Loader interface {
	Load(ctx context.Context) (model.Directory, error)
}

type Config struct {
	Interval time.Duration
}

// DirectoryPoller replaces its cached directory snapshot wholesale on every
// successful tick. A failed tick keeps the previous snapshot and waits for
// the next interval. New snapshots are also published on a single-writer
// channel so UI consumers never race the timer.
type DirectoryPoller struct {
	loader   Loader
	interval time.Duration

	mu       sync.RWMutex
	snapshot model.Directory
	fresh    bool

	updates chan model.Directory

	stopOnce  sync.Once
	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func New(loader Loader, cfg Config) *DirectoryPoller {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &DirectoryPoller{
		loader:    loader,
		interval:  interval,
		updates:   make(chan model.Directory, 1),
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Run starts the poll loop. Blocks until Stop() is called or the context is
// cancelled. An immediate first refresh happens before the first tick so
// consumers don't wait a full interval for data.
func (p *DirectoryPoller) Run(ctx context.Context) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "courier.poller",
	})

	defer close(p.stoppedCh)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "directory poller started", "interval", p.interval)

	p.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopCh:
			slog.InfoContext(ctx, "directory poller stopping")
			return
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

// Stop signals the poller to stop and waits for the loop to exit. After Stop
// returns, no further reads are issued and any in-flight read result has
// been discarded.
func (p *DirectoryPoller) Stop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
	<-p.stoppedCh
}

// Snapshot returns the last successfully loaded directory and whether any
// load has succeeded yet.
func (p *DirectoryPoller) Snapshot() (model.Directory, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot, p.fresh
}

// Updates delivers each new snapshot. The channel has a one-element buffer
// and stale snapshots are dropped in favor of newer ones.
func (p *DirectoryPoller) Updates() <-chan model.Directory {
	return p.updates
}

func (p *DirectoryPoller) refresh(ctx context.Context) {
	dir, err := p.loader.Load(ctx)
	if err != nil {
		slog.WarnContext(ctx, "directory refresh failed, keeping previous snapshot", "error", err)
		return
	}

	select {
	case <-p.stopCh:
		// Stopped while the read was in flight; discard the result.
		return
	default:
	}

	p.mu.Lock()
	p.snapshot = dir
	p.fresh = true
	p.mu.Unlock()

	select {
	case p.updates <- dir:
	default:
		// Consumer is behind; drop the stale pending snapshot and queue the
		// latest one.
		select {
		case <-p.updates:
		default:
		}
		select {
		case p.updates <- dir:
		default:
		}
	}

	slog.DebugContext(ctx, "directory snapshot refreshed", "contacts", len(dir))
}
