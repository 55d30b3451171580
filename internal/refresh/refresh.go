package refresh

import (
	"context"
	"fmt"
	"os"
	"time"
)

// Reloader swaps in a fresh corpus snapshot.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Refresher periodically reloads the corpus so a running server picks
// up re-imported catalogues without a restart.
type Refresher struct {
	target   Reloader
	interval time.Duration
}

// New creates a refresher. A non-positive interval disables the loop.
func New(target Reloader, interval time.Duration) *Refresher {
	return &Refresher{target: target, interval: interval}
}

// Run starts the refresh loop. Blocks until ctx is cancelled. Returns
// immediately when refreshing is disabled.
func (r *Refresher) Run(ctx context.Context) error {
	if r.interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	fmt.Fprintf(os.Stderr, "refresh: reloading corpus every %s\n", r.interval)

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(os.Stderr, "refresh: stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := r.target.Reload(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "refresh: reload error: %v\n", err)
			}
		}
	}
}
