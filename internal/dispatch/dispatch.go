// Package dispatch sweeps due reminders and pushes them out through
// the messaging channel. It is trigger-driven: an external scheduler
// hits the dispatch endpoint, or the optional Loop runs a ticker.
package dispatch

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/HendryAvila/anota/internal/store"
)

// Sender is the outbound channel: deliver body to the recipient
// address, or fail with a transport error.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

// Dispatcher selects due, undelivered reminders and sends each one,
// marking it delivered on success. A nil sender disables delivery
// entirely (reminders accumulate until one is configured).
type Dispatcher struct {
	store  *store.Store
	sender Sender
	log    *zap.Logger
}

// New creates a Dispatcher. sender may be nil when outbound
// credentials are absent.
func New(st *store.Store, sender Sender, log *zap.Logger) *Dispatcher {
	return &Dispatcher{store: st, sender: sender, log: log}
}

// Run performs one sweep at the given instant and returns the number
// of reminders delivered. A failed send leaves its reminder
// undelivered for the next sweep and never aborts the rest of the
// batch; the sweep itself only fails when the due selection does.
//
// Overlapping sweeps are tolerated: delivered only ever upgrades, so
// the worst case is a duplicate send, not a lost or corrupted record.
func (d *Dispatcher) Run(ctx context.Context, now time.Time) (int, error) {
	if d.sender == nil {
		d.log.Debug("dispatch skipped: outbound channel not configured")
		return 0, nil
	}

	due, err := d.store.DueReminders(now)
	if err != nil {
		d.log.Error("dispatch: selecting due reminders", zap.Error(err))
		return 0, err
	}

	delivered := 0
	for _, r := range due {
		if err := d.sender.Send(ctx, r.Owner, r.Body); err != nil {
			d.log.Warn("dispatch: delivery failed, will retry next sweep",
				zap.String("reminder", r.ID),
				zap.String("owner", r.Owner),
				zap.Error(err))
			continue
		}
		if err := d.store.MarkDelivered(r.ID); err != nil {
			// The message went out but the flag didn't stick; the next
			// sweep re-selects it and the user may get a duplicate.
			d.log.Error("dispatch: marking delivered",
				zap.String("reminder", r.ID),
				zap.Error(err))
			continue
		}
		delivered++
	}

	if len(due) > 0 {
		d.log.Info("dispatch sweep done",
			zap.Int("due", len(due)),
			zap.Int("delivered", delivered))
	}
	return delivered, nil
}

// Loop runs sweeps on a fixed interval until ctx is cancelled. It is
// optional; the dispatch endpoint remains the contract path for
// external schedulers either way.
func (d *Dispatcher) Loop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	d.log.Info("reminder loop started", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = d.Run(ctx, time.Now().UTC())
		}
	}
}
