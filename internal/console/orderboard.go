package console

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/ovenbird/bakehouse/internal/client"
)

// PollInterval is how often the board refetches the order list while
// watching.
const PollInterval = 5 * time.Second

// OrderSource is the slice of the API the board needs. The full
// client.OrdersService satisfies it.
type OrderSource interface {
	List(ctx context.Context) ([]client.Order, error)
	UpdateStatus(ctx context.Context, id uint, status string) (*client.Order, error)
}

// Board holds the admin's live view of the orders. Status changes are
// applied optimistically: the row flips immediately, then either settles on
// the server's answer or snaps back to the exact pre-update snapshot when
// the call fails.
type Board struct {
	svc OrderSource
	log *slog.Logger

	mu      sync.Mutex
	orders  map[uint]client.Order
	busy    map[uint]bool
	seq     uint64
	applied uint64

	stop chan struct{}
	done chan struct{}
}

func NewBoard(svc OrderSource, log *slog.Logger) *Board {
	if log == nil {
		log = slog.Default()
	}
	return &Board{
		svc:    svc,
		log:    log,
		orders: make(map[uint]client.Order),
		busy:   make(map[uint]bool),
	}
}

// Orders returns a copy of the current view, sorted by id.
func (b *Board) Orders() []client.Order {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]client.Order, 0, len(b.orders))
	for _, o := range b.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Refresh refetches the list. Responses landing out of order are dropped so
// a slow early fetch can never overwrite a newer one. Rows with an update in
// flight keep their optimistic value until the update settles.
func (b *Board) Refresh(ctx context.Context) error {
	b.mu.Lock()
	b.seq++
	seq := b.seq
	b.mu.Unlock()

	orders, err := b.svc.List(ctx)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if seq <= b.applied {
		return nil
	}
	b.applied = seq

	next := make(map[uint]client.Order, len(orders))
	for _, o := range orders {
		if b.busy[o.ID] {
			next[o.ID] = b.orders[o.ID]
			continue
		}
		next[o.ID] = o
	}
	b.orders = next
	return nil
}

// SetStatus transitions one order. Selecting the status a row already shows
// is a no-op and never reaches the server. While a transition is in flight
// the row refuses further transitions.
func (b *Board) SetStatus(ctx context.Context, id uint, status string) error {
	b.mu.Lock()
	current, ok := b.orders[id]
	if !ok {
		b.mu.Unlock()
		return fmt.Errorf("order %d is not on the board", id)
	}
	if current.Status == status {
		b.mu.Unlock()
		return nil
	}
	if b.busy[id] {
		b.mu.Unlock()
		return fmt.Errorf("order %d already has an update in flight", id)
	}

	snapshot := current
	b.busy[id] = true
	current.Status = status
	b.orders[id] = current
	b.mu.Unlock()

	updated, err := b.svc.UpdateStatus(ctx, id, status)

	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.busy, id)

	if err != nil {
		b.orders[id] = snapshot
		b.log.Warn("order status update failed, reverting",
			"order_id", id, "status", status, "error", err)
		return err
	}

	// the stored order wins, even if it differs from what was requested
	b.orders[id] = *updated
	return nil
}

// StartPolling refreshes the board every PollInterval until StopPolling.
func (b *Board) StartPolling(ctx context.Context) {
	b.mu.Lock()
	if b.stop != nil {
		b.mu.Unlock()
		return
	}
	b.stop = make(chan struct{})
	b.done = make(chan struct{})
	stop, done := b.stop, b.done
	b.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(PollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := b.Refresh(ctx); err != nil {
					b.log.Warn("order poll failed", "error", err)
				}
			case <-stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// StopPolling halts the poll loop and waits for it to exit.
func (b *Board) StopPolling() {
	b.mu.Lock()
	stop, done := b.stop, b.done
	b.stop, b.done = nil, nil
	b.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}
