package console

import (
	"context"

	"github.com/ovenbird/bakehouse/internal/client"
)

// ReviewDesk is the moderation slice of the API client.
type ReviewDesk interface {
	SetStatus(ctx context.Context, id uint, status string) (*client.Review, error)
	ModerationStats(ctx context.Context) (*client.ReviewStats, error)
}

// Moderator drives the review queue. Every verdict is a status write; the
// server owns the state, including putting a review back to pending.
type Moderator struct {
	svc ReviewDesk
}

func NewModerator(svc ReviewDesk) *Moderator {
	return &Moderator{svc: svc}
}

func (m *Moderator) Approve(ctx context.Context, id uint) (*client.Review, error) {
	return m.svc.SetStatus(ctx, id, "approved")
}

func (m *Moderator) Reject(ctx context.Context, id uint) (*client.Review, error) {
	return m.svc.SetStatus(ctx, id, "rejected")
}

// Reset returns a review to the moderation queue.
func (m *Moderator) Reset(ctx context.Context, id uint) (*client.Review, error) {
	return m.svc.SetStatus(ctx, id, "pending")
}

func (m *Moderator) Counts(ctx context.Context) (*client.ReviewStats, error) {
	return m.svc.ModerationStats(ctx)
}
