package console

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ovenbird/bakehouse/internal/client"
)

type fakeDesk struct {
	lastStatus string
	stats      client.ReviewStats
}

func (f *fakeDesk) SetStatus(ctx context.Context, id uint, status string) (*client.Review, error) {
	f.lastStatus = status
	return &client.Review{ID: id, Status: status}, nil
}

func (f *fakeDesk) ModerationStats(ctx context.Context) (*client.ReviewStats, error) {
	return &f.stats, nil
}

func TestModeratorVerdicts(t *testing.T) {
	desk := &fakeDesk{}
	m := NewModerator(desk)
	ctx := context.Background()

	rev, err := m.Approve(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "approved", rev.Status)

	rev, err = m.Reject(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "rejected", rev.Status)

	rev, err = m.Reset(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "pending", rev.Status)
	require.Equal(t, "pending", desk.lastStatus)
}

func TestModeratorCounts(t *testing.T) {
	desk := &fakeDesk{stats: client.ReviewStats{Pending: 3, Approved: 10, Rejected: 2}}
	m := NewModerator(desk)

	counts, err := m.Counts(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(3), counts.Pending)
	require.Equal(t, int64(10), counts.Approved)
	require.Equal(t, int64(2), counts.Rejected)
}
