package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "cardly/internal/domain/activationevent/valueobjects"
)

func TestActivationEventRepository_Queries(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	steppedClock(t, start)

	c := createCard(t, r, nil, "Events")
	other := createCard(t, r, nil, "Other")

	first := appendEvent(t, r, c.ID(), "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0) Mobile")
	appendEvent(t, r, c.ID(), "Mozilla/5.0 (iPad; CPU OS 17_0)")
	last := appendEvent(t, r, c.ID(), "Mozilla/5.0 (Windows NT 10.0)")
	appendEvent(t, r, other.ID(), "curl/8.0")

	t.Run("list oldest first", func(t *testing.T) {
		events, err := r.events.ListByCard(ctx, c.ID())
		require.NoError(t, err)
		require.Len(t, events, 3)
		assert.Equal(t, first.ID(), events[0].ID())
		assert.Equal(t, vo.DeviceMobile, events[0].DeviceType())
		assert.Equal(t, vo.DeviceTablet, events[1].DeviceType())
		assert.Equal(t, vo.DeviceDesktop, events[2].DeviceType())
	})

	t.Run("recent newest first", func(t *testing.T) {
		events, err := r.events.ListRecentByCard(ctx, c.ID(), 2)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, last.ID(), events[0].ID())
	})

	t.Run("since", func(t *testing.T) {
		events, err := r.events.ListByCardSince(ctx, c.ID(), last.CreatedAt())
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, last.ID(), events[0].ID())
	})

	t.Run("counts", func(t *testing.T) {
		n, err := r.events.CountByCard(ctx, c.ID())
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)

		counts, err := r.events.CountByCards(ctx, []uint{c.ID(), other.ID(), 999})
		require.NoError(t, err)
		assert.Equal(t, int64(3), counts[c.ID()])
		assert.Equal(t, int64(1), counts[other.ID()])
		_, ok := counts[999]
		assert.False(t, ok)
	})

	t.Run("last viewed", func(t *testing.T) {
		at, err := r.events.LastViewedAt(ctx, c.ID())
		require.NoError(t, err)
		require.NotNil(t, at)
		assert.True(t, at.Equal(last.CreatedAt()))

		none := createCard(t, r, nil, "Never")
		at, err = r.events.LastViewedAt(ctx, none.ID())
		require.NoError(t, err)
		assert.Nil(t, at)
	})

	t.Run("delete by card", func(t *testing.T) {
		n, err := r.events.DeleteByCard(ctx, c.ID())
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)

		left, err := r.events.CountByCard(ctx, other.ID())
		require.NoError(t, err)
		assert.Equal(t, int64(1), left)
	})
}
