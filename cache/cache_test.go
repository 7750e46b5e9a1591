package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"hostelhub/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewRedis(context.Background(), mr.Addr(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRedisRoundTripAndInvalidate(t *testing.T) {
	c, _ := newTestRedis(t)
	ctx := context.Background()
	room := "A-12"

	_, ok := c.Get(ctx, "s1")
	assert.False(t, ok)

	c.Set(ctx, &models.Student{ID: "s1", Name: "Asha", AmountToPay: 3500, RoomNumber: &room})
	got, ok := c.Get(ctx, "s1")
	require.True(t, ok)
	assert.Equal(t, "Asha", got.Name)
	assert.Equal(t, 3500.0, got.AmountToPay)
	require.NotNil(t, got.RoomNumber)
	assert.Equal(t, "A-12", *got.RoomNumber)

	c.Invalidate(ctx, "s1")
	_, ok = c.Get(ctx, "s1")
	assert.False(t, ok)
}

func TestRedisEntriesExpire(t *testing.T) {
	c, mr := newTestRedis(t)
	ctx := context.Background()

	c.Set(ctx, &models.Student{ID: "s2", Name: "Ravi"})
	mr.FastForward(defaultTTL + time.Second)

	_, ok := c.Get(ctx, "s2")
	assert.False(t, ok)
}

func TestNewRedisFailsWithoutServer(t *testing.T) {
	_, err := NewRedis(context.Background(), "127.0.0.1:1", slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}
