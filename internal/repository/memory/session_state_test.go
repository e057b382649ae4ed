package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/scorepredictor-server/internal/model"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newTestRepo() (*SessionStateRepository, *clock) {
	c := &clock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	r := NewSessionStateRepository()
	r.now = c.Now
	return r, c
}

func TestSessionStateRepository_SaveGet(t *testing.T) {
	r, _ := newTestRepo()
	ctx := context.Background()

	s := model.NewSession("abc")
	s.Bind(model.PublicUser{ID: 7, Username: "alice"})
	s.LastInputs = []float64{1, 2}
	require.NoError(t, r.Save(ctx, s, time.Minute))

	s.User.Username = "mutated"
	s.LastInputs[0] = 99

	got, err := r.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.User.Username)
	assert.Equal(t, []float64{1, 2}, got.LastInputs)

	got.User.Username = "changed again"
	again, err := r.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "alice", again.User.Username)
}

func TestSessionStateRepository_Expiry(t *testing.T) {
	r, c := newTestRepo()
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, model.NewSession("short"), time.Minute))
	require.NoError(t, r.Save(ctx, model.NewSession("long"), time.Hour))

	c.now = c.now.Add(time.Minute)
	_, err := r.Get(ctx, "short")
	require.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, r.Save(ctx, model.NewSession("other"), time.Second))
	c.now = c.now.Add(time.Second)
	assert.Equal(t, 1, r.Sweep())

	_, err = r.Get(ctx, "long")
	require.NoError(t, err)
}

func TestSessionStateRepository_Invalid(t *testing.T) {
	r, _ := newTestRepo()
	ctx := context.Background()

	require.Error(t, r.Save(ctx, nil, time.Minute))
	require.Error(t, r.Save(ctx, model.NewSession(""), time.Minute))
	require.Error(t, r.Save(ctx, model.NewSession("abc"), 0))

	require.NoError(t, r.Delete(ctx, "missing"))
	_, err := r.Get(ctx, "missing")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestSessionStateRepository_RunSweeperStops(t *testing.T) {
	r, _ := newTestRepo()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		r.RunSweeper(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
