package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/internal/game"
	"github.com/robalobadob/wordle/internal/store"
)

func TestMemory_SaveGet(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	g, err := game.New("crane")
	require.NoError(t, err)
	require.NoError(t, st.Save(ctx, g))

	got, err := st.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Same(t, g, got)

	_, err = st.Get(ctx, "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMemory_UpdateSerializesSubmissions(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	g, err := game.New("crane", game.WithMaxAttempts(50))
	require.NoError(t, err)
	require.NoError(t, st.Save(ctx, g))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = st.Update(ctx, g.ID, func(g *game.Game) error {
				_, err := g.Submit("slate")
				return err
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, g.AttemptsUsed())
}

func TestMemory_UpdatePropagatesErrors(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	boom := errors.New("boom")

	assert.ErrorIs(t, st.Update(ctx, "missing", func(*game.Game) error { return nil }), store.ErrNotFound)

	g, err := game.New("crane")
	require.NoError(t, err)
	require.NoError(t, st.Save(ctx, g))
	assert.ErrorIs(t, st.Update(ctx, g.ID, func(*game.Game) error { return boom }), boom)
}

func TestMemory_TTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	st := store.NewMemoryStore(store.WithTTL(time.Minute), store.WithClock(func() time.Time { return now }))

	g, err := game.New("crane")
	require.NoError(t, err)
	require.NoError(t, st.Save(ctx, g))

	now = now.Add(30 * time.Second)
	require.NoError(t, st.Update(ctx, g.ID, func(*game.Game) error { return nil }))

	now = now.Add(45 * time.Second)
	_, err = st.Get(ctx, g.ID)
	require.NoError(t, err, "update refreshed the idle window")

	now = now.Add(2 * time.Minute)
	_, err = st.Get(ctx, g.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMemory_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	st := store.NewMemoryStore()
	_, err := st.Get(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}
