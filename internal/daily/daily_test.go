package daily_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/internal/daily"
	"github.com/robalobadob/wordle/internal/db"
)

func TestDateKey_UTC(t *testing.T) {
	loc := time.FixedZone("east", 10*3600)
	ts := time.Date(2026, 3, 1, 5, 0, 0, 0, loc) // 2026-02-28 19:00 UTC
	assert.Equal(t, "2026-02-28", daily.DateKey(ts))
}

func TestWordIndex_Deterministic(t *testing.T) {
	day := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)
	later := day.Add(10 * time.Hour)

	a := daily.WordIndex(day, "salt", 390)
	assert.Equal(t, a, daily.WordIndex(later, "salt", 390), "same UTC day, same word")
	assert.GreaterOrEqual(t, a, 0)
	assert.Less(t, a, 390)

	assert.Equal(t, 0, daily.WordIndex(day, "salt", 0))

	seen := map[int]bool{}
	for i := 0; i < 30; i++ {
		seen[daily.WordIndex(day.AddDate(0, 0, i), "salt", 390)] = true
	}
	assert.Greater(t, len(seen), 1)
}

func newStore(t *testing.T) *daily.Store {
	t.Helper()
	sqlDB, err := db.OpenAndMigrate(context.Background(), filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return daily.NewStore(sqlDB)
}

func TestStore_InsertAndAlreadyPlayed(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	played, err := s.AlreadyPlayed(ctx, "u1", "2026-10-14")
	require.NoError(t, err)
	assert.False(t, played)

	require.NoError(t, s.InsertResult(ctx, daily.Result{UserID: "u1", Date: "2026-10-14", Guesses: 3, ElapsedMs: 1000, Solved: true}))
	require.NoError(t, s.InsertResult(ctx, daily.Result{UserID: "u1", Date: "2026-10-14", Guesses: 1, ElapsedMs: 10, Solved: true}))

	played, err = s.AlreadyPlayed(ctx, "u1", "2026-10-14")
	require.NoError(t, err)
	assert.True(t, played)

	top, err := s.Leaderboard(ctx, "2026-10-14", 0)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, 3, top[0].Guesses, "duplicate insert is ignored")
}

func TestStore_LeaderboardOrderingAndUnsolved(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	date := "2026-10-14"

	for _, r := range []daily.Result{
		{UserID: "slow", Date: date, Guesses: 3, ElapsedMs: 9000, Solved: true},
		{UserID: "fast", Date: date, Guesses: 3, ElapsedMs: 2000, Solved: true},
		{UserID: "few", Date: date, Guesses: 2, ElapsedMs: 50000, Solved: true},
		{UserID: "lost", Date: date, Guesses: 6, ElapsedMs: 100, Solved: false},
		{UserID: "other-day", Date: "2026-10-13", Guesses: 1, ElapsedMs: 1, Solved: true},
	} {
		require.NoError(t, s.InsertResult(ctx, r))
	}

	top, err := s.Leaderboard(ctx, date, 10)
	require.NoError(t, err)
	ids := make([]string, 0, len(top))
	for _, r := range top {
		ids = append(ids, r.UserID)
	}
	assert.Equal(t, []string{"few", "fast", "slow"}, ids)

	top, err = s.Leaderboard(ctx, date, 1)
	require.NoError(t, err)
	assert.Len(t, top, 1)
}
