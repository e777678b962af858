package game_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/internal/clue"
	"github.com/robalobadob/wordle/internal/game"
)

type setDict map[string]bool

func (d setDict) Contains(w string) bool { return d[w] }

var dict = setDict{
	"crane": true, "slate": true, "moist": true, "pudgy": true, "whelk": true,
	"fjord": true, "brace": true, "realm": true, "trace": true, "bread": true,
	"react": true, "cater": true,
}

func newGame(t *testing.T, target string, opts ...game.Option) *game.Game {
	t.Helper()
	g, err := game.New(target, append([]game.Option{game.WithDictionary(dict)}, opts...)...)
	require.NoError(t, err)
	return g
}

func TestNew_Defaults(t *testing.T) {
	g := newGame(t, "  CRANE ")
	assert.Equal(t, clue.Word("crane"), g.Target)
	assert.Equal(t, game.DefaultMaxAttempts, g.MaxAttempts)
	assert.Equal(t, game.AwaitingGuess, g.State)
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, 6, g.AttemptsLeft())
}

func TestNew_RejectsBadTarget(t *testing.T) {
	_, err := game.New("cr4ne")
	assert.ErrorIs(t, err, clue.ErrNotAlpha)

	_, err = game.New("crane", game.WithMaxAttempts(0))
	assert.Error(t, err)
}

func TestSubmit_SolvedOnMatch(t *testing.T) {
	g := newGame(t, "crane")

	a, err := g.Submit("slate")
	require.NoError(t, err)
	assert.Equal(t, "..G.G", a.Clue.String())
	assert.Equal(t, game.AwaitingGuess, g.State)

	a, err = g.Submit("CRANE")
	require.NoError(t, err)
	assert.True(t, a.Clue.Solved())
	assert.Equal(t, game.Solved, g.State)
	assert.Equal(t, 2, g.AttemptsUsed())
	assert.Equal(t, 0, g.AttemptsLeft())
	assert.False(t, g.FinishedAt.IsZero())

	_, err = g.Submit("slate")
	assert.ErrorIs(t, err, game.ErrFinished)
}

func TestSubmit_ExhaustedAfterSixMisses(t *testing.T) {
	g := newGame(t, "crane")
	misses := []string{"slate", "moist", "pudgy", "whelk", "fjord"}
	for _, w := range misses {
		_, err := g.Submit(w)
		require.NoError(t, err)
		require.Equal(t, game.AwaitingGuess, g.State)
	}
	_, err := g.Submit("brace")
	require.NoError(t, err)
	assert.Equal(t, game.Exhausted, g.State)
	assert.Len(t, g.History, 6)

	_, err = g.Submit("crane")
	assert.ErrorIs(t, err, game.ErrFinished)
}

func TestSubmit_SolvedOnLastAttempt(t *testing.T) {
	g := newGame(t, "crane", game.WithMaxAttempts(2))
	_, err := g.Submit("slate")
	require.NoError(t, err)
	_, err = g.Submit("crane")
	require.NoError(t, err)
	assert.Equal(t, game.Solved, g.State)
}

func TestSubmit_RejectionsDoNotConsumeAttempts(t *testing.T) {
	g := newGame(t, "crane")

	_, err := g.Submit("cranes")
	assert.ErrorIs(t, err, game.ErrLengthMismatch)

	_, err = g.Submit("zzzzz")
	assert.ErrorIs(t, err, game.ErrInvalidWord)

	_, err = g.Submit("cr4ne")
	assert.ErrorIs(t, err, game.ErrInvalidWord)

	assert.Equal(t, 0, g.AttemptsUsed())
	assert.Equal(t, game.AwaitingGuess, g.State)
}

func TestSubmit_NilDictionaryAcceptsAnyWord(t *testing.T) {
	g, err := game.New("crane")
	require.NoError(t, err)
	a, err := g.Submit("zzzzz")
	require.NoError(t, err)
	assert.Equal(t, ".....", a.Clue.String())
}

func TestSubmit_HardMode(t *testing.T) {
	g := newGame(t, "crane", game.WithHardMode(true))

	_, err := g.Submit("trace") // .GGYG
	require.NoError(t, err)

	_, err = g.Submit("moist")
	assert.ErrorIs(t, err, game.ErrHardMode)

	_, err = g.Submit("bread") // keeps r, a, e but moves a and e
	assert.ErrorIs(t, err, game.ErrHardMode)

	_, err = g.Submit("brace")
	require.NoError(t, err)
	assert.Equal(t, 2, g.AttemptsUsed())
}

func TestElapsed_UsesClock(t *testing.T) {
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	now := base
	g := newGame(t, "crane", game.WithClock(func() time.Time { return now }))

	now = base.Add(90 * time.Second)
	assert.Equal(t, 90*time.Second, g.Elapsed())

	_, err := g.Submit("crane")
	require.NoError(t, err)
	now = base.Add(time.Hour)
	assert.Equal(t, 90*time.Second, g.Elapsed())
}

func TestState_Text(t *testing.T) {
	b, err := game.Exhausted.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "exhausted", string(b))
	assert.True(t, game.Solved.Terminal())
	assert.False(t, game.AwaitingGuess.Terminal())
}
