package hint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/internal/game"
	"github.com/robalobadob/wordle/internal/hint"
)

var candidates = []string{"crane", "crate", "trace", "slate", "brace", "grace", "moist"}

func TestRemaining_NoHistoryKeepsAll(t *testing.T) {
	assert.Equal(t, candidates, hint.Remaining(candidates, nil))
	assert.Equal(t, len(candidates), hint.Count(candidates, nil))
}

func TestRemaining_NarrowsAndKeepsTarget(t *testing.T) {
	g, err := game.New("grace")
	require.NoError(t, err)

	_, err = g.Submit("slate")
	require.NoError(t, err)
	left := hint.Remaining(candidates, g.History)
	assert.Contains(t, left, "grace")
	assert.NotContains(t, left, "slate")
	assert.NotContains(t, left, "moist")

	_, err = g.Submit("brace")
	require.NoError(t, err)
	assert.Equal(t, []string{"grace"}, hint.Remaining(candidates, g.History))
	assert.Equal(t, 1, hint.Count(candidates, g.History))
}

func TestConsistent_LengthMismatchIsInconsistent(t *testing.T) {
	g, err := game.New("crane")
	require.NoError(t, err)
	_, err = g.Submit("slate")
	require.NoError(t, err)
	assert.False(t, hint.Consistent("cranes", g.History))
}
