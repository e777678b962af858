package render_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/internal/clue"
	"github.com/robalobadob/wordle/internal/game"
	"github.com/robalobadob/wordle/internal/render"
)

func played(t *testing.T, target string, guesses ...string) *game.Game {
	t.Helper()
	g, err := game.New(target)
	require.NoError(t, err)
	for _, w := range guesses {
		_, err := g.Submit(w)
		require.NoError(t, err)
	}
	return g
}

func TestSymbols(t *testing.T) {
	c := clue.Clue{clue.Correct, clue.Present, clue.Absent}
	assert.Equal(t, "🟩🟨⬛", render.Symbols(c))
}

func TestShare_Solved(t *testing.T) {
	g := played(t, "crane", "slate", "crane")
	assert.Equal(t, "Wordle 2/6\n\n⬛⬛🟩⬛🟩\n🟩🟩🟩🟩🟩", render.Share("Wordle", g))
}

func TestShare_ExhaustedHardMode(t *testing.T) {
	g, err := game.New("crane", game.WithMaxAttempts(1), game.WithHardMode(true))
	require.NoError(t, err)
	_, err = g.Submit("moist")
	require.NoError(t, err)
	assert.Equal(t, "Wordle X/1*\n\n⬛⬛⬛⬛⬛", render.Share("Wordle", g))
}

func TestRenderer_PlainWriterKeepsLetters(t *testing.T) {
	var buf bytes.Buffer
	r := render.New(&buf)
	g := played(t, "crane", "slate", "trace")

	board := r.Board(g)
	lines := strings.Split(board, "\n")
	require.Len(t, lines, 2)
	for i, want := range []string{"SLATE", "TRACE"} {
		for _, l := range want {
			assert.Contains(t, lines[i], string(l))
		}
	}
	assert.NotContains(t, board, "\x1b[", "non-terminal writer gets no escapes")
	assert.Contains(t, r.Muted("3 words left"), "3 words left")
}
