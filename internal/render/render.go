// Package render turns clues into terminal output: coloured letter tiles for
// play and an emoji grid for sharing.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/wordle/internal/clue"
	"github.com/robalobadob/wordle/internal/game"
)

// Tile colours
var (
	CorrectColor = lipgloss.Color("#6aaa64")
	PresentColor = lipgloss.Color("#c9b458")
	AbsentColor  = lipgloss.Color("#787c7e")
	TileText     = lipgloss.Color("#ffffff")
)

// Renderer holds per-classification tile styles bound to an output.
type Renderer struct {
	correct lipgloss.Style
	present lipgloss.Style
	absent  lipgloss.Style
	muted   lipgloss.Style
}

// New returns a Renderer whose colour profile is detected from w; a writer
// that is not a terminal gets plain text.
func New(w io.Writer) *Renderer {
	r := lipgloss.NewRenderer(w)
	tile := r.NewStyle().Bold(true).Padding(0, 1).Foreground(TileText)
	return &Renderer{
		correct: tile.Background(CorrectColor),
		present: tile.Background(PresentColor),
		absent:  tile.Background(AbsentColor),
		muted:   r.NewStyle().Faint(true),
	}
}

func (r *Renderer) style(c clue.Classification) lipgloss.Style {
	switch c {
	case clue.Correct:
		return r.correct
	case clue.Present:
		return r.present
	default:
		return r.absent
	}
}

// Tile renders one uppercase letter in the colour of its classification.
func (r *Renderer) Tile(letter rune, c clue.Classification) string {
	return r.style(c).Render(strings.ToUpper(string(letter)))
}

// Row renders one attempt as a line of tiles.
func (r *Renderer) Row(a game.Attempt) string {
	letters := []rune(string(a.Guess))
	tiles := make([]string, len(letters))
	for i, l := range letters {
		var c clue.Classification
		if i < len(a.Clue) {
			c = a.Clue[i]
		}
		tiles[i] = r.Tile(l, c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}

// Board renders every attempt so far, one per line.
func (r *Renderer) Board(g *game.Game) string {
	rows := make([]string, 0, len(g.History))
	for _, a := range g.History {
		rows = append(rows, r.Row(a))
	}
	return strings.Join(rows, "\n")
}

// Muted renders secondary text such as hint counts.
func (r *Renderer) Muted(s string) string { return r.muted.Render(s) }

// Symbol maps a classification to its share-grid square.
func Symbol(c clue.Classification) string {
	switch c {
	case clue.Correct:
		return "🟩"
	case clue.Present:
		return "🟨"
	default:
		return "⬛"
	}
}

// Symbols renders a clue as a row of squares.
func Symbols(c clue.Clue) string {
	var b strings.Builder
	for _, x := range c {
		b.WriteString(Symbol(x))
	}
	return b.String()
}

// Share renders the spoiler-free grid: a "n/max" header (X when exhausted)
// followed by one row of squares per attempt.
func Share(title string, g *game.Game) string {
	score := "X"
	if g.State == game.Solved {
		score = fmt.Sprint(g.AttemptsUsed())
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s/%d", title, score, g.MaxAttempts)
	if g.HardMode {
		b.WriteString("*")
	}
	b.WriteString("\n")
	for _, a := range g.History {
		b.WriteString("\n")
		b.WriteString(Symbols(a.Clue))
	}
	return b.String()
}
