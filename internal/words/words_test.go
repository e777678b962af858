package words_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/internal/words"
)

func writeList(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_EmbeddedDefaults(t *testing.T) {
	l, err := words.Load(words.Options{})
	require.NoError(t, err)

	a, g := l.Stats()
	assert.Greater(t, a, 100)
	assert.Greater(t, g, a)
	assert.Equal(t, 5, l.Length())

	assert.True(t, l.IsAnswer("crane"))
	assert.True(t, l.Contains("CRANE"), "lookups fold case")
	assert.True(t, l.Contains("lulls"), "allowed-only word")
	assert.False(t, l.IsAnswer("lulls"))
	assert.False(t, l.Contains("qqqqq"))
}

func TestLoad_BothFiles(t *testing.T) {
	ans := writeList(t, "answers.txt", "# comment\nCrane\n\nslate\ntoolong\nab1de\ncrane\n")
	all := writeList(t, "allowed.txt", "zesty\n")

	l, err := words.Load(words.Options{AnswersFile: ans, AllowedFile: all})
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "slate"}, l.Answers())
	assert.Equal(t, []string{"crane", "slate", "zesty"}, l.Allowed())
}

func TestLoad_AllowedOnlyUsedForBoth(t *testing.T) {
	all := writeList(t, "allowed.txt", "zesty\nquirk\n")
	l, err := words.Load(words.Options{AllowedFile: all})
	require.NoError(t, err)
	assert.Equal(t, []string{"zesty", "quirk"}, l.Answers())
	assert.True(t, l.IsAnswer("quirk"))
}

func TestLoad_Errors(t *testing.T) {
	_, err := words.Load(words.Options{AllowedFile: filepath.Join(t.TempDir(), "missing.txt")})
	assert.Error(t, err)

	empty := writeList(t, "answers.txt", "# nothing\n")
	_, err = words.Load(words.Options{AnswersFile: empty, AllowedFile: empty})
	assert.ErrorIs(t, err, words.ErrEmpty)
}

func TestNew_CustomLength(t *testing.T) {
	l, err := words.New(4, []string{"tree", "crane", "BOLT"}, []string{"pine"})
	require.NoError(t, err)
	assert.Equal(t, []string{"tree", "bolt"}, l.Answers())
	assert.True(t, l.Contains("pine"))
	assert.False(t, l.Contains("crane"))
}

func TestRandomAndAnswer(t *testing.T) {
	l, err := words.New(5, []string{"crane", "slate", "moist"}, nil)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		assert.True(t, l.IsAnswer(l.Random()))
	}
	assert.Equal(t, "crane", l.Answer(3))
	assert.Equal(t, "moist", l.Answer(-1))
}
