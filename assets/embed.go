// Package assets embeds the default word lists and the SQL migrations.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed words/answers.txt words/allowed.txt sql/*.sql
var FS embed.FS

const (
	AnswersFile = "words/answers.txt"
	AllowedFile = "words/allowed.txt"
)

// Migrations returns the sql/ directory as its own filesystem root.
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "sql")
	if err != nil {
		// only fails for an invalid path
		panic(err)
	}
	return sub
}
