package main

import (
	"os"

	"github.com/robalobadob/wordle/cmd/wordle/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
