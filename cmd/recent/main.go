package main

import (
	"os"

	"github.com/moasq/recent/internal/commands"
	"github.com/moasq/recent/internal/terminal"
)

func main() {
	if err := commands.Execute(); err != nil {
		terminal.Error(os.Stderr, err.Error())
		os.Exit(1)
	}
}
