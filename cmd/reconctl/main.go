package main

import (
	"os"

	"github.com/SscSPs/ledger_reconciler/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
