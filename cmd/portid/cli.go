// Where: cmd/portid/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"os"

	"github.com/antipatico/portid/internal/commands"
	"github.com/antipatico/portid/internal/infra/fetch"
	"github.com/antipatico/portid/internal/infra/interaction"
	"github.com/antipatico/portid/internal/infra/ui"
)

var (
	stdin      = os.Stdin
	stdout     = os.Stdout
	stderr     = os.Stderr
	isTerminal = interaction.IsTerminal
)

// buildDependencies wires the real terminal: colors follow stdout, the
// progress bar and emoji follow stderr, and the prompt follows stdin.
func buildDependencies() commands.Dependencies {
	return commands.Dependencies{
		Out:         stdout,
		ErrOut:      stderr,
		Confirmer:   interaction.NewConfirmer(stdin, stderr),
		Interactive: isTerminal(stderr),
		Color:       ui.ConfigureColor(stdout),
		NewSource:   fetch.New,
	}
}
