// Where: internal/commands/error_helpers.go
// What: Error reporting for command handlers.
// Why: Print one line per failure and map every failure to exit code 1.
package commands

import (
	"errors"
	"io"
	"strings"

	"github.com/antipatico/portid/internal/domain/portdb"
	"github.com/antipatico/portid/internal/infra/ui"
)

// exitWithError prints an error message to the output writer and returns
// exit code 1 for CLI error handling.
func exitWithError(out io.Writer, err error) int {
	if errors.Is(err, portdb.ErrDatabaseUnreadable) {
		return exitWithSuggestion(out, err, []string{"Run `portid update-db` to download a fresh copy"})
	}
	ui.New(out).Error(singleLine(err))
	return 1
}

// exitWithSuggestion prints an error with suggested next steps.
func exitWithSuggestion(out io.Writer, err error, suggestions []string) int {
	console := ui.New(out)
	console.Error(singleLine(err))
	for _, s := range suggestions {
		console.Info("  " + s)
	}
	return 1
}

func singleLine(err error) string {
	return strings.Join(strings.Fields(err.Error()), " ")
}
