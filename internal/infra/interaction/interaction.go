// Where: internal/infra/interaction/interaction.go
// What: Interactive primitives for CLI prompts and TTY detection.
// Why: Keep the refresh confirmation independent from terminal I/O.
package interaction

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// IsTerminal reports whether the file refers to a terminal device.
var IsTerminal = func(file *os.File) bool {
	if file == nil {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// PromptYesNoWithIO prints a confirmation prompt to out and reads the answer from in.
// Only "y" and "yes" (any case) count as yes.
func PromptYesNoWithIO(in io.Reader, out io.Writer, message string) (bool, error) {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stderr
	}
	reader := bufio.NewReader(in)
	_, _ = fmt.Fprintf(out, "%s [y/N]: ", message)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	trimmed := strings.TrimSpace(strings.ToLower(line))
	return trimmed == "y" || trimmed == "yes", nil
}

// LineConfirmer asks on plain text streams, for pipes and dumb terminals.
type LineConfirmer struct {
	In  io.Reader
	Out io.Writer
}

func (c LineConfirmer) Confirm(title, description string) (bool, error) {
	out := c.Out
	if out == nil {
		out = os.Stderr
	}
	if description != "" {
		_, _ = fmt.Fprintf(out, "%s\n\n", description)
	}
	return PromptYesNoWithIO(c.In, out, title)
}
