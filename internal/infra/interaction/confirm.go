// Where: internal/infra/interaction/confirm.go
// What: Confirmation prompt using the huh library.
// Why: Give terminal users a keyboard-driven yes/no dialog.
package interaction

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
)

var runConfirmPrompt = func(in io.Reader, out io.Writer, title, description string, value *bool) error {
	confirm := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(value)
	return huh.NewForm(huh.NewGroup(confirm)).
		WithInput(in).
		WithOutput(out).
		Run()
}

// HuhConfirmer implements a yes/no confirmation with huh. It defaults to no.
// The dialog reads In and draws on Out, never on stdout.
type HuhConfirmer struct {
	In  io.Reader
	Out io.Writer
}

func (c HuhConfirmer) Confirm(title, description string) (bool, error) {
	in, out := c.In, c.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stderr
	}
	var confirmed bool
	if err := runConfirmPrompt(in, out, title, description, &confirmed); err != nil {
		return false, fmt.Errorf("prompt confirm: %w", err)
	}
	return confirmed, nil
}

// Confirmer answers a yes/no question.
type Confirmer interface {
	Confirm(title, description string) (bool, error)
}

// NewConfirmer returns the huh dialog when both in and out are terminals and
// a line prompt on out otherwise.
func NewConfirmer(in *os.File, out io.Writer) Confirmer {
	if file, ok := out.(*os.File); ok && IsTerminal(in) && IsTerminal(file) {
		return HuhConfirmer{In: in, Out: out}
	}
	return LineConfirmer{In: in, Out: out}
}
