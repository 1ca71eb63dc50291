// Where: internal/infra/ui/style.go
// What: lipgloss styles and color-profile selection.
// Why: Color lookups on a terminal, plain text everywhere else.
package ui

import (
	"os"

	"github.com/antipatico/portid/internal/infra/interaction"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	headerStyle      = lipgloss.NewStyle().Bold(true)
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	protocolStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	serviceStyle     = lipgloss.NewStyle().Bold(true)
	descriptionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// ConfigureColor enables colors only when out is a terminal and NO_COLOR is unset.
// It reports whether styling is active.
func ConfigureColor(out *os.File) bool {
	if interaction.IsTerminal(out) && os.Getenv("NO_COLOR") == "" {
		lipgloss.SetColorProfile(termenv.NewOutput(out).EnvColorProfile())
		return true
	}
	lipgloss.SetColorProfile(termenv.Ascii)
	return false
}

// Palette styles lookup results. The zero value renders plain text.
type Palette struct {
	Enabled bool
}

func (p Palette) Protocol(s string) string {
	return p.render(protocolStyle, s)
}

func (p Palette) Service(s string) string {
	return p.render(serviceStyle, s)
}

func (p Palette) Description(s string) string {
	return p.render(descriptionStyle, s)
}

func (p Palette) render(style lipgloss.Style, s string) string {
	if !p.Enabled {
		return s
	}
	return style.Render(s)
}
