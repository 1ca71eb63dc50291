// Where: internal/commands/output.go
// What: Result rendering for text, JSON, YAML and Go templates.
// Why: Keep lookup output scriptable without changing the default text form.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/antipatico/portid/internal/domain/portdb"
	"github.com/antipatico/portid/internal/infra/ui"
	"gopkg.in/yaml.v3"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

type renderer struct {
	out     io.Writer
	output  string
	tmpl    *template.Template
	palette ui.Palette
}

// newRenderer parses the --format template up front so a bad template fails
// before any download.
func newRenderer(out io.Writer, output, format string, palette ui.Palette) (*renderer, error) {
	r := &renderer{out: out, output: output, palette: palette}
	if r.output == "" {
		r.output = outputText
	}
	if strings.TrimSpace(format) != "" {
		tmpl, err := template.New("format").Funcs(sprig.TxtFuncMap()).Parse(format)
		if err != nil {
			return nil, fmt.Errorf("parse --format template: %w", err)
		}
		r.tmpl = tmpl
	}
	return r, nil
}

// Identification writes one line per match in text mode; an unknown port
// prints nothing.
func (r *renderer) Identification(result portdb.Identification) error {
	if r.tmpl != nil {
		return eachTemplate(r, result.Matches)
	}
	switch r.output {
	case outputJSON:
		return r.json(result)
	case outputYAML:
		return r.yaml(result)
	}
	for _, m := range result.Matches {
		writeLine(r.out, fmt.Sprintf("%s %s %s",
			r.palette.Protocol(fmt.Sprintf("%d/%s", m.Port, m.Protocol)),
			r.palette.Service(m.Name),
			r.palette.Description(fmt.Sprintf("\"%s\"", m.Description)),
		))
	}
	return nil
}

func (r *renderer) Services(services []portdb.ServiceSummary) error {
	if r.tmpl != nil {
		return eachTemplate(r, services)
	}
	switch r.output {
	case outputJSON:
		return r.json(services)
	case outputYAML:
		return r.yaml(services)
	}
	for _, svc := range services {
		line := fmt.Sprintf("%s %s", r.palette.Service(svc.Name), r.palette.Description(fmt.Sprintf("\"%s\"", svc.Description)))
		for _, label := range svc.PortLabels() {
			line += " " + r.palette.Protocol(label)
		}
		writeLine(r.out, line)
	}
	return nil
}

func eachTemplate[T any](r *renderer, items []T) error {
	for _, item := range items {
		var b strings.Builder
		if err := r.tmpl.Execute(&b, item); err != nil {
			return fmt.Errorf("render --format template: %w", err)
		}
		writeLine(r.out, b.String())
	}
	return nil
}

func (r *renderer) json(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// yaml keeps the JSON field and map order: the JSON form is parsed as a
// yaml.v3 node tree, which preserves key order, and re-emitted in block style.
func (r *renderer) yaml(v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(payload, &doc); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	blockStyle(&doc)

	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	writeString(r.out, b.String())
	return nil
}

func blockStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		blockStyle(child)
	}
}

func writeString(out io.Writer, text string) {
	if out == nil || text == "" {
		return
	}
	_, _ = io.WriteString(out, text)
}

func writeLine(out io.Writer, line string) {
	if out == nil {
		return
	}
	if strings.HasSuffix(line, "\n") {
		_, _ = io.WriteString(out, line)
		return
	}
	_, _ = io.WriteString(out, line+"\n")
}
