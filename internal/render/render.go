// Package render generates the case lines that fill a regenerated block.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"
)

// Mode selects the shape of the generated case lines.
type Mode string

const (
	// CallThrough dispatches each case to the entity's handler.
	CallThrough Mode = "call-through"
	// Log writes each case's payload to the log writer.
	Log Mode = "log"
)

// Modes lists the supported modes.
var Modes = []Mode{CallThrough, Log}

// ErrUnknownMode is returned for a mode outside Modes.
var ErrUnknownMode = errors.New("unknown render mode")

// ParseMode converts a configuration string into a Mode.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w %q: must be one of %v", ErrUnknownMode, s, Modes)
}

const (
	callThroughCase = `            case RenderAction.InnerOneofCase.{{.Name}}: RenderingActionQueue.Enqueue({{.Name}}(render_action.{{.Name}})); return;`
	logCase         = `            case RenderAction.InnerOneofCase.{{.Name}}: GlobalDependency.Logger.Writer.WriteLine(FormatFlatLogLine(render_action.{{.Name}})); return;`
	fallback        = `            default: StderrQueue.Enqueue("Executor: invalid RenderAction: " + render_action.InnerCase); return;`
)

// Templates holds the per-entity case template and the trailing fallback
// line. Case is a text/template executed with the entity as .Name.
type Templates struct {
	Case     string `yaml:"case"`
	Fallback string `yaml:"fallback"`
}

// Defaults returns the built-in templates for mode.
func Defaults(mode Mode) (Templates, error) {
	switch mode {
	case CallThrough:
		return Templates{Case: callThroughCase, Fallback: fallback}, nil
	case Log:
		return Templates{Case: logCase, Fallback: fallback}, nil
	}
	return Templates{}, fmt.Errorf("%w %q", ErrUnknownMode, mode)
}

// Renderer turns an entity list into block body lines.
type Renderer struct {
	tmpl     *template.Template
	fallback string
	newline  string
}

type caseData struct {
	Name string
}

// New compiles t. Each rendered line is terminated with newline.
func New(t Templates, newline string) (*Renderer, error) {
	if strings.TrimSpace(t.Case) == "" {
		return nil, errors.New("empty case template")
	}
	if strings.TrimSpace(t.Fallback) == "" {
		return nil, errors.New("empty fallback line")
	}
	if strings.ContainsAny(t.Case, "\r\n") || strings.ContainsAny(t.Fallback, "\r\n") {
		return nil, errors.New("templates must be single lines")
	}
	tmpl, err := template.New("case").Option("missingkey=error").Parse(t.Case)
	if err != nil {
		return nil, fmt.Errorf("parsing case template: %w", err)
	}
	if newline == "" {
		newline = "\n"
	}
	return &Renderer{tmpl: tmpl, fallback: t.Fallback, newline: newline}, nil
}

// ForMode is shorthand for New(Defaults(mode), newline).
func ForMode(mode Mode, newline string) (*Renderer, error) {
	t, err := Defaults(mode)
	if err != nil {
		return nil, err
	}
	return New(t, newline)
}

// Render returns one line per entity, in order, followed by the fallback
// line. The output depends only on the entities and the templates.
func (r *Renderer) Render(entities []string) ([]string, error) {
	lines := make([]string, 0, len(entities)+1)
	var buf bytes.Buffer
	for _, name := range entities {
		buf.Reset()
		if err := r.tmpl.Execute(&buf, caseData{Name: name}); err != nil {
			return nil, fmt.Errorf("rendering %q: %w", name, err)
		}
		lines = append(lines, buf.String()+r.newline)
	}
	lines = append(lines, r.fallback+r.newline)
	return lines, nil
}
