// Package tmpl renders answer values through Go templates for use in shell
// scripts.
package tmpl

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode"
)

// DefaultExport renders one shell assignment per answer.
const DefaultExport = "{{ .Var }}={{ .Value | shq }}"

// Export is the data passed to export templates.
type Export struct {
	Name  string // answer name
	Var   string // shell variable derived from Name
	Value string // current value, strings verbatim and everything else as JSON
}

// shellQuote wraps s in single quotes, escaping embedded single quotes as '\''.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// VarName converts an answer name to an upper-case shell variable name.
// Characters outside [A-Za-z0-9_] become underscores and a leading digit is
// prefixed with one.
func VarName(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case r <= unicode.MaxASCII && (unicode.IsLetter(r) || r == '_'):
			b.WriteRune(unicode.ToUpper(r))
		case r <= unicode.MaxASCII && unicode.IsDigit(r):
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

var funcs = template.FuncMap{
	"shq":   shellQuote,
	"upper": strings.ToUpper,
	"var":   VarName,
}

// Render executes a Go template string with the given data.
// Returns an error if the template is invalid or references undefined keys.
//
// Available template functions:
//   - shq: Shell-quote a string for safe use in shell commands
//   - upper: Upper-case a string
//   - var: Convert an answer name to a shell variable name
func Render(tmpl string, data any) (string, error) {
	t, err := template.New("").Funcs(funcs).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buf.String(), nil
}
