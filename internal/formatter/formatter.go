// Package formatter renders converted value trees back to JSON text for
// the CLI. encoding/json writes object keys in sorted order, which keeps
// output deterministic across runs.
package formatter

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/recasehq/recase/internal/errors"
	"github.com/recasehq/recase/internal/models"
)

// Formatter serializes JSONValue trees.
type Formatter struct {
	indent string
}

// NewFormatter creates a compact Formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// NewIndented creates a Formatter that pretty-prints with the given
// number of spaces per level.
func NewIndented(spaces int) *Formatter {
	if spaces < 1 {
		return NewFormatter()
	}
	return &Formatter{indent: strings.Repeat(" ", spaces)}
}

// Format renders v as JSON text with a trailing newline. HTML escaping
// is disabled; the output is data, not markup.
func (f *Formatter) Format(v models.JSONValue) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if f.indent != "" {
		enc.SetIndent("", f.indent)
	}
	if err := enc.Encode(v); err != nil {
		return "", errors.NewOutputError("failed to encode JSON output", err)
	}
	return buf.String(), nil
}

// FormatProjection renders a field-selection set deterministically.
// Encoding through the same encoder keeps key ordering sorted.
func (f *Formatter) FormatProjection(fields map[string]bool) (string, error) {
	obj := make(models.JSONObject, len(fields))
	for k, v := range fields {
		obj[k] = v
	}
	return f.Format(obj)
}
