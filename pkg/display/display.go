// Package display renders command results and errors for the terminal.
package display

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/gookit/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

// Format selects how Printer.Value renders a result
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// Printer writes results to out and errors to errOut
type Printer struct {
	out    io.Writer
	errOut io.Writer
	color  bool
}

// New creates a Printer. Colour codes are only emitted when useColor is set.
func New(out, errOut io.Writer, useColor bool) *Printer {
	return &Printer{out: out, errOut: errOut, color: useColor}
}

// Log prints an informational line
func (p *Printer) Log(msg string) {
	fmt.Fprintln(p.out, msg)
}

// Success prints a confirmation line
func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.out, p.paint(color.Green, "✓ "+msg))
}

// Error prints an error line to errOut
func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.errOut, p.paint(color.Red, "Error: "+msg))
}

func (p *Printer) paint(c color.Color, s string) string {
	if !p.color {
		return s
	}
	return c.Sprint(s)
}

// Value renders v in the requested format
func (p *Printer) Value(v any, format Format) error {
	switch format {
	case FormatYAML:
		return p.YAML(v)
	case FormatTable:
		return p.Table(v)
	case FormatJSON, "":
		return p.JSON(v)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// JSON prints v as indented JSON
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAML prints v as YAML
func (p *Printer) YAML(v any) error {
	enc := yaml.NewEncoder(p.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Table prints a list of objects as rows, or a single object as
// key/value pairs. Anything else falls back to JSON.
func (p *Printer) Table(v any) error {
	switch val := v.(type) {
	case []any:
		return p.listTable(val)
	case map[string]any:
		return p.objectTable(val)
	default:
		return p.JSON(v)
	}
}

func (p *Printer) listTable(items []any) error {
	columns := make(map[string]bool)
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return p.JSON(items)
		}
		for k := range obj {
			columns[k] = true
		}
	}
	keys := sortedKeys(columns)

	tw := p.newTable()
	header := make(table.Row, len(keys))
	for i, k := range keys {
		header[i] = k
	}
	tw.AppendHeader(header)

	for _, item := range items {
		obj := item.(map[string]any)
		row := make(table.Row, len(keys))
		for i, k := range keys {
			row[i] = cell(obj[k])
		}
		tw.AppendRow(row)
	}
	tw.Render()
	return nil
}

func (p *Printer) objectTable(obj map[string]any) error {
	present := make(map[string]bool, len(obj))
	for k := range obj {
		present[k] = true
	}

	tw := p.newTable()
	tw.AppendHeader(table.Row{"FIELD", "VALUE"})
	for _, k := range sortedKeys(present) {
		tw.AppendRow(table.Row{k, cell(obj[k])})
	}
	tw.Render()
	return nil
}

func (p *Printer) newTable() table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(p.out)
	tw.SetStyle(table.StyleLight)
	return tw
}

// cell flattens nested values into compact JSON
func cell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case map[string]any, []any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	default:
		return fmt.Sprint(val)
	}
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
