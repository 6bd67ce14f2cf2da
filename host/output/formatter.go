// Package output renders command results as styled text, JSON or YAML
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Formatter defines the interface for output formatting.
type Formatter interface {
	Format(data any) string
}

// Table is a titled grid of text cells
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
}

// Tabular is implemented by results that have a text table form
type Tabular interface {
	Tables() []Table
}

// NewFormatter returns a Formatter for the given format string.
// Supported formats: "text" (default), "json", "yaml".
func NewFormatter(format string) Formatter {
	switch strings.ToLower(format) {
	case "json":
		return &JSONFormatter{}
	case "yaml":
		return &YAMLFormatter{}
	default:
		return &TextFormatter{}
	}
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	cellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// TextFormatter renders Tabular results as aligned, styled columns
type TextFormatter struct{}

func (f *TextFormatter) Format(data any) string {
	t, ok := data.(Tabular)
	if !ok {
		return fmt.Sprintln(data)
	}

	var blocks []string
	for _, table := range t.Tables() {
		blocks = append(blocks, renderTable(table))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...) + "\n"
}

func renderTable(t Table) string {
	widths := make([]int, len(t.Header))
	for i, h := range t.Header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	line := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			w := 0
			if i < len(widths) {
				w = widths[i]
			}
			parts[i] = style.Width(w + 2).Render(cell)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	}

	lines := []string{titleStyle.Render(t.Title), line(t.Header, headerStyle)}
	if len(t.Rows) == 0 {
		lines = append(lines, dimStyle.Render("(none)"))
	}
	for _, row := range t.Rows {
		lines = append(lines, line(row, cellStyle))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

// JSONFormatter formats data as indented JSON.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(data any) string {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("error formatting JSON: %v\n", err)
	}
	return string(b) + "\n"
}

// YAMLFormatter formats data as YAML.
type YAMLFormatter struct{}

func (f *YAMLFormatter) Format(data any) string {
	b, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Sprintf("error formatting YAML: %v\n", err)
	}
	return string(b)
}
