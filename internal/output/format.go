// Package output provides formatters for CLI output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"todomaster/internal/service"
)

// Export formats accepted by WriteExport.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FormatTask formats a task line.
// Format: "{N:>4}  [x] {TEXT}\n" (4-wide right-aligned number, two spaces, checkbox, text)
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  %s %s\n", num, checkbox(task.Completed), normalizeText(task.Text))
}

// FormatProgress formats the "X of N tasks completed" line.
func FormatProgress(w io.Writer, stats service.Stats) {
	fmt.Fprintf(w, "%d of %d tasks completed\n", stats.Completed, stats.Total)
}

// FormatStats formats the totals block with a progress bar.
func FormatStats(w io.Writer, stats service.Stats) {
	fmt.Fprintf(w, "Total      %d\n", stats.Total)
	fmt.Fprintf(w, "Completed  %d\n", stats.Completed)
	fmt.Fprintf(w, "Pending    %d\n", stats.Pending)
	fmt.Fprintf(w, "%s %3.0f%%\n", ProgressBar(stats, 20), stats.Percent())
}

// ProgressBar renders a fixed-width bar of '#' and '-' characters.
func ProgressBar(stats service.Stats, width int) string {
	filled := 0
	if stats.Total > 0 {
		filled = stats.Completed * width / stats.Total
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// Export is the document written by the export command.
type Export struct {
	User  string         `json:"user" yaml:"user"`
	Stats service.Stats  `json:"stats" yaml:"stats"`
	Tasks []service.Task `json:"tasks" yaml:"tasks"`
}

// WriteExport writes doc in the given format.
func WriteExport(w io.Writer, format string, doc Export) error {
	if doc.Tasks == nil {
		doc.Tasks = []service.Task{}
	}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// normalizeText normalizes task text for display.
// - Empty or whitespace-only text becomes "(untitled)"
// - Newlines are replaced with spaces
func normalizeText(text string) string {
	// Replace newlines with spaces
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")

	// Trim and check for empty
	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}
	return text
}
