// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todo/internal/view"
)

// FormatElement formats a task line.
// Format: "[x] {ID:>4}  {TITLE}  by {OWNER}\n"
func FormatElement(w io.Writer, el *view.Element) {
	fmt.Fprintf(w, "[%s] %4s  %s  by %s\n", checkMark(el.Checked), el.ID, normalizeTitle(el.Title), el.OwnerName)
}

// FormatElements formats every element, front of the list first.
func FormatElements(w io.Writer, els []*view.Element) {
	for _, el := range els {
		FormatElement(w, el)
	}
}

// FormatOption formats an owner option line.
// Format: "{VALUE:>4}  {LABEL}\n"
func FormatOption(w io.Writer, opt view.Option) {
	fmt.Fprintf(w, "%4s  %s\n", opt.Value, opt.Label)
}

func checkMark(checked bool) string {
	if checked {
		return "x"
	}
	return " "
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
