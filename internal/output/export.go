package output

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"todo/internal/view"
)

// Formats lists the formats accepted by Export.
var Formats = []string{"csv", "json", "html", "pdf"}

// ErrUnknownFormat is returned by Export for unsupported formats.
var ErrUnknownFormat = errors.New("unknown format")

type exportedTask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Owner     string `json:"owner"`
	Completed bool   `json:"completed"`
}

// Export writes the document's task list to w in the given format.
func Export(ctx context.Context, w io.Writer, doc *view.Document, format string) error {
	els := doc.Elements()

	switch strings.ToLower(format) {
	case "csv":
		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"id", "title", "owner", "completed"})
		for _, el := range els {
			_ = cw.Write([]string{el.ID.String(), el.Title, el.OwnerName, fmt.Sprint(el.Checked)})
		}
		cw.Flush()
		return cw.Error()
	case "json":
		all := make([]exportedTask, 0, len(els))
		for _, el := range els {
			all = append(all, exportedTask{ID: el.ID.String(), Title: el.Title, Owner: el.OwnerName, Completed: el.Checked})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(all)
	case "html":
		return Page(doc).Render(ctx, w)
	case "pdf":
		pdf := gofpdf.New("P", "mm", "A4", "")
		tr := pdf.UnicodeTranslatorFromDescriptor("")
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(40, 10, "Tasks")
		pdf.Ln(12)
		pdf.SetFont("Arial", "", 10)
		for _, el := range els {
			line := fmt.Sprintf("[%s] %s by %s", checkMark(el.Checked), normalizeTitle(el.Title), el.OwnerName)
			pdf.MultiCell(0, 6, tr(line), "0", "L", false)
		}
		return pdf.Output(w)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}
