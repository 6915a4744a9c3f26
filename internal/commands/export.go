package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/service"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd implements the export command.
type ExportCmd struct {
	format string
	path   string
}

// SetFormat sets the export format (for testing).
func (c *ExportCmd) SetFormat(format string) {
	c.format = format
}

// SetOutput sets the output file (for testing).
func (c *ExportCmd) SetOutput(path string) {
	c.path = path
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Export the task list" }
func (c *ExportCmd) Usage() string {
	return "todo export [--format csv|json|html|pdf] [--output <file>]"
}
func (c *ExportCmd) NeedsRemote() bool { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", "csv", "")
	fs.StringVar(&c.path, "output", "", "")
	fs.StringVar(&c.path, "o", "", "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	format := strings.ToLower(c.format)
	if format == "" {
		format = "csv"
	}
	if !slices.Contains(output.Formats, format) {
		fmt.Fprintf(errOut, "error: invalid format: %s\n", c.format)
		return exitcode.UserError
	}

	a := startApp(ctx, cfg, svc, errOut)
	if a.Failures() > 0 {
		return exitcode.BackendError
	}

	export := func(w io.Writer) error {
		return output.Export(ctx, w, a.Document(), format)
	}

	if c.path == "" {
		if err := export(out); err != nil {
			fmt.Fprintf(errOut, "error: export failed: %v\n", err)
			return exitcode.UserError
		}
		return exitcode.Success
	}

	if err := writeFile(c.path, export); err != nil {
		fmt.Fprintf(errOut, "error: export failed: %v\n", err)
		return exitcode.UserError
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "wrote %s\n", c.path)
	}
	return exitcode.Success
}

// writeFile creates path and fills it with write. The file is removed if
// writing or closing fails.
func writeFile(path string, write func(w io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	return write(f)
}
