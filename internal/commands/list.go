package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command. `todo` with no args runs it too.
type ListCmd struct {
	format string
}

// SetFormat sets the output format (for testing).
func (c *ListCmd) SetFormat(format string) {
	c.format = format
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks, newest first" }
func (c *ListCmd) Usage() string     { return "todo list [--format text|html]" }
func (c *ListCmd) NeedsRemote() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", "text", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	format := c.format
	if format == "" {
		format = "text"
	}
	if format != "text" && format != "html" {
		fmt.Fprintf(errOut, "error: invalid format: %s\n", format)
		return exitcode.UserError
	}

	a := startApp(ctx, cfg, svc, errOut)
	els := a.Document().Elements()

	switch format {
	case "html":
		if err := output.Page(a.Document()).Render(ctx, out); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.BackendError
		}
	default:
		output.FormatElements(out, els)
		if len(els) == 0 && !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
	}

	// The list is still printed when a fetch failed; the exit code tells.
	if a.Failures() > 0 {
		return exitcode.BackendError
	}
	return exitcode.Success
}
