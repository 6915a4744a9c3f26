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
	Register(&OwnersCmd{})
}

// OwnersCmd implements the owners command.
type OwnersCmd struct{}

func (c *OwnersCmd) Name() string      { return "owners" }
func (c *OwnersCmd) Aliases() []string { return []string{"users"} }
func (c *OwnersCmd) Synopsis() string  { return "Print the owners tasks can be assigned to" }
func (c *OwnersCmd) Usage() string     { return "todo owners" }
func (c *OwnersCmd) NeedsRemote() bool { return true }

func (c *OwnersCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *OwnersCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	a := startApp(ctx, cfg, svc, errOut)

	opts := a.Document().Options()
	for _, opt := range opts {
		output.FormatOption(out, opt)
	}
	if len(opts) == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no owners found")
	}

	if a.Failures() > 0 {
		return exitcode.BackendError
	}
	return exitcode.Success
}
