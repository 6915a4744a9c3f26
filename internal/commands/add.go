package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	owner string
}

// SetOwner sets the owner id (for testing).
func (c *AddCmd) SetOwner(owner string) {
	c.owner = owner
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string     { return "todo add --owner <id> <title...>" }
func (c *AddCmd) NeedsRemote() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.owner, "owner", "", "")
	fs.StringVar(&c.owner, "o", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	owner := strings.TrimSpace(c.owner)
	if owner == "" {
		fmt.Fprintln(errOut, "error: owner required")
		return exitcode.UserError
	}

	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	a := startApp(ctx, cfg, svc, errOut)

	task, ok := a.Submit(ctx, service.ID(owner), title)
	if !ok {
		return exitcode.BackendError
	}

	if el, found := a.Document().Find(task.ID); found && !cfg.Quiet {
		output.FormatElement(out, el)
	}
	return exitcode.Success
}
