package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"todo/internal/app"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/service"
)

func init() {
	Register(&ShellCmd{})
}

// ShellCmd implements the interactive shell. The tasks are fetched once and
// every line read from the input is an event on the same list.
type ShellCmd struct {
	in io.Reader
}

// SetInput sets the reader commands are read from (for testing).
func (c *ShellCmd) SetInput(r io.Reader) {
	c.in = r
}

func (c *ShellCmd) Name() string      { return "shell" }
func (c *ShellCmd) Aliases() []string { return nil }
func (c *ShellCmd) Synopsis() string  { return "Manage tasks interactively" }
func (c *ShellCmd) Usage() string     { return "todo shell" }
func (c *ShellCmd) NeedsRemote() bool { return true }

func (c *ShellCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShellCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	in := c.in
	if in == nil {
		in = os.Stdin
	}

	a := startApp(ctx, cfg, svc, errOut)
	if !cfg.Quiet {
		fmt.Fprintf(out, "%d tasks, %d owners (type help for commands)\n",
			len(a.Document().Elements()), len(a.Document().Options()))
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines, scanErr := readLines(ctx, in)

	for {
		if !cfg.Quiet {
			fmt.Fprint(out, "> ")
		}
		select {
		case <-ctx.Done():
			return exitcode.Success
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						fmt.Fprintf(errOut, "error: %v\n", err)
						return exitcode.UserError
					}
				default:
				}
				return exitcode.Success
			}
			if quit := c.exec(ctx, cfg, a, line, out, errOut); quit {
				return exitcode.Success
			}
		}
	}
}

// readLines scans in on its own goroutine so a blocked read does not hold
// up cancellation. The scanner error, if any, is sent before lines closes.
// A read blocked on a terminal outlives ctx until the process exits.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- sc.Err()
	}()
	return lines, errc
}

// exec runs one shell line. It returns true when the shell should exit.
func (c *ShellCmd) exec(ctx context.Context, cfg *config.Config, a *app.App, line string, out, errOut io.Writer) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprint(out, shellHelpText)
	case "ls", "list":
		els := a.Document().Elements()
		output.FormatElements(out, els)
		if len(els) == 0 {
			fmt.Fprintln(out, "no tasks found")
		}
	case "owners":
		for _, opt := range a.Document().Options() {
			output.FormatOption(out, opt)
		}
	case "add":
		if len(fields) < 3 {
			fmt.Fprintln(errOut, "error: usage: add <owner> <title...>")
			return false
		}
		task, ok := a.Submit(ctx, service.ID(fields[1]), strings.Join(fields[2:], " "))
		if !ok {
			return false
		}
		if el, found := a.Document().Find(task.ID); found {
			output.FormatElement(out, el)
		}
	case "done", "undone", "rm":
		id, err := ParseTaskID(fields[1:])
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return false
		}
		before := a.Failures()
		var found bool
		switch fields[0] {
		case "done":
			found = a.Toggle(ctx, id, true)
		case "undone":
			found = a.Toggle(ctx, id, false)
		default:
			found = a.Close(ctx, id)
		}
		if !found {
			fmt.Fprintf(errOut, "error: task not found: %s\n", id)
			return false
		}
		if a.Failures() == before && !cfg.Quiet {
			fmt.Fprintln(out, "ok")
		}
	default:
		fmt.Fprintf(errOut, "error: unknown command: %s\n", fields[0])
	}
	return false
}

const shellHelpText = `Commands:
  ls                      List tasks, newest first
  owners                  Print owners
  add <owner> <title...>  Create a task
  done <id>               Mark a task completed
  undone <id>             Mark a task not completed
  rm <id>                 Delete a task
  help                    Print this help
  quit                    Leave the shell
`
