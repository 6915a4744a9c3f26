package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"todo/internal/app"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/view"
)

// ErrTaskIDRequired indicates no task id was provided.
var ErrTaskIDRequired = errors.New("task id required")

// ParseTaskID parses the single task id argument of done, undone and rm.
func ParseTaskID(args []string) (service.ID, error) {
	if len(args) == 0 {
		return "", ErrTaskIDRequired
	}
	if len(args) > 1 {
		return "", fmt.Errorf("too many arguments: %s", strings.Join(args[1:], " "))
	}

	id := strings.TrimSpace(args[0])
	if id == "" {
		return "", ErrTaskIDRequired
	}
	return service.ID(id), nil
}

// startApp loads tasks and owners and renders them. Fetch failures are
// alerted on errOut and leave the affected collection empty.
func startApp(ctx context.Context, cfg *config.Config, svc service.Service, errOut io.Writer) *app.App {
	a := app.New(svc, view.New(true), view.NewWriterAlerter(errOut), app.Options{
		TaskLimit:  cfg.TaskLimit,
		OwnerLimit: cfg.OwnerLimit,
	})
	a.Start(ctx)
	return a
}

// runOnElement starts the app and fires an event on the element tagged with
// the id in args. Shared by done, undone and rm.
func runOnElement(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer,
	fire func(a *app.App, id service.ID) bool) int {
	id, err := ParseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	a := startApp(ctx, cfg, svc, errOut)
	before := a.Failures()

	if !fire(a, id) {
		if before > 0 {
			return exitcode.BackendError
		}
		fmt.Fprintf(errOut, "error: task not found: %s\n", id)
		return exitcode.UserError
	}

	if a.Failures() > before {
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
