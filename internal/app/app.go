// Package app wires user events to the remote collections, the local store
// and the document.
package app

import (
	"context"
	"sync"

	"github.com/go-logr/logr"

	"todo/internal/service"
	"todo/internal/state"
	"todo/internal/view"
)

// Options configures an App.
type Options struct {
	TaskLimit  int
	OwnerLimit int
}

// App is the application state: the store, the document and the service the
// handlers talk to. All methods must be called from one goroutine.
type App struct {
	svc   service.Service
	store *state.Store
	doc   *view.Document
	alert view.Alerter
	opts  Options

	failures int
}

// New creates an App and attaches its handlers to doc.
func New(svc service.Service, doc *view.Document, alert view.Alerter, opts Options) *App {
	a := &App{
		svc:   svc,
		store: state.New(),
		doc:   doc,
		alert: alert,
		opts:  opts,
	}
	doc.SetHandlers(a.handleChange, a.handleClose)
	return a
}

// Store returns the local state store.
func (a *App) Store() *state.Store { return a.store }

// Document returns the document the app renders into.
func (a *App) Document() *view.Document { return a.doc }

// Failures returns how many remote operations have failed so far.
func (a *App) Failures() int { return a.failures }

// Start fetches tasks and owners concurrently and waits for both to settle.
// A failed fetch is alerted and counts as an empty collection. Every task and
// owner option is then rendered.
func (a *App) Start(ctx context.Context) {
	var (
		wg                  sync.WaitGroup
		tasks               []service.Task
		owners              []service.Owner
		tasksErr, ownersErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		tasks, tasksErr = a.svc.FetchTasks(ctx, a.opts.TaskLimit)
	}()
	go func() {
		defer wg.Done()
		owners, ownersErr = a.svc.FetchOwners(ctx, a.opts.OwnerLimit)
	}()
	wg.Wait()

	if tasksErr != nil {
		a.fail(tasksErr)
		tasks = nil
	}
	if ownersErr != nil {
		a.fail(ownersErr)
		owners = nil
	}

	a.store.Load(tasks, owners)

	for _, t := range a.store.Tasks() {
		a.doc.RenderTask(t, a.store.OwnerName(t.OwnerID))
	}
	for _, o := range a.store.Owners() {
		a.doc.RenderOwnerOption(o)
	}

	logr.FromContextOrDiscard(ctx).V(1).Info("startup complete",
		"tasks", len(tasks), "owners", len(owners))
}

// Submit creates a task for ownerID and renders it. The store is not updated.
// It reports false if the remote create failed.
func (a *App) Submit(ctx context.Context, ownerID service.ID, title string) (service.Task, bool) {
	task, err := a.svc.CreateTask(ctx, service.NewTask{
		OwnerID:   ownerID,
		Title:     title,
		Completed: false,
	})
	if err != nil {
		a.fail(err)
		return service.Task{}, false
	}

	a.doc.RenderTask(task, a.store.OwnerName(task.OwnerID))
	return task, true
}

// Toggle checks or unchecks the element tagged with id, as a user would.
// It reports false if no such element is rendered.
func (a *App) Toggle(ctx context.Context, id service.ID, checked bool) bool {
	return a.doc.Check(ctx, id, checked)
}

// Close clicks the close affordance of the element tagged with id.
// It reports false if no such element is rendered.
func (a *App) Close(ctx context.Context, id service.ID) bool {
	return a.doc.ClickClose(ctx, id)
}

// handleChange sends the new completed flag. The checkbox keeps the state the
// user gave it even if the call fails, and the store is left alone.
func (a *App) handleChange(ctx context.Context, id service.ID, checked bool) {
	if err := a.svc.SetTaskCompleted(ctx, id, checked); err != nil {
		a.fail(err)
	}
}

// handleClose deletes the task remotely, then locally.
func (a *App) handleClose(ctx context.Context, id service.ID) {
	if err := a.svc.DeleteTask(ctx, id); err != nil {
		a.fail(err)
		return
	}
	a.store.RemoveTask(id)
	a.doc.RemoveTaskElement(id)
}

func (a *App) fail(err error) {
	a.failures++
	a.alert.Alert(err)
}
