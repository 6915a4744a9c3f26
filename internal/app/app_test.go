package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo/internal/app"
	"todo/internal/service"
	"todo/internal/state"
	"todo/internal/testutil"
	"todo/internal/view"
)

type recorder struct {
	errs []error
}

func (r *recorder) alerter() view.Alerter {
	return view.AlertFunc(func(err error) { r.errs = append(r.errs, err) })
}

func newApp(svc service.Service) (*app.App, *recorder) {
	alerts := &recorder{}
	a := app.New(svc, view.New(true), alerts.alerter(), app.Options{TaskLimit: 15, OwnerLimit: 5})
	return a, alerts
}

func started(t *testing.T, svc *testutil.FakeService) (*app.App, *recorder) {
	t.Helper()
	a, alerts := newApp(svc)
	a.Start(context.Background())
	require.Empty(t, alerts.errs)
	return a, alerts
}

func TestStart_RendersTaskWithOwner(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "1", "a", false)
	svc.AddOwner("1", "Bob")

	a, _ := started(t, svc)

	els := a.Document().Elements()
	require.Len(t, els, 1)
	assert.Equal(t, "a", els[0].Title)
	assert.Equal(t, "Bob", els[0].OwnerName)
	assert.False(t, els[0].Checked)
	assert.Equal(t, []view.Option{{Value: "1", Label: "Bob"}}, a.Document().Options())
}

func TestStart_NewestFirst(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "1", "first", false)
	svc.AddTask("1", "2", "second", true)

	a, _ := started(t, svc)

	els := a.Document().Elements()
	require.Len(t, els, 2)
	assert.Equal(t, service.ID("2"), els[0].ID)
	assert.Equal(t, service.ID("1"), els[1].ID)
}

func TestStart_RespectsLimits(t *testing.T) {
	svc := testutil.NewFakeService()
	for _, id := range []service.ID{"1", "2", "3"} {
		svc.AddTask("1", id, "t", false)
		svc.AddOwner(id, "o"+id.String())
	}

	a := app.New(svc, view.New(true), view.AlertFunc(func(error) {}), app.Options{TaskLimit: 2, OwnerLimit: 1})
	a.Start(context.Background())

	assert.Len(t, a.Store().Tasks(), 2)
	assert.Len(t, a.Store().Owners(), 1)
}

func TestStart_TasksFailOwnersSucceed(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "1", "a", false)
	svc.AddOwner("1", "Bob")
	svc.AddOwner("2", "Ann")
	svc.FetchTasksErr = errors.New("network down")

	a, alerts := newApp(svc)
	a.Start(context.Background())

	require.Len(t, alerts.errs, 1)
	assert.EqualError(t, alerts.errs[0], "network down")
	assert.Empty(t, a.Store().Tasks())
	assert.Empty(t, a.Document().Elements())
	assert.Len(t, a.Store().Owners(), 2)
	assert.Len(t, a.Document().Options(), 2)
	assert.Equal(t, 1, a.Failures())
}

func TestStart_BothFail(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.FetchTasksErr = errors.New("tasks")
	svc.FetchOwnersErr = errors.New("owners")

	a, alerts := newApp(svc)
	a.Start(context.Background())

	require.Len(t, alerts.errs, 2)
	assert.EqualError(t, alerts.errs[0], "tasks")
	assert.EqualError(t, alerts.errs[1], "owners")
	assert.Equal(t, 2, a.Failures())
}

func TestStart_UnknownOwner(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("9", "1", "orphan", false)

	a, _ := started(t, svc)

	el, ok := a.Document().Find("1")
	require.True(t, ok)
	assert.Equal(t, state.UnknownOwner, el.OwnerName)
}

func TestSubmit_RendersWithoutStoring(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddOwner("1", "Bob")
	a, _ := started(t, svc)

	task, ok := a.Submit(context.Background(), "1", "Buy milk")
	require.True(t, ok)
	assert.Equal(t, service.ID("201"), task.ID)
	assert.Equal(t, []service.NewTask{{OwnerID: "1", Title: "Buy milk", Completed: false}}, svc.Created)

	el, found := a.Document().Find(task.ID)
	require.True(t, found)
	assert.Equal(t, "Bob", el.OwnerName)
	assert.Equal(t, "Buy milk", el.Title)
	assert.False(t, el.Checked)

	assert.False(t, a.Store().HasTask(task.ID))
}

func TestSubmit_UnknownOwnerPlaceholder(t *testing.T) {
	svc := testutil.NewFakeService()
	a, _ := started(t, svc)

	task, ok := a.Submit(context.Background(), "7", "x")
	require.True(t, ok)
	el, _ := a.Document().Find(task.ID)
	assert.Equal(t, state.UnknownOwner, el.OwnerName)
}

func TestSubmit_SameTitleTwice(t *testing.T) {
	svc := testutil.NewFakeService()
	a, _ := started(t, svc)

	first, _ := a.Submit(context.Background(), "1", "same")
	second, _ := a.Submit(context.Background(), "1", "same")

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, a.Document().Elements(), 2)
}

func TestSubmit_Failure(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.CreateTaskErr = errors.New("boom")
	a, alerts := started(t, svc)

	_, ok := a.Submit(context.Background(), "1", "x")
	assert.False(t, ok)
	assert.Len(t, alerts.errs, 1)
	assert.Empty(t, a.Document().Elements())
}

func TestToggle_SendsCompleted(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "1", "a", false)
	a, alerts := started(t, svc)

	require.True(t, a.Toggle(context.Background(), "1", true))
	assert.Equal(t, []testutil.CompletedCall{{ID: "1", Completed: true}}, svc.Completed)
	assert.Empty(t, alerts.errs)

	// The store does not mirror the flag.
	assert.False(t, a.Store().Tasks()[0].Completed)
}

func TestToggle_FailureKeepsCheckbox(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "1", "a", false)
	svc.SetTaskCompletedErr = &service.RemoteError{Op: "update task 1", Status: 500, Err: service.ErrConnection}
	a, alerts := started(t, svc)
	before := a.Store().Tasks()

	require.True(t, a.Toggle(context.Background(), "1", true))

	require.Len(t, alerts.errs, 1)
	assert.ErrorIs(t, alerts.errs[0], service.ErrConnection)
	assert.Contains(t, alerts.errs[0].Error(), "failed to connect with the server")

	el, _ := a.Document().Find("1")
	assert.True(t, el.Checked)
	assert.Equal(t, before, a.Store().Tasks())
}

func TestToggle_UnknownElement(t *testing.T) {
	svc := testutil.NewFakeService()
	a, _ := started(t, svc)

	assert.False(t, a.Toggle(context.Background(), "1", true))
	assert.Empty(t, svc.Completed)
}

func TestClose_RemovesEverywhere(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "1", "a", false)
	svc.AddTask("1", "2", "b", false)
	a, alerts := started(t, svc)
	el, _ := a.Document().Find("1")

	require.True(t, a.Close(context.Background(), "1"))

	assert.Empty(t, alerts.errs)
	assert.Equal(t, []service.ID{"1"}, svc.Deleted)
	_, found := a.Document().Find("1")
	assert.False(t, found)
	assert.False(t, el.Attached())
	assert.False(t, a.Store().HasTask("1"))
	assert.True(t, a.Store().HasTask("2"))
}

func TestClose_FailureLeavesEverything(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "1", "a", false)
	svc.DeleteTaskErr = &service.RemoteError{Op: "delete task 1", Status: 404, Err: service.ErrConnection}
	a, alerts := started(t, svc)

	require.True(t, a.Close(context.Background(), "1"))

	assert.Len(t, alerts.errs, 1)
	_, found := a.Document().Find("1")
	assert.True(t, found)
	assert.True(t, a.Store().HasTask("1"))
}

func TestClose_SubmittedTask(t *testing.T) {
	svc := testutil.NewFakeService()
	a, _ := started(t, svc)
	task, _ := a.Submit(context.Background(), "1", "new")

	require.True(t, a.Close(context.Background(), task.ID))

	_, found := a.Document().Find(task.ID)
	assert.False(t, found)
	assert.Equal(t, []service.ID{task.ID}, svc.Deleted)
}
