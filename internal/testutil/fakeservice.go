// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"strconv"
	"sync"

	"todo/internal/service"
)

// CompletedCall records a SetTaskCompleted call.
type CompletedCall struct {
	ID        service.ID
	Completed bool
}

// FakeService is an in-memory implementation of service.Service for testing.
// Writes are recorded but, like the public placeholder API, not stored.
type FakeService struct {
	mu     sync.Mutex
	tasks  []service.Task
	owners []service.Owner
	nextID int

	// Error injection for testing
	FetchTasksErr       error
	FetchOwnersErr      error
	CreateTaskErr       error
	SetTaskCompletedErr error
	DeleteTaskErr       error

	Created   []service.NewTask
	Completed []CompletedCall
	Deleted   []service.ID
}

// NewFakeService creates an empty FakeService. Created tasks get IDs from 201.
func NewFakeService() *FakeService {
	return &FakeService{nextID: 201}
}

// AddTask adds a task returned by FetchTasks.
func (f *FakeService) AddTask(ownerID, id service.ID, title string, completed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.Task{
		OwnerID:   ownerID,
		ID:        id,
		Title:     title,
		Completed: completed,
	})
}

// AddOwner adds an owner returned by FetchOwners.
func (f *FakeService) AddOwner(id service.ID, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.owners = append(f.owners, service.Owner{ID: id, Name: name})
}

// FetchTasks implements service.Service.
func (f *FakeService) FetchTasks(ctx context.Context, limit int) ([]service.Task, error) {
	if f.FetchTasksErr != nil {
		return nil, f.FetchTasksErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return capped(f.tasks, limit), nil
}

// FetchOwners implements service.Service.
func (f *FakeService) FetchOwners(ctx context.Context, limit int) ([]service.Owner, error) {
	if f.FetchOwnersErr != nil {
		return nil, f.FetchOwnersErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return capped(f.owners, limit), nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, task service.NewTask) (service.Task, error) {
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Created = append(f.Created, task)
	id := service.ID(strconv.Itoa(f.nextID))
	f.nextID++
	return service.Task{
		OwnerID:   task.OwnerID,
		ID:        id,
		Title:     task.Title,
		Completed: task.Completed,
	}, nil
}

// SetTaskCompleted implements service.Service.
func (f *FakeService) SetTaskCompleted(ctx context.Context, id service.ID, completed bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Completed = append(f.Completed, CompletedCall{ID: id, Completed: completed})
	return f.SetTaskCompletedErr
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id service.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Deleted = append(f.Deleted, id)
	return f.DeleteTaskErr
}

func capped[T any](items []T, limit int) []T {
	n := len(items)
	if limit > 0 && limit < n {
		n = limit
	}
	result := make([]T, n)
	copy(result, items[:n])
	return result
}
