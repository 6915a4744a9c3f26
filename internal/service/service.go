// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for the remote task and owner collections.
// Commands and the controller never talk HTTP directly.
type Service interface {
	// FetchTasks returns at most limit tasks in API order.
	FetchTasks(ctx context.Context, limit int) ([]Task, error)

	// FetchOwners returns at most limit owners in API order.
	FetchOwners(ctx context.Context, limit int) ([]Owner, error)

	// CreateTask creates a task and returns it with its server-assigned ID.
	CreateTask(ctx context.Context, task NewTask) (Task, error)

	// SetTaskCompleted updates the completed flag of a task.
	SetTaskCompleted(ctx context.Context, id ID, completed bool) error

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, id ID) error
}
