package service

import (
	"errors"
	"fmt"
)

var (
	// ErrConnection is reported when the API answers with a non-2xx status.
	ErrConnection = errors.New("failed to connect with the server, please try later")

	// ErrTimeout is reported when a request outlives its context deadline.
	ErrTimeout = errors.New("request timed out")
)

// RemoteError is the single failure kind of the remote collections.
// It covers transport errors, non-2xx statuses and undecodable bodies.
type RemoteError struct {
	Op     string // e.g. "delete task"
	Status int    // HTTP status, 0 if no response was received
	Err    error
}

func (e *RemoteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %v (HTTP %d)", e.Op, e.Err, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
