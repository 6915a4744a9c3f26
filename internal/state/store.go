// Package state holds the in-process copy of the remote collections.
package state

import "todo/internal/service"

// UnknownOwner is displayed for tasks whose owner was not loaded.
const UnknownOwner = "no owner"

// Store owns the tasks and owners fetched at startup.
//
// It is only changed by successful remote operations, and only where the
// controller asks for it: creating a task or toggling its completed flag does
// not touch the store. A Store is not safe for concurrent use.
type Store struct {
	tasks  []service.Task
	owners []service.Owner
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// Load replaces both collections wholesale.
func (s *Store) Load(tasks []service.Task, owners []service.Owner) {
	s.tasks = append([]service.Task(nil), tasks...)
	s.owners = append([]service.Owner(nil), owners...)
}

// Tasks returns a copy of the task collection.
func (s *Store) Tasks() []service.Task {
	return append([]service.Task(nil), s.tasks...)
}

// Owners returns a copy of the owner collection.
func (s *Store) Owners() []service.Owner {
	return append([]service.Owner(nil), s.owners...)
}

// HasTask reports whether any task has the given id.
func (s *Store) HasTask(id service.ID) bool {
	for _, t := range s.tasks {
		if t.ID == id {
			return true
		}
	}
	return false
}

// RemoveTask drops every task with the given id and returns how many were
// dropped. Duplicate ids are all removed.
func (s *Store) RemoveTask(id service.ID) int {
	kept := s.tasks[:0:0]
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	removed := len(s.tasks) - len(kept)
	s.tasks = kept
	return removed
}

// Owner looks up an owner by id.
func (s *Store) Owner(id service.ID) (service.Owner, bool) {
	for _, o := range s.owners {
		if o.ID == id {
			return o, true
		}
	}
	return service.Owner{}, false
}

// OwnerName returns the owner's name, or UnknownOwner.
func (s *Store) OwnerName(id service.ID) string {
	owner, ok := s.Owner(id)
	if !ok || owner.Name == "" {
		return UnknownOwner
	}
	return owner.Name
}
