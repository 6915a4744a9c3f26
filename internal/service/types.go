package service

import (
	"encoding/json"
	"fmt"
)

// ID is an opaque identifier. The API hands out numbers, but string
// identifiers are accepted too; 42 and "42" are the same ID.
type ID string

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (id *ID) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", b, err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes numeric IDs back as the JSON number they were read
// from and everything else as strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.IsNumeric() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// IsNumeric reports whether the ID is a JSON number literal, such as 42,
// -1, 1e3 or an integer too large for int64.
func (id ID) IsNumeric() bool {
	s := string(id)
	if s == "" {
		return false
	}
	first, last := s[0], s[len(s)-1]
	if (first != '-' && !isDigit(first)) || !isDigit(last) {
		return false
	}
	return json.Valid([]byte(s))
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func (id ID) String() string {
	return string(id)
}

// Task represents a single task item.
type Task struct {
	OwnerID   ID     `json:"userId"`
	ID        ID     `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// NewTask is a task that has not been assigned an ID yet.
type NewTask struct {
	OwnerID   ID     `json:"userId"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Owner is the person a task is attributed to.
type Owner struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}
