package model

import "time"

// TodoStatus represents the current state of a todo.
type TodoStatus string

const (
	TodoPending    TodoStatus = "pending"
	TodoInProgress TodoStatus = "in_progress"
	TodoDone       TodoStatus = "done"
)

// String returns the string representation of the status.
func (s TodoStatus) String() string {
	return string(s)
}

// IsValid checks whether the status is a known value.
func (s TodoStatus) IsValid() bool {
	switch s {
	case TodoPending, TodoInProgress, TodoDone:
		return true
	}
	return false
}

// Todo is the tracked work item. The relationship engine treats todos as an
// external collaborator: it only ever asks whether one exists and streams the
// id set, so this struct stays deliberately small.
type Todo struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TodoStatus `json:"status"`
	Priority    int        `json:"priority"`
	Category    string     `json:"category,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
