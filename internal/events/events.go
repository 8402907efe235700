package events

import (
	"context"

	"github.com/alfredjeanlab/todograph/internal/model"
)

// Event topic constants
const (
	TopicTodoCreated   = "todograph.todo.created"
	TopicTodoUpdated   = "todograph.todo.updated"
	TopicTodoCompleted = "todograph.todo.completed"
	TopicTodoDeleted   = "todograph.todo.deleted"

	TopicRelationshipCreated = "todograph.relationship.created"
	TopicRelationshipUpdated = "todograph.relationship.updated"
	TopicRelationshipDeleted = "todograph.relationship.deleted"
)

// Event types

type TodoCreated struct {
	Todo *model.Todo `json:"todo"`
}

type TodoUpdated struct {
	Todo *model.Todo `json:"todo"`
}

type TodoCompleted struct {
	Todo *model.Todo `json:"todo"`
}

// TodoDeleted is emitted after a todo and every edge touching it are removed.
type TodoDeleted struct {
	TodoID string `json:"todo_id"`
}

type RelationshipCreated struct {
	Relationship *model.Relationship `json:"relationship"`
}

type RelationshipUpdated struct {
	Relationship *model.Relationship `json:"relationship"`
}

type RelationshipDeleted struct {
	IDs []string `json:"ids"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	// Publish emits an event to the given topic. Implementations marshal
	// the event to JSON.
	Publish(ctx context.Context, topic string, event any) error

	// Close releases any underlying connections.
	Close() error
}
