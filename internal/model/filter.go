package model

// RelationshipFilter holds criteria for querying relationships.
// Types matches edges of ANY listed type; Involving matches edges that touch
// the given todo as either endpoint.
type RelationshipFilter struct {
	FromID    string         `json:"from_id,omitempty"`
	ToID      string         `json:"to_id,omitempty"`
	Types     []RelationType `json:"types,omitempty"`
	Involving string         `json:"involving,omitempty"`
	Limit     int            `json:"limit,omitempty"`
	Offset    int            `json:"offset,omitempty"`
}

// TodoFilter holds criteria for querying todos.
type TodoFilter struct {
	Status   []TodoStatus `json:"status,omitempty"`
	Category string       `json:"category,omitempty"`
	Search   string       `json:"search,omitempty"` // substring match on title/description
	Limit    int          `json:"limit,omitempty"`
	Offset   int          `json:"offset,omitempty"`
}
