package model

// Endpoint identifies which side of an edge a broken reference sits on.
const (
	EndpointSource = "source"
	EndpointTarget = "target"
)

// BrokenRelationship describes an edge whose endpoint no longer resolves to a
// live todo. An edge broken on both ends produces two entries.
type BrokenRelationship struct {
	RelationshipID  string       `json:"relationship_id"`
	Type            RelationType `json:"type"`
	MissingEndpoint string       `json:"missing_endpoint"` // "source" or "target"
	MissingTodoID   string       `json:"missing_todo_id"`
}

// DependencyHealth is the point-in-time aggregate over the whole relationship
// graph. It is computed, never persisted.
type DependencyHealth struct {
	TotalRelationships int                  `json:"total_relationships"`
	ByType             map[RelationType]int `json:"by_type"`

	// Role sets, sorted. Dependents are depends_on sources; blocking todos
	// are blocks sources; blocked todos are blocks targets.
	DependentTodos []string `json:"dependent_todos"`
	BlockingTodos  []string `json:"blocking_todos"`
	BlockedTodos   []string `json:"blocked_todos"`

	DependentCount int `json:"dependent_count"`
	BlockingCount  int `json:"blocking_count"`
	BlockedCount   int `json:"blocked_count"`

	BrokenCount int                  `json:"broken_count"`
	Broken      []BrokenRelationship `json:"broken"`
}

// BoardSnapshot bundles the full todo and relationship sets for canvas
// rendering.
type BoardSnapshot struct {
	Todos         []*Todo         `json:"todos"`
	Relationships []*Relationship `json:"relationships"`
}

// BoardStatus is the status-report payload: graph health plus todo roll-ups.
type BoardStatus struct {
	Health     *DependencyHealth  `json:"health"`
	ByStatus   map[TodoStatus]int `json:"by_status"`
	ByPriority map[int]int        `json:"by_priority"`
	ByCategory map[string]int     `json:"by_category"`
}
