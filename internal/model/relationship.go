package model

import (
	"fmt"
	"strings"
	"time"
)

// RelationType categorizes the link between two todos.
// The set is closed; unknown values are rejected at validation time.
type RelationType string

const (
	RelDependsOn RelationType = "depends_on"
	RelBlocks    RelationType = "blocks"
	RelRelatedTo RelationType = "related_to"
	RelParentOf  RelationType = "parent_of"
)

// RelationTypes lists every valid relation type.
var RelationTypes = []RelationType{RelDependsOn, RelBlocks, RelRelatedTo, RelParentOf}

// String returns the string representation of the relation type.
func (t RelationType) String() string {
	return string(t)
}

// IsValid checks whether the relation type is a known value.
func (t RelationType) IsValid() bool {
	switch t {
	case RelDependsOn, RelBlocks, RelRelatedTo, RelParentOf:
		return true
	}
	return false
}

// Directional reports whether direction carries meaning for this type.
// Directional edges participate in cycle detection; related_to is symmetric
// and does not.
func (t RelationType) Directional() bool {
	switch t {
	case RelDependsOn, RelBlocks, RelParentOf:
		return true
	}
	return false
}

// maxDescriptionLen is the longest description a relationship may carry.
const maxDescriptionLen = 500

// Relationship is a typed directed edge between two todos.
type Relationship struct {
	ID          string       `json:"id"`
	FromID      string       `json:"from_id"`
	ToID        string       `json:"to_id"`
	Type        RelationType `json:"type"`
	Description string       `json:"description,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewRelationship builds a validated relationship with fresh timestamps.
// The caller supplies now so tests and seeders can pin the clock.
func NewRelationship(id, fromID, toID string, typ RelationType, description string, now time.Time) (*Relationship, error) {
	r := &Relationship{
		ID:          strings.TrimSpace(id),
		FromID:      strings.TrimSpace(fromID),
		ToID:        strings.TrimSpace(toID),
		Type:        typ,
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// RestoreRelationship rehydrates a relationship from storage without
// re-timestamping. Validation still runs in full so a corrupted row fails
// loudly instead of flowing through the engine.
func RestoreRelationship(props Relationship) (*Relationship, error) {
	r := props
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Validate checks the relationship invariants. It returns a
// *ValidationError listing every violated field, or nil.
func (r *Relationship) Validate() error {
	var ve ValidationError

	if strings.TrimSpace(r.ID) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "id", Message: "is required"})
	}
	from := strings.TrimSpace(r.FromID)
	to := strings.TrimSpace(r.ToID)
	if from == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "from_id", Message: "is required"})
	}
	if to == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "to_id", Message: "is required"})
	}
	if from != "" && from == to {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "to_id",
			Message: fmt.Sprintf("self-reference: a todo cannot relate to itself (%s)", from),
		})
	}
	if !r.Type.IsValid() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "type",
			Message: fmt.Sprintf("invalid value %q", r.Type),
		})
	}
	if len([]rune(strings.TrimSpace(r.Description))) > maxDescriptionLen {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "description",
			Message: fmt.Sprintf("must be %d characters or fewer", maxDescriptionLen),
		})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}

// ChangeType sets a new relation type, bumping UpdatedAt only when the value
// actually changes. It reports whether a change was made.
func (r *Relationship) ChangeType(next RelationType, now time.Time) (bool, error) {
	if next == r.Type {
		return false, nil
	}
	prev := r.Type
	r.Type = next
	if err := r.Validate(); err != nil {
		r.Type = prev
		return false, err
	}
	r.UpdatedAt = now
	return true, nil
}

// AttachDescription replaces the description, bumping UpdatedAt only when the
// trimmed value differs from the current one.
func (r *Relationship) AttachDescription(text string, now time.Time) (bool, error) {
	next := strings.TrimSpace(text)
	if next == r.Description {
		return false, nil
	}
	prev := r.Description
	r.Description = next
	if err := r.Validate(); err != nil {
		r.Description = prev
		return false, err
	}
	r.UpdatedAt = now
	return true, nil
}

// Connects reports whether the given todo is either endpoint of the edge.
func (r *Relationship) Connects(todoID string) bool {
	return r.FromID == todoID || r.ToID == todoID
}
