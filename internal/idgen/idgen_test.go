package idgen

import (
	"regexp"
	"strings"
	"testing"
)

func TestNewRelationshipID(t *testing.T) {
	id, err := NewRelationshipID()
	if err != nil {
		t.Fatalf("NewRelationshipID() error: %v", err)
	}
	if !strings.HasPrefix(id, RelationshipPrefix) {
		t.Errorf("NewRelationshipID() = %q, want prefix %q", id, RelationshipPrefix)
	}
	wantLen := len(RelationshipPrefix) + Length
	if len(id) != wantLen {
		t.Errorf("NewRelationshipID() length = %d, want %d (id=%q)", len(id), wantLen, id)
	}
}

func TestNewTodoID(t *testing.T) {
	id, err := NewTodoID()
	if err != nil {
		t.Fatalf("NewTodoID() error: %v", err)
	}
	if !strings.HasPrefix(id, TodoPrefix) {
		t.Errorf("NewTodoID() = %q, want prefix %q", id, TodoPrefix)
	}
}

func TestGenerateWithPrefix_Charset(t *testing.T) {
	pattern := regexp.MustCompile(`^x-[a-zA-Z0-9]+$`)
	for i := 0; i < 100; i++ {
		id, err := GenerateWithPrefix("x-")
		if err != nil {
			t.Fatalf("GenerateWithPrefix error on iteration %d: %v", i, err)
		}
		if !pattern.MatchString(id) {
			t.Fatalf("GenerateWithPrefix = %q, does not match expected charset pattern", id)
		}
	}
}

func TestGenerateWithPrefix_Uniqueness(t *testing.T) {
	const count = 10_000
	seen := make(map[string]struct{}, count)
	for i := 0; i < count; i++ {
		id, err := NewRelationshipID()
		if err != nil {
			t.Fatalf("NewRelationshipID() error on iteration %d: %v", i, err)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate ID after %d generations: %q", i, id)
		}
		seen[id] = struct{}{}
	}
}
