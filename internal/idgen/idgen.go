// Package idgen provides short, URL-safe unique ID generation backed by nanoid.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for the two id namespaces.
const (
	TodoPrefix         = "td-"
	RelationshipPrefix = "rl-"
)

// Alphabet defines the character set used for the random portion of the ID.
var Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length is the number of random characters generated (excluding the prefix).
var Length = 10

// NewTodoID returns a new unique todo id.
func NewTodoID() (string, error) {
	return GenerateWithPrefix(TodoPrefix)
}

// NewRelationshipID returns a new unique relationship id.
func NewRelationshipID() (string, error) {
	return GenerateWithPrefix(RelationshipPrefix)
}

// GenerateWithPrefix returns a new unique ID with the given prefix.
func GenerateWithPrefix(prefix string) (string, error) {
	id, err := nanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return prefix + id, nil
}
