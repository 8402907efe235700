package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/alfredjeanlab/todograph/internal/model"
	"github.com/alfredjeanlab/todograph/internal/store"
)

// exportPageSize matches the store adapter's page cap.
const exportPageSize = 500

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version           string    `json:"version"`
	Type              string    `json:"type"`
	Timestamp         time.Time `json:"timestamp"`
	TodoCount         int       `json:"todo_count"`
	RelationshipCount int       `json:"relationship_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// ExportJSONL writes every todo and relationship from the store as JSONL to w.
// Rows are fetched in pages and sorted by ID so successive exports of the same
// data are byte-identical.
func ExportJSONL(ctx context.Context, s store.Store, w io.Writer) error {
	var todos []*model.Todo
	offset := 0
	for {
		page, _, err := s.ListTodos(ctx, model.TodoFilter{Limit: exportPageSize, Offset: offset})
		if err != nil {
			return fmt.Errorf("list todos: %w", err)
		}
		todos = append(todos, page...)
		if len(page) < exportPageSize {
			break
		}
		offset += len(page)
	}

	var rels []*model.Relationship
	offset = 0
	for {
		page, _, err := s.ListRelationships(ctx, model.RelationshipFilter{Limit: exportPageSize, Offset: offset})
		if err != nil {
			return fmt.Errorf("list relationships: %w", err)
		}
		rels = append(rels, page...)
		if len(page) < exportPageSize {
			break
		}
		offset += len(page)
	}

	sort.Slice(todos, func(i, j int) bool { return todos[i].ID < todos[j].ID })
	sort.Slice(rels, func(i, j int) bool { return rels[i].ID < rels[j].ID })

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:           "1",
		Type:              "header",
		Timestamp:         time.Now().UTC(),
		TodoCount:         len(todos),
		RelationshipCount: len(rels),
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, t := range todos {
		if err := enc.Encode(record{Type: "todo", Data: t}); err != nil {
			return fmt.Errorf("encode todo %s: %w", t.ID, err)
		}
	}

	for _, r := range rels {
		if err := enc.Encode(record{Type: "relationship", Data: r}); err != nil {
			return fmt.Errorf("encode relationship %s: %w", r.ID, err)
		}
	}

	return nil
}
