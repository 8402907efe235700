// Package server exposes the todo and relationship workflows over HTTP.
package server

import (
	"context"
	"log/slog"

	"github.com/alfredjeanlab/todograph/internal/events"
	"github.com/alfredjeanlab/todograph/internal/graph"
	"github.com/alfredjeanlab/todograph/internal/store"
)

// Server holds the long-lived dependencies shared by every handler.
type Server struct {
	store     store.Store
	graph     *graph.Service
	publisher events.Publisher
}

// New returns a Server backed by the given store, graph service, and publisher.
func New(st store.Store, g *graph.Service, p events.Publisher) *Server {
	if p == nil {
		p = &events.NoopPublisher{}
	}
	return &Server{store: st, graph: g, publisher: p}
}

// publish emits an event to NATS. Best-effort; failures are logged but do not
// block the caller.
func (s *Server) publish(ctx context.Context, topic string, event any) {
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		slog.Warn("failed to publish event", "topic", topic, "error", err)
	}
}
