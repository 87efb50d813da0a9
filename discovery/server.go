// Package discovery implements a read-only Arrow Flight service over
// the catalog: DoAction(list_schemas, resolve_entry, attach, detach,
// resolve_setting) and ListFlights (one compressed Arrow IPC snapshot per attached
// catalog). It deliberately never implements DoGet/DoPut/DoExchange —
// this service describes the catalog for remote introspection, it
// does not execute queries against it.
package discovery

import (
	"context"
	"log/slog"

	"github.com/apache/arrow-go/v18/arrow/flight"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"google.golang.org/grpc"

	"github.com/heron-db/catalog/auth"
	"github.com/heron-db/catalog/catalog"
	"github.com/heron-db/catalog/dbmanager"
	"github.com/heron-db/catalog/resolver"
	"github.com/heron-db/catalog/session"
)

// Server implements the discovery Flight service handlers. Embeds
// BaseFlightServer for forward compatibility with protocol changes,
// following the teacher's flight.Server shape.
type Server struct {
	flight.BaseFlightServer

	Manager   *dbmanager.Manager
	Resolver  *resolver.Resolver
	Allocator memory.Allocator
	Logger    *slog.Logger
}

// NewServer builds a discovery server over an already-bootstrapped
// manager.
func NewServer(m *dbmanager.Manager, allocator memory.Allocator, logger *slog.Logger) *Server {
	return &Server{
		Manager:   m,
		Resolver:  resolver.New(m),
		Allocator: allocator,
		Logger:    logger,
	}
}

// RegisterFlightServer registers the discovery service on grpcServer.
func RegisterFlightServer(grpcServer *grpc.Server, s *Server) {
	flight.RegisterFlightServiceServer(grpcServer, s)
}

// sessionFor builds the ephemeral per-call session a DoAction handler
// operates under: identity from the auth interceptor, default database
// from the caller's request. Sessions are not persisted across calls —
// this service resolves and mutates the catalog, it does not hold open
// a client's SQL connection, so there is no multi-call search-path
// state to keep (see DESIGN.md).
func (s *Server) sessionFor(ctx context.Context, defaultDatabase string) (*session.Session, error) {
	identity := auth.IdentityFromContext(ctx)
	if identity == "" {
		identity = "anonymous"
	}
	if defaultDatabase == "" {
		if attached := s.Manager.List(); len(attached) > 0 {
			defaultDatabase = attached[0].Name
		} else {
			defaultDatabase = catalog.SystemCatalogName
		}
	}
	return session.New(identity, defaultDatabase)
}
