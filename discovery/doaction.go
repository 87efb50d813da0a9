package discovery

import (
	"context"

	"github.com/apache/arrow-go/v18/arrow/flight"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/heron-db/catalog/catalog"
	"github.com/heron-db/catalog/internal/msgpack"
	"github.com/heron-db/catalog/internal/recovery"
	"github.com/heron-db/catalog/resolver"
	"github.com/heron-db/catalog/session"
)

// DoAction dispatches the five discovery actions this service
// supports, mirroring the teacher's switch-on-action-type shape
// (flight/doaction.go) pared down from query/DDL/DML execution to
// pure catalog introspection and attach/detach.
func (s *Server) DoAction(action *flight.Action, stream flight.FlightService_DoActionServer) error {
	ctx := stream.Context()

	s.Logger.Debug("DoAction called", "type", action.GetType(), "body_size", len(action.GetBody()))

	switch action.GetType() {
	case "list_schemas":
		return s.handleListSchemas(ctx, action, stream)
	case "resolve_entry":
		return s.handleResolveEntry(ctx, action, stream)
	case "attach":
		return s.handleAttach(ctx, action, stream)
	case "detach":
		return s.handleDetach(ctx, action, stream)
	case "resolve_setting":
		return s.handleResolveSetting(ctx, action, stream)
	default:
		return status.Errorf(codes.Unimplemented, "unknown action type: %s", action.GetType())
	}
}

func sendResult(stream flight.FlightService_DoActionServer, v any) error {
	body, err := msgpack.Encode(v)
	if err != nil {
		return status.Errorf(codes.Internal, "encode response: %v", err)
	}
	if err := stream.Send(&flight.Result{Body: body}); err != nil {
		return status.Errorf(codes.Internal, "send result: %v", err)
	}
	return nil
}

type listSchemasParams struct {
	CatalogName string `msgpack:"catalog_name"`
}

type schemaInfo struct {
	CatalogName string `msgpack:"catalog_name"`
	SchemaName  string `msgpack:"schema_name"`
}

// handleListSchemas returns every schema of one catalog, or of every
// attached catalog if catalog_name is omitted — generalized from the
// teacher's single-catalog handleListSchemas to this module's
// multicatalog manager.
func (s *Server) handleListSchemas(ctx context.Context, action *flight.Action, stream flight.FlightService_DoActionServer) error {
	var params listSchemasParams
	if len(action.GetBody()) > 0 {
		if err := msgpack.Decode(action.GetBody(), &params); err != nil {
			return status.Errorf(codes.InvalidArgument, "invalid parameters: %v", err)
		}
	}

	sess, err := s.sessionFor(ctx, params.CatalogName)
	if err != nil {
		return status.Errorf(codes.Internal, "create session: %v", err)
	}
	defer sess.Close()

	schemas, err := recovery.RecoverToValue(s.Logger, "list_schemas", func() ([]*catalog.Schema, error) {
		if params.CatalogName == "" {
			return s.Resolver.ListAllSchemas(), nil
		}
		return s.Resolver.ListSchemas(sess, params.CatalogName)
	})
	if err != nil {
		return status.Errorf(codes.NotFound, "%v", err)
	}

	out := make([]schemaInfo, len(schemas))
	for i, sch := range schemas {
		out[i] = schemaInfo{CatalogName: sch.Catalog.Name, SchemaName: sch.Name}
	}
	return sendResult(stream, out)
}

type resolveEntryParams struct {
	Kind            string `msgpack:"kind"`
	CatalogName     string `msgpack:"catalog_name"`
	SchemaName      string `msgpack:"schema_name"`
	Name            string `msgpack:"name"`
	IfExists        bool   `msgpack:"if_exists"`
	DefaultDatabase string `msgpack:"default_database"`
}

type entryInfo struct {
	CatalogName string `msgpack:"catalog_name"`
	SchemaName  string `msgpack:"schema_name"`
	Name        string `msgpack:"name"`
	Kind        string `msgpack:"kind"`
	Comment     string `msgpack:"comment"`
}

// handleResolveEntry runs one name-resolution lookup (C7) and returns
// the resolved entry, or the suggestion-enriched not-found message
// (C8) as a gRPC NotFound status.
func (s *Server) handleResolveEntry(ctx context.Context, action *flight.Action, stream flight.FlightService_DoActionServer) error {
	var params resolveEntryParams
	if err := msgpack.Decode(action.GetBody(), &params); err != nil {
		return status.Errorf(codes.InvalidArgument, "invalid parameters: %v", err)
	}

	kind, ok := catalog.ParseEntryKind(params.Kind)
	if !ok {
		return status.Errorf(codes.InvalidArgument, "unknown entry kind: %s", params.Kind)
	}

	sess, err := s.sessionFor(ctx, params.DefaultDatabase)
	if err != nil {
		return status.Errorf(codes.Internal, "create session: %v", err)
	}
	defer sess.Close()

	tx := catalog.NewTxnState()
	defer tx.Commit()

	entry, err := recovery.RecoverToValue(s.Logger, "resolve_entry", func() (*catalog.Entry, error) {
		return s.Resolver.ResolveEntry(tx, sess, kind, params.CatalogName, params.SchemaName, params.Name, params.IfExists)
	})
	if err != nil {
		return status.Error(codes.NotFound, err.Error())
	}
	if entry == nil {
		return sendResult(stream, (*entryInfo)(nil))
	}

	return sendResult(stream, entryInfo{
		CatalogName: entry.Schema.Catalog.Name,
		SchemaName:  entry.Schema.Name,
		Name:        entry.Name,
		Kind:        entry.Kind.String(),
		Comment:     entry.Comment,
	})
}

type attachParams struct {
	CatalogName string `msgpack:"catalog_name"`
}

// handleAttach attaches a new, empty user catalog under catalog_name.
func (s *Server) handleAttach(ctx context.Context, action *flight.Action, stream flight.FlightService_DoActionServer) error {
	var params attachParams
	if err := msgpack.Decode(action.GetBody(), &params); err != nil {
		return status.Errorf(codes.InvalidArgument, "invalid parameters: %v", err)
	}

	txn := session.Begin(ctx)
	if err := txn.Check(); err != nil {
		return status.Errorf(codes.Canceled, "%v", err)
	}

	cat := catalog.NewCatalog(params.CatalogName, false, false)
	if err := recovery.RecoverToError(s.Logger, "attach", func() error {
		return s.Manager.Attach(params.CatalogName, cat)
	}); err != nil {
		return status.Errorf(codes.AlreadyExists, "%v", err)
	}
	return sendResult(stream, struct{}{})
}

type detachParams struct {
	CatalogName string `msgpack:"catalog_name"`
}

// handleDetach detaches a previously-attached catalog.
func (s *Server) handleDetach(ctx context.Context, action *flight.Action, stream flight.FlightService_DoActionServer) error {
	var params detachParams
	if err := msgpack.Decode(action.GetBody(), &params); err != nil {
		return status.Errorf(codes.InvalidArgument, "invalid parameters: %v", err)
	}

	txn := session.Begin(ctx)
	if err := txn.Check(); err != nil {
		return status.Errorf(codes.Canceled, "%v", err)
	}

	if err := recovery.RecoverToError(s.Logger, "detach", func() error {
		return s.Manager.Detach(params.CatalogName)
	}); err != nil {
		return status.Errorf(codes.NotFound, "%v", err)
	}
	return sendResult(stream, struct{}{})
}

type resolveSettingParams struct {
	Name string `msgpack:"name"`
}

// handleResolveSetting validates a configuration parameter name
// against the enumerated settings set and the extension registry
// (spec.md §4.8 layer 3, §6's 'unrecognized configuration parameter'
// message).
func (s *Server) handleResolveSetting(ctx context.Context, action *flight.Action, stream flight.FlightService_DoActionServer) error {
	var params resolveSettingParams
	if err := msgpack.Decode(action.GetBody(), &params); err != nil {
		return status.Errorf(codes.InvalidArgument, "invalid parameters: %v", err)
	}

	if err := resolver.ResolveSetting(params.Name); err != nil {
		return status.Error(codes.NotFound, err.Error())
	}
	return sendResult(stream, struct{}{})
}
