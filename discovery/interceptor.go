package discovery

import (
	"context"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/heron-db/catalog/auth"
	"github.com/heron-db/catalog/internal/recovery"
	"github.com/heron-db/catalog/internal/txcontext"
)

// UnaryServerInterceptor authenticates the bearer token on unary RPCs
// (there are none in this service today, but DoAction's streaming
// variant shares the same validation helper below) and propagates
// identity and transaction ID via context. A nil authenticator lets
// every request through, matching the teacher's interceptor shape. A
// nil logger falls back to slog.Default().
func UnaryServerInterceptor(authenticator auth.Authenticator, logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx, err := authenticate(ctx, authenticator, logger)
		if err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

// StreamServerInterceptor is UnaryServerInterceptor's streaming
// counterpart, used for DoAction and ListFlights.
func StreamServerInterceptor(authenticator auth.Authenticator, logger *slog.Logger) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		ctx, err := authenticate(ss.Context(), authenticator, logger)
		if err != nil {
			return err
		}
		return handler(srv, &wrappedServerStream{ServerStream: ss, ctx: ctx})
	}
}

// authenticate validates the caller's bearer token and, if the
// authenticator also implements auth.CatalogAuthorizer, authorizes
// catalog access. Both calls reach caller-supplied Authenticator code,
// so they run under recovery.RecoverToValue the way the discovery
// service's other externally-reachable calls do.
func authenticate(ctx context.Context, authenticator auth.Authenticator, logger *slog.Logger) (context.Context, error) {
	ctx = txcontext.ExtractAndStoreTransactionID(ctx)
	if authenticator == nil {
		return ctx, nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	token, err := auth.ExtractToken(ctx)
	if err != nil {
		return ctx, err
	}

	return recovery.RecoverToValue(logger, "authenticate", func() (context.Context, error) {
		ctx, err := auth.ValidateToken(ctx, token, authenticator)
		if err != nil {
			return ctx, err
		}

		if ca, ok := authenticator.(auth.CatalogAuthorizer); ok {
			ctx, err = ca.AuthorizeCatalog(ctx, "")
			if err != nil {
				return ctx, status.Errorf(codes.PermissionDenied, "catalog authorization failed: %v", err)
			}
		}
		return ctx, nil
	})
}

// wrappedServerStream overrides grpc.ServerStream's Context, the
// standard way to plumb an enriched context through a streaming RPC.
type wrappedServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (w *wrappedServerStream) Context() context.Context { return w.ctx }
