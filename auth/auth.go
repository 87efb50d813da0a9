// Package auth provides authentication interfaces and helpers for the
// catalog discovery service: who is calling, and whether they may
// mutate a given attached catalog.
package auth

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrInvalidAuthHeader is returned when the authorization header is malformed.
	ErrInvalidAuthHeader = errors.New("authorization header must use Bearer scheme")

	// ErrTokenIsEmpty is returned when the Bearer scheme is present but the token after it is empty.
	ErrTokenIsEmpty = errors.New("authorization token is empty")

	// ErrUnauthenticated is returned when authentication fails.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// Authenticator validates bearer tokens and returns user identity.
// Implementations MUST be goroutine-safe.
type Authenticator interface {
	// Authenticate validates a bearer token and returns user identity.
	// Returns error if token is invalid or expired.
	// Identity string is used for authorization and logging.
	// Context allows timeout for auth backend calls.
	Authenticate(ctx context.Context, token string) (identity string, err error)
}

// CatalogAuthorizer is an optional interface that Authenticator implementations
// can also implement to provide per-catalog authorization.
//
// When an Authenticator also implements CatalogAuthorizer:
//  1. Authenticate(ctx, token) is called first to validate the token
//  2. AuthorizeCatalog(ctx, catalog) is called to authorize catalog access
//
// This allows separating authentication (who are you?) from authorization
// (can you access this catalog?).
type CatalogAuthorizer interface {
	// AuthorizeCatalog authorizes access to a specific catalog.
	// Called after successful Authenticate() to check catalog-level permissions.
	// Parameters:
	//   - ctx: Request context with identity already set from Authenticate()
	//   - catalog: Target catalog name (empty string for default)
	// Returns:
	//   - ctx: Potentially enriched context (e.g., with catalog-specific claims)
	//   - err: Non-nil if authorization fails (returns gRPC PermissionDenied status)
	AuthorizeCatalog(ctx context.Context, catalog string) (context.Context, error)
}

// noAuthenticator is an Authenticator that allows all requests.
// Used for development/testing. DO NOT use in production.
type noAuthenticator struct{}

// NoAuth returns an Authenticator that allows all requests.
// Useful for development/testing. DO NOT use in production.
func NoAuth() Authenticator {
	return &noAuthenticator{}
}

// Authenticate implements Authenticator for noAuthenticator.
// Always returns "anonymous" as the identity.
func (n *noAuthenticator) Authenticate(ctx context.Context, token string) (string, error) {
	return "anonymous", nil
}

const bearerPrefix = "Bearer "

func TokenFromAuthorizationHeader(authHeader string) (string, error) {
	// Expected format: "Bearer <token>"
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", ErrInvalidAuthHeader
	}

	token := strings.TrimPrefix(authHeader, bearerPrefix)
	if token == "" {
		return "", ErrTokenIsEmpty
	}
	return token, nil
}
