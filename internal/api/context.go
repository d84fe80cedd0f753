package api

import (
	"context"
	"errors"

	"github.com/forgeboard/forgeboard/internal/types"
)

// identityContextKey is the context key for the authenticated identity.
type identityContextKey struct{}

// ErrNoIdentityInContext indicates no identity was found in the context.
var ErrNoIdentityInContext = errors.New("no identity in context")

// WithIdentity returns a new context with the identity attached.
func WithIdentity(ctx context.Context, id types.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext extracts the identity from the context.
// Returns ErrNoIdentityInContext if not present.
func IdentityFromContext(ctx context.Context) (types.Identity, error) {
	id, ok := ctx.Value(identityContextKey{}).(types.Identity)
	if !ok || id.UID == "" {
		return types.Identity{}, ErrNoIdentityInContext
	}
	return id, nil
}

// MustIdentityFromContext extracts the identity or panics.
// Use only when middleware guarantees identity presence.
func MustIdentityFromContext(ctx context.Context) types.Identity {
	id, err := IdentityFromContext(ctx)
	if err != nil {
		panic("identity not in context: middleware misconfiguration")
	}
	return id
}
