package auth

import (
	"context"

	"github.com/consite/inventory-service/internal/model"
)

// Actor is the caller identity resolved from the bearer credential:
// who is calling, as which role, and which location they are assigned to.
// LocationID is nil for super admins and for scoped users that have not
// been assigned a location yet.
type Actor struct {
	ID         int64          `json:"id"`
	Email      string         `json:"email"`
	Role       model.UserRole `json:"role"`
	LocationID *int64         `json:"location_id"`
}

// IsSuperAdmin reports whether the actor bypasses location scoping.
func (a Actor) IsSuperAdmin() bool {
	return a.Role == model.RoleSuperAdmin
}

type ctxKey struct{}

// WithActor returns a context carrying the resolved caller identity.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, actor)
}

// FromContext extracts the caller identity. ok is false when the request
// never passed authentication.
func FromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(ctxKey{}).(Actor)
	return actor, ok
}
