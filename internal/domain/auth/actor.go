package auth

import (
	"context"

	"github.com/velamar-hotels/hr-backend-go/internal/domain/user"
)

// Actor is the authenticated identity behind a request. It is decoded from
// JWT claims once by the middleware and passed explicitly into every
// workflow call; no service reads ambient session state.
type Actor struct {
	UserID     int64
	Role       user.Role
	EmployeeID *int64
	SectorID   *int64
}

func (a Actor) IsAdmin() bool {
	return a.Role == user.RoleAdmin
}

// CanDecideFor reports whether the actor may approve or reject items for
// employees of the given sector. Admins decide anywhere; managers only
// within their own sector.
func (a Actor) CanDecideFor(sectorID *int64) bool {
	if a.Role == user.RoleAdmin {
		return true
	}
	if a.Role != user.RoleManager {
		return false
	}
	return a.SectorID != nil && sectorID != nil && *a.SectorID == *sectorID
}

type actorKey struct{}

// WithActor binds the actor to the request context.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom extracts the actor from the request context.
func ActorFrom(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(Actor)
	return actor, ok
}
