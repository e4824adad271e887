package notification

import (
	"context"

	"github.com/velamar-hotels/hr-backend-go/internal/domain/user"
)

type Repository interface {
	Create(ctx context.Context, n Notification) (Notification, error)
	// ListInbox returns the recipient's inbox per the visibility rule,
	// newest first.
	ListInbox(ctx context.Context, userID int64, role user.Role, sectorID *int64, unreadOnly bool) ([]Notification, error)
	// MarkRead flags the given notifications read, constrained to ones the
	// recipient can see.
	MarkRead(ctx context.Context, ids []int64, userID int64, role user.Role, sectorID *int64) error
	// ClearRead removes read items addressed to the caller's user id or
	// role; it never touches other recipients' items.
	ClearRead(ctx context.Context, userID int64, role user.Role) (int64, error)
}

// Dispatcher is the write side consumed by workflows. Fan-out to several
// roles or sectors is the caller's responsibility: one Notify call per
// target.
type Dispatcher interface {
	Notify(ctx context.Context, kind Kind, message string, target Target, link *string) error
}
