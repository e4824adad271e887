package notification

import (
	"time"

	"github.com/velamar-hotels/hr-backend-go/internal/domain/user"
)

type Kind string

const (
	KindInfo            Kind = "info"
	KindLeaveRequested  Kind = "leave_requested"
	KindLeaveApproved   Kind = "leave_approved"
	KindLeaveRejected   Kind = "leave_rejected"
	KindOvertimeDecided Kind = "overtime_decided"
	KindScheduleUpdated Kind = "schedule_updated"
)

// Target selects recipients: either one specific user, or everyone with a
// role, optionally narrowed to one sector. Exactly one arm of the union is
// set; a sector scope is only meaningful with a role.
type Target struct {
	UserID   *int64
	Role     *user.Role
	SectorID *int64
}

func TargetUser(userID int64) Target {
	return Target{UserID: &userID}
}

func TargetRole(role user.Role) Target {
	return Target{Role: &role}
}

func TargetRoleSector(role user.Role, sectorID int64) Target {
	return Target{Role: &role, SectorID: &sectorID}
}

func (t Target) Valid() bool {
	if t.UserID != nil {
		return t.Role == nil && t.SectorID == nil
	}
	if t.Role != nil {
		return true
	}
	return false
}

// Notification is one persisted message. The core never mutates it after
// creation except the read flag and bulk cleanup of read items.
type Notification struct {
	ID        int64
	UserID    *int64
	Role      *user.Role
	SectorID  *int64
	Kind      Kind
	Message   string
	Link      *string
	Read      bool
	CreatedAt time.Time
}

// VisibleTo implements the inbox rule: a recipient sees notifications
// addressed to their user id, to their role with no sector restriction, or
// to their role and their own sector. Admins additionally see untargeted
// broadcasts.
func (n Notification) VisibleTo(userID int64, role user.Role, sectorID *int64) bool {
	if n.UserID != nil {
		return *n.UserID == userID
	}
	if n.Role != nil {
		if *n.Role != role {
			return false
		}
		if n.SectorID == nil {
			return true
		}
		return sectorID != nil && *n.SectorID == *sectorID
	}
	// No user, no role: a global broadcast, admin eyes only.
	return role == user.RoleAdmin
}
