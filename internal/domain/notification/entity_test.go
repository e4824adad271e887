package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/velamar-hotels/hr-backend-go/internal/domain/user"
)

func ptr(v int64) *int64 { return &v }

func TestTargetValid(t *testing.T) {
	assert.True(t, TargetUser(1).Valid())
	assert.True(t, TargetRole(user.RoleAdmin).Valid())
	assert.True(t, TargetRoleSector(user.RoleManager, 3).Valid())

	// Sector without role, and user mixed with role, are malformed.
	assert.False(t, Target{SectorID: ptr(3)}.Valid())
	role := user.RoleManager
	assert.False(t, Target{UserID: ptr(1), Role: &role}.Valid())
	assert.False(t, Target{}.Valid())
}

func TestVisibleTo(t *testing.T) {
	role := user.RoleManager

	userTargeted := Notification{UserID: ptr(7)}
	assert.True(t, userTargeted.VisibleTo(7, user.RoleEmployee, nil))
	assert.False(t, userTargeted.VisibleTo(8, user.RoleEmployee, nil))
	assert.False(t, userTargeted.VisibleTo(8, user.RoleAdmin, nil))

	roleWide := Notification{Role: &role}
	assert.True(t, roleWide.VisibleTo(1, user.RoleManager, nil))
	assert.True(t, roleWide.VisibleTo(1, user.RoleManager, ptr(2)))
	assert.False(t, roleWide.VisibleTo(1, user.RoleEmployee, ptr(2)))

	roleSector := Notification{Role: &role, SectorID: ptr(3)}
	assert.True(t, roleSector.VisibleTo(1, user.RoleManager, ptr(3)))
	assert.False(t, roleSector.VisibleTo(1, user.RoleManager, ptr(4)))
	assert.False(t, roleSector.VisibleTo(1, user.RoleManager, nil))

	broadcast := Notification{}
	assert.True(t, broadcast.VisibleTo(1, user.RoleAdmin, nil))
	assert.False(t, broadcast.VisibleTo(1, user.RoleManager, ptr(3)))
	assert.False(t, broadcast.VisibleTo(1, user.RoleEmployee, nil))
}
