package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // full access across all sectors
	RoleManager  Role = "manager"  // can approve within own sector
	RoleEmployee Role = "employee" // regular employee
)

// User is a login account. Not every employee has one; EmployeeID is nil
// for pure administrative accounts and employee-less logins are not allowed
// to submit leave.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	EmployeeID   *int64
	CreatedAt    time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) CanApprove() bool {
	return u.Role == RoleAdmin || u.Role == RoleManager
}

func ValidRole(r string) bool {
	switch Role(r) {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}
