package models

import (
	"time"
)

// Roles accepted for the userType field. Registration rejects anything
// outside this set.
const (
	RoleStudent = "Student"
	RoleFaculty = "Faculty"
	RoleAdmin   = "Admin"
	RoleParent  = "Parent"
)

var validRoles = map[string]bool{
	RoleStudent: true,
	RoleFaculty: true,
	RoleAdmin:   true,
	RoleParent:  true,
}

// ValidRole reports whether role belongs to the closed userType set.
func ValidRole(role string) bool {
	return validRoles[role]
}

type User struct {
	ID           int64
	UserType     string // drives post-login routing and authorization
	FullName     string
	CID          string // college identifier, unique alternate login key
	Email        string
	Phone        string
	PasswordHash string // never serialized in any response
	IsActive     bool
	CreatedAt    time.Time
}

// UserUpdate is the allow-listed set of fields mutable after creation.
// Nil members are left untouched; everything else on User is immutable.
type UserUpdate struct {
	FullName *string
	Phone    *string
	IsActive *bool
}

// Empty reports whether the update carries no fields at all.
func (u UserUpdate) Empty() bool {
	return u.FullName == nil && u.Phone == nil && u.IsActive == nil
}
