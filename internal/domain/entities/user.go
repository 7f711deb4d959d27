package entities

import "time"

// Role is the access level attached to every authenticated caller.

type Role string

const (
	RoleAgent Role = "agent"
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one the portal knows about.
func (r Role) Valid() bool {
	switch r {
	case RoleAgent, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// CanReview reports whether the role may approve/reject quotes and issue
// policies. Admin carries all staff privileges.
func (r Role) CanReview() bool {
	return r == RoleStaff || r == RoleAdmin
}

// Actor is the identity the auth middleware resolves for each request.
type Actor struct {
	UserID string
	Role   Role
}

// User is the profile row kept alongside the identity platform's account.
//
// Storage model (DynamoDB):
//   - PK: id (the identity platform's user id)
type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Role      Role       `json:"role"`
	FullName  string     `json:"full_name"`
	Phone     string     `json:"phone,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}
