package domain

import "strings"

// Role enumerates supported account roles.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// NormalizeRole maps the backend's free-form role string onto the two
// supported roles, case-insensitively. Anything unrecognized is a
// plain user.
func NormalizeRole(raw string) Role {
	if strings.EqualFold(strings.TrimSpace(raw), string(RoleAdmin)) {
		return RoleAdmin
	}
	return RoleUser
}

// User is the authenticated account summary returned by the auth
// service and kept inside the session.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Verified bool   `json:"isVerified"`
}
