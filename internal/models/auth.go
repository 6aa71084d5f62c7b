package models

import "github.com/golang-jwt/jwt/v5"

// UserRole is the role claim carried by access tokens.
type UserRole string

const (
	RoleAdmin          UserRole = "admin"
	RoleDepartmentHead UserRole = "department_head"
	RoleTeacher        UserRole = "teacher"
)

// JWTClaims represents the access token payload issued by the auth service.
// The subject claim holds the worker id.
type JWTClaims struct {
	Role  UserRole `json:"role"`
	Email string   `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// WorkerID returns the authenticated worker's id.
func (c *JWTClaims) WorkerID() string {
	if c == nil {
		return ""
	}
	return c.Subject
}
