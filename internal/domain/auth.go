package domain

import "time"

// Role enumerates the principals known to the session gate.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// Token represents issued session token metadata.
type Token struct {
	SubjectID string
	Email     string
	Role      Role
	ExpiresAt time.Time
	IssuedAt  time.Time
}
