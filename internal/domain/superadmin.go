package domain

import "time"

// Superadmin is a top-level operator account, created fully formed.
type Superadmin struct {
	ID        string
	Email     string
	Role      Role
	CreatedAt time.Time
}
