package domain

import "time"

// AdminStatus tracks the invitation lifecycle of an admin record.
type AdminStatus string

const (
	AdminStatusPending  AdminStatus = "PENDING"
	AdminStatusComplete AdminStatus = "COMPLETE"
)

// Admin models a brand-scoped operator provisioned by invitation.
// Email and BrandName are set at creation; the identity fields stay
// empty until the invitee completes the record.
type Admin struct {
	ID        string
	Email     string
	BrandName string
	Role      Role
	Status    AdminStatus

	NationalID   string
	CheckDigit   string
	FirstName    string
	FirstSurname string
	PasswordHash *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsComplete reports whether the invitee already submitted the completion form.
func (a *Admin) IsComplete() bool {
	return a.Status == AdminStatusComplete
}

// AdminCompletion carries the validated fields written on completion.
type AdminCompletion struct {
	NationalID   string
	CheckDigit   string
	FirstName    string
	FirstSurname string
	BrandName    string
	PasswordHash *string
}
