package domain

import "time"

// Account is an identity-provider credential record. Profile data lives
// on User; the two share the same id.
type Account struct {
	ID            string
	Email         string
	PasswordHash  string
	EmailVerified bool

	VerifyToken          *string
	VerifyTokenExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// User is the profile record for a self-registered end user. It is keyed
// by the identity-provider account id, never by a store-generated one.
type User struct {
	ID         string
	FirstName  string
	LastName   string
	NationalID string
	Email      string
	CreatedAt  time.Time
}
