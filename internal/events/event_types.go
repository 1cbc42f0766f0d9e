package events

import (
	"time"

	"github.com/EstebanIM/wololo/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAdminInvited         EventType = "admin_invited"
	EventInviteDispatchFailed EventType = "invite_dispatch_failed"
	EventAdminCompleted       EventType = "admin_completed"
	EventSuperadminCreated    EventType = "superadmin_created"
	EventUserRegistered       EventType = "user_registered"
	EventUserVerified         EventType = "user_verified"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AdminInvitedPayload payload.
type AdminInvitedPayload struct {
	Email     string `json:"email"`
	BrandName string `json:"brand_name"`
	MessageID string `json:"message_id"`
}

// InviteDispatchFailedPayload payload.
type InviteDispatchFailedPayload struct {
	Email     string `json:"email"`
	BrandName string `json:"brand_name"`
	Reason    string `json:"reason"`
}

// AdminCompletedPayload payload.
type AdminCompletedPayload struct {
	BrandName     string `json:"brand_name"`
	CredentialSet bool   `json:"credential_set"`
}

// SuperadminCreatedPayload payload.
type SuperadminCreatedPayload struct {
	Email string `json:"email"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// UserVerifiedPayload payload.
type UserVerifiedPayload struct {
	Email string `json:"email"`
}
