package dto

import "time"

// ProvisionRequest is the role-switched creation form.
type ProvisionRequest struct {
	Role            string `json:"role"`
	BrandName       string `json:"nombreMarca"`
	AdminEmail      string `json:"correoAdmin"`
	SuperadminEmail string `json:"correoSuperadmin"`
}

// ProvisionResponse reports what was created.
type ProvisionResponse struct {
	Role         string `json:"role"`
	AdminID      string `json:"admin_id,omitempty"`
	SuperadminID string `json:"superadmin_id,omitempty"`
	MessageID    string `json:"message_id,omitempty"`
}

// AdminPrefill is the completion-form load response: the read-only
// email plus the editable brand name.
type AdminPrefill struct {
	ID        string `json:"id"`
	Email     string `json:"correoAdmin"`
	BrandName string `json:"nombreMarca"`
	Status    string `json:"status"`
}

// CompletionRequest is the invitee's completion submission.
type CompletionRequest struct {
	NationalID      string `json:"rut"`
	CheckDigit      string `json:"numVerificador"`
	FirstName       string `json:"primNom"`
	FirstSurname    string `json:"primAp"`
	BrandName       string `json:"nombreComercial"`
	Email           string `json:"correoAdmin"`
	Password        string `json:"clave"`
	ConfirmPassword string `json:"confirmarClave"`
}

// StrengthRequest asks for a live credential score.
type StrengthRequest struct {
	Password string `json:"clave"`
}

// StrengthResponse carries the 0-5 score.
type StrengthResponse struct {
	Score int `json:"score"`
}

// PendingInviteResponse is one undelivered-invite row.
type PendingInviteResponse struct {
	AdminID   string    `json:"admin_id"`
	Email     string    `json:"correoAdmin"`
	BrandName string    `json:"nombreMarca"`
	CreatedAt time.Time `json:"created_at"`
}

// SuperadminResponse is one superadmin row.
type SuperadminResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
