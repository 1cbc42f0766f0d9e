package dto

// SendEmailRequest is the wire contract of POST /send-email. Field
// names match the original frontend callers.
type SendEmailRequest struct {
	AdminEmail string `json:"correoAdmin"`
	BrandName  string `json:"nombreMarca"`
	AdminID    string `json:"adminId"`
}
