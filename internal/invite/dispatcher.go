package invite

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"go.uber.org/zap"

	"github.com/EstebanIM/wololo/internal/mailer"
	apperrors "github.com/EstebanIM/wololo/pkg/util"
)

// Invitation is the dispatch input; all fields are required.
type Invitation struct {
	AdminID    string
	AdminEmail string
	BrandName  string
}

// Validate checks required-field presence.
func (i Invitation) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.AdminID, validation.Required),
		validation.Field(&i.AdminEmail, validation.Required),
		validation.Field(&i.BrandName, validation.Required),
	)
}

// Dispatcher delivers admin invitation emails. Stateless, single
// attempt, synchronous result; retry policy belongs to the caller.
type Dispatcher struct {
	sender          mailer.Sender
	tokens          *TokenIssuer
	frontendBaseURL string
	logger          *zap.Logger
}

// NewDispatcher builds a dispatcher.
func NewDispatcher(sender mailer.Sender, tokens *TokenIssuer, frontendBaseURL string, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		sender:          sender,
		tokens:          tokens,
		frontendBaseURL: strings.TrimRight(frontendBaseURL, "/"),
		logger:          logger,
	}
}

// Link builds the completion deep link for the admin, carrying the
// signed invite token.
func (d *Dispatcher) Link(adminID string) (string, error) {
	token, err := d.tokens.Mint(adminID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/complete-admin-info/%s?token=%s", d.frontendBaseURL, adminID, token), nil
}

// Dispatch sends the invitation email and returns the transport
// message id.
func (d *Dispatcher) Dispatch(ctx context.Context, inv Invitation) (string, error) {
	if err := inv.Validate(); err != nil {
		return "", apperrors.NewValidationError("missing invitation fields", map[string]any{"fields": err.Error()})
	}

	link, err := d.Link(inv.AdminID)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}

	msg := mailer.Message{
		To:      inv.AdminEmail,
		Subject: "Complete your administrator account information",
		HTML: fmt.Sprintf(`
      <h2>Hello, you have been registered as an administrator of %s</h2>
      <p>Please complete the rest of your information at the following link:</p>
      <a href=%q style="background-color: #4CAF50; color: white; padding: 10px 20px; text-decoration: none;">
        Complete Information
      </a>
      <p>If you did not request this account, ignore this message.</p>
    `, inv.BrandName, link),
	}

	messageID, err := d.sender.Send(ctx, msg)
	if err != nil {
		d.logger.Error("invitation email failed",
			zap.String("admin_id", inv.AdminID),
			zap.Error(err))
		return "", apperrors.NewTransportError("error sending invitation email", err)
	}

	d.logger.Info("invitation email sent",
		zap.String("admin_id", inv.AdminID),
		zap.String("message_id", messageID))
	return messageID, nil
}
