package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/EstebanIM/wololo/internal/api/dto"
	"github.com/EstebanIM/wololo/internal/invite"
	apperrors "github.com/EstebanIM/wololo/pkg/util"
)

// MailHandler exposes the invitation dispatcher over HTTP. The response
// shape is a compatibility contract with the original frontend callers,
// so errors are rendered here instead of the shared error envelope.
type MailHandler struct {
	dispatcher *invite.Dispatcher
}

// NewMailHandler constructs handler.
func NewMailHandler(dispatcher *invite.Dispatcher) *MailHandler {
	return &MailHandler{dispatcher: dispatcher}
}

// SendEmail handles POST /send-email.
func (h *MailHandler) SendEmail(c *fiber.Ctx) error {
	var req dto.SendEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": "Missing data in request"})
	}

	messageID, err := h.dispatcher.Dispatch(c.Context(), invite.Invitation{
		AdminID:    req.AdminID,
		AdminEmail: req.AdminEmail,
		BrandName:  req.BrandName,
	})
	if err != nil {
		if apperrors.IsCode(err, "VALIDATION_FAILED") {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"message": "Missing data in request"})
		}
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error sending email",
			"error":   err.Error(),
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Email sent successfully",
		"id":      messageID,
	})
}
