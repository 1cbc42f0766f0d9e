package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/EstebanIM/wololo/internal/api/dto"
	"github.com/EstebanIM/wololo/internal/domain"
	"github.com/EstebanIM/wololo/internal/service"
)

// AdminsHandler exposes the provisioning workflow to superadmins.
type AdminsHandler struct {
	provisioning *service.ProvisioningService
}

// NewAdminsHandler constructs handler.
func NewAdminsHandler(provisioning *service.ProvisioningService) *AdminsHandler {
	return &AdminsHandler{provisioning: provisioning}
}

// Provision handles POST /admins.
func (h *AdminsHandler) Provision(c *fiber.Ctx) error {
	var req dto.ProvisionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.provisioning.Provision(c.Context(), service.ProvisionInput{
		Role:            domain.Role(req.Role),
		BrandName:       req.BrandName,
		AdminEmail:      req.AdminEmail,
		SuperadminEmail: req.SuperadminEmail,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.ProvisionResponse{
			Role:         string(result.Role),
			AdminID:      result.AdminID,
			SuperadminID: result.SuperadminID,
			MessageID:    result.MessageID,
		},
	})
}

// ListSuperadmins handles GET /admins/superadmins.
func (h *AdminsHandler) ListSuperadmins(c *fiber.Ctx) error {
	superadmins, err := h.provisioning.ListSuperadmins(c.Context())
	if err != nil {
		return err
	}

	rows := make([]dto.SuperadminResponse, 0, len(superadmins))
	for _, superadmin := range superadmins {
		rows = append(rows, dto.SuperadminResponse{
			ID:        superadmin.ID,
			Email:     superadmin.Email,
			Role:      string(superadmin.Role),
			CreatedAt: superadmin.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": rows})
}

// ListPending handles GET /admins/pending: every admin still awaiting
// completion, whether or not their invitation got delivered.
func (h *AdminsHandler) ListPending(c *fiber.Ctx) error {
	admins, err := h.provisioning.ListPendingAdmins(c.Context())
	if err != nil {
		return err
	}

	rows := make([]dto.PendingInviteResponse, 0, len(admins))
	for _, admin := range admins {
		rows = append(rows, dto.PendingInviteResponse{
			AdminID:   admin.ID,
			Email:     admin.Email,
			BrandName: admin.BrandName,
			CreatedAt: admin.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": rows})
}

// ListUndeliveredInvites handles GET /admins/invites/pending.
func (h *AdminsHandler) ListUndeliveredInvites(c *fiber.Ctx) error {
	admins, err := h.provisioning.ListUndeliveredInvites(c.Context())
	if err != nil {
		return err
	}

	rows := make([]dto.PendingInviteResponse, 0, len(admins))
	for _, admin := range admins {
		rows = append(rows, dto.PendingInviteResponse{
			AdminID:   admin.ID,
			Email:     admin.Email,
			BrandName: admin.BrandName,
			CreatedAt: admin.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": rows})
}

// ResendInvite handles POST /admins/:adminId/resend-invite.
func (h *AdminsHandler) ResendInvite(c *fiber.Ctx) error {
	adminID := c.Params("adminId")
	messageID, err := h.provisioning.ResendInvite(c.Context(), adminID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"admin_id": adminID, "message_id": messageID}})
}
