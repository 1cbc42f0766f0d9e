package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/EstebanIM/wololo/internal/api/dto"
	"github.com/EstebanIM/wololo/internal/service"
)

// CompletionHandler serves the invitation deep link.
type CompletionHandler struct {
	completion *service.CompletionService
}

// NewCompletionHandler constructs handler.
func NewCompletionHandler(completion *service.CompletionService) *CompletionHandler {
	return &CompletionHandler{completion: completion}
}

// Load handles GET /complete-admin-info/:adminId and pre-fills the form.
func (h *CompletionHandler) Load(c *fiber.Ctx) error {
	admin, err := h.completion.Load(c.Context(), c.Params("adminId"), c.Query("token"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.AdminPrefill{
			ID:        admin.ID,
			Email:     admin.Email,
			BrandName: admin.BrandName,
			Status:    string(admin.Status),
		},
	})
}

// Complete handles PUT /complete-admin-info/:adminId.
func (h *CompletionHandler) Complete(c *fiber.Ctx) error {
	var req dto.CompletionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	err := h.completion.Complete(c.Context(), c.Params("adminId"), c.Query("token"), service.CompletionInput{
		NationalID:      req.NationalID,
		CheckDigit:      req.CheckDigit,
		FirstName:       req.FirstName,
		FirstSurname:    req.FirstSurname,
		BrandName:       req.BrandName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": fiber.Map{"message": "information updated successfully"}})
}

// Strength handles POST /complete-admin-info/password-strength, backing
// the live credential meter.
func (h *CompletionHandler) Strength(c *fiber.Ctx) error {
	var req dto.StrengthRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	return c.JSON(fiber.Map{
		"data": dto.StrengthResponse{Score: h.completion.StrengthScore(req.Password)},
	})
}
