package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/EstebanIM/wololo/internal/api/dto"
	"github.com/EstebanIM/wololo/internal/service"
	"github.com/EstebanIM/wololo/internal/verification"
)

// UsersHandler exposes registration, login, and email verification.
type UsersHandler struct {
	accounts *service.AccountService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(accounts *service.AccountService) *UsersHandler {
	return &UsersHandler{accounts: accounts}
}

// Register handles POST /auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.accounts.Register(c.Context(), service.RegisterInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		NationalID:      req.NationalID,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": fiber.Map{
				"id":    user.ID,
				"name":  user.FirstName,
				"email": user.Email,
			},
		},
	})
}

// Login handles POST /auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	account, token, exp, err := h.accounts.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"account": fiber.Map{
				"id":             account.ID,
				"email":          account.Email,
				"email_verified": account.EmailVerified,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// VerifyEmail handles GET /auth/verify-email?token=.
func (h *UsersHandler) VerifyEmail(c *fiber.Ctx) error {
	if err := h.accounts.VerifyEmail(c.Context(), c.Query("token")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "email verified"}})
}

// VerificationStatus handles GET /auth/users/verification/:accountId.
// The waiting view polls this until the flag flips.
func (h *UsersHandler) VerificationStatus(c *fiber.Ctx) error {
	accountID := c.Params("accountId")
	verified, err := h.accounts.VerificationStatus(c.Context(), accountID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": dto.VerificationStatusResponse{AccountID: accountID, EmailVerified: verified},
	})
}

// AwaitVerification handles GET /auth/users/verification/:accountId/wait.
// It long-polls the account until the flag flips, the poll bound is
// reached, or the client goes away.
func (h *UsersHandler) AwaitVerification(c *fiber.Ctx) error {
	accountID := c.Params("accountId")
	account, err := h.accounts.AwaitVerification(c.Context(), accountID)
	if errors.Is(err, verification.ErrAttemptsExhausted) {
		return c.JSON(fiber.Map{
			"data": dto.VerificationStatusResponse{AccountID: accountID, EmailVerified: false},
		})
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": dto.VerificationStatusResponse{AccountID: account.ID, EmailVerified: account.EmailVerified},
	})
}
