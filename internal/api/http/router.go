package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/EstebanIM/wololo/internal/api/http/handlers"
	"github.com/EstebanIM/wololo/internal/auth"
	"github.com/EstebanIM/wololo/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Mail       *handlers.MailHandler
	Admins     *handlers.AdminsHandler
	Completion *handlers.CompletionHandler
	Users      *handlers.UsersHandler
	Gate       *auth.SessionGate
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/stats", cfg.Health.Stats)

	// Compatibility contract with the original frontend callers.
	app.Post("/send-email", cfg.Mail.SendEmail)

	// Invitation deep link, guarded by the signed invite token.
	app.Get("/complete-admin-info/:adminId", cfg.Completion.Load)
	app.Put("/complete-admin-info/:adminId", cfg.Completion.Complete)
	app.Post("/complete-admin-info/password-strength", cfg.Completion.Strength)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Gate.RedirectIfAuthenticated, cfg.Users.Register)
	authGroup.Post("/login", cfg.Gate.RedirectIfAuthenticated, cfg.Users.Login)
	authGroup.Get("/verify-email", cfg.Users.VerifyEmail)
	authGroup.Get("/users/verification/:accountId", cfg.Users.VerificationStatus)
	authGroup.Get("/users/verification/:accountId/wait", cfg.Users.AwaitVerification)

	admins := app.Group("/admins", cfg.Gate.RequireSession, auth.RequireRole(domain.RoleSuperadmin))
	admins.Post("", cfg.Admins.Provision)
	admins.Get("/superadmins", cfg.Admins.ListSuperadmins)
	admins.Get("/pending", cfg.Admins.ListPending)
	admins.Get("/invites/pending", cfg.Admins.ListUndeliveredInvites)
	admins.Post("/:adminId/resend-invite", cfg.Admins.ResendInvite)
}
