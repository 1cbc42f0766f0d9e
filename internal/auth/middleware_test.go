package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/EstebanIM/wololo/internal/api/http"
	"github.com/EstebanIM/wololo/internal/auth"
	"github.com/EstebanIM/wololo/internal/domain"
	"github.com/EstebanIM/wololo/internal/observability"
	"github.com/EstebanIM/wololo/internal/repository"
)

func newGateApp(t *testing.T) (*fiber.App, *repository.MemoryAccountRepository, *auth.TokenManager) {
	t.Helper()

	accounts := repository.NewMemoryAccountRepository()
	tokens := auth.NewTokenManager("test-secret", 60)
	gate := auth.NewSessionGate(tokens, accounts)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)

	app.Get("/dashboard", gate.RequireSession, func(c *fiber.Ctx) error {
		principal, _ := auth.PrincipalFromContext(c)
		return c.JSON(fiber.Map{"email": principal.Email})
	})
	app.Get("/login", gate.RedirectIfAuthenticated, func(c *fiber.Ctx) error {
		return c.SendString("login page")
	})
	app.Get("/superadmin-only", gate.RequireSession, auth.RequireRole(domain.RoleSuperadmin), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app, accounts, tokens
}

func signedUpAccount(t *testing.T, accounts *repository.MemoryAccountRepository, email string) *domain.Account {
	t.Helper()
	account := &domain.Account{Email: email, PasswordHash: "irrelevant"}
	require.NoError(t, accounts.Create(context.Background(), account))
	return account
}

func TestRequireSessionRejectsAnonymous(t *testing.T) {
	app, _, _ := newGateApp(t)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireSessionAllowsAuthenticated(t *testing.T) {
	app, accounts, tokens := newGateApp(t)
	account := signedUpAccount(t, accounts, "a@b.com")

	token, _, err := tokens.GenerateToken(account.ID, account.Email, domain.RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRedirectIfAuthenticated(t *testing.T) {
	app, accounts, tokens := newGateApp(t)
	account := signedUpAccount(t, accounts, "a@b.com")

	// Anonymous visitor sees the public view.
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Authenticated visitor gets sent to the landing view.
	token, _, err := tokens.GenerateToken(account.ID, account.Email, domain.RoleUser)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/login", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

// The gate reads the live session on every request, so a sign-out
// (here: token no longer presented) flips both guards immediately.
func TestGateReevaluatesPerRequest(t *testing.T) {
	app, accounts, tokens := newGateApp(t)
	account := signedUpAccount(t, accounts, "a@b.com")

	token, _, err := tokens.GenerateToken(account.ID, account.Email, domain.RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Same route, no session: back to unauthorized.
	req = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole(t *testing.T) {
	app, accounts, tokens := newGateApp(t)
	account := signedUpAccount(t, accounts, "a@b.com")

	userToken, _, err := tokens.GenerateToken(account.ID, account.Email, domain.RoleUser)
	require.NoError(t, err)
	superToken, _, err := tokens.GenerateToken(account.ID, account.Email, domain.RoleSuperadmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/superadmin-only", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/superadmin-only", nil)
	req.Header.Set("Authorization", "Bearer "+superToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
