package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/EstebanIM/wololo/internal/domain"
	"github.com/EstebanIM/wololo/internal/repository"
	apperrors "github.com/EstebanIM/wololo/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	AccountID string
	Email     string
	Role      domain.Role
}

// SessionGate validates bearer tokens and loads principals. It backs
// both route guards: RequireSession for authenticated-only views and
// RedirectIfAuthenticated for public-only ones.
type SessionGate struct {
	tokens   *TokenManager
	accounts repository.AccountRepository
}

// NewSessionGate constructs the gate.
func NewSessionGate(tokens *TokenManager, accounts repository.AccountRepository) *SessionGate {
	return &SessionGate{tokens: tokens, accounts: accounts}
}

// RequireSession enforces authentication for protected routes.
func (g *SessionGate) RequireSession(c *fiber.Ctx) error {
	principal, err := g.resolve(c)
	if err != nil {
		return err
	}
	if principal == nil {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// RedirectIfAuthenticated sends authenticated visitors away from
// public-only routes (login, register) to the authenticated landing.
func (g *SessionGate) RedirectIfAuthenticated(c *fiber.Ctx) error {
	principal, err := g.resolve(c)
	if err != nil || principal == nil {
		// Not authenticated, the public view applies.
		return c.Next()
	}
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

// resolve reads the live session value on every call; it never caches,
// so sign-in and sign-out transitions take effect on the next request.
func (g *SessionGate) resolve(c *fiber.Ctx) (*Principal, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := g.tokens.ParseToken(parts[1])
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid token")
	}

	account, err := g.accounts.GetByID(c.Context(), claims.Subject)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewUnauthorized("account not found")
		}
		return nil, apperrors.MapError(err)
	}

	return &Principal{
		AccountID: account.ID,
		Email:     account.Email,
		Role:      claims.Role,
	}, nil
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
