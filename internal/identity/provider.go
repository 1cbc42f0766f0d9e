// Package identity wraps the credential provider consumed by the
// registration and sign-in workflows: account creation, password
// checks, and the email-verification flag. The rest of the service
// depends only on the Provider interface.
package identity

import (
	"context"

	"github.com/EstebanIM/wololo/internal/domain"
)

// Provider is the identity-provider adapter surface.
type Provider interface {
	// SignUp creates a credential account. Duplicate emails conflict;
	// no profile data is written here.
	SignUp(ctx context.Context, email, password string) (*domain.Account, error)
	// SignIn checks credentials and returns the account.
	SignIn(ctx context.Context, email, password string) (*domain.Account, error)
	// Reload fetches the freshest account state, including the
	// email-verified flag. The verification poll calls this.
	Reload(ctx context.Context, accountID string) (*domain.Account, error)
	// SendVerification issues a verification token and emails it.
	SendVerification(ctx context.Context, accountID string) error
	// Verify consumes a verification token, flips the flag, and
	// returns the verified account.
	Verify(ctx context.Context, token string) (*domain.Account, error)
}
