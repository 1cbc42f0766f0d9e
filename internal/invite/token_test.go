package invite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("invite-secret", time.Hour)

	token, err := issuer.Mint("admin-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, issuer.Verify(token, "admin-123"))
}

func TestTokenExpired(t *testing.T) {
	issuer := NewTokenIssuer("invite-secret", -time.Minute)

	token, err := issuer.Mint("admin-123")
	require.NoError(t, err)

	require.ErrorIs(t, issuer.Verify(token, "admin-123"), ErrTokenInvalid)
}

func TestTokenWrongAdmin(t *testing.T) {
	issuer := NewTokenIssuer("invite-secret", time.Hour)

	token, err := issuer.Mint("admin-123")
	require.NoError(t, err)

	require.ErrorIs(t, issuer.Verify(token, "admin-999"), ErrTokenMismatch)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("invite-secret", time.Hour)
	other := NewTokenIssuer("another-secret", time.Hour)

	token, err := issuer.Mint("admin-123")
	require.NoError(t, err)

	require.ErrorIs(t, other.Verify(token, "admin-123"), ErrTokenInvalid)
}
