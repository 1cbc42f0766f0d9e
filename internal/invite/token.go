package invite

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

const tokenPurpose = "admin_invite"

var (
	// ErrTokenInvalid covers bad signatures, expiry, and wrong purpose.
	ErrTokenInvalid = errors.New("invite token invalid or expired")
	// ErrTokenMismatch means the token is valid but for another admin.
	ErrTokenMismatch = errors.New("invite token does not match admin")
)

type inviteClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies signed, expiring invite tokens. The
// token binds the invitation link to a specific admin record so the
// record id alone is not a bearer capability.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer builds an issuer.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Mint signs a token whose subject is the admin id.
func (i *TokenIssuer) Mint(adminID string) (string, error) {
	now := time.Now()
	claims := &inviteClaims{
		Purpose: tokenPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   adminID,
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify checks signature, expiry, purpose, and subject match.
func (i *TokenIssuer) Verify(tokenStr, adminID string) error {
	parsed, err := jwt.ParseWithClaims(tokenStr, &inviteClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return i.secret, nil
	})
	if err != nil {
		return ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*inviteClaims)
	if !ok || !parsed.Valid || claims.Purpose != tokenPurpose {
		return ErrTokenInvalid
	}
	if claims.Subject != adminID {
		return ErrTokenMismatch
	}
	return nil
}
