package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/EstebanIM/wololo/internal/auth"
	"github.com/EstebanIM/wololo/internal/domain"
	"github.com/EstebanIM/wololo/internal/identity"
	"github.com/EstebanIM/wololo/internal/mailer"
	"github.com/EstebanIM/wololo/internal/repository"
	"github.com/EstebanIM/wololo/internal/verification"
	apperrors "github.com/EstebanIM/wololo/pkg/util"
)

type captureSender struct {
	sent []mailer.Message
}

func (c *captureSender) Send(_ context.Context, msg mailer.Message) (string, error) {
	c.sent = append(c.sent, msg)
	return "msg-1", nil
}

type accountFixture struct {
	service  *AccountService
	accounts *repository.MemoryAccountRepository
	users    *repository.MemoryUserRepository
	supers   *repository.MemorySuperadminRepository
	admins   *repository.MemoryAdminRepository
	sender   *captureSender
	tokenMgr *auth.TokenManager
	provider identity.Provider
}

func newAccountFixture(t *testing.T) *accountFixture {
	t.Helper()
	f := &accountFixture{
		accounts: repository.NewMemoryAccountRepository(),
		users:    repository.NewMemoryUserRepository(),
		supers:   repository.NewMemorySuperadminRepository(),
		admins:   repository.NewMemoryAdminRepository(),
		sender:   &captureSender{},
		tokenMgr: auth.NewTokenManager("test-secret", 60),
	}
	f.provider = identity.NewLocalProvider(f.accounts, f.sender, bcrypt.MinCost, time.Hour, "http://localhost:3001", zap.NewNop())
	poller := verification.NewPoller(f.provider, time.Millisecond, 3, zap.NewNop())
	f.service = NewAccountService(AccountDependencies{
		Provider:       f.provider,
		UserRepo:       f.users,
		AdminRepo:      f.admins,
		SuperadminRepo: f.supers,
		TokenManager:   f.tokenMgr,
		Poller:         poller,
	}, zap.NewNop())
	return f
}

func registerForm() RegisterInput {
	return RegisterInput{
		FirstName:       "Ana",
		LastName:        "Reyes",
		NationalID:      "12345678",
		Email:           "ana@example.com",
		Password:        "Abcdef1!",
		ConfirmPassword: "Abcdef1!",
	}
}

func TestRegisterHappyPath(t *testing.T) {
	f := newAccountFixture(t)

	user, err := f.service.Register(context.Background(), registerForm())
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)

	// Profile is keyed by the account id.
	account, err := f.accounts.GetByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	require.Equal(t, account.ID, user.ID)
	require.False(t, account.EmailVerified)

	// A verification email went out carrying the token link.
	require.Len(t, f.sender.sent, 1)
	require.Equal(t, "ana@example.com", f.sender.sent[0].To)
	require.Contains(t, f.sender.sent[0].HTML, "verify-email?token=")
}

func TestRegisterConfirmMismatchBeforeSignUp(t *testing.T) {
	f := newAccountFixture(t)

	input := registerForm()
	input.ConfirmPassword = "Different1!"
	_, err := f.service.Register(context.Background(), input)
	require.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	// Validation fails before any write.
	_, err = f.accounts.GetByEmail(context.Background(), "ana@example.com")
	require.ErrorIs(t, err, pgx.ErrNoRows)
	require.Equal(t, 0, f.users.Len())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newAccountFixture(t)

	_, err := f.service.Register(context.Background(), registerForm())
	require.NoError(t, err)

	_, err = f.service.Register(context.Background(), registerForm())
	require.True(t, apperrors.IsCode(err, "CONFLICT"))
	require.Equal(t, 1, f.users.Len(), "duplicate registration must not create a second profile")
}

func TestLoginIssuesRoleBearingToken(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, registerForm())
	require.NoError(t, err)

	_, token, _, err := f.service.Login(ctx, "ana@example.com", "Abcdef1!")
	require.NoError(t, err)
	claims, err := f.tokenMgr.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, domain.RoleUser, claims.Role)

	// Membership in the superadmin directory promotes the session role.
	require.NoError(t, f.supers.Create(ctx, &domain.Superadmin{
		Email: "ana@example.com",
		Role:  domain.RoleSuperadmin,
	}))
	_, token, _, err = f.service.Login(ctx, "ana@example.com", "Abcdef1!")
	require.NoError(t, err)
	claims, err = f.tokenMgr.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, domain.RoleSuperadmin, claims.Role)
}

func TestLoginBadCredentials(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, registerForm())
	require.NoError(t, err)

	_, _, _, err = f.service.Login(ctx, "ana@example.com", "wrong-password")
	require.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))
}

func TestVerifyEmailFlow(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	user, err := f.service.Register(ctx, registerForm())
	require.NoError(t, err)

	verified, err := f.service.VerificationStatus(ctx, user.ID)
	require.NoError(t, err)
	require.False(t, verified)

	account, err := f.accounts.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, account.VerifyToken)

	require.NoError(t, f.service.VerifyEmail(ctx, *account.VerifyToken))

	verified, err = f.service.VerificationStatus(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, verified)

	// The token is single use.
	err = f.service.VerifyEmail(ctx, *account.VerifyToken)
	require.Error(t, err)
}

func TestVerifyEmailEmptyToken(t *testing.T) {
	f := newAccountFixture(t)

	err := f.service.VerifyEmail(context.Background(), "")
	require.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestVerificationStatusUnknownAccount(t *testing.T) {
	f := newAccountFixture(t)

	_, err := f.service.VerificationStatus(context.Background(), "missing")
	require.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}
