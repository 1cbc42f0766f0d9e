package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/EstebanIM/wololo/internal/domain"
	"github.com/EstebanIM/wololo/internal/invite"
	"github.com/EstebanIM/wololo/internal/repository"
	apperrors "github.com/EstebanIM/wololo/pkg/util"
)

type completionFixture struct {
	service *CompletionService
	admins  *repository.MemoryAdminRepository
	tokens  *invite.TokenIssuer
}

func newCompletionFixture(t *testing.T) *completionFixture {
	t.Helper()
	admins := repository.NewMemoryAdminRepository()
	tokens := invite.NewTokenIssuer("invite-secret", time.Hour)
	return &completionFixture{
		service: NewCompletionService(admins, tokens, nil, bcrypt.MinCost, zap.NewNop()),
		admins:  admins,
		tokens:  tokens,
	}
}

func (f *completionFixture) pendingAdmin(t *testing.T) (*domain.Admin, string) {
	t.Helper()
	admin := &domain.Admin{
		Email:     "admin@brand.com",
		BrandName: "Brand Co",
		Role:      domain.RoleAdmin,
		Status:    domain.AdminStatusPending,
	}
	require.NoError(t, f.admins.Create(context.Background(), admin))
	token, err := f.tokens.Mint(admin.ID)
	require.NoError(t, err)
	return admin, token
}

func validCompletion() CompletionInput {
	return CompletionInput{
		NationalID:      "12345678",
		CheckDigit:      "k",
		FirstName:       "Ana",
		FirstSurname:    "Reyes",
		BrandName:       "Brand Co",
		Email:           "admin@brand.com",
		Password:        "Abcdef1!",
		ConfirmPassword: "Abcdef1!",
	}
}

func TestCompleteHappyPath(t *testing.T) {
	f := newCompletionFixture(t)
	admin, token := f.pendingAdmin(t)

	require.NoError(t, f.service.Complete(context.Background(), admin.ID, token, validCompletion()))

	stored, err := f.admins.GetByID(context.Background(), admin.ID)
	require.NoError(t, err)
	require.Equal(t, domain.AdminStatusComplete, stored.Status)
	require.Equal(t, "12345678", stored.NationalID)
	require.Equal(t, "K", stored.CheckDigit, "check digit is stored uppercase")
	require.NotNil(t, stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(*stored.PasswordHash), []byte("Abcdef1!")))
}

func TestCompleteNationalIDLength(t *testing.T) {
	f := newCompletionFixture(t)
	admin, token := f.pendingAdmin(t)

	for _, nationalID := range []string{"1234567", "123456789", "1234567a"} {
		input := validCompletion()
		input.NationalID = nationalID
		err := f.service.Complete(context.Background(), admin.ID, token, input)
		require.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"), "national id %q must be rejected", nationalID)
	}

	stored, err := f.admins.GetByID(context.Background(), admin.ID)
	require.NoError(t, err)
	require.Equal(t, domain.AdminStatusPending, stored.Status, "failed validation must not write")
}

func TestCompleteCheckDigit(t *testing.T) {
	f := newCompletionFixture(t)
	admin, token := f.pendingAdmin(t)

	input := validCompletion()
	input.CheckDigit = "kk"
	err := f.service.Complete(context.Background(), admin.ID, token, input)
	require.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	input.CheckDigit = "x"
	err = f.service.Complete(context.Background(), admin.ID, token, input)
	require.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestCompleteWeakPassword(t *testing.T) {
	f := newCompletionFixture(t)
	admin, token := f.pendingAdmin(t)

	input := validCompletion()
	input.Password = "ab"
	input.ConfirmPassword = "ab"
	err := f.service.Complete(context.Background(), admin.ID, token, input)
	require.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestCompleteConfirmMismatch(t *testing.T) {
	f := newCompletionFixture(t)
	admin, token := f.pendingAdmin(t)

	input := validCompletion()
	input.ConfirmPassword = "Different1!"
	err := f.service.Complete(context.Background(), admin.ID, token, input)
	require.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestCompleteBlankCredential(t *testing.T) {
	f := newCompletionFixture(t)
	admin, token := f.pendingAdmin(t)

	input := validCompletion()
	input.Password = ""
	input.ConfirmPassword = ""
	require.NoError(t, f.service.Complete(context.Background(), admin.ID, token, input))

	stored, err := f.admins.GetByID(context.Background(), admin.ID)
	require.NoError(t, err)
	require.Equal(t, domain.AdminStatusComplete, stored.Status)
	require.Nil(t, stored.PasswordHash)
}

func TestCompleteUnknownAdmin(t *testing.T) {
	f := newCompletionFixture(t)

	token, err := f.tokens.Mint("missing")
	require.NoError(t, err)

	err = f.service.Complete(context.Background(), "missing", token, validCompletion())
	require.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestCompleteBadToken(t *testing.T) {
	f := newCompletionFixture(t)
	admin, _ := f.pendingAdmin(t)

	other, err := f.tokens.Mint("someone-else")
	require.NoError(t, err)

	err = f.service.Complete(context.Background(), admin.ID, other, validCompletion())
	require.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))

	err = f.service.Complete(context.Background(), admin.ID, "garbage", validCompletion())
	require.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))
}

func TestCompleteAlreadyComplete(t *testing.T) {
	f := newCompletionFixture(t)
	admin, token := f.pendingAdmin(t)

	require.NoError(t, f.service.Complete(context.Background(), admin.ID, token, validCompletion()))

	err := f.service.Complete(context.Background(), admin.ID, token, validCompletion())
	require.True(t, apperrors.IsCode(err, "CONFLICT"))
}

func TestLoadPrefillsPendingRecord(t *testing.T) {
	f := newCompletionFixture(t)
	admin, token := f.pendingAdmin(t)

	loaded, err := f.service.Load(context.Background(), admin.ID, token)
	require.NoError(t, err)
	require.Equal(t, "admin@brand.com", loaded.Email)
	require.Equal(t, "Brand Co", loaded.BrandName)
}
