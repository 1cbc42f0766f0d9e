package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/EstebanIM/wololo/internal/domain"
	"github.com/EstebanIM/wololo/internal/invite"
	"github.com/EstebanIM/wololo/internal/repository"
	apperrors "github.com/EstebanIM/wololo/pkg/util"
)

type fakeDispatcher struct {
	dispatched []invite.Invitation
	err        error
}

func (f *fakeDispatcher) Dispatch(_ context.Context, inv invite.Invitation) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.dispatched = append(f.dispatched, inv)
	return "msg-1", nil
}

type provisioningFixture struct {
	service    *ProvisioningService
	admins     *repository.MemoryAdminRepository
	supers     *repository.MemorySuperadminRepository
	dispatcher *fakeDispatcher
	pending    *invite.MemoryPendingStore
}

func newProvisioningFixture(dispatchErr error) *provisioningFixture {
	f := &provisioningFixture{
		admins:     repository.NewMemoryAdminRepository(),
		supers:     repository.NewMemorySuperadminRepository(),
		dispatcher: &fakeDispatcher{err: dispatchErr},
		pending:    invite.NewMemoryPendingStore(),
	}
	f.service = NewProvisioningService(ProvisioningDependencies{
		AdminRepo:      f.admins,
		SuperadminRepo: f.supers,
		Dispatcher:     f.dispatcher,
		PendingInvites: f.pending,
	}, zap.NewNop())
	return f
}

func TestProvisionSuperadminNoDispatch(t *testing.T) {
	f := newProvisioningFixture(nil)

	result, err := f.service.Provision(context.Background(), ProvisionInput{
		Role:            domain.RoleSuperadmin,
		SuperadminEmail: "boss@corp.com",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.SuperadminID)
	require.Equal(t, 1, f.supers.Len())
	require.Empty(t, f.dispatcher.dispatched, "superadmin creation must not send an invitation")
}

func TestProvisionAdminDispatchesInvite(t *testing.T) {
	f := newProvisioningFixture(nil)

	result, err := f.service.Provision(context.Background(), ProvisionInput{
		Role:       domain.RoleAdmin,
		AdminEmail: "admin@brand.com",
		BrandName:  "Brand Co",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.AdminID)
	require.Equal(t, "msg-1", result.MessageID)
	require.Equal(t, 1, f.admins.Len())

	require.Len(t, f.dispatcher.dispatched, 1)
	require.Equal(t, result.AdminID, f.dispatcher.dispatched[0].AdminID)

	admin, err := f.admins.GetByID(context.Background(), result.AdminID)
	require.NoError(t, err)
	require.Equal(t, domain.AdminStatusPending, admin.Status)
}

// noIDAdminRepository accepts the record but never assigns an id,
// modelling a store whose generated key does not come back.
type noIDAdminRepository struct {
	repository.MemoryAdminRepository
}

func (r *noIDAdminRepository) Create(context.Context, *domain.Admin) error {
	return nil
}

func TestProvisionAdminEmptyIDAbortsBeforeDispatch(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	svc := NewProvisioningService(ProvisioningDependencies{
		AdminRepo:      &noIDAdminRepository{},
		SuperadminRepo: repository.NewMemorySuperadminRepository(),
		Dispatcher:     dispatcher,
		PendingInvites: invite.NewMemoryPendingStore(),
	}, zap.NewNop())

	_, err := svc.Provision(context.Background(), ProvisionInput{
		Role:       domain.RoleAdmin,
		AdminEmail: "admin@brand.com",
		BrandName:  "Brand Co",
	})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "INTERNAL_ERROR"))
	require.Empty(t, dispatcher.dispatched, "an unidentifiable record must never be invited")
}

func TestProvisionAdminDispatchFailureKeepsRecord(t *testing.T) {
	f := newProvisioningFixture(apperrors.NewTransportError("error sending invitation email", errors.New("smtp down")))

	_, err := f.service.Provision(context.Background(), ProvisionInput{
		Role:       domain.RoleAdmin,
		AdminEmail: "admin@brand.com",
		BrandName:  "Brand Co",
	})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "TRANSPORT_FAILED"))

	// The record survives the failure and is flagged for re-dispatch.
	require.Equal(t, 1, f.admins.Len())
	pending, listErr := f.pending.List(context.Background())
	require.NoError(t, listErr)
	require.Len(t, pending, 1)
}

func TestProvisionValidation(t *testing.T) {
	f := newProvisioningFixture(nil)
	ctx := context.Background()

	_, err := f.service.Provision(ctx, ProvisionInput{Role: domain.RoleAdmin, AdminEmail: "admin@brand.com"})
	require.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	_, err = f.service.Provision(ctx, ProvisionInput{Role: domain.RoleSuperadmin})
	require.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	_, err = f.service.Provision(ctx, ProvisionInput{Role: domain.RoleUser})
	require.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	require.Equal(t, 0, f.admins.Len())
	require.Equal(t, 0, f.supers.Len())
}

func TestResendInviteClearsMarker(t *testing.T) {
	f := newProvisioningFixture(errors.New("smtp down"))
	ctx := context.Background()

	_, err := f.service.Provision(ctx, ProvisionInput{
		Role:       domain.RoleAdmin,
		AdminEmail: "admin@brand.com",
		BrandName:  "Brand Co",
	})
	require.Error(t, err)

	undelivered, err := f.service.ListUndeliveredInvites(ctx)
	require.NoError(t, err)
	require.Len(t, undelivered, 1)

	// Transport recovers; resend must reuse the existing record.
	f.dispatcher.err = nil
	messageID, err := f.service.ResendInvite(ctx, undelivered[0].ID)
	require.NoError(t, err)
	require.Equal(t, "msg-1", messageID)
	require.Equal(t, 1, f.admins.Len())

	pending, err := f.pending.List(ctx)
	require.NoError(t, err)
	require.Empty(t, pending)
}

func TestResendInviteUnknownAdmin(t *testing.T) {
	f := newProvisioningFixture(nil)

	_, err := f.service.ResendInvite(context.Background(), "missing")
	require.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestResendInviteCompletedAdmin(t *testing.T) {
	f := newProvisioningFixture(nil)
	ctx := context.Background()

	result, err := f.service.Provision(ctx, ProvisionInput{
		Role:       domain.RoleAdmin,
		AdminEmail: "admin@brand.com",
		BrandName:  "Brand Co",
	})
	require.NoError(t, err)

	require.NoError(t, f.admins.UpdateCompletion(ctx, result.AdminID, domain.AdminCompletion{
		NationalID:   "12345678",
		CheckDigit:   "K",
		FirstName:    "Ana",
		FirstSurname: "Reyes",
		BrandName:    "Brand Co",
	}))

	_, err = f.service.ResendInvite(ctx, result.AdminID)
	require.True(t, apperrors.IsCode(err, "CONFLICT"))
}
