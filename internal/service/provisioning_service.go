package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/EstebanIM/wololo/internal/domain"
	"github.com/EstebanIM/wololo/internal/events"
	"github.com/EstebanIM/wololo/internal/invite"
	"github.com/EstebanIM/wololo/internal/repository"
	apperrors "github.com/EstebanIM/wololo/pkg/util"
)

// InvitationDispatcher is the dispatch capability the workflow needs.
type InvitationDispatcher interface {
	Dispatch(ctx context.Context, inv invite.Invitation) (string, error)
}

// ProvisionInput carries the role-switched creation form.
type ProvisionInput struct {
	Role            domain.Role
	BrandName       string
	AdminEmail      string
	SuperadminEmail string
}

// ProvisionResult reports what got created.
type ProvisionResult struct {
	Role         domain.Role
	AdminID      string
	SuperadminID string
	MessageID    string
}

// ProvisioningService orchestrates admin and superadmin creation:
// record first, invitation dispatch second. The two writes are not
// atomic; dispatch failure leaves the pending record in place and a
// marker for later re-dispatch.
type ProvisioningService struct {
	admins      repository.AdminRepository
	superadmins repository.SuperadminRepository
	dispatcher  InvitationDispatcher
	pending     invite.PendingStore
	eventBus    events.Dispatcher
	logger      *zap.Logger
}

// ProvisioningDependencies encapsulates collaborator requirements.
type ProvisioningDependencies struct {
	AdminRepo      repository.AdminRepository
	SuperadminRepo repository.SuperadminRepository
	Dispatcher     InvitationDispatcher
	PendingInvites invite.PendingStore
	EventBus       events.Dispatcher
}

// NewProvisioningService builds the service.
func NewProvisioningService(deps ProvisioningDependencies, logger *zap.Logger) *ProvisioningService {
	return &ProvisioningService{
		admins:      deps.AdminRepo,
		superadmins: deps.SuperadminRepo,
		dispatcher:  deps.Dispatcher,
		pending:     deps.PendingInvites,
		eventBus:    deps.EventBus,
		logger:      logger,
	}
}

// Provision validates per-role required fields, creates the record,
// and for admins dispatches the invitation synchronously.
func (s *ProvisioningService) Provision(ctx context.Context, input ProvisionInput) (*ProvisionResult, error) {
	switch input.Role {
	case domain.RoleSuperadmin:
		if input.SuperadminEmail == "" {
			return nil, apperrors.NewValidationError("email is required for a superadmin", nil)
		}
		return s.provisionSuperadmin(ctx, input.SuperadminEmail)
	case domain.RoleAdmin:
		if input.AdminEmail == "" || input.BrandName == "" {
			return nil, apperrors.NewValidationError("all fields are required for an admin", nil)
		}
		return s.provisionAdmin(ctx, input.AdminEmail, input.BrandName)
	default:
		return nil, apperrors.NewValidationError("role must be admin or superadmin", nil)
	}
}

func (s *ProvisioningService) provisionSuperadmin(ctx context.Context, email string) (*ProvisionResult, error) {
	superadmin := &domain.Superadmin{
		Email: email,
		Role:  domain.RoleSuperadmin,
	}
	if err := s.superadmins.Create(ctx, superadmin); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventSuperadminCreated, superadmin.ID,
		events.SuperadminCreatedPayload{Email: email})
	s.logger.Info("superadmin created", zap.String("superadmin_id", superadmin.ID))

	return &ProvisionResult{Role: domain.RoleSuperadmin, SuperadminID: superadmin.ID}, nil
}

func (s *ProvisioningService) provisionAdmin(ctx context.Context, email, brandName string) (*ProvisionResult, error) {
	admin := &domain.Admin{
		Email:     email,
		BrandName: brandName,
		Role:      domain.RoleAdmin,
		Status:    domain.AdminStatusPending,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}

	// An invitation with no resolvable link is worse than no invitation:
	// abort before dispatch if the store handed back no identifier.
	if admin.ID == "" {
		return nil, apperrors.NewInternalError(errors.New("created admin record has no id"))
	}

	messageID, err := s.dispatcher.Dispatch(ctx, invite.Invitation{
		AdminID:    admin.ID,
		AdminEmail: email,
		BrandName:  brandName,
	})
	if err != nil {
		if markErr := s.pending.Mark(ctx, admin.ID); markErr != nil {
			s.logger.Error("failed to mark undelivered invite", zap.String("admin_id", admin.ID), zap.Error(markErr))
		}
		s.publish(ctx, events.EventInviteDispatchFailed, admin.ID,
			events.InviteDispatchFailedPayload{Email: email, BrandName: brandName, Reason: err.Error()})
		// The record persisted; the operation still failed.
		return nil, err
	}

	s.publish(ctx, events.EventAdminInvited, admin.ID,
		events.AdminInvitedPayload{Email: email, BrandName: brandName, MessageID: messageID})
	s.logger.Info("admin invited",
		zap.String("admin_id", admin.ID),
		zap.String("message_id", messageID))

	return &ProvisionResult{Role: domain.RoleAdmin, AdminID: admin.ID, MessageID: messageID}, nil
}

// ListUndeliveredInvites returns pending admins whose invitation never
// got delivered.
func (s *ProvisioningService) ListUndeliveredInvites(ctx context.Context) ([]*domain.Admin, error) {
	adminIDs, err := s.pending.List(ctx)
	if err != nil {
		return nil, err
	}

	var admins []*domain.Admin
	for _, adminID := range adminIDs {
		admin, err := s.admins.GetByID(ctx, adminID)
		if err != nil {
			if err == pgx.ErrNoRows {
				// Stale marker, record is gone.
				_ = s.pending.Clear(ctx, adminID)
				continue
			}
			return nil, err
		}
		admins = append(admins, admin)
	}
	return admins, nil
}

// ResendInvite re-dispatches the invitation for an existing pending
// record. It never creates a second record.
func (s *ProvisioningService) ResendInvite(ctx context.Context, adminID string) (string, error) {
	admin, err := s.admins.GetByID(ctx, adminID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", apperrors.NewNotFound("administrator", map[string]any{"admin_id": adminID})
		}
		return "", err
	}
	if admin.IsComplete() {
		return "", apperrors.NewConflict("administrator already completed their information", nil)
	}

	messageID, err := s.dispatcher.Dispatch(ctx, invite.Invitation{
		AdminID:    admin.ID,
		AdminEmail: admin.Email,
		BrandName:  admin.BrandName,
	})
	if err != nil {
		if markErr := s.pending.Mark(ctx, admin.ID); markErr != nil {
			s.logger.Error("failed to mark undelivered invite", zap.String("admin_id", admin.ID), zap.Error(markErr))
		}
		return "", err
	}

	if err := s.pending.Clear(ctx, admin.ID); err != nil {
		s.logger.Warn("failed to clear invite marker", zap.String("admin_id", admin.ID), zap.Error(err))
	}
	s.publish(ctx, events.EventAdminInvited, admin.ID,
		events.AdminInvitedPayload{Email: admin.Email, BrandName: admin.BrandName, MessageID: messageID})
	return messageID, nil
}

// ListPendingAdmins returns every admin still awaiting completion,
// delivered invite or not.
func (s *ProvisioningService) ListPendingAdmins(ctx context.Context) ([]*domain.Admin, error) {
	return s.admins.ListByStatus(ctx, domain.AdminStatusPending)
}

// ListSuperadmins returns all superadmin records.
func (s *ProvisioningService) ListSuperadmins(ctx context.Context) ([]*domain.Superadmin, error) {
	return s.superadmins.List(ctx)
}

func (s *ProvisioningService) publish(ctx context.Context, eventType events.EventType, subjectID string, payload interface{}) {
	if s.eventBus == nil {
		return
	}
	_ = s.eventBus.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
