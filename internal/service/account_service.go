package service

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/EstebanIM/wololo/internal/auth"
	"github.com/EstebanIM/wololo/internal/domain"
	"github.com/EstebanIM/wololo/internal/events"
	"github.com/EstebanIM/wololo/internal/identity"
	"github.com/EstebanIM/wololo/internal/repository"
	"github.com/EstebanIM/wololo/internal/verification"
	apperrors "github.com/EstebanIM/wololo/pkg/util"
)

// RegisterInput carries the self-service registration form.
type RegisterInput struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	NationalID      string `json:"national_id"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Validate checks required-field presence and confirmation match.
func (r RegisterInput) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required),
		validation.Field(&r.LastName, validation.Required),
		validation.Field(&r.NationalID, validation.Required),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.ConfirmPassword, validation.Required),
	)
	if err != nil {
		return apperrors.NewValidationError("please complete all fields", map[string]any{"fields": err.Error()})
	}
	if r.Password != r.ConfirmPassword {
		return apperrors.NewValidationError("passwords do not match", nil)
	}
	return nil
}

// AccountService coordinates registration, sign-in, and the
// email-verification workflow.
type AccountService struct {
	provider    identity.Provider
	users       repository.UserRepository
	admins      repository.AdminRepository
	superadmins repository.SuperadminRepository
	tokenMgr    *auth.TokenManager
	poller      *verification.Poller
	eventBus    events.Dispatcher
	logger      *zap.Logger
}

// AccountDependencies encapsulates collaborator requirements.
type AccountDependencies struct {
	Provider       identity.Provider
	UserRepo       repository.UserRepository
	AdminRepo      repository.AdminRepository
	SuperadminRepo repository.SuperadminRepository
	TokenManager   *auth.TokenManager
	Poller         *verification.Poller
	EventBus       events.Dispatcher
}

// NewAccountService builds the service.
func NewAccountService(deps AccountDependencies, logger *zap.Logger) *AccountService {
	return &AccountService{
		provider:    deps.Provider,
		users:       deps.UserRepo,
		admins:      deps.AdminRepo,
		superadmins: deps.SuperadminRepo,
		tokenMgr:    deps.TokenManager,
		poller:      deps.Poller,
		eventBus:    deps.EventBus,
		logger:      logger,
	}
}

// Register creates the identity account first, the profile record
// second, and triggers the verification email last. A failure before
// the profile write leaves no partial UserRecord.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	account, err := s.provider.SignUp(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:         account.ID,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		NationalID: input.NationalID,
		Email:      input.Email,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.provider.SendVerification(ctx, account.ID); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventUserRegistered, account.ID,
		events.UserRegisteredPayload{Email: input.Email, Role: domain.RoleUser})
	s.logger.Info("user registered", zap.String("account_id", account.ID))
	return user, nil
}

// Login authenticates the account and issues a role-bearing session token.
func (s *AccountService) Login(ctx context.Context, email, password string) (*domain.Account, string, time.Time, error) {
	account, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	role, err := s.resolveRole(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(account.ID, account.Email, role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return account, token, exp, nil
}

// VerificationStatus reports the live email-verified flag.
func (s *AccountService) VerificationStatus(ctx context.Context, accountID string) (bool, error) {
	account, err := s.provider.Reload(ctx, accountID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, apperrors.NewNotFound("account", map[string]any{"account_id": accountID})
		}
		return false, err
	}
	return account.EmailVerified, nil
}

// VerifyEmail consumes a verification token from the emailed link.
func (s *AccountService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return apperrors.NewValidationError("verification token is required", nil)
	}
	account, err := s.provider.Verify(ctx, token)
	if err != nil {
		return err
	}

	s.publish(ctx, events.EventUserVerified, account.ID,
		events.UserVerifiedPayload{Email: account.Email})
	return nil
}

// AwaitVerification blocks until the account verifies, the poll bound
// is reached, or ctx is cancelled.
func (s *AccountService) AwaitVerification(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.poller.Wait(ctx, accountID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventUserVerified, account.ID,
		events.UserVerifiedPayload{Email: account.Email})
	return account, nil
}

// resolveRole checks directory membership: superadmins first, then
// admins, defaulting to a regular user.
func (s *AccountService) resolveRole(ctx context.Context, email string) (domain.Role, error) {
	if _, err := s.superadmins.GetByEmail(ctx, email); err == nil {
		return domain.RoleSuperadmin, nil
	} else if err != pgx.ErrNoRows {
		return "", err
	}
	if _, err := s.admins.GetByEmail(ctx, email); err == nil {
		return domain.RoleAdmin, nil
	} else if err != pgx.ErrNoRows {
		return "", err
	}
	return domain.RoleUser, nil
}

func (s *AccountService) publish(ctx context.Context, eventType events.EventType, subjectID string, payload interface{}) {
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
