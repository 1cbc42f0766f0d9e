package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/EstebanIM/wololo/internal/auth"
	"github.com/EstebanIM/wololo/internal/domain"
	"github.com/EstebanIM/wololo/internal/events"
	"github.com/EstebanIM/wololo/internal/invite"
	"github.com/EstebanIM/wololo/internal/repository"
	apperrors "github.com/EstebanIM/wololo/pkg/util"
)

var (
	nationalIDPattern = regexp.MustCompile(`^\d{8}$`)
	checkDigitPattern = regexp.MustCompile(`^[0-9kK]$`)
	emailPattern      = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,6}$`)
)

// CompletionInput carries the invitee's completion form.
type CompletionInput struct {
	NationalID      string
	CheckDigit      string
	FirstName       string
	FirstSurname    string
	BrandName       string
	Email           string
	Password        string
	ConfirmPassword string
}

// CompletionService resolves invitation links and performs the
// one-time transition of a pending admin record into the complete state.
type CompletionService struct {
	admins     repository.AdminRepository
	tokens     *invite.TokenIssuer
	eventBus   events.Dispatcher
	bcryptCost int
	logger     *zap.Logger
}

// NewCompletionService builds the service.
func NewCompletionService(admins repository.AdminRepository, tokens *invite.TokenIssuer, eventBus events.Dispatcher, bcryptCost int, logger *zap.Logger) *CompletionService {
	return &CompletionService{
		admins:     admins,
		tokens:     tokens,
		eventBus:   eventBus,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Load verifies the invite token and fetches the record to pre-fill
// the completion form.
func (s *CompletionService) Load(ctx context.Context, adminID, token string) (*domain.Admin, error) {
	if err := s.tokens.Verify(token, adminID); err != nil {
		return nil, apperrors.NewUnauthorized("invalid or expired invitation link")
	}

	admin, err := s.admins.GetByID(ctx, adminID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("administrator data", map[string]any{"admin_id": adminID})
		}
		return nil, err
	}
	return admin, nil
}

// Complete validates the submitted fields and commits the transition.
// Validation short-circuits on the first failing rule; no write happens
// unless every rule passes and the record is still pending.
func (s *CompletionService) Complete(ctx context.Context, adminID, token string, input CompletionInput) error {
	admin, err := s.Load(ctx, adminID, token)
	if err != nil {
		return err
	}
	if admin.IsComplete() {
		return apperrors.NewConflict("administrator information already completed", nil)
	}

	if err := validateCompletion(input); err != nil {
		return err
	}

	completion := domain.AdminCompletion{
		NationalID:   input.NationalID,
		CheckDigit:   strings.ToUpper(input.CheckDigit),
		FirstName:    input.FirstName,
		FirstSurname: input.FirstSurname,
		BrandName:    input.BrandName,
	}
	if input.Password != "" {
		hash, err := auth.HashPassword(input.Password, s.bcryptCost)
		if err != nil {
			return err
		}
		completion.PasswordHash = &hash
	}

	if err := s.admins.UpdateCompletion(ctx, adminID, completion); err != nil {
		return err
	}

	if s.eventBus != nil {
		_ = s.eventBus.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventAdminCompleted,
			SubjectID: adminID,
			Timestamp: time.Now(),
			Payload: events.AdminCompletedPayload{
				BrandName:     completion.BrandName,
				CredentialSet: completion.PasswordHash != nil,
			},
		})
	}
	s.logger.Info("admin completed", zap.String("admin_id", adminID))
	return nil
}

// StrengthScore exposes the live credential meter.
func (s *CompletionService) StrengthScore(password string) int {
	return auth.StrengthScore(password)
}

// validateCompletion applies the completion rules in order, stopping
// at the first failure.
func validateCompletion(input CompletionInput) error {
	required := []struct {
		name  string
		value string
	}{
		{"national id", input.NationalID},
		{"check digit", input.CheckDigit},
		{"first name", input.FirstName},
		{"first surname", input.FirstSurname},
		{"brand name", input.BrandName},
	}
	for _, field := range required {
		if err := validation.Validate(field.value, validation.Required); err != nil {
			return apperrors.NewValidationError("all fields are required", map[string]any{"field": field.name})
		}
	}

	if !nationalIDPattern.MatchString(input.NationalID) {
		return apperrors.NewValidationError("national id must be exactly 8 digits", nil)
	}
	if !checkDigitPattern.MatchString(input.CheckDigit) {
		return apperrors.NewValidationError(`check digit must be 0-9 or "K"`, nil)
	}
	if !emailPattern.MatchString(input.Email) {
		return apperrors.NewValidationError("email format is invalid", nil)
	}
	if input.Password != "" && auth.StrengthScore(input.Password) < auth.MinStrengthScore {
		return apperrors.NewValidationError("password must reach strength 3/5", map[string]any{
			"score": auth.StrengthScore(input.Password),
		})
	}
	if input.Password != input.ConfirmPassword {
		return apperrors.NewValidationError("passwords do not match", nil)
	}
	return nil
}
