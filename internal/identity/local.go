package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/EstebanIM/wololo/internal/auth"
	"github.com/EstebanIM/wololo/internal/domain"
	"github.com/EstebanIM/wololo/internal/mailer"
	"github.com/EstebanIM/wololo/internal/repository"
	apperrors "github.com/EstebanIM/wololo/pkg/util"
)

// Provider-policy password floor for sign-up.
const minPasswordLen = 6

// LocalProvider is a self-hosted Provider backed by the accounts table.
type LocalProvider struct {
	accounts        repository.AccountRepository
	sender          mailer.Sender
	bcryptCost      int
	tokenTTL        time.Duration
	frontendBaseURL string
	logger          *zap.Logger
}

// NewLocalProvider builds the provider.
func NewLocalProvider(accounts repository.AccountRepository, sender mailer.Sender, bcryptCost int, tokenTTL time.Duration, frontendBaseURL string, logger *zap.Logger) *LocalProvider {
	return &LocalProvider{
		accounts:        accounts,
		sender:          sender,
		bcryptCost:      bcryptCost,
		tokenTTL:        tokenTTL,
		frontendBaseURL: strings.TrimRight(frontendBaseURL, "/"),
		logger:          logger,
	}
}

func (p *LocalProvider) SignUp(ctx context.Context, email, password string) (*domain.Account, error) {
	if len(password) < minPasswordLen {
		return nil, apperrors.NewValidationError("password does not meet provider policy", map[string]any{"min_length": minPasswordLen})
	}

	if _, err := p.accounts.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	hash, err := auth.HashPassword(password, p.bcryptCost)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Email:        email,
		PasswordHash: hash,
	}
	if err := p.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (*domain.Account, error) {
	account, err := p.accounts.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	return account, nil
}

func (p *LocalProvider) Reload(ctx context.Context, accountID string) (*domain.Account, error) {
	return p.accounts.GetByID(ctx, accountID)
}

func (p *LocalProvider) SendVerification(ctx context.Context, accountID string) error {
	account, err := p.accounts.GetByID(ctx, accountID)
	if err != nil {
		return err
	}

	token := uuid.NewString()
	expiresAt := time.Now().Add(p.tokenTTL)
	account.VerifyToken = &token
	account.VerifyTokenExpiresAt = &expiresAt
	if err := p.accounts.Update(ctx, account); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/verify-email?token=%s", p.frontendBaseURL, token)
	msg := mailer.Message{
		To:      account.Email,
		Subject: "Verify your email address",
		HTML: fmt.Sprintf(`
      <h2>Welcome to CarMotorFix</h2>
      <p>Please verify your email address by clicking the link below:</p>
      <a href=%q>Verify Email</a>
    `, link),
	}
	if _, err := p.sender.Send(ctx, msg); err != nil {
		return apperrors.NewTransportError("error sending verification email", err)
	}

	p.logger.Info("verification email sent", zap.String("account_id", account.ID))
	return nil
}

func (p *LocalProvider) Verify(ctx context.Context, token string) (*domain.Account, error) {
	account, err := p.accounts.GetByVerifyToken(ctx, token)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("verification token", nil)
		}
		return nil, err
	}
	if account.VerifyTokenExpiresAt == nil || time.Now().After(*account.VerifyTokenExpiresAt) {
		return nil, apperrors.NewValidationError("verification token expired", nil)
	}

	account.EmailVerified = true
	account.VerifyToken = nil
	account.VerifyTokenExpiresAt = nil
	if err := p.accounts.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}
