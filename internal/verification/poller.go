// Package verification implements the bounded wait for a freshly
// registered account's email-verified flag.
package verification

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/EstebanIM/wololo/internal/domain"
	"github.com/EstebanIM/wololo/internal/identity"
)

// ErrAttemptsExhausted means the flag never flipped within the bound.
var ErrAttemptsExhausted = errors.New("verification poll attempts exhausted")

// Poller repeatedly reloads an account until its email is verified.
// The wait is cancellable through the context and bounded by a
// max-attempts limit, so no timer outlives its owner.
type Poller struct {
	provider    identity.Provider
	interval    time.Duration
	maxAttempts int
	logger      *zap.Logger
}

// NewPoller builds a poller.
func NewPoller(provider identity.Provider, interval time.Duration, maxAttempts int, logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	if maxAttempts <= 0 {
		maxAttempts = 100
	}
	return &Poller{provider: provider, interval: interval, maxAttempts: maxAttempts, logger: logger}
}

// Wait blocks until the account reports verified, the attempt bound is
// reached, or the context is cancelled. The first check runs
// immediately; subsequent ones follow the configured interval.
func (p *Poller) Wait(ctx context.Context, accountID string) (*domain.Account, error) {
	account, done, err := p.check(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if done {
		return account, nil
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for attempt := 1; attempt < p.maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			account, done, err := p.check(ctx, accountID)
			if err != nil {
				return nil, err
			}
			if done {
				p.logger.Info("email verified",
					zap.String("account_id", accountID),
					zap.Int("attempts", attempt+1))
				return account, nil
			}
		}
	}
	return nil, ErrAttemptsExhausted
}

func (p *Poller) check(ctx context.Context, accountID string) (*domain.Account, bool, error) {
	account, err := p.provider.Reload(ctx, accountID)
	if err != nil {
		return nil, false, err
	}
	return account, account.EmailVerified, nil
}
