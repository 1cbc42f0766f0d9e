package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/EstebanIM/wololo/internal/api/http"
	"github.com/EstebanIM/wololo/internal/api/http/handlers"
	"github.com/EstebanIM/wololo/internal/auth"
	"github.com/EstebanIM/wololo/internal/config"
	"github.com/EstebanIM/wololo/internal/events"
	"github.com/EstebanIM/wololo/internal/identity"
	"github.com/EstebanIM/wololo/internal/invite"
	"github.com/EstebanIM/wololo/internal/mailer"
	"github.com/EstebanIM/wololo/internal/observability"
	"github.com/EstebanIM/wololo/internal/persistence"
	"github.com/EstebanIM/wololo/internal/repository"
	"github.com/EstebanIM/wololo/internal/service"
	"github.com/EstebanIM/wololo/internal/verification"
	"github.com/EstebanIM/wololo/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	superadminRepo := repository.NewSuperadminRepository(pool)

	smtpSender := mailer.NewSMTPSender(cfg.Mailer, logger)
	inviteTokens := invite.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Invites.TokenTTL())
	dispatcher := invite.NewDispatcher(smtpSender, inviteTokens, cfg.Invites.FrontendBaseURL, logger)
	pendingInvites := invite.NewRedisPendingStore(redis.Client, cfg.Invites.PendingMarkerTTL())

	provider := identity.NewLocalProvider(accountRepo, smtpSender, cfg.Auth.BcryptCost,
		cfg.Verification.VerificationTokenTTL(), cfg.Invites.FrontendBaseURL, logger)
	tokenMgr := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	poller := verification.NewPoller(provider, cfg.Verification.PollInterval(), cfg.Verification.MaxAttempts, logger)

	eventBus := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(eventBus, logger)
	worker.StartNotificationWorker(notificationService)

	provisioningService := service.NewProvisioningService(service.ProvisioningDependencies{
		AdminRepo:      adminRepo,
		SuperadminRepo: superadminRepo,
		Dispatcher:     dispatcher,
		PendingInvites: pendingInvites,
		EventBus:       eventBus,
	}, logger)
	completionService := service.NewCompletionService(adminRepo, inviteTokens, eventBus, cfg.Auth.BcryptCost, logger)
	accountService := service.NewAccountService(service.AccountDependencies{
		Provider:       provider,
		UserRepo:       userRepo,
		AdminRepo:      adminRepo,
		SuperadminRepo: superadminRepo,
		TokenManager:   tokenMgr,
		Poller:         poller,
		EventBus:       eventBus,
	}, logger)

	gate := auth.NewSessionGate(tokenMgr, accountRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Mail:       handlers.NewMailHandler(dispatcher),
		Admins:     handlers.NewAdminsHandler(provisioningService),
		Completion: handlers.NewCompletionHandler(completionService),
		Users:      handlers.NewUsersHandler(accountService),
		Gate:       gate,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
