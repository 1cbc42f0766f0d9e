package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/EstebanIM/wololo/internal/events"
)

// NotificationService records domain events for operator visibility.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventAdminInvited, n.handleAdminInvited)
	n.dispatcher.Subscribe(events.EventInviteDispatchFailed, n.handleInviteDispatchFailed)
	n.dispatcher.Subscribe(events.EventAdminCompleted, n.handleAdminCompleted)
	n.dispatcher.Subscribe(events.EventSuperadminCreated, n.handleSuperadminCreated)
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventUserVerified, n.handleUserVerified)
}

func (n *NotificationService) handleAdminInvited(_ context.Context, event events.Event) error {
	n.logger.Info("AdminInvited", zap.String("admin_id", event.SubjectID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleInviteDispatchFailed(_ context.Context, event events.Event) error {
	// Warn level: the pending record is now an orphan awaiting re-dispatch.
	n.logger.Warn("InviteDispatchFailed", zap.String("admin_id", event.SubjectID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleAdminCompleted(_ context.Context, event events.Event) error {
	n.logger.Info("AdminCompleted", zap.String("admin_id", event.SubjectID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleSuperadminCreated(_ context.Context, event events.Event) error {
	n.logger.Info("SuperadminCreated", zap.String("superadmin_id", event.SubjectID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleUserRegistered(_ context.Context, event events.Event) error {
	n.logger.Info("UserRegistered", zap.String("account_id", event.SubjectID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleUserVerified(_ context.Context, event events.Event) error {
	n.logger.Info("UserVerified", zap.String("account_id", event.SubjectID), zap.Any("payload", event.Payload))
	return nil
}
