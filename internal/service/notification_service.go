package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/supply-portal/internal/config"
	"github.com/spec-kit/supply-portal/internal/events"
)

// NotificationService fans application events out to configured channels.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventApplicationCreated, n.handleApplicationCreated)
	n.dispatcher.Subscribe(events.EventApplicationStatusChanged, n.handleApplicationStatusChanged)
	n.dispatcher.Subscribe(events.EventApplicationDeleted, n.handleApplicationDeleted)
}

func (n *NotificationService) handleApplicationCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("application created",
		zap.String("application_id", event.ApplicationID),
		zap.String("actor", event.Actor.Username),
		zap.Any("payload", event.Payload))
	n.notifyEmail(ctx, event)
	n.notifyWebhook(ctx, event)
	return nil
}

func (n *NotificationService) handleApplicationStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("application status changed",
		zap.String("application_id", event.ApplicationID),
		zap.Any("payload", event.Payload))
	n.notifyEmail(ctx, event)
	n.notifyWebhook(ctx, event)
	return nil
}

func (n *NotificationService) handleApplicationDeleted(ctx context.Context, event events.Event) error {
	n.logger.Info("application deleted",
		zap.String("application_id", event.ApplicationID),
		zap.String("actor", event.Actor.Username))
	n.notifyWebhook(ctx, event)
	return nil
}

// notifyEmail and notifyWebhook only log the delivery; no transport is wired.
func (n *NotificationService) notifyEmail(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("email notification",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("application_id", event.ApplicationID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) notifyWebhook(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("webhook notification",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("application_id", event.ApplicationID),
		zap.String("event_type", string(event.Type)))
}
