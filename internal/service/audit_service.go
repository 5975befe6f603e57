package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/micorpx/acquisitions/internal/events"
)

// AuditService records account lifecycle and security events to the
// structured log, giving operators a trail of sign-ups, sign-ins, and
// shield denials.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to audited event types.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventUserRegistered, a.handleUserEvent)
	a.dispatcher.Subscribe(events.EventUserSignedIn, a.handleUserEvent)
	a.dispatcher.Subscribe(events.EventUserSignedOut, a.handleUserEvent)
	a.dispatcher.Subscribe(events.EventUserDeleted, a.handleUserEvent)
	a.dispatcher.Subscribe(events.EventSecurityDenied, a.handleSecurityDenied)
}

func (a *AuditService) handleUserEvent(_ context.Context, event events.Event) error {
	a.logger.Info("audit",
		zap.String("event", string(event.Type)),
		zap.Any("payload", event.Payload),
	)
	return nil
}

func (a *AuditService) handleSecurityDenied(_ context.Context, event events.Event) error {
	a.logger.Warn("audit",
		zap.String("event", string(event.Type)),
		zap.Any("payload", event.Payload),
	)
	return nil
}
