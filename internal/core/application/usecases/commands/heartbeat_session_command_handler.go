package commands

import (
	"context"
	"log/slog"

	"brillante/internal/core/domain/model/session"
	"brillante/internal/core/domain/services"
	"brillante/internal/core/ports"
)

// HeartbeatSessionCommandHandler keeps a session alive. A session found past its TTL is
// closed on the spot and the caller gets ErrSessionExpired, so the client knows it has
// to start or reopen the order again.
type HeartbeatSessionCommandHandler struct {
	uowFactory SessionUoWFactory
	checker    services.AvailabilityChecker
	clock      ports.Clock
	events     eventNotifier
}

// NewHeartbeatSessionCommandHandler creates a handler for heartbeats.
func NewHeartbeatSessionCommandHandler(
	uowFactory SessionUoWFactory,
	checker services.AvailabilityChecker,
	clock ports.Clock,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) HeartbeatSessionCommandHandler {
	return HeartbeatSessionCommandHandler{
		uowFactory: uowFactory,
		checker:    checker,
		clock:      clock,
		events:     newEventNotifier(publisher, logger),
	}
}

// Handle processes the heartbeat command.
func (h HeartbeatSessionCommandHandler) Handle(ctx context.Context, cmd HeartbeatSessionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sessionRepo := uow.SessionRepository()

	s, err := sessionRepo.Get(ctx, cmd.SessionID())
	if err != nil {
		return err
	}

	if !s.IsHeldBy(cmd.OperatorID()) {
		return ErrSessionNotOwned
	}

	if !s.IsActive() {
		return ErrSessionExpired
	}

	now := h.clock.Now()
	if s.IsExpired(now, h.checker.SessionTTL()) {
		if err = closeSession(ctx, sessionRepo.Update, s, now, session.ReasonExpired); err != nil {
			return sessionWriteError(err, nil)
		}
		if err = uow.Commit(ctx); err != nil {
			return err
		}
		h.events.notify(ctx, sessionClosedEvents([]*session.Session{s}, now)...)
		return ErrSessionExpired
	}

	if err = s.Heartbeat(now); err != nil {
		return err
	}

	if err = sessionRepo.Update(ctx, s); err != nil {
		return sessionWriteError(err, nil)
	}

	return uow.Commit(ctx)
}
