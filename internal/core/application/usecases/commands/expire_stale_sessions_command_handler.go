package commands

import (
	"context"
	"log/slog"

	"brillante/internal/core/domain/model/session"
	"brillante/internal/core/domain/services"
	"brillante/internal/core/ports"
)

// ExpireStaleSessionsCommandHandler releases orders held by abandoned sessions.
// The checker already ignores expired sessions; the sweep makes that visible in the
// store and in the session history.
type ExpireStaleSessionsCommandHandler struct {
	uowFactory SessionUoWFactory
	checker    services.AvailabilityChecker
	clock      ports.Clock
	events     eventNotifier
}

// NewExpireStaleSessionsCommandHandler creates the sweep handler.
func NewExpireStaleSessionsCommandHandler(
	uowFactory SessionUoWFactory,
	checker services.AvailabilityChecker,
	clock ports.Clock,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ExpireStaleSessionsCommandHandler {
	return ExpireStaleSessionsCommandHandler{
		uowFactory: uowFactory,
		checker:    checker,
		clock:      clock,
		events:     newEventNotifier(publisher, logger),
	}
}

// Handle closes the expired sessions and returns how many were closed.
// With expiry disabled (non-positive TTL) it does nothing.
func (h ExpireStaleSessionsCommandHandler) Handle(ctx context.Context, cmd ExpireStaleSessionsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	ttl := h.checker.SessionTTL()
	if ttl <= 0 {
		return 0, nil
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sessionRepo := uow.SessionRepository()
	now := h.clock.Now()

	stale, err := sessionRepo.GetActiveWithHeartbeatBefore(ctx, now.Add(-ttl))
	if err != nil {
		return 0, err
	}

	if len(stale) == 0 {
		return 0, nil
	}

	for _, s := range stale {
		if err = closeSession(ctx, sessionRepo.Update, s, now, session.ReasonExpired); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	h.events.notify(ctx, sessionClosedEvents(stale, now)...)
	return len(stale), nil
}
