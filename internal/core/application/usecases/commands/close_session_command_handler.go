package commands

import (
	"context"
	"log/slog"

	"brillante/internal/core/domain/model/session"
	"brillante/internal/core/ports"
)

// CloseSessionCommandHandler ends sessions without touching the order status.
// Closing a session that is already closed succeeds without changes. Closing by
// order requires the order to exist.
type CloseSessionCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
	events     eventNotifier
}

// NewCloseSessionCommandHandler creates a handler for close operations.
func NewCloseSessionCommandHandler(
	uowFactory UoWFactory,
	clock ports.Clock,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CloseSessionCommandHandler {
	return CloseSessionCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		events:     newEventNotifier(publisher, logger),
	}
}

// Handle processes the close command.
func (h CloseSessionCommandHandler) Handle(ctx context.Context, cmd CloseSessionCommand) error {
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

	var targets []*session.Session
	if cmd.BySession() {
		s, err := sessionRepo.Get(ctx, cmd.SessionID())
		if err != nil {
			return err
		}
		if !s.IsHeldBy(cmd.OperatorID()) {
			return ErrSessionNotOwned
		}
		if !s.IsActive() {
			return nil
		}
		targets = []*session.Session{s}
	} else {
		if _, err := uow.OrderRepository().Get(ctx, cmd.OrderID()); err != nil {
			return err
		}
		active, err := sessionRepo.GetActiveByOrder(ctx, cmd.OrderID())
		if err != nil {
			return err
		}
		targets = active
	}

	if len(targets) == 0 {
		return nil
	}

	now := h.clock.Now()
	for _, s := range targets {
		if err := closeSession(ctx, sessionRepo.Update, s, now, cmd.Reason()); err != nil {
			return sessionWriteError(err, nil)
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.events.notify(ctx, sessionClosedEvents(targets, now)...)
	return nil
}
