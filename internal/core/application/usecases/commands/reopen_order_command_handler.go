package commands

import (
	"context"
	"log/slog"

	"brillante/internal/core/domain/model/order"
	"brillante/internal/core/domain/services"
	"brillante/internal/core/ports"
)

// ReopenOrderCommandHandler forces an order back in progress, retires its previous
// sessions and opens a fresh one for the requester. Reopening twice in a row is safe:
// the second call supersedes the first session and leaves exactly one active.
type ReopenOrderCommandHandler struct {
	uowFactory UoWFactory
	checker    services.AvailabilityChecker
	clock      ports.Clock
	events     eventNotifier
}

// NewReopenOrderCommandHandler creates a handler for reopen operations.
func NewReopenOrderCommandHandler(
	uowFactory UoWFactory,
	checker services.AvailabilityChecker,
	clock ports.Clock,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ReopenOrderCommandHandler {
	return ReopenOrderCommandHandler{
		uowFactory: uowFactory,
		checker:    checker,
		clock:      clock,
		events:     newEventNotifier(publisher, logger),
	}
}

// Handle processes the reopen command.
func (h ReopenOrderCommandHandler) Handle(ctx context.Context, cmd ReopenOrderCommand) (AcquireResult, error) {
	if err := cmd.Validate(); err != nil {
		return AcquireResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AcquireResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.clock.Now()
	result, err := acquireSession(ctx, uow, h.checker, cmd.Operator(), cmd.OrderID(), now, (*order.Order).Reopen)
	if err != nil {
		return AcquireResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AcquireResult{}, err
	}

	h.events.notify(ctx, sessionClosedEvents(result.ClosedSessions, now)...)
	h.events.notify(ctx, orderEvent(
		ports.EventOrderReopened, result.Order, cmd.Operator().ID(), cmd.Operator().Name(), result.SessionID, now,
	))

	return result, nil
}
