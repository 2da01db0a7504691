package commands

import (
	"context"
	"log/slog"

	"brillante/internal/core/domain/model/order"
	"brillante/internal/core/domain/services"
	"brillante/internal/core/ports"
)

// StartOrderCommandHandler moves an order to in-progress and opens the operator's session
// in one transaction.
//
// Example:
//
//	handler := NewStartOrderCommandHandler(uowFactory, checker, ports.SystemClock{}, publisher, logger)
//	result, err := handler.Handle(ctx, cmd)
//	var conflict *services.ConflictError
//	if errors.As(err, &conflict) {
//	    // tell the operator which order to close or who holds this one
//	}
type StartOrderCommandHandler struct {
	uowFactory UoWFactory
	checker    services.AvailabilityChecker
	clock      ports.Clock
	events     eventNotifier
}

// NewStartOrderCommandHandler creates a handler for start operations.
func NewStartOrderCommandHandler(
	uowFactory UoWFactory,
	checker services.AvailabilityChecker,
	clock ports.Clock,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) StartOrderCommandHandler {
	return StartOrderCommandHandler{
		uowFactory: uowFactory,
		checker:    checker,
		clock:      clock,
		events:     newEventNotifier(publisher, logger),
	}
}

// Handle runs the availability check, transitions the order and opens a session.
// Denials come back as *services.ConflictError; a failed session write as ErrSessionWriteFailure.
func (h StartOrderCommandHandler) Handle(ctx context.Context, cmd StartOrderCommand) (AcquireResult, error) {
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
	result, err := acquireSession(ctx, uow, h.checker, cmd.Operator(), cmd.OrderID(), now, (*order.Order).Start)
	if err != nil {
		return AcquireResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AcquireResult{}, err
	}

	h.events.notify(ctx, sessionClosedEvents(result.ClosedSessions, now)...)
	h.events.notify(ctx, orderEvent(
		ports.EventOrderStarted, result.Order, cmd.Operator().ID(), cmd.Operator().Name(), result.SessionID, now,
	))

	return result, nil
}
