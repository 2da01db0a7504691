package commands

import (
	"context"
	"log/slog"

	"brillante/internal/core/domain/model/kernel"
	"brillante/internal/core/domain/model/order"
	"brillante/internal/core/domain/model/session"
	"brillante/internal/core/domain/services"
	"brillante/internal/core/ports"
)

// CompleteOrderCommandHandler is the only way an order reaches Completed. Its active
// sessions are closed with reason "completed" in the same transaction.
type CompleteOrderCommandHandler struct {
	uowFactory UoWFactory
	checker    services.AvailabilityChecker
	clock      ports.Clock
	events     eventNotifier
}

// NewCompleteOrderCommandHandler creates a handler for complete operations.
func NewCompleteOrderCommandHandler(
	uowFactory UoWFactory,
	checker services.AvailabilityChecker,
	clock ports.Clock,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		checker:    checker,
		clock:      clock,
		events:     newEventNotifier(publisher, logger),
	}
}

// Handle processes the complete command.
func (h CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	sessionRepo := uow.SessionRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	operatorSessions, err := sessionRepo.GetActiveByOperator(ctx, cmd.OperatorID())
	if err != nil {
		return nil, err
	}

	orderSessions, err := sessionRepo.GetActiveByOrder(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	availability := h.checker.Check(services.AvailabilityInput{
		OperatorID:       cmd.OperatorID(),
		Order:            o,
		OperatorSessions: operatorSessions,
		OrderSessions:    orderSessions,
		Now:              now,
	})
	if err = availability.Err(); err != nil {
		return nil, err
	}

	if err = o.Complete(now); err != nil {
		return nil, err
	}

	for _, s := range orderSessions {
		if err = closeSession(ctx, sessionRepo.Update, s, now, session.ReasonCompleted); err != nil {
			return nil, sessionWriteError(err, nil)
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.events.notify(ctx, sessionClosedEvents(orderSessions, now)...)
	h.events.notify(ctx, orderEvent(
		ports.EventOrderCompleted,
		o,
		cmd.OperatorID(),
		operatorName(cmd.OperatorID(), orderSessions),
		kernel.UUID{},
		now,
	))

	return o, nil
}
