package commands

import (
	"context"
	"log/slog"

	"brillante/internal/core/domain/model/kernel"
	"brillante/internal/core/domain/model/order"
	"brillante/internal/core/ports"
)

// CreateOrderCommandHandler registers a planned order in Pending status.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, ports.SystemClock{}, publisher, logger)
//	created, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ports.ErrOrderNumberTaken) {
//	    // pick another number
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
	events     eventNotifier
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	clock ports.Clock,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		events:     newEventNotifier(publisher, logger),
	}
}

// Handle processes the order creation command.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	created, err := order.NewOrder(cmd.OrderID(), cmd.Number(), cmd.Plan(), now)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.events.notify(ctx, orderEvent(ports.EventOrderCreated, created, kernel.UUID{}, "", kernel.UUID{}, now))
	return created, nil
}
