package commands

import (
	"context"
	"log/slog"

	"brillante/internal/core/domain/model/kernel"
	"brillante/internal/core/domain/model/order"
	"brillante/internal/core/domain/model/session"
	"brillante/internal/core/ports"
)

// UpdateProductionCommandHandler records produced units on an in-progress order.
// Updates are not availability-gated: any operator may report on an order in
// progress, and the reporter is kept only for attribution. Sessions are not touched
// and the status never changes here, even when the plan is fulfilled. Concurrent
// updates are resolved by the order's version.
type UpdateProductionCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
	events     eventNotifier
}

// NewUpdateProductionCommandHandler creates a handler for production updates.
func NewUpdateProductionCommandHandler(
	uowFactory UoWFactory,
	clock ports.Clock,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) UpdateProductionCommandHandler {
	return UpdateProductionCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		events:     newEventNotifier(publisher, logger),
	}
}

// Handle stores the new count when the order is in progress.
func (h UpdateProductionCommandHandler) Handle(ctx context.Context, cmd UpdateProductionCommand) (*order.Order, error) {
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

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	var reporterSessions []*session.Session
	if cmd.OperatorID().Validate() == nil {
		reporterSessions, err = uow.SessionRepository().GetActiveByOperator(ctx, cmd.OperatorID())
		if err != nil {
			return nil, err
		}
	}

	now := h.clock.Now()
	reportedAt := cmd.ReportedAt()
	if reportedAt.IsZero() {
		reportedAt = now
	}

	if err = o.RecordProduction(cmd.ProducedUnits(), reportedAt); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.events.notify(ctx, orderEvent(
		ports.EventOrderProductionUpdated,
		o,
		cmd.OperatorID(),
		operatorName(cmd.OperatorID(), reporterSessions),
		kernel.UUID{},
		now,
	))

	return o, nil
}
