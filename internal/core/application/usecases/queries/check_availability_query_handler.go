package queries

import (
	"context"

	"brillante/internal/core/domain/services"
	"brillante/internal/core/ports"
)

// CheckAvailabilityQueryHandler loads the order and the relevant active sessions and
// hands them to the availability checker. It performs no writes, so the answer can be
// stale by the time the caller acts; the commands check again under a lock.
type CheckAvailabilityQueryHandler struct {
	providerFactory RepositoryProviderFactory
	checker         services.AvailabilityChecker
	clock           ports.Clock
}

// NewCheckAvailabilityQueryHandler creates the handler.
func NewCheckAvailabilityQueryHandler(
	providerFactory RepositoryProviderFactory,
	checker services.AvailabilityChecker,
	clock ports.Clock,
) CheckAvailabilityQueryHandler {
	return CheckAvailabilityQueryHandler{
		providerFactory: providerFactory,
		checker:         checker,
		clock:           clock,
	}
}

// Handle returns the availability. A missing order is reported as errs.ObjectNotFoundError.
func (h CheckAvailabilityQueryHandler) Handle(
	ctx context.Context,
	query CheckAvailabilityQuery,
) (services.Availability, error) {
	if err := query.Validate(); err != nil {
		return services.Availability{}, err
	}

	provider := h.providerFactory.Create()

	o, err := provider.OrderRepository().Get(ctx, query.OrderID())
	if err != nil {
		return services.Availability{}, err
	}

	sessionRepo := provider.SessionRepository()

	operatorSessions, err := sessionRepo.GetActiveByOperator(ctx, query.OperatorID())
	if err != nil {
		return services.Availability{}, err
	}

	orderSessions, err := sessionRepo.GetActiveByOrder(ctx, query.OrderID())
	if err != nil {
		return services.Availability{}, err
	}

	return h.checker.Check(services.AvailabilityInput{
		OperatorID:       query.OperatorID(),
		Order:            o,
		OperatorSessions: operatorSessions,
		OrderSessions:    orderSessions,
		Now:              h.clock.Now(),
	}), nil
}
