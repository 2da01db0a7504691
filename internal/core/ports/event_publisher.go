package ports

import (
	"context"
	"time"

	"brillante/internal/core/domain/model/kernel"
)

// Domain event names published after a command commits.
const (
	EventOrderCreated           = "order.created"
	EventOrderStarted           = "order.started"
	EventOrderReopened          = "order.reopened"
	EventOrderProductionUpdated = "order.production_updated"
	EventOrderCompleted         = "order.completed"
	EventSessionClosed          = "session.closed"
)

// DomainEvent describes a committed state change for downstream consumers
// (dashboards, analytics). Fields that do not apply to an event are left zero.
type DomainEvent struct {
	ID            kernel.UUID
	Name          string
	OrderID       kernel.UUID
	OrderNumber   int
	OrderStatus   string
	ProducedUnits int
	OperatorID    kernel.UUID
	OperatorName  string
	SessionID     kernel.UUID
	CloseReason   string
	OccurredAt    time.Time
}

// EventPublisher delivers domain events. Delivery is best effort: the state change is
// already committed when Publish is called.
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
}
