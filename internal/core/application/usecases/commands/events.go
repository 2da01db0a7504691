package commands

import (
	"context"
	"log/slog"
	"time"

	"brillante/internal/core/domain/model/kernel"
	"brillante/internal/core/domain/model/order"
	"brillante/internal/core/domain/model/session"
	"brillante/internal/core/ports"
)

// eventNotifier publishes domain events after commit. Failures are logged and swallowed
// because the state change they describe is already durable.
type eventNotifier struct {
	publisher ports.EventPublisher
	logger    *slog.Logger
}

func newEventNotifier(publisher ports.EventPublisher, logger *slog.Logger) eventNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return eventNotifier{
		publisher: publisher,
		logger:    logger.With("component", "event-notifier"),
	}
}

func (n eventNotifier) notify(ctx context.Context, events ...ports.DomainEvent) {
	if n.publisher == nil {
		return
	}

	for _, event := range events {
		if err := n.publisher.Publish(ctx, event); err != nil {
			n.logger.WarnContext(ctx, "Failed to publish domain event",
				"event", event.Name,
				"order_id", event.OrderID.String(),
				"error", err,
			)
		}
	}
}

func orderEvent(
	name string,
	o *order.Order,
	operatorID kernel.UUID,
	operatorName string,
	sessionID kernel.UUID,
	now time.Time,
) ports.DomainEvent {
	return ports.DomainEvent{
		ID:            kernel.NewUUID(),
		Name:          name,
		OrderID:       o.ID(),
		OrderNumber:   o.Number(),
		OrderStatus:   o.Status().String(),
		ProducedUnits: o.ProducedUnits(),
		OperatorID:    operatorID,
		OperatorName:  operatorName,
		SessionID:     sessionID,
		OccurredAt:    now,
	}
}

func sessionClosedEvents(sessions []*session.Session, now time.Time) []ports.DomainEvent {
	events := make([]ports.DomainEvent, 0, len(sessions))
	for _, s := range sessions {
		events = append(events, ports.DomainEvent{
			ID:           kernel.NewUUID(),
			Name:         ports.EventSessionClosed,
			OrderID:      s.OrderID(),
			OrderNumber:  s.OrderNumber(),
			OperatorID:   s.Operator().ID(),
			OperatorName: s.Operator().Name(),
			SessionID:    s.ID(),
			CloseReason:  s.CloseReason().String(),
			OccurredAt:   now,
		})
	}
	return events
}

// operatorName looks up the display name of operatorID among sessions.
func operatorName(operatorID kernel.UUID, sessions []*session.Session) string {
	for _, s := range sessions {
		if s.IsHeldBy(operatorID) {
			return s.Operator().Name()
		}
	}
	return ""
}
