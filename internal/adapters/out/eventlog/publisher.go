// Package eventlog writes domain events to the structured log. It stands in for the
// broker publisher when no broker is configured.
package eventlog

import (
	"context"
	"log/slog"

	"brillante/internal/core/ports"
)

// Publisher implements ports.EventPublisher on top of slog.
type Publisher struct {
	logger *slog.Logger
}

// NewPublisher creates a log-backed publisher.
func NewPublisher(logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{logger: logger.With("component", "event-log")}
}

// Publish logs the event at info level. It never fails.
func (p *Publisher) Publish(ctx context.Context, event ports.DomainEvent) error {
	attrs := []any{
		"event", event.Name,
		"event_id", event.ID.String(),
		"order_id", event.OrderID.String(),
		"order_number", event.OrderNumber,
		"occurred_at", event.OccurredAt,
	}
	if event.OrderStatus != "" {
		attrs = append(attrs, "order_status", event.OrderStatus, "produced_units", event.ProducedUnits)
	}
	if event.OperatorName != "" {
		attrs = append(attrs, "operator_id", event.OperatorID.String(), "operator_name", event.OperatorName)
	}
	if event.CloseReason != "" {
		attrs = append(attrs, "session_id", event.SessionID.String(), "close_reason", event.CloseReason)
	}

	p.logger.InfoContext(ctx, "Domain event", attrs...)
	return nil
}
