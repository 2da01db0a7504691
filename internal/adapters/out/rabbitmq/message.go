package rabbitmq

import (
	"encoding/json"
	"time"

	"brillante/internal/core/domain/model/kernel"
	"brillante/internal/core/ports"
)

// eventMessage is the JSON body published for every domain event.
type eventMessage struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	OrderID       string `json:"order_id,omitempty"`
	OrderNumber   int    `json:"order_number,omitempty"`
	OrderStatus   string `json:"order_status,omitempty"`
	ProducedUnits int    `json:"produced_units"`
	OperatorID    string `json:"operator_id,omitempty"`
	OperatorName  string `json:"operator_name,omitempty"`
	SessionID     string `json:"session_id,omitempty"`
	CloseReason   string `json:"close_reason,omitempty"`
	OccurredAt    string `json:"occurred_at"`
}

func encodeEvent(event ports.DomainEvent) ([]byte, error) {
	return json.Marshal(eventMessage{
		ID:            optionalID(event.ID),
		Name:          event.Name,
		OrderID:       optionalID(event.OrderID),
		OrderNumber:   event.OrderNumber,
		OrderStatus:   event.OrderStatus,
		ProducedUnits: event.ProducedUnits,
		OperatorID:    optionalID(event.OperatorID),
		OperatorName:  event.OperatorName,
		SessionID:     optionalID(event.SessionID),
		CloseReason:   event.CloseReason,
		OccurredAt:    event.OccurredAt.UTC().Format(time.RFC3339Nano),
	})
}

func optionalID(id kernel.UUID) string {
	if id.Validate() != nil {
		return ""
	}
	return id.String()
}
