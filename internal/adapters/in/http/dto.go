package http

import (
	"time"

	"brillante/internal/core/application/usecases/commands"
	"brillante/internal/core/application/usecases/queries"
	"brillante/internal/core/domain/model/order"
	"brillante/internal/core/domain/services"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// NewOrder is the body of POST /api/v1/orders.
type NewOrder struct {
	ID             *openapi_types.UUID `json:"id,omitempty"`
	Number         int                 `json:"number"`
	LineID         openapi_types.UUID  `json:"lineId"`
	ProductID      openapi_types.UUID  `json:"productId"`
	Shift          string              `json:"shift"`
	ProductionDate openapi_types.Date  `json:"productionDate"`
	PlannedUnits   int                 `json:"plannedUnits"`
}

// ProductionUpdate is the body of POST /api/v1/orders/{orderId}/production.
type ProductionUpdate struct {
	ProducedUnits int        `json:"producedUnits"`
	Timestamp     *time.Time `json:"timestamp,omitempty"`
}

// Order is the JSON representation of a production order.
type Order struct {
	ID             openapi_types.UUID `json:"id"`
	Number         int                `json:"number"`
	LineID         openapi_types.UUID `json:"lineId"`
	ProductID      openapi_types.UUID `json:"productId"`
	Shift          string             `json:"shift"`
	ProductionDate openapi_types.Date `json:"productionDate"`
	PlannedUnits   int                `json:"plannedUnits"`
	ProducedUnits  int                `json:"producedUnits"`
	Status         string             `json:"status"`
	UpdatedAt      time.Time          `json:"updatedAt"`
	PlanFulfilled  bool               `json:"planFulfilled"`
}

// OrderDetails is an order plus the session currently working it.
type OrderDetails struct {
	Order
	ActiveSession *Session `json:"activeSession,omitempty"`
}

// Acquired is returned by start and reopen.
type Acquired struct {
	Order     Order              `json:"order"`
	SessionID openapi_types.UUID `json:"sessionId"`
}

// Session is a live operator session.
type Session struct {
	SessionID       openapi_types.UUID `json:"sessionId"`
	OperatorID      openapi_types.UUID `json:"operatorId"`
	OperatorName    string             `json:"operatorName"`
	OrderID         openapi_types.UUID `json:"orderId"`
	OrderNumber     int                `json:"orderNumber"`
	LineID          openapi_types.UUID `json:"lineId"`
	ProductID       openapi_types.UUID `json:"productId"`
	StartedAt       time.Time          `json:"startedAt"`
	LastHeartbeatAt time.Time          `json:"lastHeartbeatAt"`
}

// Availability answers the availability check and describes conflicts.
type Availability struct {
	Available          bool                `json:"available"`
	Reason             string              `json:"reason,omitempty"`
	Message            string              `json:"message,omitempty"`
	ActiveOrderID      *openapi_types.UUID `json:"activeOrderId,omitempty"`
	ActiveOrderNumber  int                 `json:"activeOrderNumber,omitempty"`
	ActiveOperatorID   *openapi_types.UUID `json:"activeOperatorId,omitempty"`
	ActiveOperatorName string              `json:"activeOperatorName,omitempty"`
}

// Error is the generic error body.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func toOrder(o *order.Order) Order {
	return Order{
		ID:             o.ID().Bytes(),
		Number:         o.Number(),
		LineID:         o.LineID().Bytes(),
		ProductID:      o.ProductID().Bytes(),
		Shift:          o.Shift(),
		ProductionDate: openapi_types.Date{Time: o.ProductionDate()},
		PlannedUnits:   o.PlannedUnits(),
		ProducedUnits:  o.ProducedUnits(),
		Status:         o.Status().String(),
		UpdatedAt:      o.UpdatedAt(),
		PlanFulfilled:  o.PlanFulfilled(),
	}
}

func toAcquired(result commands.AcquireResult) Acquired {
	return Acquired{
		Order:     toOrder(result.Order),
		SessionID: result.SessionID.Bytes(),
	}
}

func toOrderDetails(resp queries.GetOrderQueryResponse) OrderDetails {
	details := OrderDetails{
		Order: Order{
			ID:             resp.ID.Bytes(),
			Number:         resp.Number,
			LineID:         resp.LineID.Bytes(),
			ProductID:      resp.ProductID.Bytes(),
			Shift:          resp.Shift,
			ProductionDate: openapi_types.Date{Time: resp.ProductionDate},
			PlannedUnits:   resp.PlannedUnits,
			ProducedUnits:  resp.ProducedUnits,
			Status:         resp.Status.String(),
			UpdatedAt:      resp.UpdatedAt,
			PlanFulfilled:  resp.PlanFulfilled,
		},
	}
	if resp.Holder != nil {
		s := toSession(*resp.Holder)
		details.ActiveSession = &s
	}
	return details
}

func toSession(s queries.ActiveSessionResponse) Session {
	return Session{
		SessionID:       s.SessionID.Bytes(),
		OperatorID:      s.OperatorID.Bytes(),
		OperatorName:    s.OperatorName,
		OrderID:         s.OrderID.Bytes(),
		OrderNumber:     s.OrderNumber,
		LineID:          s.LineID.Bytes(),
		ProductID:       s.ProductID.Bytes(),
		StartedAt:       s.StartedAt,
		LastHeartbeatAt: s.LastHeartbeatAt,
	}
}

func toAvailability(a services.Availability) Availability {
	if a.Available {
		return Availability{Available: true}
	}
	return conflictBody(a.Err())
}
