package queries

import (
	"errors"
	"time"

	"brillante/internal/core/domain/model/kernel"
	"brillante/internal/core/domain/model/order"
	"brillante/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one production order with its current holder, if any.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery validates the order id.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the read model of a production order.
type GetOrderQueryResponse struct {
	ID             kernel.UUID
	Number         int
	LineID         kernel.UUID
	ProductID      kernel.UUID
	Shift          string
	ProductionDate time.Time
	PlannedUnits   int
	ProducedUnits  int
	Status         order.Status
	UpdatedAt      time.Time
	PlanFulfilled  bool

	// Holder is the newest active session on the order, nil when nobody holds it.
	Holder *ActiveSessionResponse
}
