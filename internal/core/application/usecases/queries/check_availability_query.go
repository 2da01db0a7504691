package queries

import (
	"errors"

	"brillante/internal/core/domain/model/kernel"
	"brillante/internal/pkg/errs"
	"brillante/internal/pkg/guard"
)

var ErrCheckAvailabilityQueryIsNotConstructed = errors.New(
	"CheckAvailabilityQuery must be created via NewCheckAvailabilityQuery constructor",
)

// CheckAvailabilityQuery asks whether an operator may act on an order right now.
// It is the pre-flight check clients run before offering start or reopen.
//
// Example:
//
//	query, err := NewCheckAvailabilityQuery(orderID, operatorID)
//	availability, err := handler.Handle(ctx, query)
//	if !availability.Available {
//	    fmt.Println("close order", availability.ConflictingOrderNumber, "first")
//	}
type CheckAvailabilityQuery struct {
	orderID    kernel.UUID
	operatorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCheckAvailabilityQuery validates both ids.
func NewCheckAvailabilityQuery(orderID kernel.UUID, operatorID kernel.UUID) (CheckAvailabilityQuery, error) {
	var errList []error
	if err := orderID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("order id", err))
	}
	if err := operatorID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("operator id", err))
	}
	if len(errList) > 0 {
		return CheckAvailabilityQuery{}, errors.Join(errList...)
	}

	return CheckAvailabilityQuery{
		orderID:    orderID,
		operatorID: operatorID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q CheckAvailabilityQuery) Validate() error {
	return q.guard.Validate(ErrCheckAvailabilityQueryIsNotConstructed)
}

// OrderID returns the order being checked.
func (q CheckAvailabilityQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OperatorID returns the operator being checked.
func (q CheckAvailabilityQuery) OperatorID() kernel.UUID {
	return q.operatorID
}
