package services

import (
	"errors"
	"fmt"

	"brillante/internal/core/domain/model/kernel"
)

var (
	// ErrOperatorHasOtherActiveOrder is returned when the operator already holds a different order.
	ErrOperatorHasOtherActiveOrder = errors.New("operator has another active order")
	// ErrOrderHeldByAnotherOperator is returned when another operator holds the order.
	ErrOrderHeldByAnotherOperator = errors.New("order is held by another operator")
)

// ConflictError carries the order or operator that blocks a request so that callers can
// tell the user exactly what to close or who to ask. OrderNumber is zero when the
// conflict was only detected by the store during a concurrent start.
//
// Example:
//
//	var conflict *services.ConflictError
//	if errors.As(err, &conflict) {
//	    fmt.Println(conflict.OrderNumber, conflict.OperatorName)
//	}
type ConflictError struct {
	Kind         error
	OrderID      kernel.UUID
	OrderNumber  int
	OperatorID   kernel.UUID
	OperatorName string
}

func (e *ConflictError) Error() string {
	switch {
	case errors.Is(e.Kind, ErrOperatorHasOtherActiveOrder) && e.OrderNumber > 0:
		return fmt.Sprintf("%s: close order #%d before starting another one", e.Kind, e.OrderNumber)
	case errors.Is(e.Kind, ErrOperatorHasOtherActiveOrder):
		// Only the store's unique index saw the other order, so it is not known here.
		return fmt.Sprintf("%s: another order was started at the same time, retry to see which one", e.Kind)
	case errors.Is(e.Kind, ErrOrderHeldByAnotherOperator) && e.OperatorName != "":
		return fmt.Sprintf("%s: order is being worked by %s", e.Kind, e.OperatorName)
	default:
		return fmt.Sprint(e.Kind)
	}
}

func (e *ConflictError) Unwrap() error {
	return e.Kind
}
