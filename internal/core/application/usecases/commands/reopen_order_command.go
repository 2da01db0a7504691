package commands

import (
	"errors"

	"brillante/internal/core/domain/model/kernel"
	"brillante/internal/pkg/guard"
)

var ErrReopenOrderCommandIsNotConstructed = errors.New(
	"ReopenOrderCommand must be created via NewReopenOrderCommand constructor",
)

// ReopenOrderCommand forces an order back to in-progress under the requesting operator,
// whatever its current status. Used to fix a completed order or to take over an
// abandoned one.
type ReopenOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	operator kernel.Operator

	guard guard.ConstructorGuard
}

// NewReopenOrderCommand validates the order id and the operator.
func NewReopenOrderCommand(orderID kernel.UUID, operator kernel.Operator) (ReopenOrderCommand, error) {
	cmd := ReopenOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOperator(operator),
	); err != nil {
		return ReopenOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReopenOrderCommand) Validate() error {
	return c.guard.Validate(ErrReopenOrderCommandIsNotConstructed)
}

// OrderID returns the order to reopen.
func (c ReopenOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Operator returns the requesting operator.
func (c ReopenOrderCommand) Operator() kernel.Operator {
	return c.operator
}

func (c *ReopenOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ReopenOrderCommand) setOperator(operator kernel.Operator) error {
	if err := operator.Validate(); err != nil {
		return err
	}
	c.operator = operator
	return nil
}
