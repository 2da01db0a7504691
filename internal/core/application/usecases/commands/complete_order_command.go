package commands

import (
	"errors"

	"brillante/internal/core/domain/model/kernel"
	"brillante/internal/pkg/guard"
)

var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// CompleteOrderCommand closes an in-progress order on behalf of an operator.
type CompleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	operatorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteOrderCommand validates both ids.
func NewCompleteOrderCommand(orderID kernel.UUID, operatorID kernel.UUID) (CompleteOrderCommand, error) {
	cmd := CompleteOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOperatorID(operatorID),
	); err != nil {
		return CompleteOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

// OrderID returns the order to complete.
func (c CompleteOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OperatorID returns the requesting operator.
func (c CompleteOrderCommand) OperatorID() kernel.UUID {
	return c.operatorID
}

func (c *CompleteOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CompleteOrderCommand) setOperatorID(operatorID kernel.UUID) error {
	if err := operatorID.Validate(); err != nil {
		return err
	}
	c.operatorID = operatorID
	return nil
}
