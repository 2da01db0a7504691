package commands

import (
	"errors"

	"brillante/internal/core/domain/model/kernel"
	"brillante/internal/pkg/guard"
)

var ErrStartOrderCommandIsNotConstructed = errors.New(
	"StartOrderCommand must be created via NewStartOrderCommand constructor",
)

// StartOrderCommand asks to put an order in progress under the requesting operator.
// Starting an order the operator already holds resumes it.
//
// Example:
//
//	cmd, err := NewStartOrderCommand(orderID, operator)
//	if err != nil {
//	    return fmt.Errorf("invalid start request: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
type StartOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	operator kernel.Operator

	guard guard.ConstructorGuard
}

// NewStartOrderCommand validates the order id and the operator.
func NewStartOrderCommand(orderID kernel.UUID, operator kernel.Operator) (StartOrderCommand, error) {
	cmd := StartOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOperator(operator),
	); err != nil {
		return StartOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartOrderCommand) Validate() error {
	return c.guard.Validate(ErrStartOrderCommandIsNotConstructed)
}

// OrderID returns the order to start.
func (c StartOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Operator returns the requesting operator.
func (c StartOrderCommand) Operator() kernel.Operator {
	return c.operator
}

func (c *StartOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *StartOrderCommand) setOperator(operator kernel.Operator) error {
	if err := operator.Validate(); err != nil {
		return err
	}
	c.operator = operator
	return nil
}
