package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"brillante/internal/core/domain/model/kernel"
	"brillante/internal/core/domain/model/order"
	"brillante/internal/pkg/errs"
	"brillante/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrShiftIsRequired        = errs.NewValueIsRequiredError("shift")
	ErrPlannedUnitsAreInvalid = errors.New("planned units must be greater than 0")
)

// CreateOrderCommand represents planning a new production order.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, 1001, order.Plan{
//	    LineID:         lineID,
//	    ProductID:      productID,
//	    Shift:          "A",
//	    ProductionDate: time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC),
//	    PlannedUnits:   500,
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	number  int
	plan    order.Plan

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates every planning field and reports all problems at once.
func NewCreateOrderCommand(orderID kernel.UUID, number int, plan order.Plan) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setNumber(number),
		orderCommand.setPlan(plan),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Number returns the human-facing order number.
func (c CreateOrderCommand) Number() int {
	return c.number
}

// Plan returns line, product, shift, date and planned units.
func (c CreateOrderCommand) Plan() order.Plan {
	return c.plan
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setNumber(number int) error {
	if number <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order number", fmt.Errorf("%d is not greater than 0", number))
	}

	c.number = number
	return nil
}

func (c *CreateOrderCommand) setPlan(plan order.Plan) error {
	var errList []error
	if err := plan.LineID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("line id", err))
	}
	if err := plan.ProductID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("product id", err))
	}
	if strings.TrimSpace(plan.Shift) == "" {
		errList = append(errList, ErrShiftIsRequired)
	}
	if plan.ProductionDate.Equal(time.Time{}) {
		errList = append(errList, errs.NewValueIsRequiredError("production date"))
	}
	if plan.PlannedUnits <= 0 {
		errList = append(errList, ErrPlannedUnitsAreInvalid)
	}
	if len(errList) > 0 {
		return errors.Join(errList...)
	}

	c.plan = plan
	return nil
}
