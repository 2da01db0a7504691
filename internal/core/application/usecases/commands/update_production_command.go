package commands

import (
	"errors"
	"fmt"
	"time"

	"brillante/internal/core/domain/model/kernel"
	"brillante/internal/pkg/errs"
	"brillante/internal/pkg/guard"
)

var ErrUpdateProductionCommandIsNotConstructed = errors.New(
	"UpdateProductionCommand must be created via NewUpdateProductionCommand constructor",
)

// UpdateProductionCommand records the cumulative units produced on an order.
// A zero reportedAt means "now" and is resolved by the handler's clock. The operator
// is optional and only attributes the report.
type UpdateProductionCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	operatorID    kernel.UUID
	producedUnits int
	reportedAt    time.Time

	guard guard.ConstructorGuard
}

// NewUpdateProductionCommand validates the order id and rejects negative units.
// A zero operatorID leaves the report unattributed.
func NewUpdateProductionCommand(
	orderID kernel.UUID,
	operatorID kernel.UUID,
	producedUnits int,
	reportedAt time.Time,
) (UpdateProductionCommand, error) {
	cmd := UpdateProductionCommand{
		reportedAt: reportedAt,
		guard:      guard.NewConstructorGuard(),
	}
	cmd.setOperatorID(operatorID)

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setProducedUnits(producedUnits),
	); err != nil {
		return UpdateProductionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateProductionCommand) Validate() error {
	return c.guard.Validate(ErrUpdateProductionCommandIsNotConstructed)
}

// OrderID returns the order being reported on.
func (c UpdateProductionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OperatorID returns the reporting operator, zero when unattributed.
func (c UpdateProductionCommand) OperatorID() kernel.UUID {
	return c.operatorID
}

// ProducedUnits returns the cumulative count.
func (c UpdateProductionCommand) ProducedUnits() int {
	return c.producedUnits
}

// ReportedAt returns the client timestamp, zero when not supplied.
func (c UpdateProductionCommand) ReportedAt() time.Time {
	return c.reportedAt
}

func (c *UpdateProductionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateProductionCommand) setOperatorID(operatorID kernel.UUID) {
	c.operatorID = operatorID
}

func (c *UpdateProductionCommand) setProducedUnits(producedUnits int) error {
	if producedUnits < 0 {
		return errs.NewValueIsInvalidErrorWithCause("produced units", fmt.Errorf("%d is negative", producedUnits))
	}
	c.producedUnits = producedUnits
	return nil
}
