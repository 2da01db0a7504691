package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"brillante/internal/core/domain/model/kernel"
	"brillante/internal/pkg/errs"
	"brillante/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created via NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Plan is what the planning workflow decides for an order before anyone works it.
type Plan struct {
	LineID         kernel.UUID
	ProductID      kernel.UUID
	Shift          string
	ProductionDate time.Time
	PlannedUnits   int
}

// Order is the production order aggregate root.
//
// Invariants:
//   - number is positive and human facing ("#1001")
//   - planned units are positive; produced units never decrease
//   - status transitions go through Status
//   - version increases on every persisted update (optimistic concurrency)
type Order struct {
	id            kernel.UUID
	number        int
	plan          Plan
	producedUnits int
	status        Status
	updatedAt     time.Time
	version       int

	guard guard.ConstructorGuard
}

// NewOrder creates a Pending order with no production recorded.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), 1001, order.Plan{
//	    LineID:         lineID,
//	    ProductID:      productID,
//	    Shift:          "A",
//	    ProductionDate: time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC),
//	    PlannedUnits:   500,
//	}, time.Now())
func NewOrder(id kernel.UUID, number int, plan Plan, now time.Time) (*Order, error) {
	return RestoreOrder(id, number, plan, 0, Pending, now, 0)
}

// RestoreOrder rebuilds an order from persistence, re-checking every invariant.
func RestoreOrder(
	id kernel.UUID,
	number int,
	plan Plan,
	producedUnits int,
	status Status,
	updatedAt time.Time,
	version int,
) (*Order, error) {
	o := &Order{
		updatedAt: updatedAt,
		version:   version,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setPlan(plan),
		o.setProducedUnits(producedUnits),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-facing sequential order number.
func (o *Order) Number() int {
	return o.number
}

// LineID returns the production line the order is planned on.
func (o *Order) LineID() kernel.UUID {
	return o.plan.LineID
}

// ProductID returns the product being made.
func (o *Order) ProductID() kernel.UUID {
	return o.plan.ProductID
}

// Shift returns the shift identifier.
func (o *Order) Shift() string {
	return o.plan.Shift
}

// ProductionDate returns the planned production date.
func (o *Order) ProductionDate() time.Time {
	return o.plan.ProductionDate
}

// PlannedUnits returns the number of units planned.
func (o *Order) PlannedUnits() int {
	return o.plan.PlannedUnits
}

// ProducedUnits returns the number of units recorded so far.
func (o *Order) ProducedUnits() int {
	return o.producedUnits
}

// Status returns the lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// UpdatedAt returns the last time the order changed.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Version returns the persisted version the aggregate was loaded with.
func (o *Order) Version() int {
	return o.version
}

// PlanFulfilled reports produced >= planned. Display only; it never changes the status.
func (o *Order) PlanFulfilled() bool {
	return o.producedUnits >= o.plan.PlannedUnits
}

// Start puts the order in progress. Calling it on an order already in progress is allowed
// so that its holder can resume after a reconnect.
func (o *Order) Start(now time.Time) error {
	newStatus, err := o.status.Start()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = now
	return nil
}

// Reopen forces the order back in progress regardless of its current status.
func (o *Order) Reopen(now time.Time) error {
	newStatus, err := o.status.Reopen()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = now
	return nil
}

// RecordProduction stores the cumulative produced units reported at the given time.
// The status is left untouched even when the plan is fulfilled.
func (o *Order) RecordProduction(producedUnits int, at time.Time) error {
	if err := o.status.ValidateRecordProduction(); err != nil {
		return err
	}

	if at.IsZero() {
		return errs.NewValueIsRequiredError("production timestamp")
	}

	if producedUnits < o.producedUnits {
		return errs.NewValueIsInvalidErrorWithCause(
			"produced units",
			fmt.Errorf("%d is less than the %d units already recorded", producedUnits, o.producedUnits),
		)
	}

	o.producedUnits = producedUnits
	o.updatedAt = at
	return nil
}

// Complete closes the order lifecycle.
func (o *Order) Complete(now time.Time) error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = now
	return nil
}

// SyncVersion records the version written by the persistence adapter.
func (o *Order) SyncVersion(version int) {
	o.version = version
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number int) error {
	if number <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order number", fmt.Errorf("%d is not greater than 0", number))
	}
	o.number = number
	return nil
}

func (o *Order) setPlan(plan Plan) error {
	plan.Shift = strings.TrimSpace(plan.Shift)

	var errList []error
	if err := plan.LineID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("line id", err))
	}
	if err := plan.ProductID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("product id", err))
	}
	if plan.Shift == "" {
		errList = append(errList, errs.NewValueIsRequiredError("shift"))
	}
	if plan.ProductionDate.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("production date"))
	}
	if plan.PlannedUnits <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"planned units", fmt.Errorf("%d is not greater than 0", plan.PlannedUnits)))
	}
	if len(errList) > 0 {
		return errors.Join(errList...)
	}

	o.plan = plan
	return nil
}

func (o *Order) setProducedUnits(producedUnits int) error {
	if producedUnits < 0 {
		return errs.NewValueIsInvalidErrorWithCause("produced units", fmt.Errorf("%d is negative", producedUnits))
	}
	o.producedUnits = producedUnits
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
