package ports

import (
	"context"
	"errors"

	"brillante/internal/core/domain/model/kernel"
	"brillante/internal/core/domain/model/order"
)

// ErrOrderNumberTaken is returned by OrderRepository.Add when the human-facing number is in use.
var ErrOrderNumberTaken = errors.New("order number is already taken")

// OrderRepository defines the persistence contract for production order aggregates.
type OrderRepository interface {
	// Add persists a new order. Returns ErrOrderNumberTaken on a duplicate number.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes guarded by the aggregate's version. A concurrent writer
	// makes it fail with errs.VersionIsInvalidError. On success the aggregate's version
	// is advanced.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id. Returns errs.ObjectNotFoundError when absent.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get plus a row lock held until the surrounding transaction ends.
	// Commands that open sessions use it to serialize on the order.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
