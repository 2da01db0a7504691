package order_test

import (
	"testing"
	"time"

	"brillante/internal/core/domain/model/kernel"
	"brillante/internal/core/domain/model/order"
	"brillante/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)

func validPlan() order.Plan {
	return order.Plan{
		LineID:         kernel.NewUUID(),
		ProductID:      kernel.NewUUID(),
		Shift:          "A",
		ProductionDate: time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC),
		PlannedUnits:   500,
	}
}

func newInProgressOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), 1001, validPlan(), testNow)
	require.NoError(t, err)
	require.NoError(t, o.Start(testNow))
	return o
}

func TestNewOrder(t *testing.T) {
	validID := kernel.NewUUID()

	t.Run("should create pending order with no production", func(t *testing.T) {
		plan := validPlan()

		o, err := order.NewOrder(validID, 1001, plan, testNow)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(validID))
		assert.Equal(t, 1001, o.Number())
		assert.True(t, o.LineID().IsEqual(plan.LineID))
		assert.True(t, o.ProductID().IsEqual(plan.ProductID))
		assert.Equal(t, "A", o.Shift())
		assert.Equal(t, plan.ProductionDate, o.ProductionDate())
		assert.Equal(t, 500, o.PlannedUnits())
		assert.Equal(t, 0, o.ProducedUnits())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, testNow, o.UpdatedAt())
		assert.Equal(t, 0, o.Version())
		assert.False(t, o.PlanFulfilled())
	})

	t.Run("should trim shift", func(t *testing.T) {
		plan := validPlan()
		plan.Shift = "  B \n"

		o, err := order.NewOrder(validID, 1, plan, testNow)

		require.NoError(t, err)
		assert.Equal(t, "B", o.Shift())
	})

	t.Run("should fail with invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		o, err := order.NewOrder(invalidID, 1001, validPlan(), testNow)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail with non positive number", func(t *testing.T) {
		o, err := order.NewOrder(validID, 0, validPlan(), testNow)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "order number")
	})

	t.Run("should fail with zero planned units", func(t *testing.T) {
		plan := validPlan()
		plan.PlannedUnits = 0

		o, err := order.NewOrder(validID, 1001, plan, testNow)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "planned units")
		assert.Contains(t, err.Error(), "0 is not greater than 0")
	})

	t.Run("should report every missing plan field", func(t *testing.T) {
		o, err := order.NewOrder(validID, 1001, order.Plan{PlannedUnits: 1}, testNow)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "line id")
		assert.Contains(t, err.Error(), "product id")
		assert.Contains(t, err.Error(), "shift")
		assert.Contains(t, err.Error(), "production date")
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore persisted state", func(t *testing.T) {
		id := kernel.NewUUID()

		o, err := order.RestoreOrder(id, 7, validPlan(), 600, order.Completed, testNow, 4)

		require.NoError(t, err)
		assert.Equal(t, 600, o.ProducedUnits())
		assert.Equal(t, order.Completed, o.Status())
		assert.Equal(t, 4, o.Version())
		assert.True(t, o.PlanFulfilled())
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), 7, validPlan(), 0, order.Unknown, testNow, 1)
		require.Error(t, err)
	})

	t.Run("should reject negative produced units", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), 7, validPlan(), -1, order.Pending, testNow, 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "produced units")
	})
}

func TestOrder_Validate(t *testing.T) {
	var nilOrder *order.Order
	assert.ErrorIs(t, nilOrder.Validate(), order.ErrOrderIsNotConstructed)

	var zero order.Order
	assert.ErrorIs(t, zero.Validate(), order.ErrOrderIsNotConstructed)

	assert.NoError(t, newInProgressOrder(t).Validate())
}

func TestOrder_IsEqual(t *testing.T) {
	id := kernel.NewUUID()
	a, _ := order.NewOrder(id, 1, validPlan(), testNow)
	b, _ := order.RestoreOrder(id, 1, validPlan(), 10, order.InProgress, testNow, 3)
	c, _ := order.NewOrder(kernel.NewUUID(), 1, validPlan(), testNow)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
	assert.False(t, a.IsEqual(nil))
}

func TestOrder_Start(t *testing.T) {
	t.Run("should move pending to in progress and stamp updated at", func(t *testing.T) {
		o, _ := order.NewOrder(kernel.NewUUID(), 1001, validPlan(), testNow)
		later := testNow.Add(time.Minute)

		require.NoError(t, o.Start(later))

		assert.Equal(t, order.InProgress, o.Status())
		assert.Equal(t, later, o.UpdatedAt())
	})

	t.Run("should allow resuming in progress", func(t *testing.T) {
		o := newInProgressOrder(t)
		require.NoError(t, o.Start(testNow.Add(time.Hour)))
		assert.Equal(t, order.InProgress, o.Status())
	})

	t.Run("should reject completed and keep state", func(t *testing.T) {
		o := newInProgressOrder(t)
		require.NoError(t, o.Complete(testNow))

		err := o.Start(testNow.Add(time.Hour))

		require.Error(t, err)
		assert.Equal(t, order.Completed, o.Status())
		assert.Equal(t, testNow, o.UpdatedAt())
	})
}

func TestOrder_Reopen(t *testing.T) {
	o := newInProgressOrder(t)
	require.NoError(t, o.RecordProduction(120, testNow))
	require.NoError(t, o.Complete(testNow))

	reopenedAt := testNow.Add(2 * time.Hour)
	require.NoError(t, o.Reopen(reopenedAt))

	assert.Equal(t, order.InProgress, o.Status())
	assert.Equal(t, reopenedAt, o.UpdatedAt())
	assert.Equal(t, 120, o.ProducedUnits(), "reopen keeps produced units")
}

func TestOrder_RecordProduction(t *testing.T) {
	t.Run("should store cumulative units without changing status", func(t *testing.T) {
		o := newInProgressOrder(t)
		at := testNow.Add(30 * time.Minute)

		require.NoError(t, o.RecordProduction(500, at))

		assert.Equal(t, 500, o.ProducedUnits())
		assert.Equal(t, at, o.UpdatedAt())
		assert.Equal(t, order.InProgress, o.Status())
		assert.True(t, o.PlanFulfilled())
	})

	t.Run("should allow exceeding the plan", func(t *testing.T) {
		o := newInProgressOrder(t)
		require.NoError(t, o.RecordProduction(750, testNow))
		assert.Equal(t, order.InProgress, o.Status())
	})

	t.Run("should accept the same value again", func(t *testing.T) {
		o := newInProgressOrder(t)
		require.NoError(t, o.RecordProduction(10, testNow))
		require.NoError(t, o.RecordProduction(10, testNow.Add(time.Second)))
	})

	t.Run("should reject decreasing units", func(t *testing.T) {
		o := newInProgressOrder(t)
		require.NoError(t, o.RecordProduction(100, testNow))

		err := o.RecordProduction(99, testNow.Add(time.Minute))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "99 is less than the 100 units already recorded")
		assert.Equal(t, 100, o.ProducedUnits())
	})

	t.Run("should reject negative units", func(t *testing.T) {
		o := newInProgressOrder(t)
		require.Error(t, o.RecordProduction(-5, testNow))
	})

	t.Run("should require a timestamp", func(t *testing.T) {
		o := newInProgressOrder(t)
		err := o.RecordProduction(5, time.Time{})
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject pending and completed orders", func(t *testing.T) {
		pending, _ := order.NewOrder(kernel.NewUUID(), 1, validPlan(), testNow)
		require.Error(t, pending.RecordProduction(1, testNow))

		completed := newInProgressOrder(t)
		require.NoError(t, completed.Complete(testNow))
		require.Error(t, completed.RecordProduction(1, testNow))
	})
}

func TestOrder_Complete(t *testing.T) {
	t.Run("should complete in progress even below plan", func(t *testing.T) {
		o := newInProgressOrder(t)
		require.NoError(t, o.RecordProduction(10, testNow))

		require.NoError(t, o.Complete(testNow.Add(time.Hour)))

		assert.Equal(t, order.Completed, o.Status())
		assert.False(t, o.PlanFulfilled())
	})

	t.Run("should reject pending", func(t *testing.T) {
		o, _ := order.NewOrder(kernel.NewUUID(), 1, validPlan(), testNow)
		err := o.Complete(testNow)
		require.Error(t, err)
		assert.Equal(t, order.Pending, o.Status())
	})
}

func TestOrder_SyncVersion(t *testing.T) {
	o := newInProgressOrder(t)
	o.SyncVersion(9)
	assert.Equal(t, 9, o.Version())
}
