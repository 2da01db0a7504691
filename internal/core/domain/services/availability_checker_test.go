package services_test

import (
	"errors"
	"testing"
	"time"

	"brillante/internal/core/domain/model/kernel"
	"brillante/internal/core/domain/model/order"
	"brillante/internal/core/domain/model/session"
	"brillante/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTTL = 30 * time.Minute

var testNow = time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)

func newOrder(t *testing.T, number int, status order.Status) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(kernel.NewUUID(), number, order.Plan{
		LineID:         kernel.NewUUID(),
		ProductID:      kernel.NewUUID(),
		Shift:          "A",
		ProductionDate: testNow,
		PlannedUnits:   100,
	}, 0, status, testNow, 1)
	require.NoError(t, err)
	return o
}

func newOperator(t *testing.T, name string) kernel.Operator {
	t.Helper()
	op, err := kernel.NewOperator(kernel.NewUUID(), name)
	require.NoError(t, err)
	return op
}

func openSession(t *testing.T, op kernel.Operator, o *order.Order, at time.Time) *session.Session {
	t.Helper()
	s, err := session.NewSession(kernel.NewUUID(), op, o, at)
	require.NoError(t, err)
	return s
}

func TestAvailabilityChecker_AllowsFreeOrder(t *testing.T) {
	checker := services.NewAvailabilityChecker(testTTL)
	ana := newOperator(t, "ana")

	result := checker.Check(services.AvailabilityInput{
		OperatorID: ana.ID(),
		Order:      newOrder(t, 1001, order.Pending),
		Now:        testNow,
	})

	assert.True(t, result.Available)
	assert.Equal(t, services.ReasonNone, result.Reason)
	assert.NoError(t, result.Err())
}

func TestAvailabilityChecker_SelfResumeAllowed(t *testing.T) {
	checker := services.NewAvailabilityChecker(testTTL)
	ana := newOperator(t, "ana")
	o := newOrder(t, 1001, order.InProgress)
	own := openSession(t, ana, o, testNow)

	result := checker.Check(services.AvailabilityInput{
		OperatorID:       ana.ID(),
		Order:            o,
		OperatorSessions: []*session.Session{own},
		OrderSessions:    []*session.Session{own},
		Now:              testNow.Add(time.Minute),
	})

	assert.True(t, result.Available)
}

func TestAvailabilityChecker_CrossOperatorDenial(t *testing.T) {
	checker := services.NewAvailabilityChecker(testTTL)
	ana := newOperator(t, "ana")
	luis := newOperator(t, "luis")
	o := newOrder(t, 1001, order.InProgress)
	held := openSession(t, ana, o, testNow)

	result := checker.Check(services.AvailabilityInput{
		OperatorID:    luis.ID(),
		Order:         o,
		OrderSessions: []*session.Session{held},
		Now:           testNow.Add(time.Minute),
	})

	require.False(t, result.Available)
	assert.Equal(t, services.ReasonOrderHeldByAnotherOperator, result.Reason)
	assert.Equal(t, "ana", result.ConflictingOperator.Name())
	assert.True(t, result.ConflictingOperator.IsEqual(ana))

	err := result.Err()
	require.ErrorIs(t, err, services.ErrOrderHeldByAnotherOperator)
	var conflict *services.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "ana", conflict.OperatorName)
	assert.Equal(t, 1001, conflict.OrderNumber)
	assert.Contains(t, err.Error(), "ana")
}

func TestAvailabilityChecker_OtherOrderDenial(t *testing.T) {
	checker := services.NewAvailabilityChecker(testTTL)
	ana := newOperator(t, "ana")
	held := newOrder(t, 1001, order.InProgress)
	target := newOrder(t, 1002, order.Pending)
	s := openSession(t, ana, held, testNow)

	result := checker.Check(services.AvailabilityInput{
		OperatorID:       ana.ID(),
		Order:            target,
		OperatorSessions: []*session.Session{s},
		Now:              testNow.Add(time.Minute),
	})

	require.False(t, result.Available)
	assert.Equal(t, services.ReasonOperatorHasOtherActiveOrder, result.Reason)
	assert.Equal(t, 1001, result.ConflictingOrderNumber)
	assert.True(t, result.ConflictingOrderID.IsEqual(held.ID()))

	err := result.Err()
	require.ErrorIs(t, err, services.ErrOperatorHasOtherActiveOrder)
	assert.Contains(t, err.Error(), "#1001")
}

func TestAvailabilityChecker_OperatorCheckWinsOverOrderCheck(t *testing.T) {
	checker := services.NewAvailabilityChecker(testTTL)
	ana := newOperator(t, "ana")
	luis := newOperator(t, "luis")
	other := newOrder(t, 1001, order.InProgress)
	target := newOrder(t, 1002, order.InProgress)

	result := checker.Check(services.AvailabilityInput{
		OperatorID:       luis.ID(),
		Order:            target,
		OperatorSessions: []*session.Session{openSession(t, luis, other, testNow)},
		OrderSessions:    []*session.Session{openSession(t, ana, target, testNow)},
		Now:              testNow,
	})

	assert.Equal(t, services.ReasonOperatorHasOtherActiveOrder, result.Reason)
}

func TestAvailabilityChecker_OrderCheckOnlyWhenInProgress(t *testing.T) {
	checker := services.NewAvailabilityChecker(testTTL)
	ana := newOperator(t, "ana")
	luis := newOperator(t, "luis")

	for _, status := range []order.Status{order.Pending, order.Completed} {
		t.Run(status.String(), func(t *testing.T) {
			o := newOrder(t, 1001, status)

			result := checker.Check(services.AvailabilityInput{
				OperatorID:    luis.ID(),
				Order:         o,
				OrderSessions: []*session.Session{openSession(t, ana, o, testNow)},
				Now:           testNow,
			})

			assert.True(t, result.Available)
		})
	}
}

func TestAvailabilityChecker_IgnoresStaleSessions(t *testing.T) {
	checker := services.NewAvailabilityChecker(testTTL)
	ana := newOperator(t, "ana")
	luis := newOperator(t, "luis")
	o := newOrder(t, 1001, order.InProgress)
	other := newOrder(t, 1002, order.InProgress)
	later := testNow.Add(testTTL + time.Second)

	t.Run("expired holder does not block the order", func(t *testing.T) {
		result := checker.Check(services.AvailabilityInput{
			OperatorID:    luis.ID(),
			Order:         o,
			OrderSessions: []*session.Session{openSession(t, ana, o, testNow)},
			Now:           later,
		})
		assert.True(t, result.Available)
	})

	t.Run("expired session on another order does not block the operator", func(t *testing.T) {
		result := checker.Check(services.AvailabilityInput{
			OperatorID:       ana.ID(),
			Order:            o,
			OperatorSessions: []*session.Session{openSession(t, ana, other, testNow)},
			Now:              later,
		})
		assert.True(t, result.Available)
	})

	t.Run("closed sessions never block", func(t *testing.T) {
		s := openSession(t, ana, o, testNow)
		require.NoError(t, s.Close(testNow, session.ReasonReleased))

		result := checker.Check(services.AvailabilityInput{
			OperatorID:    luis.ID(),
			Order:         o,
			OrderSessions: []*session.Session{s},
			Now:           testNow,
		})
		assert.True(t, result.Available)
	})

	t.Run("zero ttl keeps abandoned sessions blocking", func(t *testing.T) {
		noExpiry := services.NewAvailabilityChecker(0)
		result := noExpiry.Check(services.AvailabilityInput{
			OperatorID:    luis.ID(),
			Order:         o,
			OrderSessions: []*session.Session{openSession(t, ana, o, testNow)},
			Now:           testNow.Add(72 * time.Hour),
		})
		assert.False(t, result.Available)
	})
}

func TestAvailabilityChecker_DuplicateOrderSessionsNewestWins(t *testing.T) {
	checker := services.NewAvailabilityChecker(testTTL)
	ana := newOperator(t, "ana")
	luis := newOperator(t, "luis")
	o := newOrder(t, 1001, order.InProgress)
	older := openSession(t, luis, o, testNow)
	newer := openSession(t, ana, o, testNow.Add(5*time.Minute))

	input := services.AvailabilityInput{
		Order:         o,
		OrderSessions: []*session.Session{older, newer},
		Now:           testNow.Add(10 * time.Minute),
	}

	input.OperatorID = ana.ID()
	assert.True(t, checker.Check(input).Available, "newest holder may resume")

	input.OperatorID = luis.ID()
	result := checker.Check(input)
	assert.False(t, result.Available)
	assert.Equal(t, "ana", result.ConflictingOperator.Name())
}

func TestAvailabilityChecker_IsStale(t *testing.T) {
	checker := services.NewAvailabilityChecker(testTTL)
	s := openSession(t, newOperator(t, "ana"), newOrder(t, 1, order.InProgress), testNow)

	assert.False(t, checker.IsStale(s, testNow))
	assert.True(t, checker.IsStale(s, testNow.Add(time.Hour)))
	assert.Equal(t, testTTL, checker.SessionTTL())
}

func TestConflictError_Message(t *testing.T) {
	raced := &services.ConflictError{Kind: services.ErrOperatorHasOtherActiveOrder}
	require.ErrorIs(t, raced, services.ErrOperatorHasOtherActiveOrder)
	assert.Equal(t,
		"operator has another active order: another order was started at the same time, retry to see which one",
		raced.Error(),
	)

	known := &services.ConflictError{Kind: services.ErrOperatorHasOtherActiveOrder, OrderNumber: 1001}
	assert.Equal(t, "operator has another active order: close order #1001 before starting another one", known.Error())

	anonymous := &services.ConflictError{Kind: services.ErrOrderHeldByAnotherOperator}
	assert.Equal(t, "order is held by another operator", anonymous.Error())
}
