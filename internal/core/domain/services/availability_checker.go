package services

import (
	"sort"
	"time"

	"brillante/internal/core/domain/model/kernel"
	"brillante/internal/core/domain/model/order"
	"brillante/internal/core/domain/model/session"
)

// Reason explains a denied Availability.
type Reason string

const (
	// ReasonNone is set on allowed results.
	ReasonNone Reason = ""
	// ReasonOperatorHasOtherActiveOrder: the operator holds a different order.
	ReasonOperatorHasOtherActiveOrder Reason = "operator_has_other_active_order"
	// ReasonOrderHeldByAnotherOperator: the order is in progress under someone else.
	ReasonOrderHeldByAnotherOperator Reason = "order_held_by_another_operator"
)

// AvailabilityInput is everything the checker needs to answer for one operator and order.
// OperatorSessions and OrderSessions are the active sessions currently stored for the
// operator and for the order; the checker filters out the ones past their TTL.
type AvailabilityInput struct {
	OperatorID       kernel.UUID
	Order            *order.Order
	OperatorSessions []*session.Session
	OrderSessions    []*session.Session
	Now              time.Time
}

// Availability is the checker's answer. Conflicting fields are set only on denial.
type Availability struct {
	Available              bool
	Reason                 Reason
	ConflictingOrderID     kernel.UUID
	ConflictingOrderNumber int
	ConflictingOperator    kernel.Operator
}

// Err converts a denial into a *ConflictError. It returns nil when available.
func (a Availability) Err() error {
	switch a.Reason {
	case ReasonOperatorHasOtherActiveOrder:
		return &ConflictError{
			Kind:        ErrOperatorHasOtherActiveOrder,
			OrderID:     a.ConflictingOrderID,
			OrderNumber: a.ConflictingOrderNumber,
		}
	case ReasonOrderHeldByAnotherOperator:
		return &ConflictError{
			Kind:         ErrOrderHeldByAnotherOperator,
			OrderID:      a.ConflictingOrderID,
			OrderNumber:  a.ConflictingOrderNumber,
			OperatorID:   a.ConflictingOperator.ID(),
			OperatorName: a.ConflictingOperator.Name(),
		}
	default:
		return nil
	}
}

// AvailabilityChecker answers "can operator O act on order X right now?".
//
// Checks run in order and the first failure wins:
//  1. the operator holds a live session on a different order: deny with that order
//  2. the order is in progress and its newest live session belongs to someone else:
//     deny with that operator
//  3. otherwise allow, including an operator resuming their own session
//
// Sessions whose last heartbeat is older than the TTL are ignored. A missing order is the
// caller's concern; Check expects a constructed order.
type AvailabilityChecker struct {
	sessionTTL time.Duration
}

// NewAvailabilityChecker creates a checker. A non-positive ttl disables expiry.
func NewAvailabilityChecker(sessionTTL time.Duration) AvailabilityChecker {
	return AvailabilityChecker{sessionTTL: sessionTTL}
}

// SessionTTL returns the heartbeat window sessions are judged against.
func (c AvailabilityChecker) SessionTTL() time.Duration {
	return c.sessionTTL
}

// Check evaluates the rules above without mutating anything.
func (c AvailabilityChecker) Check(in AvailabilityInput) Availability {
	for _, s := range c.live(in.OperatorSessions, in.Now) {
		if !s.IsHeldBy(in.OperatorID) || s.IsForOrder(in.Order.ID()) {
			continue
		}
		return Availability{
			Reason:                 ReasonOperatorHasOtherActiveOrder,
			ConflictingOrderID:     s.OrderID(),
			ConflictingOrderNumber: s.OrderNumber(),
		}
	}

	if in.Order.Status() == order.InProgress {
		orderSessions := c.live(in.OrderSessions, in.Now)
		if len(orderSessions) > 0 {
			holder := orderSessions[0]
			if holder.IsForOrder(in.Order.ID()) && !holder.IsHeldBy(in.OperatorID) {
				return Availability{
					Reason:                 ReasonOrderHeldByAnotherOperator,
					ConflictingOrderID:     in.Order.ID(),
					ConflictingOrderNumber: in.Order.Number(),
					ConflictingOperator:    holder.Operator(),
				}
			}
		}
	}

	return Availability{Available: true}
}

// IsStale reports whether the session should no longer block anyone.
func (c AvailabilityChecker) IsStale(s *session.Session, now time.Time) bool {
	return !s.IsActive() || s.IsExpired(now, c.sessionTTL)
}

// live returns active, unexpired sessions, newest first.
func (c AvailabilityChecker) live(sessions []*session.Session, now time.Time) []*session.Session {
	result := make([]*session.Session, 0, len(sessions))
	for _, s := range sessions {
		if s == nil || c.IsStale(s, now) {
			continue
		}
		result = append(result, s)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].StartedAt().After(result[j].StartedAt())
	})
	return result
}
