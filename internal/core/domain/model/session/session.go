// Package session models the active session that ties one operator to one production order.
//
// A session row doubles as production history: closing never deletes it, it only clears
// the active flag and stamps the end time and reason. Two invariants are enforced by the
// persistence layer and the application commands, not by this package:
//   - at most one active session per operator
//   - at most one active session per order
package session

import (
	"errors"
	"time"

	"brillante/internal/core/domain/model/kernel"
	"brillante/internal/core/domain/model/order"
	"brillante/internal/pkg/errs"
	"brillante/internal/pkg/guard"
)

var (
	// ErrSessionIsNotConstructed is returned when a Session was not created via NewSession or RestoreSession.
	ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession constructor")
	// ErrSessionIsClosed is returned when acting on a session that is no longer active.
	ErrSessionIsClosed = errors.New("session is closed")
)

// Session is the aggregate root for an operator working an order.
type Session struct {
	id              kernel.UUID
	operator        kernel.Operator
	orderID         kernel.UUID
	orderNumber     int
	lineID          kernel.UUID
	productID       kernel.UUID
	startedAt       time.Time
	endedAt         *time.Time
	lastHeartbeatAt time.Time
	active          bool
	closeReason     CloseReason

	guard guard.ConstructorGuard
}

// NewSession opens an active session for the operator on the order. Line and product
// are copied from the order so history stays readable after the order is re-planned.
func NewSession(id kernel.UUID, operator kernel.Operator, o *order.Order, now time.Time) (*Session, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if now.IsZero() {
		return nil, errs.NewValueIsRequiredError("session start time")
	}

	return RestoreSession(
		id,
		operator,
		o.ID(),
		o.Number(),
		o.LineID(),
		o.ProductID(),
		now,
		nil,
		now,
		true,
		ReasonNone,
	)
}

// RestoreSession rebuilds a session from persistence.
func RestoreSession(
	id kernel.UUID,
	operator kernel.Operator,
	orderID kernel.UUID,
	orderNumber int,
	lineID kernel.UUID,
	productID kernel.UUID,
	startedAt time.Time,
	endedAt *time.Time,
	lastHeartbeatAt time.Time,
	active bool,
	closeReason CloseReason,
) (*Session, error) {
	var errList []error
	if err := id.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := operator.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := orderID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("order id", err))
	}
	if active && endedAt != nil {
		errList = append(errList, errs.NewValueIsInvalidError("an active session cannot have an end time"))
	}
	if !active {
		if err := closeReason.Validate(); err != nil {
			errList = append(errList, err)
		}
	}
	if len(errList) > 0 {
		return nil, errors.Join(errList...)
	}

	return &Session{
		id:              id,
		operator:        operator,
		orderID:         orderID,
		orderNumber:     orderNumber,
		lineID:          lineID,
		productID:       productID,
		startedAt:       startedAt,
		endedAt:         endedAt,
		lastHeartbeatAt: lastHeartbeatAt,
		active:          active,
		closeReason:     closeReason,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Session instance was properly constructed.
func (s *Session) Validate() error {
	if s == nil {
		return ErrSessionIsNotConstructed
	}
	return s.guard.Validate(ErrSessionIsNotConstructed)
}

// ID returns the session identifier.
func (s *Session) ID() kernel.UUID { return s.id }

// Operator returns the operator holding the session.
func (s *Session) Operator() kernel.Operator { return s.operator }

// OrderID returns the order being worked.
func (s *Session) OrderID() kernel.UUID { return s.orderID }

// OrderNumber returns the human-facing number of the order being worked.
func (s *Session) OrderNumber() int { return s.orderNumber }

// LineID returns the production line copied from the order at open time.
func (s *Session) LineID() kernel.UUID { return s.lineID }

// ProductID returns the product copied from the order at open time.
func (s *Session) ProductID() kernel.UUID { return s.productID }

// StartedAt returns when the session was opened.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// EndedAt returns when the session was closed, nil while active.
func (s *Session) EndedAt() *time.Time { return s.endedAt }

// LastHeartbeatAt returns the last sign of life from the operator's client.
func (s *Session) LastHeartbeatAt() time.Time { return s.lastHeartbeatAt }

// IsActive reports whether the session still holds its order.
func (s *Session) IsActive() bool { return s.active }

// CloseReason returns why the session was closed, ReasonNone while active.
func (s *Session) CloseReason() CloseReason { return s.closeReason }

// IsHeldBy reports whether the session belongs to the operator.
func (s *Session) IsHeldBy(operatorID kernel.UUID) bool {
	return s.operator.ID().IsEqual(operatorID)
}

// IsForOrder reports whether the session is on the order.
func (s *Session) IsForOrder(orderID kernel.UUID) bool {
	return s.orderID.IsEqual(orderID)
}

// IsExpired reports whether an active session missed its heartbeat window.
// A non-positive ttl disables expiry.
func (s *Session) IsExpired(now time.Time, ttl time.Duration) bool {
	if !s.active || ttl <= 0 {
		return false
	}
	return now.Sub(s.lastHeartbeatAt) > ttl
}

// Heartbeat extends the session's lease.
func (s *Session) Heartbeat(now time.Time) error {
	if !s.active {
		return ErrSessionIsClosed
	}
	if now.After(s.lastHeartbeatAt) {
		s.lastHeartbeatAt = now
	}
	return nil
}

// Close deactivates the session. The row is kept as production history.
func (s *Session) Close(now time.Time, reason CloseReason) error {
	if !s.active {
		return ErrSessionIsClosed
	}
	if err := reason.Validate(); err != nil {
		return err
	}

	endedAt := now
	s.endedAt = &endedAt
	s.active = false
	s.closeReason = reason
	return nil
}
