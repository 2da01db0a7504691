package commands

import (
	"errors"

	"brillante/internal/core/domain/model/kernel"
	"brillante/internal/core/domain/model/session"
	"brillante/internal/pkg/errs"
	"brillante/internal/pkg/guard"
)

var ErrCloseSessionCommandIsNotConstructed = errors.New(
	"CloseSessionCommand must be created via NewCloseSessionCommand or NewCloseOrderSessionsCommand constructor",
)

// CloseSessionCommand deactivates sessions either by session id or by order id.
//
// Example:
//
//	// operator leaves their station
//	cmd, _ := NewCloseSessionCommand(sessionID, operatorID, session.ReasonReleased)
//
//	// administrative release of whatever holds an order
//	cmd, _ := NewCloseOrderSessionsCommand(orderID, session.ReasonReleased)
type CloseSessionCommand struct { //nolint:recvcheck //using for validation
	sessionID  kernel.UUID
	orderID    kernel.UUID
	operatorID kernel.UUID
	reason     session.CloseReason

	guard guard.ConstructorGuard
}

// NewCloseSessionCommand targets one session. The operator must own it.
func NewCloseSessionCommand(
	sessionID kernel.UUID,
	operatorID kernel.UUID,
	reason session.CloseReason,
) (CloseSessionCommand, error) {
	cmd := CloseSessionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requiredID("session id", sessionID, &cmd.sessionID),
		requiredID("operator id", operatorID, &cmd.operatorID),
		cmd.setReason(reason),
	); err != nil {
		return CloseSessionCommand{}, err
	}

	return cmd, nil
}

// NewCloseOrderSessionsCommand targets every active session of an order.
func NewCloseOrderSessionsCommand(orderID kernel.UUID, reason session.CloseReason) (CloseSessionCommand, error) {
	cmd := CloseSessionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requiredID("order id", orderID, &cmd.orderID),
		cmd.setReason(reason),
	); err != nil {
		return CloseSessionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through a constructor.
func (c CloseSessionCommand) Validate() error {
	return c.guard.Validate(ErrCloseSessionCommandIsNotConstructed)
}

// SessionID returns the targeted session, zero when targeting an order.
func (c CloseSessionCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// OrderID returns the targeted order, zero when targeting a session.
func (c CloseSessionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OperatorID returns the requesting operator, zero for order-wide closes.
func (c CloseSessionCommand) OperatorID() kernel.UUID {
	return c.operatorID
}

// Reason returns the close reason recorded on the sessions.
func (c CloseSessionCommand) Reason() session.CloseReason {
	return c.reason
}

// BySession reports whether the command targets a single session.
func (c CloseSessionCommand) BySession() bool {
	return c.sessionID.Validate() == nil
}

func (c *CloseSessionCommand) setReason(reason session.CloseReason) error {
	if err := reason.Validate(); err != nil {
		return err
	}
	c.reason = reason
	return nil
}

func requiredID(paramName string, id kernel.UUID, target *kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(paramName, err)
	}
	*target = id
	return nil
}
