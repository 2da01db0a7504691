package commands

import (
	"errors"

	"brillante/internal/core/domain/model/kernel"
	"brillante/internal/pkg/guard"
)

var ErrHeartbeatSessionCommandIsNotConstructed = errors.New(
	"HeartbeatSessionCommand must be created via NewHeartbeatSessionCommand constructor",
)

// HeartbeatSessionCommand extends the lease of an operator's session.
type HeartbeatSessionCommand struct { //nolint:recvcheck //using for validation
	sessionID  kernel.UUID
	operatorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewHeartbeatSessionCommand validates both ids.
func NewHeartbeatSessionCommand(sessionID kernel.UUID, operatorID kernel.UUID) (HeartbeatSessionCommand, error) {
	cmd := HeartbeatSessionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requiredID("session id", sessionID, &cmd.sessionID),
		requiredID("operator id", operatorID, &cmd.operatorID),
	); err != nil {
		return HeartbeatSessionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c HeartbeatSessionCommand) Validate() error {
	return c.guard.Validate(ErrHeartbeatSessionCommandIsNotConstructed)
}

// SessionID returns the session to extend.
func (c HeartbeatSessionCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// OperatorID returns the requesting operator.
func (c HeartbeatSessionCommand) OperatorID() kernel.UUID {
	return c.operatorID
}
