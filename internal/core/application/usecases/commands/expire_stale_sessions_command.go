package commands

import (
	"errors"

	"brillante/internal/pkg/guard"
)

var ErrExpireStaleSessionsCommandIsNotConstructed = errors.New(
	"ExpireStaleSessionsCommand must be created via NewExpireStaleSessionsCommand constructor",
)

// ExpireStaleSessionsCommand closes every active session that missed its heartbeat window.
// It is issued by the sweep job.
type ExpireStaleSessionsCommand struct {
	guard guard.ConstructorGuard
}

// NewExpireStaleSessionsCommand creates the parameterless sweep command.
func NewExpireStaleSessionsCommand() ExpireStaleSessionsCommand {
	return ExpireStaleSessionsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c ExpireStaleSessionsCommand) Validate() error {
	return c.guard.Validate(ErrExpireStaleSessionsCommandIsNotConstructed)
}
