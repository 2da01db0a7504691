package commands

import (
	"errors"
	"fmt"

	"brillante/internal/core/domain/services"
	"brillante/internal/core/ports"
)

var (
	// ErrSessionWriteFailure means the session could not be persisted and nothing was
	// committed. The request is safe to retry.
	ErrSessionWriteFailure = errors.New("session write failed, retry the request")
	// ErrSessionExpired is returned when a heartbeat arrives for a session past its TTL
	// or one the sweeper already closed.
	ErrSessionExpired = errors.New("session has expired")
	// ErrSessionNotOwned is returned when an operator acts on someone else's session.
	ErrSessionNotOwned = errors.New("session belongs to another operator")
)

// sessionWriteError maps a session repository failure onto the error callers act on.
// Exclusivity violations caught by the store become the same conflicts the
// availability checker reports.
func sessionWriteError(err error, conflict *services.ConflictError) error {
	switch {
	case errors.Is(err, ports.ErrActiveOperatorSessionExists):
		return &services.ConflictError{Kind: services.ErrOperatorHasOtherActiveOrder}
	case errors.Is(err, ports.ErrActiveOrderSessionExists):
		if conflict != nil {
			return conflict
		}
		return &services.ConflictError{Kind: services.ErrOrderHeldByAnotherOperator}
	default:
		return fmt.Errorf("%w: %w", ErrSessionWriteFailure, err)
	}
}
