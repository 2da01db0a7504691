package ports

import (
	"context"
	"errors"
	"time"

	"brillante/internal/core/domain/model/kernel"
	"brillante/internal/core/domain/model/session"
)

var (
	// ErrActiveOperatorSessionExists is returned by SessionRepository.Add when the store
	// already holds an active session for the operator.
	ErrActiveOperatorSessionExists = errors.New("operator already has an active session")

	// ErrActiveOrderSessionExists is returned by SessionRepository.Add when the store
	// already holds an active session for the order.
	ErrActiveOrderSessionExists = errors.New("order already has an active session")
)

// SessionRepository defines the persistence contract for active sessions and their history.
//
// The store enforces at most one active session per operator and per order; Add reports a
// violation with ErrActiveOperatorSessionExists or ErrActiveOrderSessionExists.
type SessionRepository interface {
	// Add persists a newly opened session.
	Add(ctx context.Context, aggregate *session.Session) error

	// Update persists heartbeat and close changes.
	Update(ctx context.Context, aggregate *session.Session) error

	// Get retrieves a session by id. Returns errs.ObjectNotFoundError when absent.
	Get(ctx context.Context, id kernel.UUID) (*session.Session, error)

	// GetActiveByOperator returns the operator's active sessions, newest first.
	GetActiveByOperator(ctx context.Context, operatorID kernel.UUID) ([]*session.Session, error)

	// GetActiveByOrder returns the order's active sessions, newest first.
	GetActiveByOrder(ctx context.Context, orderID kernel.UUID) ([]*session.Session, error)

	// GetActiveWithHeartbeatBefore returns active sessions whose last heartbeat is older than cutoff.
	GetActiveWithHeartbeatBefore(ctx context.Context, cutoff time.Time) ([]*session.Session, error)
}
