package queries

import (
	"errors"
	"time"

	"brillante/internal/core/domain/model/kernel"
	"brillante/internal/pkg/guard"
)

var ErrGetActiveSessionsQueryIsNotConstructed = errors.New(
	"GetActiveSessionsQuery must be created via NewGetActiveSessionsQuery constructor",
)

// GetActiveSessionsQuery lists who is working what right now, for the floor overview.
type GetActiveSessionsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveSessionsQuery creates the parameterless query.
func NewGetActiveSessionsQuery() GetActiveSessionsQuery {
	return GetActiveSessionsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveSessionsQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveSessionsQueryIsNotConstructed)
}

// ActiveSessionResponse is the read model of an active session.
type ActiveSessionResponse struct {
	SessionID       kernel.UUID
	OperatorID      kernel.UUID
	OperatorName    string
	OrderID         kernel.UUID
	OrderNumber     int
	LineID          kernel.UUID
	ProductID       kernel.UUID
	StartedAt       time.Time
	LastHeartbeatAt time.Time
}
