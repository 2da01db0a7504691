package queries

import (
	"context"
	"time"

	"brillante/internal/core/domain/model/kernel"
	"brillante/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveSessionsQueryHandler lists live sessions, newest first. Sessions that missed
// their heartbeat window are left out even before the sweep closes them.
type GetActiveSessionsQueryHandler struct {
	db         *gorm.DB
	sessionTTL time.Duration
	clock      ports.Clock
}

// NewGetActiveSessionsQueryHandler creates the handler. A non-positive ttl lists every active row.
func NewGetActiveSessionsQueryHandler(db *gorm.DB, sessionTTL time.Duration, clock ports.Clock) GetActiveSessionsQueryHandler {
	return GetActiveSessionsQueryHandler{db: db, sessionTTL: sessionTTL, clock: clock}
}

// Handle executes the query.
func (h GetActiveSessionsQueryHandler) Handle(
	ctx context.Context,
	query GetActiveSessionsQuery,
) ([]ActiveSessionResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	cutoff := time.Time{}
	if h.sessionTTL > 0 {
		cutoff = h.clock.Now().Add(-h.sessionTTL)
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			operator_id,
			operator_name,
			order_id,
			order_number,
			line_id,
			product_id,
			started_at,
			last_heartbeat_at
		FROM production_sessions
		WHERE active AND last_heartbeat_at >= ?
		ORDER BY started_at DESC
	`, cutoff).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]ActiveSessionResponse, 0)
	for rows.Next() {
		var resp ActiveSessionResponse
		var id, operatorID, orderID, lineID, productID uuid.UUID

		err = rows.Scan(
			&id,
			&operatorID,
			&resp.OperatorName,
			&orderID,
			&resp.OrderNumber,
			&lineID,
			&productID,
			&resp.StartedAt,
			&resp.LastHeartbeatAt,
		)
		if err != nil {
			return nil, err
		}

		for _, pair := range []struct {
			target *kernel.UUID
			raw    uuid.UUID
		}{
			{&resp.SessionID, id},
			{&resp.OperatorID, operatorID},
			{&resp.OrderID, orderID},
			{&resp.LineID, lineID},
			{&resp.ProductID, productID},
		} {
			if *pair.target, err = kernel.UUIDFromBytes(pair.raw[:]); err != nil {
				return nil, err
			}
		}

		resp.StartedAt = toUTC(resp.StartedAt)
		resp.LastHeartbeatAt = toUTC(resp.LastHeartbeatAt)
		sessions = append(sessions, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}
