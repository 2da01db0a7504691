package queries

import (
	"context"
	"database/sql"
	"time"

	"brillante/internal/core/domain/model/kernel"
	"brillante/internal/core/domain/model/order"
	"brillante/internal/core/ports"
	"brillante/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads an order and its newest live session in one round trip.
// A session past its heartbeat window is not reported as the holder.
type GetOrderQueryHandler struct {
	db         *gorm.DB
	sessionTTL time.Duration
	clock      ports.Clock
}

// NewGetOrderQueryHandler creates a handler for single-order reads. A non-positive ttl
// reports any active session as the holder.
func NewGetOrderQueryHandler(db *gorm.DB, sessionTTL time.Duration, clock ports.Clock) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, sessionTTL: sessionTTL, clock: clock}
}

// Handle executes the query. Returns errs.ObjectNotFoundError when the order does not exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	cutoff := time.Time{}
	if h.sessionTTL > 0 {
		cutoff = h.clock.Now().Add(-h.sessionTTL)
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.number,
			o.line_id,
			o.product_id,
			o.shift,
			o.production_date,
			o.planned_units,
			o.produced_units,
			o.status,
			o.updated_at,
			s.id,
			s.operator_id,
			s.operator_name,
			s.started_at,
			s.last_heartbeat_at
		FROM production_orders o
		LEFT JOIN LATERAL (
			SELECT id, operator_id, operator_name, started_at, last_heartbeat_at
			FROM production_sessions
			WHERE order_id = o.id AND active AND last_heartbeat_at >= ?
			ORDER BY started_at DESC
			LIMIT 1
		) s ON TRUE
		WHERE o.id = ?
	`, cutoff, query.OrderID().String()).Rows()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetOrderQueryResponse{}, err
		}
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}

	var (
		id, lineID, productID      uuid.UUID
		resp                       GetOrderQueryResponse
		status                     string
		sessionID, operatorID      uuid.NullUUID
		operatorName               sql.NullString
		startedAt, lastHeartbeatAt sql.NullTime
	)

	err = rows.Scan(
		&id,
		&resp.Number,
		&lineID,
		&productID,
		&resp.Shift,
		&resp.ProductionDate,
		&resp.PlannedUnits,
		&resp.ProducedUnits,
		&status,
		&resp.UpdatedAt,
		&sessionID,
		&operatorID,
		&operatorName,
		&startedAt,
		&lastHeartbeatAt,
	)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.LineID, err = kernel.UUIDFromBytes(lineID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.Status, err = order.ParseStatus(status); err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.PlanFulfilled = resp.ProducedUnits >= resp.PlannedUnits
	resp.UpdatedAt = toUTC(resp.UpdatedAt)

	if sessionID.Valid {
		holder := ActiveSessionResponse{
			OrderID:         resp.ID,
			OrderNumber:     resp.Number,
			LineID:          resp.LineID,
			ProductID:       resp.ProductID,
			OperatorName:    operatorName.String,
			StartedAt:       toUTC(startedAt.Time),
			LastHeartbeatAt: toUTC(lastHeartbeatAt.Time),
		}
		if holder.SessionID, err = kernel.UUIDFromBytes(sessionID.UUID[:]); err != nil {
			return GetOrderQueryResponse{}, err
		}
		if holder.OperatorID, err = kernel.UUIDFromBytes(operatorID.UUID[:]); err != nil {
			return GetOrderQueryResponse{}, err
		}
		resp.Holder = &holder
	}

	return resp, nil
}

// toUTC normalizes driver timestamps so responses do not depend on the session time zone.
func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
