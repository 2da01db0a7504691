package sessionrepo

import (
	"context"
	"errors"
	"time"

	"brillante/internal/adapters/out/postgres/pgerr"
	"brillante/internal/core/domain/model/kernel"
	"brillante/internal/core/domain/model/session"
	"brillante/internal/core/ports"
	"brillante/internal/pkg/errs"

	"gorm.io/gorm"
)

// Partial unique indexes enforcing one active session per operator and per order.
const (
	ActiveOperatorConstraint = "ux_sessions_active_operator"
	ActiveOrderConstraint    = "ux_sessions_active_order"
)

// GormSessionRepository implements ports.SessionRepository using GORM.
type GormSessionRepository struct {
	db *gorm.DB
}

// NewGormSessionRepository creates a new GORM session repository bound to db.
func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

// Add saves a newly opened session. Violations of the active-session indexes are
// reported as ports.ErrActiveOperatorSessionExists or ports.ErrActiveOrderSessionExists.
func (r *GormSessionRepository) Add(ctx context.Context, aggregate *session.Session) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return translate(err)
	}
	return nil
}

// Update saves heartbeat and close changes.
func (r *GormSessionRepository) Update(ctx context.Context, aggregate *session.Session) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&SessionDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"ended_at":          dto.EndedAt,
			"last_heartbeat_at": dto.LastHeartbeatAt,
			"active":            dto.Active,
			"close_reason":      dto.CloseReason,
		})
	if result.Error != nil {
		return translate(result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("session", aggregate.ID().String())
	}
	return nil
}

// Get retrieves a session by ID.
func (r *GormSessionRepository) Get(ctx context.Context, id kernel.UUID) (*session.Session, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SessionDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("session", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveByOperator returns the operator's active sessions, newest first.
func (r *GormSessionRepository) GetActiveByOperator(ctx context.Context, operatorID kernel.UUID) ([]*session.Session, error) {
	if err := operatorID.Validate(); err != nil {
		return nil, err
	}
	return r.find(ctx, "operator_id = ? AND active", operatorID.Bytes())
}

// GetActiveByOrder returns the order's active sessions, newest first.
func (r *GormSessionRepository) GetActiveByOrder(ctx context.Context, orderID kernel.UUID) ([]*session.Session, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	return r.find(ctx, "order_id = ? AND active", orderID.Bytes())
}

// GetActiveWithHeartbeatBefore returns active sessions whose last heartbeat is older than cutoff.
func (r *GormSessionRepository) GetActiveWithHeartbeatBefore(ctx context.Context, cutoff time.Time) ([]*session.Session, error) {
	return r.find(ctx, "active AND last_heartbeat_at < ?", cutoff)
}

func (r *GormSessionRepository) find(ctx context.Context, query string, args ...any) ([]*session.Session, error) {
	var dtos []SessionDTO
	if err := r.db.WithContext(ctx).Where(query, args...).Order("started_at DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	sessions := make([]*session.Session, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}

	return sessions, nil
}

func translate(err error) error {
	constraint, ok := pgerr.UniqueConstraint(err)
	if !ok {
		return err
	}

	switch constraint {
	case ActiveOperatorConstraint:
		return ports.ErrActiveOperatorSessionExists
	case ActiveOrderConstraint:
		return ports.ErrActiveOrderSessionExists
	default:
		return err
	}
}
