// Package sessionrepo persists operator sessions (production history) with GORM.
package sessionrepo

import (
	"time"

	"brillante/internal/core/domain/model/kernel"
	"brillante/internal/core/domain/model/session"

	"github.com/google/uuid"
)

// SessionDTO represents the production_sessions row.
type SessionDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OperatorID      uuid.UUID  `gorm:"type:uuid;not null"`
	OperatorName    string     `gorm:"not null"`
	OrderID         uuid.UUID  `gorm:"type:uuid;not null"`
	OrderNumber     int        `gorm:"not null"`
	LineID          uuid.UUID  `gorm:"type:uuid;not null"`
	ProductID       uuid.UUID  `gorm:"type:uuid;not null"`
	StartedAt       time.Time  `gorm:"not null"`
	EndedAt         *time.Time
	LastHeartbeatAt time.Time `gorm:"not null"`
	Active          bool      `gorm:"not null"`
	CloseReason     string    `gorm:"not null"`
}

// TableName specifies the database table name for session rows.
func (SessionDTO) TableName() string {
	return "production_sessions"
}

func fromDomain(s *session.Session) SessionDTO {
	return SessionDTO{
		ID:              s.ID().Bytes(),
		OperatorID:      s.Operator().ID().Bytes(),
		OperatorName:    s.Operator().Name(),
		OrderID:         s.OrderID().Bytes(),
		OrderNumber:     s.OrderNumber(),
		LineID:          s.LineID().Bytes(),
		ProductID:       s.ProductID().Bytes(),
		StartedAt:       s.StartedAt(),
		EndedAt:         s.EndedAt(),
		LastHeartbeatAt: s.LastHeartbeatAt(),
		Active:          s.IsActive(),
		CloseReason:     s.CloseReason().String(),
	}
}

func toDomain(dto SessionDTO) (*session.Session, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	operatorID, err := kernel.UUIDFromBytes(dto.OperatorID[:])
	if err != nil {
		return nil, err
	}

	operator, err := kernel.NewOperator(operatorID, dto.OperatorName)
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	lineID, err := kernel.UUIDFromBytes(dto.LineID[:])
	if err != nil {
		return nil, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	var endedAt *time.Time
	if dto.EndedAt != nil {
		t := dto.EndedAt.UTC()
		endedAt = &t
	}

	return session.RestoreSession(
		id,
		operator,
		orderID,
		dto.OrderNumber,
		lineID,
		productID,
		dto.StartedAt.UTC(),
		endedAt,
		dto.LastHeartbeatAt.UTC(),
		dto.Active,
		session.CloseReason(dto.CloseReason),
	)
}
