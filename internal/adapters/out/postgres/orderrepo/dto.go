// Package orderrepo persists production order aggregates with GORM.
// It maps between the order domain aggregate and the production_orders table.
package orderrepo

import (
	"time"

	"brillante/internal/core/domain/model/kernel"
	"brillante/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the production_orders row.
// The schema itself is owned by the goose migrations; the tags document the mapping.
type OrderDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number         int       `gorm:"not null"`
	LineID         uuid.UUID `gorm:"type:uuid;not null"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null"`
	Shift          string    `gorm:"not null"`
	ProductionDate time.Time `gorm:"type:date;not null"`
	PlannedUnits   int       `gorm:"not null"`
	ProducedUnits  int       `gorm:"not null"`
	Status         string    `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime:false;not null"`
	Version        int       `gorm:"not null"`
}

// TableName specifies the database table name for order rows.
func (OrderDTO) TableName() string {
	return "production_orders"
}

// fromDomain converts an order aggregate to its row representation.
func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:             o.ID().Bytes(),
		Number:         o.Number(),
		LineID:         o.LineID().Bytes(),
		ProductID:      o.ProductID().Bytes(),
		Shift:          o.Shift(),
		ProductionDate: o.ProductionDate(),
		PlannedUnits:   o.PlannedUnits(),
		ProducedUnits:  o.ProducedUnits(),
		Status:         o.Status().String(),
		UpdatedAt:      o.UpdatedAt(),
		Version:        o.Version(),
	}
}

// toDomain rebuilds the aggregate from a row using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
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

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	plan := order.Plan{
		LineID:         lineID,
		ProductID:      productID,
		Shift:          dto.Shift,
		ProductionDate: dto.ProductionDate.UTC(),
		PlannedUnits:   dto.PlannedUnits,
	}

	return order.RestoreOrder(id, dto.Number, plan, dto.ProducedUnits, status, dto.UpdatedAt.UTC(), dto.Version)
}
