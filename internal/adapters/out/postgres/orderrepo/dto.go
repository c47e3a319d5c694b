// Package orderrepo persists order aggregates with GORM.
package orderrepo

import (
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"

	"github.com/aarondl/null/v8"
)

// OrderDTO is the row shape of the orders table.
type OrderDTO struct {
	ID                  string      `gorm:"type:varchar(32);primaryKey"`
	ExternalOrderNumber null.String `gorm:"type:varchar(32)"`
	OrderDate           time.Time   `gorm:"type:date"`
	DueDate             null.Time   `gorm:"type:date"`
	StockModelID        null.String `gorm:"type:text"`
	CurrentDepartment   string      `gorm:"type:text"`
	DepartmentEnteredAt time.Time   `gorm:"type:date"`
	PriorityScore       int
	Status              int `gorm:"type:smallint"`
	NeedsAdjustment     bool
	PriorityEscalated   bool
	CreatedAt           time.Time `gorm:"autoCreateTime"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:                  o.ID(),
		ExternalOrderNumber: optionalString(o.ExternalOrderNumber()),
		OrderDate:           o.OrderDate().Time(),
		StockModelID:        optionalString(o.StockModelID()),
		CurrentDepartment:   o.CurrentDepartment(),
		DepartmentEnteredAt: o.DepartmentEnteredAt().Time(),
		PriorityScore:       o.PriorityScore(),
		Status:              int(o.Status()),
		NeedsAdjustment:     o.NeedsAdjustment(),
		PriorityEscalated:   o.PriorityEscalated(),
	}
	if due, ok := o.DueDate(); ok {
		dto.DueDate = null.TimeFrom(due.Time())
	}
	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	var due kernel.Date
	if dto.DueDate.Valid {
		due = kernel.DateOf(dto.DueDate.Time)
	}

	return order.RestoreOrder(
		dto.ID,
		kernel.DateOf(dto.OrderDate),
		dto.CurrentDepartment,
		kernel.DateOf(dto.DepartmentEnteredAt),
		order.Status(dto.Status),
		dto.PriorityEscalated,
		order.Details{
			ExternalOrderNumber: dto.ExternalOrderNumber.String,
			DueDate:             due,
			StockModelID:        dto.StockModelID.String,
			PriorityScore:       dto.PriorityScore,
			NeedsAdjustment:     dto.NeedsAdjustment,
		},
	)
}

func toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func optionalString(s string) null.String {
	return null.NewString(s, s != "")
}
