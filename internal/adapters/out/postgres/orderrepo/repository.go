package orderrepo

import (
	"context"
	"errors"

	"production/internal/adapters/out/postgres/pgerrors"
	"production/internal/core/domain/model/order"
	"production/internal/core/ports"
	"production/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new order. A taken id yields ports.ErrOrderAlreadyExists.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerrors.IsUniqueViolation(err, "orders_pkey") {
			return ports.ErrOrderAlreadyExists
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes every column of an existing order, including zero values.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", dto.ID)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id string) (*order.Order, error) {
	if id == "" {
		return nil, errs.NewValueIsRequiredError("id")
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAwaitingSchedule returns FINALIZED orders in any of departments, by id.
func (r *GormOrderRepository) GetAwaitingSchedule(ctx context.Context, departments []string) ([]*order.Order, error) {
	if len(departments) == 0 {
		return []*order.Order{}, nil
	}

	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Where("status = ? AND current_department IN ?", int(order.Finalized), departments).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// GetActive returns every non-terminal order, by id.
func (r *GormOrderRepository) GetActive(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Where("status NOT IN ?", []int{int(order.Shipped), int(order.Cancelled)}).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}
