package assignmentrepo

import (
	"context"
	"errors"
	"fmt"

	"production/internal/adapters/out/postgres/pgerrors"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/schedule"
	"production/internal/core/domain/services"
	"production/internal/core/ports"
	"production/internal/pkg/errs"

	"gorm.io/gorm"
)

const orderUniqueIndex = "schedule_assignments_order_uidx"

// lockEpoch turns a date into the second advisory lock key.
var lockEpoch = kernel.NewDate(2000, 1, 1)

// GormAssignmentRepository implements ports.AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

func NewGormAssignmentRepository(db *gorm.DB, tracker aggregateTracker) *GormAssignmentRepository {
	return &GormAssignmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// AddWithinCapacity takes pg_advisory_xact_lock on the slot, recounts it and
// inserts. The lock is released with the surrounding transaction, so callers
// must run it inside one for the recount to mean anything.
func (r *GormAssignmentRepository) AddWithinCapacity(ctx context.Context, a *schedule.Assignment, capacity int) error {
	if err := a.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	if err := db.Exec(
		"SELECT pg_advisory_xact_lock(hashtext(?), ?)",
		a.FixtureID(), int32(lockEpoch.DaysUntil(a.Date())),
	).Error; err != nil {
		return fmt.Errorf("lock slot %s/%s: %w", a.FixtureID(), a.Date(), err)
	}

	var taken int64
	if err := db.Model(&AssignmentDTO{}).
		Where("fixture_id = ? AND scheduled_date = ?", a.FixtureID(), a.Date().Time()).
		Count(&taken).Error; err != nil {
		return err
	}
	if taken >= int64(capacity) {
		return fmt.Errorf("%w: %s on %s", services.ErrFixtureDayFull, a.FixtureID(), a.Date())
	}

	dto := fromDomain(a)
	if err := db.Create(&dto).Error; err != nil {
		if pgerrors.IsUniqueViolation(err, orderUniqueIndex) {
			return fmt.Errorf("%w: %s", ports.ErrOrderAlreadyAssigned, a.OrderID())
		}
		return err
	}

	r.tracker.TrackAggregate(a.ID().String(), a)
	return nil
}

func (r *GormAssignmentRepository) Remove(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&AssignmentDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("assignment", id.String())
	}

	return nil
}

func (r *GormAssignmentRepository) GetByOrder(ctx context.Context, orderID string) (*schedule.Assignment, error) {
	var dto AssignmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment", orderID)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormAssignmentRepository) GetFrom(ctx context.Context, from kernel.Date) ([]*schedule.Assignment, error) {
	var dtos []AssignmentDTO
	if err := r.db.WithContext(ctx).
		Where("scheduled_date >= ?", from.Time()).
		Order("scheduled_date, fixture_id, order_id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

func (r *GormAssignmentRepository) GetAll(ctx context.Context) ([]*schedule.Assignment, error) {
	var dtos []AssignmentDTO
	if err := r.db.WithContext(ctx).
		Order("scheduled_date, fixture_id, order_id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}
