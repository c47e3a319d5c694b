package fixturerepo

import (
	"context"
	"errors"

	"production/internal/core/domain/model/fixture"
	"production/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormFixtureRepository implements ports.FixtureRepository using GORM.
type GormFixtureRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

func NewGormFixtureRepository(db *gorm.DB, tracker aggregateTracker) *GormFixtureRepository {
	return &GormFixtureRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormFixtureRepository) Add(ctx context.Context, aggregate *fixture.Fixture) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update overwrites every column, so disabling a fixture or zeroing its
// capacity is persisted.
func (r *GormFixtureRepository) Update(ctx context.Context, aggregate *fixture.Fixture) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&FixtureDTO{}).
		Where("id = ?", dto.ID).
		Select("name", "compatible_models", "enabled", "daily_capacity").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("fixture", dto.ID)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormFixtureRepository) Get(ctx context.Context, id string) (*fixture.Fixture, error) {
	if id == "" {
		return nil, errs.NewValueIsRequiredError("id")
	}

	var dto FixtureDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("fixture", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormFixtureRepository) GetAll(ctx context.Context) ([]*fixture.Fixture, error) {
	var dtos []FixtureDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	fixtures := make([]*fixture.Fixture, 0, len(dtos))
	for _, dto := range dtos {
		f, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		fixtures = append(fixtures, f)
	}

	return fixtures, nil
}
