// Package sequencerepo stores identifier sequence state, one row per scheme
// key, read under SELECT ... FOR UPDATE.
package sequencerepo

import (
	"context"
	"time"

	"production/internal/core/domain/model/identifier"
	"production/internal/pkg/errs"

	"github.com/aarondl/null/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SequenceDTO struct {
	Key          string      `gorm:"type:varchar(64);primaryKey"`
	LastIssuedID null.String `gorm:"type:varchar(32)"`
	LastSequence null.Int    `gorm:"type:integer"`
	UpdatedAt    time.Time   `gorm:"autoUpdateTime"`
}

func (SequenceDTO) TableName() string {
	return "identifier_sequences"
}

// GormSequenceRepository implements ports.SequenceRepository using GORM.
type GormSequenceRepository struct {
	db *gorm.DB
}

func NewGormSequenceRepository(db *gorm.DB) *GormSequenceRepository {
	return &GormSequenceRepository{db: db}
}

// Lock makes sure the key's row exists and then reads it FOR UPDATE. Two
// transactions locking the same key queue on the row.
func (r *GormSequenceRepository) Lock(ctx context.Context, key string) (identifier.SequenceState, error) {
	if key == "" {
		return identifier.SequenceState{}, errs.NewValueIsRequiredError("key")
	}

	db := r.db.WithContext(ctx)
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&SequenceDTO{Key: key}).Error; err != nil {
		return identifier.SequenceState{}, err
	}

	var dto SequenceDTO
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "key = ?", key).Error; err != nil {
		return identifier.SequenceState{}, err
	}

	return toDomain(dto), nil
}

func (r *GormSequenceRepository) Save(ctx context.Context, state identifier.SequenceState) error {
	if state.Key == "" {
		return errs.NewValueIsRequiredError("key")
	}

	dto := fromDomain(state)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_issued_id", "last_sequence", "updated_at"}),
		}).
		Create(&dto).Error
}

func fromDomain(state identifier.SequenceState) SequenceDTO {
	dto := SequenceDTO{
		Key:          state.Key,
		LastIssuedID: null.NewString(state.LastIssuedID, state.LastIssuedID != ""),
	}
	if state.LastSequence != nil {
		dto.LastSequence = null.IntFrom(*state.LastSequence)
	}
	return dto
}

func toDomain(dto SequenceDTO) identifier.SequenceState {
	state := identifier.SequenceState{
		Key:          dto.Key,
		LastIssuedID: dto.LastIssuedID.String,
	}
	if dto.LastSequence.Valid {
		n := dto.LastSequence.Int
		state.LastSequence = &n
	}
	return state
}
