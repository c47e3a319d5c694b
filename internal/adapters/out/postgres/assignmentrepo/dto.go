// Package assignmentrepo persists schedule assignments and serializes writes
// to a (fixture, date) slot with a transaction-scoped advisory lock.
package assignmentrepo

import (
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/schedule"

	"github.com/google/uuid"
)

type AssignmentDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        string    `gorm:"type:varchar(32);uniqueIndex:schedule_assignments_order_uidx"`
	FixtureID      string    `gorm:"type:varchar(64);index:schedule_assignments_slot_idx"`
	ScheduledDate  time.Time `gorm:"type:date;index:schedule_assignments_slot_idx"`
	Kind           int       `gorm:"type:smallint"`
	ManualOverride bool
	CreatedAt      time.Time
}

func (AssignmentDTO) TableName() string {
	return "schedule_assignments"
}

func fromDomain(a *schedule.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:             a.ID().Bytes(),
		OrderID:        a.OrderID(),
		FixtureID:      a.FixtureID(),
		ScheduledDate:  a.Date().Time(),
		Kind:           int(a.Kind()),
		ManualOverride: a.ManualOverride(),
		CreatedAt:      a.CreatedAt(),
	}
}

func toDomain(dto AssignmentDTO) (*schedule.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return schedule.RestoreAssignment(
		id,
		dto.OrderID,
		dto.FixtureID,
		kernel.DateOf(dto.ScheduledDate),
		schedule.Kind(dto.Kind),
		dto.ManualOverride,
		dto.CreatedAt,
	)
}

func toDomainList(dtos []AssignmentDTO) ([]*schedule.Assignment, error) {
	assignments := make([]*schedule.Assignment, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, nil
}
