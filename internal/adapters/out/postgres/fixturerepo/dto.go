// Package fixturerepo persists fixtures with GORM.
package fixturerepo

import (
	"production/internal/core/domain/model/fixture"

	"github.com/lib/pq"
)

// FixtureDTO is the row shape of the fixtures table. Compatible models live
// in a text[] column.
type FixtureDTO struct {
	ID               string         `gorm:"type:varchar(64);primaryKey"`
	Name             string         `gorm:"type:text"`
	CompatibleModels pq.StringArray `gorm:"type:text[]"`
	Enabled          bool
	DailyCapacity    int
}

func (FixtureDTO) TableName() string {
	return "fixtures"
}

func fromDomain(f *fixture.Fixture) FixtureDTO {
	models := f.CompatibleModels()
	if models == nil {
		models = []string{}
	}
	return FixtureDTO{
		ID:               f.ID(),
		Name:             f.Name(),
		CompatibleModels: pq.StringArray(models),
		Enabled:          f.Enabled(),
		DailyCapacity:    f.DailyCapacity(),
	}
}

func toDomain(dto FixtureDTO) (*fixture.Fixture, error) {
	return fixture.NewFixture(dto.ID, dto.Name, []string(dto.CompatibleModels), dto.DailyCapacity, dto.Enabled)
}
