package ports

import (
	"context"

	"production/internal/core/domain/model/fixture"
)

// FixtureRepository defines the persistence contract for fixtures (molds).
type FixtureRepository interface {
	Add(ctx context.Context, aggregate *fixture.Fixture) error
	Update(ctx context.Context, aggregate *fixture.Fixture) error

	// Get returns errs.ObjectNotFoundError for an unknown id.
	Get(ctx context.Context, id string) (*fixture.Fixture, error)

	// GetAll returns every fixture ordered by id, enabled or not.
	GetAll(ctx context.Context) ([]*fixture.Fixture, error)
}
