package ports

import (
	"context"

	"production/internal/core/domain/model/identifier"
)

// SequenceRepository stores the last issued identifier per scheme key.
type SequenceRepository interface {
	// Lock returns the state for key, creating an empty row first when none
	// exists, and holds a row lock until the surrounding transaction ends.
	// It must be called inside a transaction.
	Lock(ctx context.Context, key string) (identifier.SequenceState, error)

	// Save writes the state back.
	Save(ctx context.Context, state identifier.SequenceState) error
}
