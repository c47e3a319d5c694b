package commands

import (
	"context"
	"errors"
	"strings"

	"production/internal/core/domain/model/fixture"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"

	"go.uber.org/zap"
)

var ErrSyncFixturesCommandIsNotConstructed = errors.New(
	"SyncFixturesCommand must be created via NewSyncFixturesCommand constructor",
)

// FixtureDefinition is the configured shape of one fixture.
type FixtureDefinition struct {
	ID               string
	Name             string
	CompatibleModels []string
	DailyCapacity    int
	Enabled          bool
}

// SyncFixturesCommand makes the stored fixtures match the plant configuration.
type SyncFixturesCommand struct {
	definitions []FixtureDefinition
	guard       guard.ConstructorGuard
}

func NewSyncFixturesCommand(definitions []FixtureDefinition) (SyncFixturesCommand, error) {
	seen := make(map[string]struct{}, len(definitions))
	var problems []error
	for i := range definitions {
		id := strings.TrimSpace(definitions[i].ID)
		if id == "" {
			problems = append(problems, errs.NewValueIsRequiredError("fixtures.id"))
			continue
		}
		if _, dup := seen[id]; dup {
			problems = append(problems, errs.NewValueIsInvalidError("fixtures.id "+id+" listed twice"))
		}
		seen[id] = struct{}{}
	}
	if err := errors.Join(problems...); err != nil {
		return SyncFixturesCommand{}, err
	}

	return SyncFixturesCommand{
		definitions: append([]FixtureDefinition(nil), definitions...),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c SyncFixturesCommand) Validate() error {
	return c.guard.Validate(ErrSyncFixturesCommandIsNotConstructed)
}

func (c SyncFixturesCommand) Definitions() []FixtureDefinition {
	return append([]FixtureDefinition(nil), c.definitions...)
}

// SyncReport counts what a sync changed.
type SyncReport struct {
	Added    int
	Updated  int
	Disabled int
}

// SyncFixturesCommandHandler adds new fixtures, reconfigures known ones and
// disables stored fixtures missing from the configuration. Fixtures are never
// deleted because past assignments still reference them.
type SyncFixturesCommandHandler struct {
	uowFactory FixtureUoWFactory
	logger     *zap.Logger
}

func NewSyncFixturesCommandHandler(uowFactory FixtureUoWFactory, logger *zap.Logger) SyncFixturesCommandHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return SyncFixturesCommandHandler{uowFactory: uowFactory, logger: logger}
}

func (h SyncFixturesCommandHandler) Handle(ctx context.Context, cmd SyncFixturesCommand) (SyncReport, error) {
	if err := cmd.Validate(); err != nil {
		return SyncReport{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SyncReport{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.FixtureRepository()
	stored, err := repo.GetAll(ctx)
	if err != nil {
		return SyncReport{}, err
	}

	known := make(map[string]*fixture.Fixture, len(stored))
	for _, f := range stored {
		known[f.ID()] = f
	}

	var report SyncReport
	configured := make(map[string]struct{}, len(cmd.Definitions()))
	for _, def := range cmd.Definitions() {
		id := strings.TrimSpace(def.ID)
		configured[id] = struct{}{}

		if f, ok := known[id]; ok {
			if err = f.Reconfigure(def.Name, def.CompatibleModels, def.DailyCapacity, def.Enabled); err != nil {
				return SyncReport{}, err
			}
			if err = repo.Update(ctx, f); err != nil {
				return SyncReport{}, err
			}
			report.Updated++
			continue
		}

		f, err := fixture.NewFixture(id, def.Name, def.CompatibleModels, def.DailyCapacity, def.Enabled)
		if err != nil {
			return SyncReport{}, err
		}
		if err = repo.Add(ctx, f); err != nil {
			return SyncReport{}, err
		}
		report.Added++
	}

	for _, f := range stored {
		if _, ok := configured[f.ID()]; ok || !f.Enabled() {
			continue
		}
		f.Disable()
		if err = repo.Update(ctx, f); err != nil {
			return SyncReport{}, err
		}
		report.Disabled++
		h.logger.Info("disabled fixture missing from configuration", zap.String("fixtureId", f.ID()))
	}

	if err = uow.Commit(ctx); err != nil {
		return SyncReport{}, err
	}

	return report, nil
}
