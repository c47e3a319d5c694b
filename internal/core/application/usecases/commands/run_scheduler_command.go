package commands

import (
	"context"
	"errors"
	"time"

	"production/internal/core/domain/model/fixture"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/schedule"
	"production/internal/core/domain/services"
	"production/internal/core/ports"
	"production/internal/pkg/guard"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	// SchedulerLockName is the pass lock shared by every replica.
	SchedulerLockName = "scheduler"
	// DefaultSchedulerLockTTL outlives any reasonable pass; a crashed holder
	// blocks the next passes for at most this long.
	DefaultSchedulerLockTTL = 5 * time.Minute

	tracerName = "production/commands"
)

var ErrRunSchedulerCommandIsNotConstructed = errors.New(
	"RunSchedulerCommand must be created via NewRunSchedulerCommand constructor",
)

// RunSchedulerCommand triggers one automatic scheduling pass as of a day.
type RunSchedulerCommand struct {
	asOf  kernel.Date
	guard guard.ConstructorGuard
}

func NewRunSchedulerCommand(asOf kernel.Date) (RunSchedulerCommand, error) {
	if err := asOf.Validate(); err != nil {
		return RunSchedulerCommand{}, err
	}
	return RunSchedulerCommand{asOf: asOf, guard: guard.NewConstructorGuard()}, nil
}

func (c RunSchedulerCommand) Validate() error {
	return c.guard.Validate(ErrRunSchedulerCommandIsNotConstructed)
}

func (c RunSchedulerCommand) AsOf() kernel.Date {
	return c.asOf
}

// SchedulePassResult reports one pass. Skipped is set when another replica
// held the pass lock and nothing was read or written.
type SchedulePassResult struct {
	AsOf                kernel.Date
	Skipped             bool
	Assignments         []*schedule.Assignment
	Unschedulable       []services.Unschedulable
	NeedsClassification []string
}

// RunSchedulerCommandHandler runs the schedule engine over a snapshot and
// persists each placement in its own transaction. A placement that lost its
// slot to a concurrent writer is reported as unschedulable and picked up by
// the next pass.
type RunSchedulerCommandHandler struct {
	uowFactory ScheduleUoWFactory
	engine     *services.ScheduleEngine
	passLock   ports.PassLock
	lockTTL    time.Duration
	logger     *zap.Logger
}

func NewRunSchedulerCommandHandler(
	uowFactory ScheduleUoWFactory,
	engine *services.ScheduleEngine,
	passLock ports.PassLock,
	lockTTL time.Duration,
	logger *zap.Logger,
) RunSchedulerCommandHandler {
	if lockTTL <= 0 {
		lockTTL = DefaultSchedulerLockTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return RunSchedulerCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
		passLock:   passLock,
		lockTTL:    lockTTL,
		logger:     logger,
	}
}

func (h RunSchedulerCommandHandler) Handle(ctx context.Context, cmd RunSchedulerCommand) (SchedulePassResult, error) {
	if err := cmd.Validate(); err != nil {
		return SchedulePassResult{}, err
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "RunScheduler")
	defer span.End()
	span.SetAttributes(attribute.String("schedule.as_of", cmd.AsOf().String()))

	release, acquired, err := h.passLock.TryAcquire(ctx, SchedulerLockName, h.lockTTL)
	if err != nil {
		span.RecordError(err)
		return SchedulePassResult{}, err
	}
	if !acquired {
		h.logger.Info("scheduling pass skipped, another pass holds the lock", zap.Stringer("asOf", cmd.AsOf()))
		span.SetAttributes(attribute.Bool("schedule.skipped", true))
		return SchedulePassResult{AsOf: cmd.AsOf(), Skipped: true}, nil
	}
	defer func() {
		if releaseErr := release(context.WithoutCancel(ctx)); releaseErr != nil {
			h.logger.Warn("failed to release scheduler pass lock", zap.Error(releaseErr))
		}
	}()

	orders, fixtures, existing, err := h.snapshot(ctx)
	if err != nil {
		span.RecordError(err)
		return SchedulePassResult{}, err
	}

	planned := h.engine.Run(orders, fixtures, existing, cmd.AsOf())

	result := SchedulePassResult{
		AsOf:                cmd.AsOf(),
		Assignments:         make([]*schedule.Assignment, 0, len(planned.Assignments)),
		Unschedulable:       planned.Unschedulable,
		NeedsClassification: planned.NeedsClassification,
	}

	ordersByID := make(map[string]*order.Order, len(orders))
	for _, o := range orders {
		ordersByID[o.ID()] = o
	}
	capacity := make(map[string]int, len(fixtures))
	for _, f := range fixtures {
		capacity[f.ID()] = f.DailyCapacity()
	}

	for _, a := range planned.Assignments {
		err := h.persist(ctx, a, capacity[a.FixtureID()], ordersByID[a.OrderID()])
		switch {
		case err == nil:
			result.Assignments = append(result.Assignments, a)
		case errors.Is(err, services.ErrFixtureDayFull), errors.Is(err, ports.ErrOrderAlreadyAssigned):
			h.logger.Warn("planned slot was taken concurrently",
				zap.String("orderId", a.OrderID()),
				zap.String("fixtureId", a.FixtureID()),
				zap.Stringer("date", a.Date()),
				zap.Error(err))
			result.Unschedulable = append(result.Unschedulable, services.Unschedulable{
				OrderID: a.OrderID(),
				Reason:  services.ReasonSlotTaken,
			})
		default:
			span.RecordError(err)
			return result, err
		}
	}

	h.report(result)
	span.SetAttributes(
		attribute.Int("schedule.assigned", len(result.Assignments)),
		attribute.Int("schedule.unschedulable", len(result.Unschedulable)),
		attribute.Int("schedule.needs_classification", len(result.NeedsClassification)),
	)

	return result, nil
}

func (h RunSchedulerCommandHandler) snapshot(
	ctx context.Context,
) ([]*order.Order, []*fixture.Fixture, []*schedule.Assignment, error) {
	uow := h.uowFactory.Create()

	orders, err := uow.OrderRepository().GetAwaitingSchedule(ctx, h.engine.Options().EntryDepartments)
	if err != nil {
		return nil, nil, nil, err
	}

	fixtures, err := uow.FixtureRepository().GetAll(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	existing, err := uow.AssignmentRepository().GetAll(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	return orders, fixtures, existing, nil
}

// persist writes one placement. An escalated order placed as adjustment work
// uses up its escalation in the same transaction.
func (h RunSchedulerCommandHandler) persist(
	ctx context.Context,
	a *schedule.Assignment,
	capacity int,
	o *order.Order,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.AssignmentRepository().AddWithinCapacity(ctx, a, capacity); err != nil {
		return err
	}

	if o != nil && a.Kind() == schedule.Adjustment && o.PriorityEscalated() {
		o.ConsumeEscalation()
		if err := uow.OrderRepository().Update(ctx, o); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func (h RunSchedulerCommandHandler) report(result SchedulePassResult) {
	for _, u := range result.Unschedulable {
		h.logger.Warn("order could not be scheduled",
			zap.String("orderId", u.OrderID),
			zap.String("reason", u.Reason))
	}
	if len(result.NeedsClassification) > 0 {
		h.logger.Warn("orders need stock model classification before scheduling",
			zap.Strings("orderIds", result.NeedsClassification))
	}
	h.logger.Info("scheduling pass finished",
		zap.Stringer("asOf", result.AsOf),
		zap.Int("assigned", len(result.Assignments)),
		zap.Int("unschedulable", len(result.Unschedulable)),
		zap.Int("needsClassification", len(result.NeedsClassification)))
}
