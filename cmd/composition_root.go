package cmd

import (
	"context"
	"fmt"
	"time"

	httpin "production/internal/adapters/in/http"
	"production/internal/adapters/out/postgres"
	"production/internal/config"
	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/identifier"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/services"
	"production/internal/core/ports"
	"production/internal/jobs"
	"production/internal/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	plant      config.Plant
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	passLock   ports.PassLock
	publisher  ports.HealthAlertPublisher
	logger     *zap.Logger

	location   *time.Location
	lockTTL    time.Duration
	scheme     identifier.OrderIDScheme
	engine     *services.ScheduleEngine
	classifier services.StatusClassifier
}

// NewCompositionRoot wires the domain services from the plant configuration.
// publisher may be nil when alert publishing is not configured.
func NewCompositionRoot(
	configs Config,
	plant config.Plant,
	gormDB *gorm.DB,
	passLock ports.PassLock,
	publisher ports.HealthAlertPublisher,
	log *zap.Logger,
) (CompositionRoot, error) {
	location, err := configs.Location()
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("timezone: %w", err)
	}
	lockTTL, err := configs.LockTTL()
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("scheduler lock ttl: %w", err)
	}
	baseDate, err := configs.ParsedBaseDate()
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("base date: %w", err)
	}
	scheme, err := identifier.SchemeByName(configs.OrderIDScheme, baseDate)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("order id scheme: %w", err)
	}

	options, err := plant.ScheduleOptions()
	if err != nil {
		return CompositionRoot{}, err
	}
	engine, err := services.NewScheduleEngine(options)
	if err != nil {
		return CompositionRoot{}, err
	}
	table, err := plant.LeadTimeTable()
	if err != nil {
		return CompositionRoot{}, err
	}

	if log == nil {
		log = zap.NewNop()
	}

	return CompositionRoot{
		configs:    configs,
		plant:      plant,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		passLock:   passLock,
		publisher:  publisher,
		logger:     log,
		location:   location,
		lockTTL:    lockTTL,
		scheme:     scheme,
		engine:     engine,
		classifier: services.NewStatusClassifier(table),
	}, nil
}

// Today is the current calendar day at the plant.
func (c *CompositionRoot) Today() kernel.Date {
	return kernel.Today(c.location)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderIDUoWFactory = FuncOrderIDUoWFactory(func() commands.OrderIDUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.scheme, logger.Component(c.logger, "order_ids"))
}

func (c *CompositionRoot) CreateFinalizeOrderCommandHandler() commands.FinalizeOrderCommandHandler {
	return commands.NewFinalizeOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateMoveOrderCommandHandler() commands.MoveOrderCommandHandler {
	return commands.NewMoveOrderCommandHandler(c.orderUoWFactory(), c.engine)
}

func (c *CompositionRoot) CreateEscalateOrderCommandHandler() commands.EscalateOrderCommandHandler {
	return commands.NewEscalateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateShipOrderCommandHandler() commands.ShipOrderCommandHandler {
	return commands.NewShipOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderAssignmentUoWFactory())
}

func (c *CompositionRoot) CreateClassifyStockModelCommandHandler() commands.ClassifyStockModelCommandHandler {
	return commands.NewClassifyStockModelCommandHandler(c.orderUoWFactory(), c.plant.StockModels)
}

func (c *CompositionRoot) CreateRequireAdjustmentCommandHandler() commands.RequireAdjustmentCommandHandler {
	return commands.NewRequireAdjustmentCommandHandler(c.orderAssignmentUoWFactory())
}

func (c *CompositionRoot) CreateAllocateSerialCommandHandler() commands.AllocateSerialCommandHandler {
	var f commands.SequenceUoWFactory = FuncSequenceUoWFactory(func() commands.SequenceUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAllocateSerialCommandHandler(f)
}

func (c *CompositionRoot) CreateRunSchedulerCommandHandler() commands.RunSchedulerCommandHandler {
	return commands.NewRunSchedulerCommandHandler(
		c.scheduleUoWFactory(),
		c.engine,
		c.passLock,
		c.lockTTL,
		logger.Component(c.logger, "scheduler"),
	)
}

func (c *CompositionRoot) CreateReassignOrderCommandHandler() commands.ReassignOrderCommandHandler {
	return commands.NewReassignOrderCommandHandler(c.scheduleUoWFactory(), c.engine)
}

func (c *CompositionRoot) CreateSyncFixturesCommandHandler() commands.SyncFixturesCommandHandler {
	var f commands.FixtureUoWFactory = FuncFixtureUoWFactory(func() commands.FixtureUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSyncFixturesCommandHandler(f, logger.Component(c.logger, "fixtures"))
}

func (c *CompositionRoot) CreateGetScheduleQueryHandler() queries.GetScheduleQueryHandler {
	return queries.NewGetScheduleQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPipelineHealthQueryHandler() queries.GetPipelineHealthQueryHandler {
	return queries.NewGetPipelineHealthQueryHandler(c.gormDB, c.classifier)
}

// SyncFixtures makes the stored fixtures match the plant configuration.
func (c *CompositionRoot) SyncFixtures(ctx context.Context) (commands.SyncReport, error) {
	definitions := make([]commands.FixtureDefinition, 0, len(c.plant.Fixtures))
	for _, f := range c.plant.Fixtures {
		definitions = append(definitions, commands.FixtureDefinition{
			ID:               f.ID,
			Name:             f.Name,
			CompatibleModels: f.CompatibleModels,
			DailyCapacity:    f.DailyCapacity,
			Enabled:          f.IsEnabled(),
		})
	}

	cmd, err := commands.NewSyncFixturesCommand(definitions)
	if err != nil {
		return commands.SyncReport{}, err
	}
	return c.CreateSyncFixturesCommandHandler().Handle(ctx, cmd)
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateOrder:        c.CreateCreateOrderCommandHandler(),
		FinalizeOrder:      c.CreateFinalizeOrderCommandHandler(),
		MoveOrder:          c.CreateMoveOrderCommandHandler(),
		EscalateOrder:      c.CreateEscalateOrderCommandHandler(),
		ShipOrder:          c.CreateShipOrderCommandHandler(),
		CancelOrder:        c.CreateCancelOrderCommandHandler(),
		ClassifyStockModel: c.CreateClassifyStockModelCommandHandler(),
		RequireAdjustment:  c.CreateRequireAdjustmentCommandHandler(),
		AllocateSerial:     c.CreateAllocateSerialCommandHandler(),
		RunScheduler:       c.CreateRunSchedulerCommandHandler(),
		ReassignOrder:      c.CreateReassignOrderCommandHandler(),
		GetSchedule:        c.CreateGetScheduleQueryHandler(),
		GetPipelineHealth:  c.CreateGetPipelineHealthQueryHandler(),
	}, c.Today, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	scheduling := jobs.NewSchedulingJob(
		c.CreateRunSchedulerCommandHandler(),
		c.configs.SchedulingSpec,
		c.location,
		c.logger,
	)

	var monitor *jobs.HealthMonitorJob
	if c.publisher != nil {
		monitor = jobs.NewHealthMonitorJob(
			c.CreateGetPipelineHealthQueryHandler(),
			c.publisher,
			c.configs.HealthMonitorSpec,
			c.location,
			c.logger,
		)
	}

	return jobs.NewJobManager(scheduling, monitor, c.logger)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderAssignmentUoWFactory() commands.OrderAssignmentUoWFactory {
	return FuncOrderAssignmentUoWFactory(func() commands.OrderAssignmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) scheduleUoWFactory() commands.ScheduleUoWFactory {
	return FuncScheduleUoWFactory(func() commands.ScheduleUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOrderIDUoWFactory func() commands.OrderIDUoW

func (f FuncOrderIDUoWFactory) Create() commands.OrderIDUoW {
	return f()
}

type FuncSequenceUoWFactory func() commands.SequenceUoW

func (f FuncSequenceUoWFactory) Create() commands.SequenceUoW {
	return f()
}

type FuncFixtureUoWFactory func() commands.FixtureUoW

func (f FuncFixtureUoWFactory) Create() commands.FixtureUoW {
	return f()
}

type FuncOrderAssignmentUoWFactory func() commands.OrderAssignmentUoW

func (f FuncOrderAssignmentUoWFactory) Create() commands.OrderAssignmentUoW {
	return f()
}

type FuncScheduleUoWFactory func() commands.ScheduleUoW

func (f FuncScheduleUoWFactory) Create() commands.ScheduleUoW {
	return f()
}
