package assignmentrepo_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"production/internal/adapters/out/postgres/assignmentrepo"
	"production/internal/adapters/out/postgres/fixturerepo"
	"production/internal/adapters/out/postgres/orderrepo"
	"production/internal/adapters/out/postgres/pgtest"
	"production/internal/core/domain/model/fixture"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/schedule"
	"production/internal/core/domain/services"
	"production/internal/core/ports"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(string, any) {}

var monday = kernel.NewDate(2025, 3, 3)

type AssignmentRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *assignmentrepo.GormAssignmentRepository
}

func (suite *AssignmentRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
}

func (suite *AssignmentRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))
	suite.repository = assignmentrepo.NewGormAssignmentRepository(suite.db, noopTracker{})

	ctx := context.Background()
	fixtures := fixturerepo.NewGormFixtureRepository(suite.db, noopTracker{})
	for _, id := range []string{"M-01", "M-02"} {
		f, err := fixture.NewFixture(id, "", nil, 2, true)
		suite.Require().NoError(err)
		suite.Require().NoError(fixtures.Add(ctx, f))
	}

	orders := orderrepo.NewGormOrderRepository(suite.db, noopTracker{})
	for i := 1; i <= 10; i++ {
		o, err := order.RestoreOrder(fmt.Sprintf("AA%03d", i), monday, "P1 Production Queue", monday,
			order.Finalized, false, order.Details{PriorityScore: order.DefaultPriorityScore})
		suite.Require().NoError(err)
		suite.Require().NoError(orders.Add(ctx, o))
	}
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestAddWithinCapacity_ThenGetByOrder() {
	ctx := suite.T().Context()
	a := suite.newAssignment("AA001", "M-01", monday, schedule.Adjustment)

	suite.Require().NoError(suite.repository.AddWithinCapacity(ctx, a, 2))

	got, err := suite.repository.GetByOrder(ctx, "AA001")
	suite.Require().NoError(err)
	suite.True(a.ID().IsEqual(got.ID()))
	suite.Equal("M-01", got.FixtureID())
	suite.Equal(monday, got.Date())
	suite.Equal(schedule.Adjustment, got.Kind())
	suite.False(got.ManualOverride())
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestAddWithinCapacity_FullSlot() {
	ctx := suite.T().Context()
	suite.Require().NoError(suite.repository.AddWithinCapacity(ctx, suite.newAssignment("AA001", "M-01", monday, schedule.Production), 2))
	suite.Require().NoError(suite.repository.AddWithinCapacity(ctx, suite.newAssignment("AA002", "M-01", monday, schedule.Production), 2))

	err := suite.repository.AddWithinCapacity(ctx, suite.newAssignment("AA003", "M-01", monday, schedule.Production), 2)
	suite.ErrorIs(err, services.ErrFixtureDayFull)

	// other fixture and other day are separate slots
	suite.Require().NoError(suite.repository.AddWithinCapacity(ctx, suite.newAssignment("AA003", "M-02", monday, schedule.Production), 2))
	suite.Require().NoError(suite.repository.AddWithinCapacity(ctx, suite.newAssignment("AA004", "M-01", monday.AddDays(1), schedule.Production), 2))
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestAddWithinCapacity_SecondAssignmentForOrder() {
	ctx := suite.T().Context()
	suite.Require().NoError(suite.repository.AddWithinCapacity(ctx, suite.newAssignment("AA001", "M-01", monday, schedule.Production), 2))

	err := suite.repository.AddWithinCapacity(ctx, suite.newAssignment("AA001", "M-02", monday, schedule.Production), 2)
	suite.ErrorIs(err, ports.ErrOrderAlreadyAssigned)
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestAddWithinCapacity_ConcurrentWritersNeverOverbook() {
	ctx := suite.T().Context()
	const capacity = 3

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		full      int
	)
	for i := 1; i <= 10; i++ {
		wg.Add(1)
		go func(orderID string) {
			defer wg.Done()
			err := suite.db.Transaction(func(tx *gorm.DB) error {
				repo := assignmentrepo.NewGormAssignmentRepository(tx, noopTracker{})
				a, err := schedule.NewAssignment(orderID, "M-01", monday, schedule.Production, false)
				if err != nil {
					return err
				}
				return repo.AddWithinCapacity(ctx, a, capacity)
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if suite.ErrorIs(err, services.ErrFixtureDayFull) {
				full++
			}
		}(fmt.Sprintf("AA%03d", i))
	}
	wg.Wait()

	suite.Equal(capacity, succeeded)
	suite.Equal(10-capacity, full)

	all, err := suite.repository.GetAll(ctx)
	suite.Require().NoError(err)
	suite.Len(all, capacity)
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestRemove() {
	ctx := suite.T().Context()
	a := suite.newAssignment("AA001", "M-01", monday, schedule.Production)
	suite.Require().NoError(suite.repository.AddWithinCapacity(ctx, a, 1))

	suite.Require().NoError(suite.repository.Remove(ctx, a.ID()))
	_, err := suite.repository.GetByOrder(ctx, "AA001")
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	suite.ErrorIs(suite.repository.Remove(ctx, a.ID()), errs.ErrObjectNotFound)
}

func (suite *AssignmentRepositoryIntegrationTestSuite) TestGetFrom_ReturnsOnlyLaterDatesSorted() {
	ctx := suite.T().Context()
	suite.Require().NoError(suite.repository.AddWithinCapacity(ctx, suite.newAssignment("AA001", "M-01", monday.AddDays(-7), schedule.Production), 2))
	suite.Require().NoError(suite.repository.AddWithinCapacity(ctx, suite.newAssignment("AA002", "M-02", monday.AddDays(1), schedule.Production), 2))
	suite.Require().NoError(suite.repository.AddWithinCapacity(ctx, suite.newAssignment("AA003", "M-01", monday, schedule.Production), 2))

	got, err := suite.repository.GetFrom(ctx, monday)
	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.Equal("AA003", got[0].OrderID())
	suite.Equal("AA002", got[1].OrderID())

	all, err := suite.repository.GetAll(ctx)
	suite.Require().NoError(err)
	suite.Len(all, 3)
}

func (suite *AssignmentRepositoryIntegrationTestSuite) newAssignment(
	orderID, fixtureID string, date kernel.Date, kind schedule.Kind,
) *schedule.Assignment {
	a, err := schedule.NewAssignment(orderID, fixtureID, date, kind, false)
	suite.Require().NoError(err)
	return a
}

func TestAssignmentRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AssignmentRepositoryIntegrationTestSuite))
}
