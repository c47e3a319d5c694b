package fixturerepo_test

import (
	"context"
	"testing"

	"production/internal/adapters/out/postgres/fixturerepo"
	"production/internal/adapters/out/postgres/pgtest"
	"production/internal/core/domain/model/fixture"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id string, aggregate any) {
	m.Called(id, aggregate)
}

type FixtureRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *fixturerepo.GormFixtureRepository
	tracker    *MockAggregateTracker
}

func (suite *FixtureRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
}

func (suite *FixtureRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))

	suite.tracker = new(MockAggregateTracker)
	suite.repository = fixturerepo.NewGormFixtureRepository(suite.db, suite.tracker)
}

func (suite *FixtureRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *FixtureRepositoryIntegrationTestSuite) TestAdd_ThenGet_KeepsCompatibleModels() {
	ctx := suite.T().Context()
	f, err := fixture.NewFixture("M-01", "Alpine mold", []string{"cf_alpine_hunter", "cf_chalk_branch"}, 3, true)
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", "M-01", f).Once()

	suite.Require().NoError(suite.repository.Add(ctx, f))

	got, err := suite.repository.Get(ctx, "M-01")
	suite.Require().NoError(err)
	suite.Equal("Alpine mold", got.Name())
	suite.Equal([]string{"cf_alpine_hunter", "cf_chalk_branch"}, got.CompatibleModels())
	suite.Equal(3, got.DailyCapacity())
	suite.True(got.Enabled())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *FixtureRepositoryIntegrationTestSuite) TestAdd_UniversalFixture() {
	ctx := suite.T().Context()
	f, err := fixture.NewFixture("M-00", "", nil, 1, true)
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", "M-00", f).Once()
	suite.Require().NoError(suite.repository.Add(ctx, f))

	got, err := suite.repository.Get(ctx, "M-00")
	suite.Require().NoError(err)
	suite.True(got.IsUniversal())
	suite.Equal("M-00", got.Name())
}

func (suite *FixtureRepositoryIntegrationTestSuite) TestUpdate_DisableAndZeroCapacity() {
	ctx := suite.T().Context()
	f, err := fixture.NewFixture("M-02", "Mold 2", []string{"a"}, 4, true)
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", "M-02", f).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, f))

	suite.Require().NoError(f.Reconfigure("Mold 2", nil, 0, false))
	suite.Require().NoError(suite.repository.Update(ctx, f))

	got, err := suite.repository.Get(ctx, "M-02")
	suite.Require().NoError(err)
	suite.False(got.Enabled())
	suite.Equal(0, got.DailyCapacity())
	suite.True(got.IsUniversal())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *FixtureRepositoryIntegrationTestSuite) TestUpdate_Unknown_ReturnsNotFound() {
	f, err := fixture.NewFixture("M-404", "", nil, 1, true)
	suite.Require().NoError(err)

	err = suite.repository.Update(suite.T().Context(), f)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
	suite.tracker.AssertNotCalled(suite.T(), "TrackAggregate", mock.Anything, mock.Anything)
}

func (suite *FixtureRepositoryIntegrationTestSuite) TestGetAll_OrderedByID() {
	ctx := suite.T().Context()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	for _, id := range []string{"M-03", "M-01", "M-02"} {
		f, err := fixture.NewFixture(id, "", nil, 1, id != "M-02")
		suite.Require().NoError(err)
		suite.Require().NoError(suite.repository.Add(ctx, f))
	}

	got, err := suite.repository.GetAll(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(got, 3)
	suite.Equal("M-01", got[0].ID())
	suite.Equal("M-02", got[1].ID())
	suite.False(got[1].Enabled())
	suite.Equal("M-03", got[2].ID())
}

func (suite *FixtureRepositoryIntegrationTestSuite) TestGet_Unknown_ReturnsNotFound() {
	_, err := suite.repository.Get(suite.T().Context(), "nope")
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestFixtureRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(FixtureRepositoryIntegrationTestSuite))
}
