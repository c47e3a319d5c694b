package commands_test

import (
	"context"
	"time"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/fixture"
	"production/internal/core/domain/model/identifier"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/schedule"
	"production/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id string) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetAwaitingSchedule(ctx context.Context, departments []string) ([]*order.Order, error) {
	args := m.Called(ctx, departments)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) GetActive(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockFixtureRepository struct{ mock.Mock }

func (m *MockFixtureRepository) Add(ctx context.Context, f *fixture.Fixture) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockFixtureRepository) Update(ctx context.Context, f *fixture.Fixture) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockFixtureRepository) Get(ctx context.Context, id string) (*fixture.Fixture, error) {
	args := m.Called(ctx, id)
	f, _ := args.Get(0).(*fixture.Fixture)
	return f, args.Error(1)
}

func (m *MockFixtureRepository) GetAll(ctx context.Context) ([]*fixture.Fixture, error) {
	args := m.Called(ctx)
	fixtures, _ := args.Get(0).([]*fixture.Fixture)
	return fixtures, args.Error(1)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) AddWithinCapacity(ctx context.Context, a *schedule.Assignment, capacity int) error {
	return m.Called(ctx, a, capacity).Error(0)
}

func (m *MockAssignmentRepository) Remove(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAssignmentRepository) GetByOrder(ctx context.Context, orderID string) (*schedule.Assignment, error) {
	args := m.Called(ctx, orderID)
	a, _ := args.Get(0).(*schedule.Assignment)
	return a, args.Error(1)
}

func (m *MockAssignmentRepository) GetFrom(ctx context.Context, from kernel.Date) ([]*schedule.Assignment, error) {
	args := m.Called(ctx, from)
	assignments, _ := args.Get(0).([]*schedule.Assignment)
	return assignments, args.Error(1)
}

func (m *MockAssignmentRepository) GetAll(ctx context.Context) ([]*schedule.Assignment, error) {
	args := m.Called(ctx)
	assignments, _ := args.Get(0).([]*schedule.Assignment)
	return assignments, args.Error(1)
}

type MockSequenceRepository struct{ mock.Mock }

func (m *MockSequenceRepository) Lock(ctx context.Context, key string) (identifier.SequenceState, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(identifier.SequenceState), args.Error(1)
}

func (m *MockSequenceRepository) Save(ctx context.Context, state identifier.SequenceState) error {
	return m.Called(ctx, state).Error(0)
}

// MockUoW satisfies every unit of work shape the handlers ask for.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) FixtureRepository() ports.FixtureRepository {
	return m.Called().Get(0).(ports.FixtureRepository)
}

func (m *MockUoW) AssignmentRepository() ports.AssignmentRepository {
	return m.Called().Get(0).(ports.AssignmentRepository)
}

func (m *MockUoW) SequenceRepository() ports.SequenceRepository {
	return m.Called().Get(0).(ports.SequenceRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockOrderIDUoWFactory struct{ mock.Mock }

func (m *MockOrderIDUoWFactory) Create() commands.OrderIDUoW {
	return m.Called().Get(0).(commands.OrderIDUoW)
}

type MockSequenceUoWFactory struct{ mock.Mock }

func (m *MockSequenceUoWFactory) Create() commands.SequenceUoW {
	return m.Called().Get(0).(commands.SequenceUoW)
}

type MockFixtureUoWFactory struct{ mock.Mock }

func (m *MockFixtureUoWFactory) Create() commands.FixtureUoW {
	return m.Called().Get(0).(commands.FixtureUoW)
}

type MockOrderAssignmentUoWFactory struct{ mock.Mock }

func (m *MockOrderAssignmentUoWFactory) Create() commands.OrderAssignmentUoW {
	return m.Called().Get(0).(commands.OrderAssignmentUoW)
}

type MockScheduleUoWFactory struct{ mock.Mock }

func (m *MockScheduleUoWFactory) Create() commands.ScheduleUoW {
	return m.Called().Get(0).(commands.ScheduleUoW)
}

type MockPassLock struct{ mock.Mock }

func (m *MockPassLock) TryAcquire(ctx context.Context, name string, ttl time.Duration) (func(context.Context) error, bool, error) {
	args := m.Called(ctx, name, ttl)
	release, _ := args.Get(0).(func(context.Context) error)
	return release, args.Bool(1), args.Error(2)
}

var (
	monday = kernel.NewDate(2025, 3, 3)
	entry  = "P1 Production Queue"
)

func restoreOrder(id string, status order.Status, details order.Details) *order.Order {
	if details.PriorityScore == 0 {
		details.PriorityScore = order.DefaultPriorityScore
	}
	o, err := order.RestoreOrder(id, monday, entry, monday, status, false, details)
	if err != nil {
		panic(err)
	}
	return o
}

func newFixture(id string, capacity int, models ...string) *fixture.Fixture {
	f, err := fixture.NewFixture(id, "", models, capacity, true)
	if err != nil {
		panic(err)
	}
	return f
}
