package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/core/domain/model/identity"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite runs the repository against a real
// PostgreSQL so JSONB, decimal and row locking behave as in production.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Return().Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_RoundTripsEveryField() {
	ctx := suite.T().Context()
	o := suite.newOrder(kernel.NewUUID(), time.Now())

	suite.Require().NoError(suite.repository.Add(ctx, o))
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", o.ID(), o)

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	want := o.Snapshot()
	have := got.Snapshot()
	suite.Equal(want.Number, have.Number)
	suite.True(want.UserID.IsEqual(have.UserID))
	suite.Equal(order.Pending, have.Status)
	suite.Equal(want.ShippingAddress, have.ShippingAddress)
	suite.Equal(want.PaymentInfo, have.PaymentInfo)
	suite.True(want.Totals.Total.Equal(have.Totals.Total))
	suite.True(want.Totals.Tax.Equal(have.Totals.Tax))
	suite.Require().Len(have.Items, 2)
	suite.Equal("Desk Lamp", have.Items[0].Name())
	suite.True(decimal.RequireFromString("24.50").Equal(have.Items[0].UnitPrice()))
	suite.Equal(2, have.Items[0].Quantity())
	suite.WithinDuration(want.CreatedAt, have.CreatedAt, time.Millisecond)
	suite.Nil(have.TrackingNumber)
	suite.Nil(have.CancelledBy)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateOrderNumberFails() {
	ctx := suite.T().Context()
	o := suite.newOrder(kernel.NewUUID(), time.Now())
	suite.Require().NoError(suite.repository.Add(ctx, o))

	snap := o.Snapshot()
	snap.ID = kernel.NewUUID()
	clone, err := order.RestoreOrder(snap)
	suite.Require().NoError(err)

	suite.Require().Error(suite.repository.Add(ctx, clone))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(suite.T().Context(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_WritesAdminChanges() {
	ctx := suite.T().Context()
	o := suite.newOrder(kernel.NewUUID(), time.Now())
	suite.Require().NoError(suite.repository.Add(ctx, o))

	confirmed := order.Confirmed
	_, err := o.ApplyAdminUpdate(order.AdminUpdate{
		Status:         &confirmed,
		TrackingNumber: ptr("1Z999"),
		Notes:          ptr("packed"),
	}, suite.actor(identity.RoleAdmin), time.Now())
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Update(ctx, o, order.Pending))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, got.Status())
	suite.Equal("1Z999", *got.TrackingNumber())
	suite.Equal("packed", *got.Notes())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ClearsTrackingNumber() {
	ctx := suite.T().Context()
	o := suite.newOrder(kernel.NewUUID(), time.Now())
	admin := suite.actor(identity.RoleAdmin)
	_, err := o.ApplyAdminUpdate(order.AdminUpdate{TrackingNumber: ptr("1Z999")}, admin, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	_, err = o.ApplyAdminUpdate(order.AdminUpdate{TrackingNumber: ptr("")}, admin, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, o, order.Pending))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Nil(got.TrackingNumber())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsCancellation() {
	ctx := suite.T().Context()
	owner := kernel.NewUUID()
	o := suite.newOrder(owner, time.Now())
	suite.Require().NoError(suite.repository.Add(ctx, o))

	user, err := identity.NewActor(owner, "owner@example.com", identity.RoleUser)
	suite.Require().NoError(err)
	_, err = o.Cancel(user, "", time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, o, order.Pending))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, got.Status())
	suite.Require().NotNil(got.CancelledBy())
	suite.True(owner.IsEqual(*got.CancelledBy()))
	suite.Require().NotNil(got.CancelledAt())
	suite.Equal(order.DefaultCancellationReason, *got.CancellationReason())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleStatusIsRejected() {
	ctx := suite.T().Context()
	o := suite.newOrder(kernel.NewUUID(), time.Now())
	suite.Require().NoError(suite.repository.Add(ctx, o))

	confirmed := order.Confirmed
	_, err := o.ApplyAdminUpdate(order.AdminUpdate{Status: &confirmed}, suite.actor(identity.RoleAdmin), time.Now())
	suite.Require().NoError(err)

	err = suite.repository.Update(ctx, o, order.OnHold)

	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
	got, getErr := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(getErr)
	suite.Equal(order.Pending, got.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingOrder() {
	o := suite.newOrder(kernel.NewUUID(), time.Now())

	err := suite.repository.Update(suite.T().Context(), o, order.Pending)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_BlocksSecondLocker() {
	ctx := suite.T().Context()
	o := suite.newOrder(kernel.NewUUID(), time.Now())
	suite.Require().NoError(suite.repository.Add(ctx, o))

	tx1 := suite.db.Begin()
	defer tx1.Rollback()
	first := orderrepo.NewGormOrderRepository(tx1, suite.tracker)
	_, err := first.GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)

	tx2 := suite.db.Begin()
	defer tx2.Rollback()
	suite.Require().NoError(tx2.Exec("SET LOCAL lock_timeout = '200ms'").Error)
	second := orderrepo.NewGormOrderRepository(tx2, suite.tracker)

	_, err = second.GetForUpdate(ctx, o.ID())
	suite.Require().Error(err)

	// A plain read is not blocked by the row lock.
	_, err = suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListUpdatedAfter_OldestFirstWithLimit() {
	ctx := suite.T().Context()
	base := time.Now().UTC().Add(-time.Hour).Truncate(time.Millisecond)
	for i := range 4 {
		suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder(kernel.NewUUID(), base.Add(time.Duration(i)*time.Minute))))
	}

	orders, err := suite.repository.ListUpdatedAfter(ctx, ports.UpdateCursor{UpdatedAt: base}, time.Now().UTC(), 2)

	suite.Require().NoError(err)
	suite.Require().Len(orders, 2)
	suite.WithinDuration(base, orders[0].UpdatedAt(), time.Millisecond)
	suite.WithinDuration(base.Add(time.Minute), orders[1].UpdatedAt(), time.Millisecond)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListUpdatedAfter_PagesThroughSharedTimestamp() {
	ctx := suite.T().Context()
	at := time.Now().UTC().Add(-time.Hour).Truncate(time.Millisecond)
	for range 3 {
		suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder(kernel.NewUUID(), at)))
	}
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder(kernel.NewUUID(), at.Add(50*time.Minute))))

	until := at.Add(10 * time.Minute)
	first, err := suite.repository.ListUpdatedAfter(ctx, ports.UpdateCursor{}, until, 2)
	suite.Require().NoError(err)
	suite.Require().Len(first, 2)

	last := first[len(first)-1]
	rest, err := suite.repository.ListUpdatedAfter(ctx,
		ports.UpdateCursor{UpdatedAt: last.UpdatedAt(), OrderID: last.ID()}, until, 2)
	suite.Require().NoError(err)

	// The third order shares the page boundary timestamp; the later one is past until.
	suite.Require().Len(rest, 1)
	seen := map[string]bool{}
	for _, o := range append(first, rest...) {
		suite.WithinDuration(at, o.UpdatedAt(), time.Millisecond)
		seen[o.ID().String()] = true
	}
	suite.Len(seen, 3)
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(userID kernel.UUID, at time.Time) *order.Order {
	lamp, err := order.NewLineItem(kernel.NewUUID(), "Desk Lamp", decimal.RequireFromString("24.50"), 2, "lamp.png")
	suite.Require().NoError(err)
	bulb, err := order.NewLineItem(kernel.NewUUID(), "Bulb", decimal.RequireFromString("3.10"), 3, "")
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), userID, []order.LineItem{lamp, bulb},
		order.ShippingAddress{Name: "Ann Lee", Street: "1 Main St", City: "Reno", State: "NV", Zip: "89501", Country: "US"},
		order.PaymentInfo{Method: "card", TransactionID: "pi_123", Status: "succeeded"},
		order.Pricing{
			TaxRate:               decimal.RequireFromString("0.08"),
			ShippingFlat:          decimal.RequireFromString("9.99"),
			FreeShippingThreshold: decimal.RequireFromString("100"),
		},
		at)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) actor(role identity.Role) identity.Actor {
	a, err := identity.NewActor(kernel.NewUUID(), "staff@example.com", role)
	suite.Require().NoError(err)
	return a
}

func ptr[T any](v T) *T { return &v }

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
