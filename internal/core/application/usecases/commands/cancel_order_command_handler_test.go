package commands_test

import (
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/identity"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type cancelFixture struct {
	repo      *MockOrderRepository
	history   *MockOrderHistoryRepository
	uow       *MockOrderUoW
	factory   *MockOrderUoWFactory
	locker    *MockOrderLocker
	publisher *MockOrderEventPublisher
	handler   commands.CancelOrderCommandHandler
}

func newCancelFixture() *cancelFixture {
	f := &cancelFixture{
		repo:      new(MockOrderRepository),
		history:   new(MockOrderHistoryRepository),
		uow:       new(MockOrderUoW),
		factory:   new(MockOrderUoWFactory),
		locker:    new(MockOrderLocker),
		publisher: new(MockOrderEventPublisher),
	}
	f.handler = commands.NewCancelOrderCommandHandler(f.factory, f.locker, f.publisher, discardLogger())
	return f
}

// expectRead wires the calls every cancellation makes before deciding.
func (f *cancelFixture) expectRead(t *testing.T, o *order.Order) {
	t.Helper()
	ctx := t.Context()
	f.locker.On("Lock", ctx, o.ID()).Return(noopUnlock, nil).Once()
	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("OrderRepository").Return(f.repo).Once()
	f.repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
}

func TestCancelOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newCancelFixture()
	owner := kernel.NewUUID()
	o := testOrder(t, owner, order.Pending)
	user := testActor(t, owner, identity.RoleUser)
	cmd, err := commands.NewCancelOrderCommand(o.ID(), "changed my mind", user)
	require.NoError(t, err)

	var recorded *order.HistoryEntry
	f.expectRead(t, o)
	f.repo.On("Update", ctx, o, order.Pending).Return(nil).Once()
	f.uow.On("OrderHistoryRepository").Return(f.history).Once()
	f.history.On("Add", ctx, mock.AnythingOfType("*order.HistoryEntry")).
		Run(func(args mock.Arguments) { recorded = args.Get(1).(*order.HistoryEntry) }).
		Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.publisher.On("PublishStatusChanged", ctx, mock.Anything).Return(nil).Once()

	result, err := f.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "Order cancelled successfully", result.Message)
	assert.Equal(t, order.Cancelled, result.Order.Status())
	assert.True(t, owner.IsEqual(*result.Order.CancelledBy()))
	assert.NotNil(t, result.Order.CancelledAt())
	assert.Equal(t, "changed my mind", *result.Order.CancellationReason())

	require.NotNil(t, recorded)
	assert.Equal(t, order.Pending, recorded.PreviousStatus())
	assert.Equal(t, order.Cancelled, recorded.Status())
	assert.Equal(t, identity.ActorTypeUser, recorded.ChangedByType())
	assert.Equal(t, "changed my mind", *recorded.Notes())
	f.repo.AssertExpectations(t)
	f.history.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_Rejections(t *testing.T) {
	owner := kernel.NewUUID()

	testCases := []struct {
		name   string
		status order.Status
		actor  func(t *testing.T) identity.Actor
		check  func(t *testing.T, err error)
	}{
		{
			name:   "shipped order is not cancellable",
			status: order.Shipped,
			actor:  func(t *testing.T) identity.Actor { return testActor(t, owner, identity.RoleUser) },
			check: func(t *testing.T, err error) {
				var notCancellable *order.NotCancellableError
				require.ErrorAs(t, err, &notCancellable)
				assert.Contains(t, err.Error(), "Current status: shipped.")
			},
		},
		{
			name:   "cancelled order reports already cancelled",
			status: order.Cancelled,
			actor:  func(t *testing.T) identity.Actor { return testActor(t, owner, identity.RoleUser) },
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, order.ErrAlreadyCancelled)
			},
		},
		{
			name:   "someone else's order is forbidden",
			status: order.Pending,
			actor:  func(t *testing.T) identity.Actor { return testActor(t, kernel.NewUUID(), identity.RoleUser) },
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, order.ErrForbidden)
			},
		},
		{
			name:   "admins do not cancel through the owner path",
			status: order.Confirmed,
			actor:  func(t *testing.T) identity.Actor { return testActor(t, kernel.NewUUID(), identity.RoleSuperadmin) },
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, order.ErrForbidden)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newCancelFixture()
			o := testOrder(t, owner, tc.status)
			before := o.Snapshot()
			cmd, err := commands.NewCancelOrderCommand(o.ID(), "reason", tc.actor(t))
			require.NoError(t, err)
			f.expectRead(t, o)

			_, err = f.handler.Handle(t.Context(), cmd)

			tc.check(t, err)
			assert.Equal(t, before, o.Snapshot())
			f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
			f.uow.AssertNotCalled(t, "OrderHistoryRepository")
			f.uow.AssertExpectations(t)
		})
	}
}

func TestCancelOrderCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	f := newCancelFixture()
	id := kernel.NewUUID()
	cmd, err := commands.NewCancelOrderCommand(id, "", testActor(t, kernel.NewUUID(), identity.RoleUser))
	require.NoError(t, err)

	f.locker.On("Lock", ctx, id).Return(noopUnlock, nil).Once()
	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("OrderRepository").Return(f.repo).Once()
	f.repo.On("GetForUpdate", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	_, err = f.handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestNewCancelOrderCommand(t *testing.T) {
	t.Run("should keep the raw reason", func(t *testing.T) {
		id := kernel.NewUUID()
		cmd, err := commands.NewCancelOrderCommand(id, "  too slow ", testActor(t, kernel.NewUUID(), identity.RoleUser))

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, id.IsEqual(cmd.OrderID()))
		assert.Equal(t, "  too slow ", cmd.Reason())
	})

	t.Run("should reject zero id and actor", func(t *testing.T) {
		_, err := commands.NewCancelOrderCommand(kernel.UUID{}, "", identity.Actor{})

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, identity.ErrActorIsNotConstructed)
	})
}
