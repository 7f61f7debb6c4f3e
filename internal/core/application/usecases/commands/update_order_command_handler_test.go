package commands_test

import (
	"errors"
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/identity"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type updateFixture struct {
	repo      *MockOrderRepository
	history   *MockOrderHistoryRepository
	uow       *MockOrderUoW
	factory   *MockOrderUoWFactory
	locker    *MockOrderLocker
	publisher *MockOrderEventPublisher
	handler   commands.UpdateOrderCommandHandler
}

func newUpdateFixture() *updateFixture {
	f := &updateFixture{
		repo:      new(MockOrderRepository),
		history:   new(MockOrderHistoryRepository),
		uow:       new(MockOrderUoW),
		factory:   new(MockOrderUoWFactory),
		locker:    new(MockOrderLocker),
		publisher: new(MockOrderEventPublisher),
	}
	f.handler = commands.NewUpdateOrderCommandHandler(f.factory, f.locker, f.publisher, discardLogger())
	return f
}

func (f *updateFixture) assertExpectations(t *testing.T) {
	f.repo.AssertExpectations(t)
	f.history.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.factory.AssertExpectations(t)
	f.locker.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_StatusChange(t *testing.T) {
	ctx := t.Context()
	f := newUpdateFixture()
	o := testOrder(t, kernel.NewUUID(), order.Pending)
	admin := testActor(t, kernel.NewUUID(), identity.RoleAdmin)
	cmd, err := commands.NewUpdateOrderCommand(o.ID(), ptr("confirmed"), nil, nil, admin)
	require.NoError(t, err)

	var recorded *order.HistoryEntry
	mock.InOrder(
		f.locker.On("Lock", ctx, o.ID()).Return(noopUnlock, nil).Once(),
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.repo).Once(),
		f.repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		f.repo.On("Update", ctx, o, order.Pending).Return(nil).Once(),
		f.uow.On("OrderHistoryRepository").Return(f.history).Once(),
		f.history.On("Add", ctx, mock.AnythingOfType("*order.HistoryEntry")).
			Run(func(args mock.Arguments) { recorded = args.Get(1).(*order.HistoryEntry) }).
			Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.publisher.On("PublishStatusChanged", ctx, mock.MatchedBy(func(e ports.OrderStatusChangedEvent) bool {
			return e.Status == "confirmed" && e.PreviousStatus == "pending" && e.ChangedByType == "admin"
		})).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	updated, err := f.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Confirmed, updated.Status())
	require.NotNil(t, recorded)
	assert.Equal(t, order.Pending, recorded.PreviousStatus())
	assert.Equal(t, order.Confirmed, recorded.Status())
	assert.Equal(t, identity.ActorTypeAdmin, recorded.ChangedByType())
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_TrackingOnly(t *testing.T) {
	ctx := t.Context()
	f := newUpdateFixture()
	o := testOrder(t, kernel.NewUUID(), order.Shipped)
	super := testActor(t, kernel.NewUUID(), identity.RoleSuperadmin)
	cmd, err := commands.NewUpdateOrderCommand(o.ID(), nil, ptr("1Z999"), nil, super)
	require.NoError(t, err)

	var recorded *order.HistoryEntry
	f.locker.On("Lock", ctx, o.ID()).Return(noopUnlock, nil).Once()
	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("OrderRepository").Return(f.repo).Once()
	f.repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	f.repo.On("Update", ctx, o, order.Shipped).Return(nil).Once()
	f.uow.On("OrderHistoryRepository").Return(f.history).Once()
	f.history.On("Add", ctx, mock.AnythingOfType("*order.HistoryEntry")).
		Run(func(args mock.Arguments) { recorded = args.Get(1).(*order.HistoryEntry) }).
		Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	updated, err := f.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "1Z999", *updated.TrackingNumber())
	assert.Equal(t, order.Shipped, recorded.Status())
	assert.Equal(t, order.Shipped, recorded.PreviousStatus())
	assert.Equal(t, "tracking_number_updated", recorded.Metadata()["action"])
	assert.Equal(t, identity.ActorTypeSuperadmin, recorded.ChangedByType())
	f.publisher.AssertNotCalled(t, "PublishStatusChanged", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_NotesOnlyWritesNoHistory(t *testing.T) {
	ctx := t.Context()
	f := newUpdateFixture()
	o := testOrder(t, kernel.NewUUID(), order.Processing)
	admin := testActor(t, kernel.NewUUID(), identity.RoleAdmin)
	cmd, err := commands.NewUpdateOrderCommand(o.ID(), ptr("processing"), nil, ptr("gift wrap"), admin)
	require.NoError(t, err)

	f.locker.On("Lock", ctx, o.ID()).Return(noopUnlock, nil).Once()
	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("OrderRepository").Return(f.repo).Once()
	f.repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	f.repo.On("Update", ctx, o, order.Processing).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	updated, err := f.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "gift wrap", *updated.Notes())
	f.uow.AssertNotCalled(t, "OrderHistoryRepository")
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_IllegalTransitionWritesNothing(t *testing.T) {
	ctx := t.Context()
	f := newUpdateFixture()
	o := testOrder(t, kernel.NewUUID(), order.Delivered)
	admin := testActor(t, kernel.NewUUID(), identity.RoleAdmin)
	cmd, err := commands.NewUpdateOrderCommand(o.ID(), ptr("processing"), ptr("1Z1"), ptr("x"), admin)
	require.NoError(t, err)

	f.locker.On("Lock", ctx, o.ID()).Return(noopUnlock, nil).Once()
	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("OrderRepository").Return(f.repo).Once()
	f.repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	_, err = f.handler.Handle(ctx, cmd)

	var illegal *order.IllegalTransitionError
	require.ErrorAs(t, err, &illegal)
	assert.Contains(t, err.Error(), `"delivered"`)
	assert.Contains(t, err.Error(), `"processing"`)
	assert.Equal(t, order.Delivered, o.Status())
	assert.Nil(t, o.TrackingNumber())
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_ForbiddenForUsers(t *testing.T) {
	f := newUpdateFixture()
	user := testActor(t, kernel.NewUUID(), identity.RoleUser)
	cmd, err := commands.NewUpdateOrderCommand(kernel.NewUUID(), ptr("confirmed"), nil, nil, user)
	require.NoError(t, err)

	_, err = f.handler.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, order.ErrForbidden)
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	f := newUpdateFixture()
	id := kernel.NewUUID()
	admin := testActor(t, kernel.NewUUID(), identity.RoleAdmin)
	cmd, err := commands.NewUpdateOrderCommand(id, ptr("confirmed"), nil, nil, admin)
	require.NoError(t, err)

	f.locker.On("Lock", ctx, id).Return(noopUnlock, nil).Once()
	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("OrderRepository").Return(f.repo).Once()
	f.repo.On("GetForUpdate", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	_, err = f.handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_LostCompareAndSwap(t *testing.T) {
	ctx := t.Context()
	f := newUpdateFixture()
	o := testOrder(t, kernel.NewUUID(), order.Confirmed)
	admin := testActor(t, kernel.NewUUID(), identity.RoleAdmin)
	cmd, err := commands.NewUpdateOrderCommand(o.ID(), ptr("processing"), nil, nil, admin)
	require.NoError(t, err)

	f.locker.On("Lock", ctx, o.ID()).Return(noopUnlock, nil).Once()
	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("OrderRepository").Return(f.repo).Once()
	f.repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	f.repo.On("Update", ctx, o, order.Confirmed).Return(errs.NewVersionIsInvalidError("status")).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	_, err = f.handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_HistoryFailureRollsBack(t *testing.T) {
	ctx := t.Context()
	f := newUpdateFixture()
	o := testOrder(t, kernel.NewUUID(), order.Pending)
	admin := testActor(t, kernel.NewUUID(), identity.RoleAdmin)
	cmd, err := commands.NewUpdateOrderCommand(o.ID(), ptr("on_hold"), nil, nil, admin)
	require.NoError(t, err)

	f.locker.On("Lock", ctx, o.ID()).Return(noopUnlock, nil).Once()
	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("OrderRepository").Return(f.repo).Once()
	f.repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	f.repo.On("Update", ctx, o, order.Pending).Return(nil).Once()
	f.uow.On("OrderHistoryRepository").Return(f.history).Once()
	f.history.On("Add", ctx, mock.Anything).Return(errors.New("disk full")).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	_, err = f.handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "record history")
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_PublishFailureIsNotFatal(t *testing.T) {
	ctx := t.Context()
	f := newUpdateFixture()
	o := testOrder(t, kernel.NewUUID(), order.Processing)
	admin := testActor(t, kernel.NewUUID(), identity.RoleAdmin)
	cmd, err := commands.NewUpdateOrderCommand(o.ID(), ptr("shipped"), ptr("1Z5"), nil, admin)
	require.NoError(t, err)

	f.locker.On("Lock", ctx, o.ID()).Return(noopUnlock, nil).Once()
	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("OrderRepository").Return(f.repo).Once()
	f.repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	f.repo.On("Update", ctx, o, order.Processing).Return(nil).Once()
	f.uow.On("OrderHistoryRepository").Return(f.history).Once()
	f.history.On("Add", ctx, mock.Anything).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.publisher.On("PublishStatusChanged", ctx, mock.Anything).Return(errors.New("broker down")).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	updated, err := f.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Shipped, updated.Status())
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_LockError(t *testing.T) {
	ctx := t.Context()
	f := newUpdateFixture()
	id := kernel.NewUUID()
	admin := testActor(t, kernel.NewUUID(), identity.RoleAdmin)
	cmd, err := commands.NewUpdateOrderCommand(id, nil, nil, ptr("x"), admin)
	require.NoError(t, err)

	f.locker.On("Lock", ctx, id).Return(nil, ports.ErrOrderLocked).Once()

	_, err = f.handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, ports.ErrOrderLocked)
	f.assertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	f := newUpdateFixture()

	_, err := f.handler.Handle(t.Context(), commands.UpdateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrUpdateOrderCommandIsNotConstructed)
}
