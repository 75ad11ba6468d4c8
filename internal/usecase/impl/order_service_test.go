package impl

import (
	"context"
	"testing"

	"campuseats/internal/domain/entity"
	domainerrors "campuseats/internal/domain/errors"
	"campuseats/internal/domain/repository"
	mockrepo "campuseats/internal/mocks/repository"
	mockservice "campuseats/internal/mocks/service"
	"campuseats/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderServiceMocks struct {
	txManager      *mockrepo.MockTransactionManager
	factory        *mockrepo.MockRepositoryFactory
	accountRepo    *mockrepo.MockAccountRepository
	menuItemRepo   *mockrepo.MockMenuItemRepository
	orderRepo      *mockrepo.MockOrderRepository
	eventPublisher *mockservice.MockEventPublisher
}

func newOrderService(t *testing.T) (usecase.OrderUsecase, *orderServiceMocks) {
	t.Helper()

	mocks := &orderServiceMocks{
		txManager:      mockrepo.NewMockTransactionManager(t),
		factory:        mockrepo.NewMockRepositoryFactory(t),
		accountRepo:    mockrepo.NewMockAccountRepository(t),
		menuItemRepo:   mockrepo.NewMockMenuItemRepository(t),
		orderRepo:      mockrepo.NewMockOrderRepository(t),
		eventPublisher: mockservice.NewMockEventPublisher(t),
	}

	svc := NewOrderService(OrderServiceParams{
		TxManager:      mocks.txManager,
		OrderRepo:      mocks.orderRepo,
		EventPublisher: mocks.eventPublisher,
		Logger:         discardLogger(),
	})

	return svc, mocks
}

func listableVendor() *entity.Account {
	vendor := approvedAccount(entity.RoleVendor)
	vendor.VendorProfile = &entity.VendorProfile{
		AccountID:      vendor.ID,
		StoreName:      "陳姨小吃",
		ImagesApproved: true,
	}

	return vendor
}

func TestOrderService_PlaceOrder(t *testing.T) {
	svc, mocks := newOrderService(t)

	vendor := listableVendor()
	clientID := uuid.New()

	riceID := uuid.New()
	teaID := uuid.New()

	mocks.txManager.ExecutePassthrough(mocks.factory)
	mocks.factory.On("AccountRepo").Return(mocks.accountRepo)
	mocks.factory.On("MenuItemRepo").Return(mocks.menuItemRepo)
	mocks.factory.On("OrderRepo").Return(mocks.orderRepo)

	mocks.accountRepo.On("FindByID", mock.Anything, vendor.ID).Return(vendor, nil)
	mocks.menuItemRepo.On("FindByID", mock.Anything, riceID).Return(&entity.MenuItem{
		ID:          riceID,
		VendorID:    vendor.ID,
		Name:        "滷肉飯",
		Price:       decimal.NewFromFloat(65.00),
		IsAvailable: true,
	}, nil)
	mocks.menuItemRepo.On("FindByID", mock.Anything, teaID).Return(&entity.MenuItem{
		ID:          teaID,
		VendorID:    vendor.ID,
		Name:        "紅茶",
		Price:       decimal.NewFromFloat(25.50),
		IsAvailable: true,
	}, nil)
	mocks.orderRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Order")).
		Run(func(args mock.Arguments) {
			order := args.Get(1).(*entity.Order)
			order.ID = uuid.New()
		}).
		Return(nil)
	mocks.eventPublisher.On("PublishOrderStatus", mock.Anything, mock.AnythingOfType("*service.OrderStatusEvent")).
		Return(nil)

	order, err := svc.PlaceOrder(context.Background(), clientID, &usecase.PlaceOrderInput{
		VendorID: vendor.ID,
		Items: []usecase.OrderItemInput{
			{MenuItemID: riceID, Quantity: 2},
			{MenuItemID: teaID, Quantity: 1},
		},
		DeliveryAddress: "男一舍 302 室",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromFloat(155.50)), "got %s", order.TotalAmount)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "滷肉飯", order.Items[0].Name, "line items snapshot the menu at placement")
}

func TestOrderService_PlaceOrder_Empty(t *testing.T) {
	svc, _ := newOrderService(t)

	_, err := svc.PlaceOrder(context.Background(), uuid.New(), &usecase.PlaceOrderInput{
		VendorID:        uuid.New(),
		DeliveryAddress: "男一舍 302 室",
	})
	require.ErrorIs(t, err, domainerrors.ErrEmptyOrder)
}

func TestOrderService_PlaceOrder_VendorNotListable(t *testing.T) {
	svc, mocks := newOrderService(t)

	// Approved vendor whose storefront images were never approved.
	vendor := listableVendor()
	vendor.VendorProfile.ImagesApproved = false

	mocks.txManager.ExecutePassthrough(mocks.factory)
	mocks.factory.On("AccountRepo").Return(mocks.accountRepo)
	mocks.factory.On("MenuItemRepo").Return(mocks.menuItemRepo)
	mocks.factory.On("OrderRepo").Return(mocks.orderRepo)
	mocks.accountRepo.On("FindByID", mock.Anything, vendor.ID).Return(vendor, nil)

	_, err := svc.PlaceOrder(context.Background(), uuid.New(), &usecase.PlaceOrderInput{
		VendorID:        vendor.ID,
		Items:           []usecase.OrderItemInput{{MenuItemID: uuid.New(), Quantity: 1}},
		DeliveryAddress: "男一舍 302 室",
	})
	require.ErrorIs(t, err, domainerrors.ErrVendorNotApproved)
}

func TestOrderService_PlaceOrder_ForeignMenuItem(t *testing.T) {
	svc, mocks := newOrderService(t)

	vendor := listableVendor()
	foreignItem := uuid.New()

	mocks.txManager.ExecutePassthrough(mocks.factory)
	mocks.factory.On("AccountRepo").Return(mocks.accountRepo)
	mocks.factory.On("MenuItemRepo").Return(mocks.menuItemRepo)
	mocks.factory.On("OrderRepo").Return(mocks.orderRepo)
	mocks.accountRepo.On("FindByID", mock.Anything, vendor.ID).Return(vendor, nil)
	mocks.menuItemRepo.On("FindByID", mock.Anything, foreignItem).Return(&entity.MenuItem{
		ID:          foreignItem,
		VendorID:    uuid.New(),
		IsAvailable: true,
	}, nil)

	_, err := svc.PlaceOrder(context.Background(), uuid.New(), &usecase.PlaceOrderInput{
		VendorID:        vendor.ID,
		Items:           []usecase.OrderItemInput{{MenuItemID: foreignItem, Quantity: 1}},
		DeliveryAddress: "男一舍 302 室",
	})
	require.ErrorIs(t, err, domainerrors.ErrMenuItemNotFound)
}

func TestOrderService_GetOrder_Parties(t *testing.T) {
	clientID := uuid.New()
	vendorID := uuid.New()
	deliveryID := uuid.New()

	order := &entity.Order{
		ID:         uuid.New(),
		ClientID:   clientID,
		VendorID:   vendorID,
		DeliveryID: &deliveryID,
		Status:     entity.OrderStatusDelivering,
	}

	tests := []struct {
		name    string
		actor   usecase.Actor
		wantErr error
	}{
		{name: "client party", actor: usecase.Actor{AccountID: clientID, Role: entity.RoleClient}},
		{name: "vendor party", actor: usecase.Actor{AccountID: vendorID, Role: entity.RoleVendor}},
		{name: "courier party", actor: usecase.Actor{AccountID: deliveryID, Role: entity.RoleDelivery}},
		{name: "admin oversight", actor: usecase.Actor{AccountID: uuid.New(), Role: entity.RoleAdmin}},
		{name: "stranger", actor: usecase.Actor{AccountID: uuid.New(), Role: entity.RoleClient}, wantErr: domainerrors.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mocks := newOrderService(t)
			mocks.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

			got, err := svc.GetOrder(context.Background(), tt.actor, order.ID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, order.ID, got.ID)
		})
	}
}

func TestOrderService_GetOrder_NotFound(t *testing.T) {
	svc, mocks := newOrderService(t)

	orderID := uuid.New()
	mocks.orderRepo.On("FindByID", mock.Anything, orderID).
		Return(nil, repository.ErrOrderNotFound)

	actor := usecase.Actor{AccountID: uuid.New(), Role: entity.RoleAdmin}
	_, err := svc.GetOrder(context.Background(), actor, orderID)
	require.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestOrderService_AdvanceOrder(t *testing.T) {
	svc, mocks := newOrderService(t)

	vendorID := uuid.New()
	order := &entity.Order{
		ID:       uuid.New(),
		ClientID: uuid.New(),
		VendorID: vendorID,
		Status:   entity.OrderStatusPending,
	}

	mocks.txManager.ExecutePassthrough(mocks.factory)
	mocks.factory.On("OrderRepo").Return(mocks.orderRepo)
	mocks.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	mocks.orderRepo.On("UpdateStatus", mock.Anything, order.ID, entity.OrderStatusPending, entity.OrderStatusConfirmed).
		Return(true, nil)
	mocks.eventPublisher.On("PublishOrderStatus", mock.Anything, mock.AnythingOfType("*service.OrderStatusEvent")).
		Return(nil)

	advanced, err := svc.AdvanceOrder(context.Background(), vendorID, order.ID, &usecase.VendorOrderTransitionInput{
		Status: entity.OrderStatusConfirmed,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusConfirmed, advanced.Status)
}

func TestOrderService_AdvanceOrder_LostRace(t *testing.T) {
	svc, mocks := newOrderService(t)

	vendorID := uuid.New()
	order := &entity.Order{
		ID:       uuid.New(),
		ClientID: uuid.New(),
		VendorID: vendorID,
		Status:   entity.OrderStatusPending,
	}

	mocks.txManager.ExecutePassthrough(mocks.factory)
	mocks.factory.On("OrderRepo").Return(mocks.orderRepo)
	mocks.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	// A concurrent request moved the order first.
	mocks.orderRepo.On("UpdateStatus", mock.Anything, order.ID, entity.OrderStatusPending, entity.OrderStatusConfirmed).
		Return(false, nil)

	_, err := svc.AdvanceOrder(context.Background(), vendorID, order.ID, &usecase.VendorOrderTransitionInput{
		Status: entity.OrderStatusConfirmed,
	})
	require.ErrorIs(t, err, domainerrors.ErrInvalidOrderTransition)
}

func TestOrderService_AdvanceOrder_ForeignOrder(t *testing.T) {
	svc, mocks := newOrderService(t)

	order := &entity.Order{
		ID:       uuid.New(),
		ClientID: uuid.New(),
		VendorID: uuid.New(),
		Status:   entity.OrderStatusPending,
	}

	mocks.txManager.ExecutePassthrough(mocks.factory)
	mocks.factory.On("OrderRepo").Return(mocks.orderRepo)
	mocks.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	_, err := svc.AdvanceOrder(context.Background(), uuid.New(), order.ID, &usecase.VendorOrderTransitionInput{
		Status: entity.OrderStatusConfirmed,
	})
	require.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestOrderService_CancelOrder_WhileDelivering(t *testing.T) {
	svc, mocks := newOrderService(t)

	vendorID := uuid.New()
	deliveryID := uuid.New()
	order := &entity.Order{
		ID:         uuid.New(),
		ClientID:   uuid.New(),
		VendorID:   vendorID,
		DeliveryID: &deliveryID,
		Status:     entity.OrderStatusDelivering,
	}

	mocks.txManager.ExecutePassthrough(mocks.factory)
	mocks.factory.On("OrderRepo").Return(mocks.orderRepo)
	mocks.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	_, err := svc.CancelOrder(context.Background(), vendorID, order.ID)
	require.ErrorIs(t, err, domainerrors.ErrInvalidOrderTransition, "an order already out for delivery cannot be cancelled")
}

func TestOrderService_CancelOrder(t *testing.T) {
	svc, mocks := newOrderService(t)

	vendorID := uuid.New()
	order := &entity.Order{
		ID:       uuid.New(),
		ClientID: uuid.New(),
		VendorID: vendorID,
		Status:   entity.OrderStatusReady,
	}

	mocks.txManager.ExecutePassthrough(mocks.factory)
	mocks.factory.On("OrderRepo").Return(mocks.orderRepo)
	mocks.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	mocks.orderRepo.On("UpdateStatus", mock.Anything, order.ID, entity.OrderStatusReady, entity.OrderStatusCancelled).
		Return(true, nil)
	mocks.eventPublisher.On("PublishOrderStatus", mock.Anything, mock.Anything).Return(nil)

	cancelled, err := svc.CancelOrder(context.Background(), vendorID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, cancelled.Status)
}

func TestOrderService_AdvanceOrder_UnknownStatus(t *testing.T) {
	svc, _ := newOrderService(t)

	_, err := svc.AdvanceOrder(context.Background(), uuid.New(), uuid.New(), &usecase.VendorOrderTransitionInput{
		Status: entity.OrderStatus("teleported"),
	})
	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}
