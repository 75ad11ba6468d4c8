package impl

import (
	"context"
	"testing"

	"campuseats/internal/domain/entity"
	domainerrors "campuseats/internal/domain/errors"
	mockrepo "campuseats/internal/mocks/repository"
	mockservice "campuseats/internal/mocks/service"
	"campuseats/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type courierServiceMocks struct {
	txManager      *mockrepo.MockTransactionManager
	factory        *mockrepo.MockRepositoryFactory
	accountRepo    *mockrepo.MockAccountRepository
	orderRepo      *mockrepo.MockOrderRepository
	eventPublisher *mockservice.MockEventPublisher
}

func newCourierService(t *testing.T) (usecase.CourierUsecase, *courierServiceMocks) {
	t.Helper()

	mocks := &courierServiceMocks{
		txManager:      mockrepo.NewMockTransactionManager(t),
		factory:        mockrepo.NewMockRepositoryFactory(t),
		accountRepo:    mockrepo.NewMockAccountRepository(t),
		orderRepo:      mockrepo.NewMockOrderRepository(t),
		eventPublisher: mockservice.NewMockEventPublisher(t),
	}

	svc := NewCourierService(CourierServiceParams{
		TxManager:      mocks.txManager,
		AccountRepo:    mocks.accountRepo,
		OrderRepo:      mocks.orderRepo,
		EventPublisher: mocks.eventPublisher,
		Logger:         discardLogger(),
	})

	return svc, mocks
}

func courierAccount() *entity.Account {
	courier := approvedAccount(entity.RoleDelivery)
	courier.DeliveryProfile = &entity.DeliveryProfile{
		AccountID:   courier.ID,
		VehicleType: "scooter",
		IsAvailable: true,
	}

	return courier
}

func TestCourierService_ClaimOrder(t *testing.T) {
	svc, mocks := newCourierService(t)

	courier := courierAccount()
	orderID := uuid.New()

	mocks.accountRepo.On("FindByID", mock.Anything, courier.ID).Return(courier, nil)
	mocks.orderRepo.On("Claim", mock.Anything, orderID, courier.ID).Return(true, nil)
	mocks.orderRepo.On("FindByID", mock.Anything, orderID).Return(&entity.Order{
		ID:         orderID,
		ClientID:   uuid.New(),
		VendorID:   uuid.New(),
		DeliveryID: &courier.ID,
		Status:     entity.OrderStatusDelivering,
	}, nil)
	mocks.eventPublisher.On("PublishOrderStatus", mock.Anything, mock.AnythingOfType("*service.OrderStatusEvent")).
		Return(nil)

	order, err := svc.ClaimOrder(context.Background(), courier.ID, orderID)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusDelivering, order.Status)
	require.NotNil(t, order.DeliveryID)
	assert.Equal(t, courier.ID, *order.DeliveryID)
}

func TestCourierService_ClaimOrder_LostRace(t *testing.T) {
	svc, mocks := newCourierService(t)

	courier := courierAccount()
	orderID := uuid.New()

	mocks.accountRepo.On("FindByID", mock.Anything, courier.ID).Return(courier, nil)
	// Another courier's conditional update won.
	mocks.orderRepo.On("Claim", mock.Anything, orderID, courier.ID).Return(false, nil)

	_, err := svc.ClaimOrder(context.Background(), courier.ID, orderID)
	require.ErrorIs(t, err, domainerrors.ErrOrderAlreadyClaimed)
}

func TestCourierService_ClaimOrder_OffShift(t *testing.T) {
	svc, mocks := newCourierService(t)

	courier := courierAccount()
	courier.DeliveryProfile.IsAvailable = false
	mocks.accountRepo.On("FindByID", mock.Anything, courier.ID).Return(courier, nil)

	// An off-shift courier must not be assignable, however ready the order.
	_, err := svc.ClaimOrder(context.Background(), courier.ID, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrCourierUnavailable)
}

func TestCourierService_ListReadyOrders_OffShift(t *testing.T) {
	svc, mocks := newCourierService(t)

	courier := courierAccount()
	courier.DeliveryProfile.IsAvailable = false
	mocks.accountRepo.On("FindByID", mock.Anything, courier.ID).Return(courier, nil)

	_, err := svc.ListReadyOrders(context.Background(), courier.ID)
	require.ErrorIs(t, err, domainerrors.ErrCourierUnavailable)
}

func TestCourierService_ClaimOrder_NoDeliveryProfile(t *testing.T) {
	svc, mocks := newCourierService(t)

	notACourier := approvedAccount(entity.RoleClient)
	mocks.accountRepo.On("FindByID", mock.Anything, notACourier.ID).Return(notACourier, nil)

	_, err := svc.ClaimOrder(context.Background(), notACourier.ID, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrProfileMissing)
}

func TestCourierService_CompleteOrder(t *testing.T) {
	svc, mocks := newCourierService(t)

	courier := courierAccount()
	order := &entity.Order{
		ID:         uuid.New(),
		ClientID:   uuid.New(),
		VendorID:   uuid.New(),
		DeliveryID: &courier.ID,
		Status:     entity.OrderStatusDelivering,
	}

	mocks.txManager.ExecutePassthrough(mocks.factory)
	mocks.factory.On("OrderRepo").Return(mocks.orderRepo)
	mocks.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	mocks.orderRepo.On("UpdateStatus", mock.Anything, order.ID, entity.OrderStatusDelivering, entity.OrderStatusDelivered).
		Return(true, nil)
	mocks.eventPublisher.On("PublishOrderStatus", mock.Anything, mock.AnythingOfType("*service.OrderStatusEvent")).
		Return(nil)

	completed, err := svc.CompleteOrder(context.Background(), courier.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, completed.Status)
}

func TestCourierService_CompleteOrder_NotAssignee(t *testing.T) {
	svc, mocks := newCourierService(t)

	assignee := uuid.New()
	order := &entity.Order{
		ID:         uuid.New(),
		ClientID:   uuid.New(),
		VendorID:   uuid.New(),
		DeliveryID: &assignee,
		Status:     entity.OrderStatusDelivering,
	}

	mocks.txManager.ExecutePassthrough(mocks.factory)
	mocks.factory.On("OrderRepo").Return(mocks.orderRepo)
	mocks.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	_, err := svc.CompleteOrder(context.Background(), uuid.New(), order.ID)
	require.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestCourierService_CompleteOrder_NotDelivering(t *testing.T) {
	svc, mocks := newCourierService(t)

	courier := courierAccount()
	order := &entity.Order{
		ID:         uuid.New(),
		ClientID:   uuid.New(),
		VendorID:   uuid.New(),
		DeliveryID: &courier.ID,
		Status:     entity.OrderStatusDelivered,
	}

	mocks.txManager.ExecutePassthrough(mocks.factory)
	mocks.factory.On("OrderRepo").Return(mocks.orderRepo)
	mocks.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	_, err := svc.CompleteOrder(context.Background(), courier.ID, order.ID)
	require.ErrorIs(t, err, domainerrors.ErrInvalidOrderTransition)
}

func TestCourierService_SetAvailability_OffShiftClearsLocation(t *testing.T) {
	svc, mocks := newCourierService(t)

	courier := courierAccount()
	lat, lng := 25.0330, 121.5654
	courier.DeliveryProfile.LastLatitude = &lat
	courier.DeliveryProfile.LastLongitude = &lng

	mocks.accountRepo.On("FindByID", mock.Anything, courier.ID).Return(courier, nil)
	mocks.accountRepo.On("Update", mock.Anything, mock.MatchedBy(func(account *entity.Account) bool {
		profile := account.DeliveryProfile

		return !profile.IsAvailable && profile.LastLatitude == nil && profile.LastLongitude == nil
	})).Return(nil)

	err := svc.SetAvailability(context.Background(), courier.ID, &usecase.SetAvailabilityInput{Available: false})
	require.NoError(t, err)
}

func TestCourierService_ShareLocation(t *testing.T) {
	svc, mocks := newCourierService(t)

	courier := courierAccount()

	mocks.accountRepo.On("FindByID", mock.Anything, courier.ID).Return(courier, nil)
	mocks.accountRepo.On("Update", mock.Anything, mock.MatchedBy(func(account *entity.Account) bool {
		profile := account.DeliveryProfile

		return profile.LastLatitude != nil && *profile.LastLatitude == 25.0330 &&
			profile.LastLongitude != nil && *profile.LastLongitude == 121.5654 &&
			profile.LastLocationAt != nil
	})).Return(nil)
	mocks.eventPublisher.On("PublishDeliveryLocation", mock.Anything, mock.AnythingOfType("*service.DeliveryLocationEvent")).
		Return(nil)

	err := svc.ShareLocation(context.Background(), courier.ID, &usecase.ShareLocationInput{
		Latitude:  25.0330,
		Longitude: 121.5654,
	})
	require.NoError(t, err)
}

func TestCourierService_ListReadyOrders(t *testing.T) {
	svc, mocks := newCourierService(t)

	courier := courierAccount()
	mocks.accountRepo.On("FindByID", mock.Anything, courier.ID).Return(courier, nil)
	mocks.orderRepo.On("ListUnclaimedReady", mock.Anything).Return([]*entity.Order{
		{ID: uuid.New(), Status: entity.OrderStatusReady},
	}, nil)

	orders, err := svc.ListReadyOrders(context.Background(), courier.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}
