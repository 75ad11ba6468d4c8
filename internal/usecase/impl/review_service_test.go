package impl

import (
	"context"
	"testing"

	"campuseats/internal/domain/entity"
	domainerrors "campuseats/internal/domain/errors"
	"campuseats/internal/domain/repository"
	mockrepo "campuseats/internal/mocks/repository"
	"campuseats/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type reviewServiceMocks struct {
	txManager  *mockrepo.MockTransactionManager
	factory    *mockrepo.MockRepositoryFactory
	orderRepo  *mockrepo.MockOrderRepository
	reviewRepo *mockrepo.MockReviewRepository
}

func newReviewService(t *testing.T) (usecase.ReviewUsecase, *reviewServiceMocks) {
	t.Helper()

	mocks := &reviewServiceMocks{
		txManager:  mockrepo.NewMockTransactionManager(t),
		factory:    mockrepo.NewMockRepositoryFactory(t),
		orderRepo:  mockrepo.NewMockOrderRepository(t),
		reviewRepo: mockrepo.NewMockReviewRepository(t),
	}

	svc := NewReviewService(ReviewServiceParams{
		TxManager:  mocks.txManager,
		ReviewRepo: mocks.reviewRepo,
		Logger:     discardLogger(),
	})

	return svc, mocks
}

func deliveredOrder(clientID uuid.UUID) *entity.Order {
	return &entity.Order{
		ID:       uuid.New(),
		ClientID: clientID,
		VendorID: uuid.New(),
		Status:   entity.OrderStatusDelivered,
	}
}

func TestReviewService_CreateReview(t *testing.T) {
	svc, mocks := newReviewService(t)

	clientID := uuid.New()
	order := deliveredOrder(clientID)

	mocks.txManager.ExecutePassthrough(mocks.factory)
	mocks.factory.On("OrderRepo").Return(mocks.orderRepo)
	mocks.factory.On("ReviewRepo").Return(mocks.reviewRepo)
	mocks.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	mocks.reviewRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Review")).
		Run(func(args mock.Arguments) {
			review := args.Get(1).(*entity.Review)
			review.ID = uuid.New()
		}).
		Return(nil)

	review, err := svc.CreateReview(context.Background(), clientID, &usecase.CreateReviewInput{
		OrderID:        order.ID,
		OverallRating:  5,
		FoodRating:     4,
		DeliveryRating: 5,
		Comment:        "滷肉飯超好吃，外送也很快",
	})
	require.NoError(t, err)

	assert.Equal(t, order.VendorID, review.VendorID)
	assert.True(t, review.IsApproved, "reviews start visible until moderated")
}

func TestReviewService_CreateReview_OrderNotDelivered(t *testing.T) {
	svc, mocks := newReviewService(t)

	clientID := uuid.New()
	order := deliveredOrder(clientID)
	order.Status = entity.OrderStatusDelivering

	mocks.txManager.ExecutePassthrough(mocks.factory)
	mocks.factory.On("OrderRepo").Return(mocks.orderRepo)
	mocks.factory.On("ReviewRepo").Return(mocks.reviewRepo)
	mocks.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	_, err := svc.CreateReview(context.Background(), clientID, &usecase.CreateReviewInput{
		OrderID:        order.ID,
		OverallRating:  5,
		FoodRating:     5,
		DeliveryRating: 5,
	})
	require.ErrorIs(t, err, domainerrors.ErrOrderNotDelivered)
}

func TestReviewService_CreateReview_NotTheClient(t *testing.T) {
	svc, mocks := newReviewService(t)

	order := deliveredOrder(uuid.New())

	mocks.txManager.ExecutePassthrough(mocks.factory)
	mocks.factory.On("OrderRepo").Return(mocks.orderRepo)
	mocks.factory.On("ReviewRepo").Return(mocks.reviewRepo)
	mocks.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	_, err := svc.CreateReview(context.Background(), uuid.New(), &usecase.CreateReviewInput{
		OrderID:        order.ID,
		OverallRating:  5,
		FoodRating:     5,
		DeliveryRating: 5,
	})
	require.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestReviewService_CreateReview_Duplicate(t *testing.T) {
	svc, mocks := newReviewService(t)

	clientID := uuid.New()
	order := deliveredOrder(clientID)

	mocks.txManager.ExecutePassthrough(mocks.factory)
	mocks.factory.On("OrderRepo").Return(mocks.orderRepo)
	mocks.factory.On("ReviewRepo").Return(mocks.reviewRepo)
	mocks.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	// The unique index on order_id catches the race.
	mocks.reviewRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Review")).
		Return(repository.ErrReviewExists)

	_, err := svc.CreateReview(context.Background(), clientID, &usecase.CreateReviewInput{
		OrderID:        order.ID,
		OverallRating:  4,
		FoodRating:     4,
		DeliveryRating: 4,
	})
	require.ErrorIs(t, err, domainerrors.ErrReviewAlreadyExists)
}

func TestReviewService_ListVendorReviews_PublicHidesModerated(t *testing.T) {
	svc, mocks := newReviewService(t)

	vendorID := uuid.New()
	visible := &entity.Review{ID: uuid.New(), VendorID: vendorID, IsApproved: true}
	hidden := &entity.Review{ID: uuid.New(), VendorID: vendorID, IsApproved: false, IsFlagged: true}

	mocks.reviewRepo.On("ListByVendor", mock.Anything, vendorID).
		Return([]*entity.Review{visible, hidden}, nil).Twice()

	public, err := svc.ListVendorReviews(context.Background(), vendorID, false)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, visible.ID, public[0].ID)

	all, err := svc.ListVendorReviews(context.Background(), vendorID, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestReviewService_RespondToReview(t *testing.T) {
	svc, mocks := newReviewService(t)

	vendorID := uuid.New()
	review := &entity.Review{ID: uuid.New(), VendorID: vendorID, IsApproved: true}

	mocks.txManager.ExecutePassthrough(mocks.factory)
	mocks.factory.On("ReviewRepo").Return(mocks.reviewRepo)
	mocks.reviewRepo.On("FindByID", mock.Anything, review.ID).Return(review, nil)
	mocks.reviewRepo.On("Update", mock.Anything, mock.MatchedBy(func(updated *entity.Review) bool {
		return updated.VendorResponse != nil && *updated.VendorResponse == "謝謝支持！"
	})).Return(nil)

	responded, err := svc.RespondToReview(context.Background(), vendorID, review.ID, &usecase.RespondReviewInput{
		Response: "謝謝支持！",
	})
	require.NoError(t, err)
	require.NotNil(t, responded.VendorResponse)
}

func TestReviewService_RespondToReview_ForeignReview(t *testing.T) {
	svc, mocks := newReviewService(t)

	review := &entity.Review{ID: uuid.New(), VendorID: uuid.New()}

	mocks.txManager.ExecutePassthrough(mocks.factory)
	mocks.factory.On("ReviewRepo").Return(mocks.reviewRepo)
	mocks.reviewRepo.On("FindByID", mock.Anything, review.ID).Return(review, nil)

	_, err := svc.RespondToReview(context.Background(), uuid.New(), review.ID, &usecase.RespondReviewInput{
		Response: "這不是我的評論",
	})
	require.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestReviewService_ModerateReview_Flag(t *testing.T) {
	svc, mocks := newReviewService(t)

	review := &entity.Review{ID: uuid.New(), VendorID: uuid.New(), IsApproved: true}

	mocks.txManager.ExecutePassthrough(mocks.factory)
	mocks.factory.On("ReviewRepo").Return(mocks.reviewRepo)
	mocks.reviewRepo.On("FindByID", mock.Anything, review.ID).Return(review, nil)
	mocks.reviewRepo.On("Update", mock.Anything, mock.MatchedBy(func(updated *entity.Review) bool {
		return !updated.IsApproved && updated.IsFlagged && updated.FlagReason == "含不實內容"
	})).Return(nil)

	moderated, err := svc.ModerateReview(context.Background(), subAdminActor(), review.ID, &usecase.ModerateReviewInput{
		Approve:    false,
		FlagReason: "含不實內容",
	})
	require.NoError(t, err)
	assert.True(t, moderated.IsFlagged)
}

func TestReviewService_ModerateReview_RestoreClearsFlag(t *testing.T) {
	svc, mocks := newReviewService(t)

	review := &entity.Review{ID: uuid.New(), VendorID: uuid.New(), IsFlagged: true, FlagReason: "含不實內容"}

	mocks.txManager.ExecutePassthrough(mocks.factory)
	mocks.factory.On("ReviewRepo").Return(mocks.reviewRepo)
	mocks.reviewRepo.On("FindByID", mock.Anything, review.ID).Return(review, nil)
	mocks.reviewRepo.On("Update", mock.Anything, mock.MatchedBy(func(updated *entity.Review) bool {
		return updated.IsApproved && !updated.IsFlagged && updated.FlagReason == ""
	})).Return(nil)

	moderated, err := svc.ModerateReview(context.Background(), adminActor(), review.ID, &usecase.ModerateReviewInput{Approve: true})
	require.NoError(t, err)
	assert.Empty(t, moderated.FlagReason)
}

func TestReviewService_ModerateReview_NonAdmin(t *testing.T) {
	svc, _ := newReviewService(t)

	actor := usecase.Actor{AccountID: uuid.New(), Role: entity.RoleVendor}
	_, err := svc.ModerateReview(context.Background(), actor, uuid.New(), &usecase.ModerateReviewInput{Approve: false})
	require.ErrorIs(t, err, domainerrors.ErrForbidden)
}
