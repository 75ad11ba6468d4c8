package impl

import (
	"context"
	"log/slog"

	deliverycontext "campuseats/internal/delivery/context"
	"campuseats/internal/domain/entity"
	domainerrors "campuseats/internal/domain/errors"
	"campuseats/internal/domain/repository"
	"campuseats/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// reviewService implements the ReviewUsecase interface.
type reviewService struct {
	txManager  repository.TransactionManager
	reviewRepo repository.ReviewRepository
	logger     *slog.Logger
}

// ReviewServiceParams holds dependencies for reviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	ReviewRepo repository.ReviewRepository
	Logger     *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	return &reviewService{
		txManager:  params.TxManager,
		reviewRepo: params.ReviewRepo,
		logger:     params.Logger,
	}
}

func (srv *reviewService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateReview lets the order's client review it once, and only after it was
// delivered. The one-per-order rule is backed by a unique index, so a racing
// duplicate loses in the store, not just in this check.
func (srv *reviewService) CreateReview(ctx context.Context, clientID uuid.UUID, input *usecase.CreateReviewInput) (*entity.Review, error) {
	srv.log(ctx).Info("Creating review", slog.Any("clientID", clientID), slog.Any("orderID", input.OrderID))

	var created *entity.Review
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()
		reviewRepo := repoFactory.ReviewRepo()

		order, err := orderRepo.FindByID(ctx, input.OrderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "order not found")
			}

			return errors.Wrap(err, "failed to find order")
		}
		if order.ClientID != clientID {
			return errors.Wrap(domainerrors.ErrForbidden, "order belongs to another client")
		}
		if order.Status != entity.OrderStatusDelivered {
			return errors.Wrapf(domainerrors.ErrOrderNotDelivered, "order in %s", order.Status)
		}

		newReview := &entity.Review{
			OrderID:        order.ID,
			ClientID:       clientID,
			VendorID:       order.VendorID,
			OverallRating:  input.OverallRating,
			FoodRating:     input.FoodRating,
			DeliveryRating: input.DeliveryRating,
			Comment:        input.Comment,
			IsApproved:     true,
		}
		if err := newReview.ValidateRatings(); err != nil {
			return errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
		}

		if err := reviewRepo.Create(ctx, newReview); err != nil {
			if errors.Is(err, repository.ErrReviewExists) {
				return errors.Wrap(domainerrors.ErrReviewAlreadyExists, "order already reviewed")
			}

			return errors.Wrap(err, "failed to create review")
		}
		created = newReview

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Review creation failed", slog.Any("orderID", input.OrderID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute review creation transaction")
	}

	return created, nil
}

// ListVendorReviews returns a vendor's reviews. The public view hides
// moderated-out entries; the vendor and administrators see everything.
func (srv *reviewService) ListVendorReviews(ctx context.Context, vendorID uuid.UUID, includeUnapproved bool) ([]*entity.Review, error) {
	reviews, err := srv.reviewRepo.ListByVendor(ctx, vendorID)
	if err != nil {
		srv.log(ctx).Error("Failed to list vendor reviews", slog.Any("vendorID", vendorID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list vendor reviews")
	}

	if includeUnapproved {
		return reviews, nil
	}

	visible := make([]*entity.Review, 0, len(reviews))
	for _, review := range reviews {
		if review.IsApproved {
			visible = append(visible, review)
		}
	}

	return visible, nil
}

// RespondToReview records the vendor's public reply on their own review.
func (srv *reviewService) RespondToReview(ctx context.Context, vendorID, reviewID uuid.UUID, input *usecase.RespondReviewInput) (*entity.Review, error) {
	var responded *entity.Review
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reviewRepo := repoFactory.ReviewRepo()

		review, err := srv.findReview(ctx, reviewRepo, reviewID)
		if err != nil {
			return err
		}
		if review.VendorID != vendorID {
			return errors.Wrap(domainerrors.ErrForbidden, "review belongs to another vendor")
		}

		review.VendorResponse = &input.Response
		if err := reviewRepo.Update(ctx, review); err != nil {
			return errors.Wrap(err, "failed to store vendor response")
		}
		responded = review

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Vendor response failed", slog.Any("reviewID", reviewID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute vendor response transaction")
	}

	return responded, nil
}

// ModerateReview flags or restores a review. Administrators only.
func (srv *reviewService) ModerateReview(ctx context.Context, actor usecase.Actor, reviewID uuid.UUID, input *usecase.ModerateReviewInput) (*entity.Review, error) {
	srv.log(ctx).Info("Moderating review", slog.Any("actorID", actor.AccountID), slog.Any("reviewID", reviewID), slog.Bool("approve", input.Approve))

	if !actor.Role.IsAdministrative() {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "only administrators moderate reviews")
	}

	var moderated *entity.Review
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reviewRepo := repoFactory.ReviewRepo()

		review, err := srv.findReview(ctx, reviewRepo, reviewID)
		if err != nil {
			return err
		}

		review.IsApproved = input.Approve
		review.IsFlagged = !input.Approve
		review.FlagReason = input.FlagReason
		if input.Approve {
			review.FlagReason = ""
		}

		if err := reviewRepo.Update(ctx, review); err != nil {
			return errors.Wrap(err, "failed to store moderation decision")
		}
		moderated = review

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Review moderation failed", slog.Any("reviewID", reviewID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute review moderation transaction")
	}

	return moderated, nil
}

func (srv *reviewService) findReview(ctx context.Context, reviewRepo repository.ReviewRepository, reviewID uuid.UUID) (*entity.Review, error) {
	review, err := reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, errors.Wrap(domainerrors.ErrReviewNotFound, "review not found")
		}

		return nil, errors.Wrap(err, "failed to find review")
	}

	return review, nil
}
