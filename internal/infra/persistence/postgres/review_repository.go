package postgres

import (
	"context"

	"campuseats/internal/domain/entity"
	domainerrors "campuseats/internal/domain/errors"
	"campuseats/internal/domain/repository"
	"campuseats/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// reviewRepository implements the domain.ReviewRepository interface.
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository is the constructor for reviewRepository.
func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

// FindByID retrieves a single review by its unique ID.
func (repo *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	var reviewM model.ReviewModel
	err := repo.db.WithContext(ctx).First(&reviewM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReviewNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toReviewDomain(&reviewM), nil
}

// FindByOrderID retrieves the review of an order, if any.
func (repo *reviewRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.Review, error) {
	var reviewM model.ReviewModel
	err := repo.db.WithContext(ctx).First(&reviewM, "order_id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReviewNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toReviewDomain(&reviewM), nil
}

// Create persists a new review. The unique index on order_id backs the
// one-review-per-order rule.
func (repo *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	reviewM := fromReviewDomain(review)

	if err := repo.db.WithContext(ctx).Create(reviewM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrReviewExists
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrOrderNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create review")
	}

	review.ID = reviewM.ID
	review.CreatedAt = reviewM.CreatedAt
	review.UpdatedAt = reviewM.UpdatedAt

	return nil
}

// Update modifies an existing review (vendor response, moderation flags).
func (repo *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	reviewM := fromReviewDomain(review)

	if err := repo.db.WithContext(ctx).Save(reviewM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update review")
	}

	review.UpdatedAt = reviewM.UpdatedAt

	return nil
}

// ListByVendor retrieves a vendor's reviews, newest first.
func (repo *reviewRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*entity.Review, error) {
	var reviewModels []*model.ReviewModel
	err := repo.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Find(&reviewModels).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}

	reviews := make([]*entity.Review, 0, len(reviewModels))
	for _, reviewM := range reviewModels {
		reviews = append(reviews, toReviewDomain(reviewM))
	}

	return reviews, nil
}

// --- Mapper Functions ---

func toReviewDomain(data *model.ReviewModel) *entity.Review {
	if data == nil {
		return nil
	}

	return &entity.Review{
		ID:             data.ID,
		OrderID:        data.OrderID,
		ClientID:       data.ClientID,
		VendorID:       data.VendorID,
		OverallRating:  data.OverallRating,
		FoodRating:     data.FoodRating,
		DeliveryRating: data.DeliveryRating,
		Comment:        data.Comment,
		VendorResponse: data.VendorResponse,
		IsFlagged:      data.IsFlagged,
		IsApproved:     data.IsApproved,
		FlagReason:     data.FlagReason,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

func fromReviewDomain(data *entity.Review) *model.ReviewModel {
	if data == nil {
		return nil
	}

	return &model.ReviewModel{
		ID:             data.ID,
		OrderID:        data.OrderID,
		ClientID:       data.ClientID,
		VendorID:       data.VendorID,
		OverallRating:  data.OverallRating,
		FoodRating:     data.FoodRating,
		DeliveryRating: data.DeliveryRating,
		Comment:        data.Comment,
		VendorResponse: data.VendorResponse,
		IsFlagged:      data.IsFlagged,
		IsApproved:     data.IsApproved,
		FlagReason:     data.FlagReason,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}
