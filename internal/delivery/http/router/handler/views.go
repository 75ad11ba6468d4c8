package handler

import (
	"time"

	"campuseats/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Response views: entities are mapped to explicit JSON shapes so the wire
// format never changes by accident when a domain struct grows a field.

type accountView struct {
	ID             uuid.UUID            `json:"id"`
	Email          string               `json:"email"`
	CampusID       string               `json:"campusId"`
	Role           entity.Role          `json:"role"`
	FirstName      string               `json:"firstName"`
	LastName       string               `json:"lastName"`
	Phone          string               `json:"phone,omitempty"`
	IsActive       bool                 `json:"isActive"`
	Status         entity.AccountStatus `json:"status"`
	DashboardRoute string               `json:"dashboardRoute"`
	CreatedAt      time.Time            `json:"createdAt"`

	VendorProfile   *vendorProfileView   `json:"vendorProfile,omitempty"`
	DeliveryProfile *deliveryProfileView `json:"deliveryProfile,omitempty"`
}

type vendorProfileView struct {
	StoreName        string `json:"storeName"`
	StoreDescription string `json:"storeDescription,omitempty"`
	CanteenImageURL  string `json:"canteenImageUrl,omitempty"`
	LocationImageURL string `json:"locationImageUrl,omitempty"`
	MenuImageURL     string `json:"menuImageUrl,omitempty"`
	ImagesApproved   bool   `json:"imagesApproved"`
}

type deliveryProfileView struct {
	VehicleType    string     `json:"vehicleType,omitempty"`
	IsAvailable    bool       `json:"isAvailable"`
	LastLatitude   *float64   `json:"lastLatitude,omitempty"`
	LastLongitude  *float64   `json:"lastLongitude,omitempty"`
	LastLocationAt *time.Time `json:"lastLocationAt,omitempty"`
}

func newAccountView(account *entity.Account) *accountView {
	if account == nil {
		return nil
	}

	view := &accountView{
		ID:             account.ID,
		Email:          account.Email,
		CampusID:       account.CampusID,
		Role:           account.Role,
		FirstName:      account.FirstName,
		LastName:       account.LastName,
		Phone:          account.Phone,
		IsActive:       account.IsActive,
		Status:         account.Status,
		DashboardRoute: account.Role.DashboardRoute(),
		CreatedAt:      account.CreatedAt,
	}

	if account.VendorProfile != nil {
		view.VendorProfile = &vendorProfileView{
			StoreName:        account.VendorProfile.StoreName,
			StoreDescription: account.VendorProfile.StoreDescription,
			CanteenImageURL:  account.VendorProfile.CanteenImageURL,
			LocationImageURL: account.VendorProfile.LocationImageURL,
			MenuImageURL:     account.VendorProfile.MenuImageURL,
			ImagesApproved:   account.VendorProfile.ImagesApproved,
		}
	}
	if account.DeliveryProfile != nil {
		view.DeliveryProfile = &deliveryProfileView{
			VehicleType:    account.DeliveryProfile.VehicleType,
			IsAvailable:    account.DeliveryProfile.IsAvailable,
			LastLatitude:   account.DeliveryProfile.LastLatitude,
			LastLongitude:  account.DeliveryProfile.LastLongitude,
			LastLocationAt: account.DeliveryProfile.LastLocationAt,
		}
	}

	return view
}

func newAccountViews(accounts []*entity.Account) []*accountView {
	views := make([]*accountView, 0, len(accounts))
	for _, account := range accounts {
		views = append(views, newAccountView(account))
	}

	return views
}

type menuItemView struct {
	ID          uuid.UUID       `json:"id"`
	VendorID    uuid.UUID       `json:"vendorId"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	IsAvailable bool            `json:"isAvailable"`
}

func newMenuItemView(item *entity.MenuItem) *menuItemView {
	if item == nil {
		return nil
	}

	return &menuItemView{
		ID:          item.ID,
		VendorID:    item.VendorID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Category:    item.Category,
		ImageURL:    item.ImageURL,
		IsAvailable: item.IsAvailable,
	}
}

func newMenuItemViews(items []*entity.MenuItem) []*menuItemView {
	views := make([]*menuItemView, 0, len(items))
	for _, item := range items {
		views = append(views, newMenuItemView(item))
	}

	return views
}

type orderItemView struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type orderView struct {
	ID              uuid.UUID          `json:"id"`
	ClientID        uuid.UUID          `json:"clientId"`
	VendorID        uuid.UUID          `json:"vendorId"`
	DeliveryID      *uuid.UUID         `json:"deliveryId,omitempty"`
	Items           []orderItemView    `json:"items"`
	TotalAmount     decimal.Decimal    `json:"totalAmount"`
	DeliveryAddress string             `json:"deliveryAddress"`
	Notes           string             `json:"notes,omitempty"`
	Status          entity.OrderStatus `json:"status"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

func newOrderView(order *entity.Order) *orderView {
	if order == nil {
		return nil
	}

	items := make([]orderItemView, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemView{
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal(),
		})
	}

	return &orderView{
		ID:              order.ID,
		ClientID:        order.ClientID,
		VendorID:        order.VendorID,
		DeliveryID:      order.DeliveryID,
		Items:           items,
		TotalAmount:     order.TotalAmount,
		DeliveryAddress: order.DeliveryAddress,
		Notes:           order.Notes,
		Status:          order.Status,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

func newOrderViews(orders []*entity.Order) []*orderView {
	views := make([]*orderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, newOrderView(order))
	}

	return views
}

type reviewView struct {
	ID             uuid.UUID `json:"id"`
	OrderID        uuid.UUID `json:"orderId"`
	ClientID       uuid.UUID `json:"clientId"`
	VendorID       uuid.UUID `json:"vendorId"`
	OverallRating  int       `json:"overallRating"`
	FoodRating     int       `json:"foodRating"`
	DeliveryRating int       `json:"deliveryRating"`
	Comment        string    `json:"comment,omitempty"`
	VendorResponse *string   `json:"vendorResponse,omitempty"`
	IsFlagged      bool      `json:"isFlagged"`
	IsApproved     bool      `json:"isApproved"`
	FlagReason     string    `json:"flagReason,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

func newReviewView(review *entity.Review) *reviewView {
	if review == nil {
		return nil
	}

	return &reviewView{
		ID:             review.ID,
		OrderID:        review.OrderID,
		ClientID:       review.ClientID,
		VendorID:       review.VendorID,
		OverallRating:  review.OverallRating,
		FoodRating:     review.FoodRating,
		DeliveryRating: review.DeliveryRating,
		Comment:        review.Comment,
		VendorResponse: review.VendorResponse,
		IsFlagged:      review.IsFlagged,
		IsApproved:     review.IsApproved,
		FlagReason:     review.FlagReason,
		CreatedAt:      review.CreatedAt,
	}
}

func newReviewViews(reviews []*entity.Review) []*reviewView {
	views := make([]*reviewView, 0, len(reviews))
	for _, review := range reviews {
		views = append(views, newReviewView(review))
	}

	return views
}

type vendorListingView struct {
	Vendor *accountView    `json:"vendor"`
	Items  []*menuItemView `json:"items"`
}
