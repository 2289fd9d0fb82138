package usecase

import (
	"muaban/internal/domain/entity"
	"muaban/pkg/errors"
)

// ListingDetail is the view model for a single selected listing. The
// only action it offers is proceeding to payment.
type ListingDetail struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Price       string `json:"price"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
	Seller      string `json:"seller"`
	Contact     string `json:"contact"`
	CanPurchase bool   `json:"can_purchase"`
}

// ProjectDetail builds the detail view model. A nil or empty listing
// is the initial "nothing selected" state, not an exceptional one.
func ProjectDetail(l *entity.Listing) (*ListingDetail, error) {
	if l == nil || l.ID == "" {
		return nil, errors.NotFound("selected listing", nil)
	}

	return &ListingDetail{
		ID:          l.ID,
		Title:       l.Title,
		Price:       l.Price,
		Image:       l.Image,
		Description: l.Description,
		Seller:      l.Seller,
		Contact:     l.Contact,
		CanPurchase: true,
	}, nil
}
