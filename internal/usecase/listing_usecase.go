package usecase

import (
	"context"
	"strings"

	"muaban/internal/domain/entity"
	"muaban/pkg/errors"
	"muaban/pkg/logger"
)

const maxImageBytes = 5 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// ListingUseCase is the creation pipeline: validate a draft, submit it
// to the remote creation endpoint, then insert the confirmed listing
// into the catalog. All-or-nothing; on a failed submit nothing is
// added locally and the caller keeps the draft for resubmission.
type ListingUseCase struct {
	catalog *CatalogUseCase
	session *SessionUseCase
	gateway ListingGateway
}

func NewListingUseCase(catalog *CatalogUseCase, session *SessionUseCase, gateway ListingGateway) *ListingUseCase {
	return &ListingUseCase{
		catalog: catalog,
		session: session,
		gateway: gateway,
	}
}

type ImageAttachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

type ListingDraft struct {
	Title       string
	Description string
	Price       string
	Quantity    int
	Contact     string
	Image       *ImageAttachment
}

func (uc *ListingUseCase) CreateListing(ctx context.Context, draft ListingDraft) (*entity.Listing, error) {
	if !uc.session.IsAuthenticated() {
		return nil, errors.AuthRequired("login required to post a listing", nil)
	}

	// Validation order: required fields, then price, then image.
	var missing []string
	if strings.TrimSpace(draft.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(draft.Price) == "" {
		missing = append(missing, "price")
	}
	if strings.TrimSpace(draft.Contact) == "" {
		missing = append(missing, "contact")
	}
	if len(missing) > 0 {
		return nil, errors.Validation(missing...)
	}
	if v, ok := entity.ParsePrice(draft.Price); !ok || v < 0 {
		return nil, errors.Validation("price")
	}
	if draft.Image != nil {
		if !allowedImageTypes[draft.Image.ContentType] {
			return nil, errors.BadRequest("unsupported image type: "+draft.Image.ContentType, nil)
		}
		if len(draft.Image.Data) > maxImageBytes {
			return nil, errors.BadRequest("image exceeds the 5MB limit", nil)
		}
	}

	if draft.Quantity <= 0 {
		draft.Quantity = 1
	}

	created, err := uc.gateway.SubmitListing(ctx, uc.session.Token(), draft)
	if err != nil {
		return nil, err
	}

	input := CreateListingInput{
		Title:       draft.Title,
		Description: draft.Description,
		Price:       draft.Price,
		Quantity:    draft.Quantity,
		Contact:     draft.Contact,
		Seller:      uc.session.Username(),
	}

	// Prefer what the server confirmed; fall back to the local draft
	// when the response carries nothing usable.
	if created != nil && created.ID != "" {
		input.ID = created.ID
		if created.Title != "" {
			input.Title = created.Title
		}
		if created.Price != "" {
			input.Price = created.Price
		}
		if created.Description != "" {
			input.Description = created.Description
		}
		if created.Contact != "" {
			input.Contact = created.Contact
		}
		if created.Seller != "" {
			input.Seller = created.Seller
		}
		if created.Image != "" {
			input.Image = created.Image
		}
	}

	listing, err := uc.catalog.Create(input)
	if err != nil {
		logger.Warn("listing accepted remotely but rejected by catalog: %v", err)
		return nil, err
	}
	return listing, nil
}

// RemoteSearch delegates to the backend search endpoint.
func (uc *ListingUseCase) RemoteSearch(ctx context.Context, query string) ([]entity.Listing, error) {
	return uc.gateway.SearchListings(ctx, query)
}
