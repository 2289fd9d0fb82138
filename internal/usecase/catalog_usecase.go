package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"muaban/internal/domain/entity"
	"muaban/pkg/errors"
	"muaban/pkg/logger"
)

// CatalogUseCase owns the listing sequence and the selection pointer.
// Insertion order is display order, most recently created first. All
// mutations are serialized and pushed to subscribers.
type CatalogUseCase struct {
	*broadcaster

	gateway ListingGateway

	mu         sync.Mutex
	listings   []entity.Listing
	selectedID string
	loadGen    uint64
}

func NewCatalogUseCase(gateway ListingGateway) *CatalogUseCase {
	return &CatalogUseCase{
		broadcaster: newBroadcaster(),
		gateway:     gateway,
	}
}

type CreateListingInput struct {
	ID          string
	Title       string
	Description string
	Price       string
	Quantity    int
	Image       string
	Seller      string
	Contact     string
}

// Load replaces the catalog with the remote listing source. On failure
// the prior state is left untouched. When two loads race, the
// last-issued one wins; a stale result or failure arriving late is
// discarded.
func (uc *CatalogUseCase) Load(ctx context.Context) error {
	uc.mu.Lock()
	uc.loadGen++
	gen := uc.loadGen
	uc.mu.Unlock()

	fetched, err := uc.gateway.FetchListings(ctx)

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if gen != uc.loadGen {
		logger.Debug("discarding stale catalog load (generation %d, current %d)", gen, uc.loadGen)
		return nil
	}
	if err != nil {
		return errors.Network("failed to load listings", err)
	}

	uc.listings = fetched
	if uc.selectedID != "" && uc.findLocked(uc.selectedID) == nil {
		uc.selectedID = ""
	}

	uc.publish(StoreEvent{Kind: EventCatalogLoaded, Payload: len(fetched)})
	return nil
}

// Create validates a listing draft, assigns an id, prepends it and
// selects it. Validation errors name every missing field.
func (uc *CatalogUseCase) Create(input CreateListingInput) (*entity.Listing, error) {
	var missing []string
	if strings.TrimSpace(input.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(input.Price) == "" {
		missing = append(missing, "price")
	}
	if strings.TrimSpace(input.Contact) == "" {
		missing = append(missing, "contact")
	}
	if len(missing) > 0 {
		return nil, errors.Validation(missing...)
	}
	if v, ok := entity.ParsePrice(input.Price); !ok || v < 0 {
		return nil, errors.Validation("price")
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	id := input.ID
	if id == "" {
		id = uuid.NewString()
	} else if uc.findLocked(id) != nil {
		return nil, errors.BadRequest("listing id already exists", nil)
	}

	listing := entity.Listing{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Quantity:    input.Quantity,
		Image:       input.Image,
		Seller:      input.Seller,
		Contact:     input.Contact,
		CreatedAt:   time.Now(),
	}

	uc.listings = append([]entity.Listing{listing}, uc.listings...)
	uc.selectedID = listing.ID

	uc.publish(StoreEvent{Kind: EventCatalogCreated, Payload: listing})
	return &listing, nil
}

// Select is idempotent; an unknown id leaves state unchanged.
func (uc *CatalogUseCase) Select(id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.selectedID == id {
		return nil
	}
	if uc.findLocked(id) == nil {
		return errors.NotFound("listing", nil)
	}

	uc.selectedID = id
	uc.publish(StoreEvent{Kind: EventCatalogSelected, Payload: id})
	return nil
}

func (uc *CatalogUseCase) Deselect() {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.selectedID == "" {
		return
	}
	uc.selectedID = ""
	uc.publish(StoreEvent{Kind: EventCatalogDeselected})
}

// Listings returns a snapshot of the catalog in display order.
func (uc *CatalogUseCase) Listings() []entity.Listing {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	out := make([]entity.Listing, len(uc.listings))
	copy(out, uc.listings)
	return out
}

// Selected returns the currently selected listing, or nil.
func (uc *CatalogUseCase) Selected() *entity.Listing {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.selectedID == "" {
		return nil
	}
	if l := uc.findLocked(uc.selectedID); l != nil {
		copied := *l
		return &copied
	}
	return nil
}

func (uc *CatalogUseCase) Find(id string) (*entity.Listing, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if l := uc.findLocked(id); l != nil {
		copied := *l
		return &copied, nil
	}
	return nil, errors.NotFound("listing", nil)
}

func (uc *CatalogUseCase) findLocked(id string) *entity.Listing {
	for i := range uc.listings {
		if uc.listings[i].ID == id {
			return &uc.listings[i]
		}
	}
	return nil
}
