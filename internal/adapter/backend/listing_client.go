package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"muaban/internal/domain/entity"
	"muaban/internal/usecase"
	"muaban/pkg/errors"
)

// listingPayload covers both wire shapes the backend uses for a post:
// the catalog shape (title/contact) and the creation shape
// (product_type/contact_info).
type listingPayload struct {
	ID          interface{} `json:"id"`
	Title       string      `json:"title"`
	ProductType string      `json:"product_type"`
	Description string      `json:"description"`
	Price       interface{} `json:"price"`
	Quantity    int         `json:"quantity"`
	Image       string      `json:"image"`
	Seller      string      `json:"seller"`
	Username    string      `json:"username"`
	Contact     string      `json:"contact"`
	ContactInfo string      `json:"contact_info"`
	CreatedAt   string      `json:"created_at"`
}

func (p listingPayload) toEntity() entity.Listing {
	title := p.Title
	if title == "" {
		title = p.ProductType
	}
	contact := p.Contact
	if contact == "" {
		contact = p.ContactInfo
	}
	seller := p.Seller
	if seller == "" {
		seller = p.Username
	}

	listing := entity.Listing{
		ID:          stringID(p.ID),
		Title:       title,
		Description: p.Description,
		Price:       stringPrice(p.Price),
		Quantity:    p.Quantity,
		Image:       p.Image,
		Seller:      seller,
		Contact:     contact,
	}
	if p.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, p.CreatedAt); err == nil {
			listing.CreatedAt = t
		}
	}
	return listing
}

func stringPrice(v interface{}) string {
	switch price := v.(type) {
	case nil:
		return ""
	case string:
		return price
	case float64:
		return strconv.FormatFloat(price, 'f', -1, 64)
	default:
		return fmt.Sprint(price)
	}
}

func (c *Client) FetchListings(ctx context.Context) ([]entity.Listing, error) {
	var payloads []listingPayload
	if err := c.getJSON(ctx, "/api/posts", "", &payloads); err != nil {
		return nil, err
	}

	listings := make([]entity.Listing, 0, len(payloads))
	for _, p := range payloads {
		listings = append(listings, p.toEntity())
	}
	return listings, nil
}

func (c *Client) SearchListings(ctx context.Context, query string) ([]entity.Listing, error) {
	var payloads []listingPayload
	body := map[string]string{"query": query}
	if err := c.postJSON(ctx, "/api/posts/search", "", body, &payloads); err != nil {
		return nil, err
	}

	listings := make([]entity.Listing, 0, len(payloads))
	for _, p := range payloads {
		listings = append(listings, p.toEntity())
	}
	return listings, nil
}

// SubmitListing sends the draft as a multipart form, attaching the
// image binary when present. A response that does not decode into a
// listing is not an error; the caller falls back to its local draft.
func (c *Client) SubmitListing(ctx context.Context, token string, draft usecase.ListingDraft) (*entity.Listing, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := map[string]string{
		"product_type": draft.Title,
		"quantity":     strconv.Itoa(draft.Quantity),
		"price":        draft.Price,
		"description":  draft.Description,
		"contact_info": draft.Contact,
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, errors.Internal("failed to encode listing form", err)
		}
	}

	if draft.Image != nil {
		part, err := writer.CreateFormFile("image", draft.Image.Filename)
		if err != nil {
			return nil, errors.Internal("failed to attach image", err)
		}
		if _, err := part.Write(draft.Image.Data); err != nil {
			return nil, errors.Internal("failed to attach image", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, errors.Internal("failed to encode listing form", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/posts", &buf)
	if err != nil {
		return nil, errors.Internal("failed to build request", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Network("backend unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Network("failed to read backend response", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, errors.AuthRequired("backend rejected the session", nil)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Network(fmt.Sprintf("backend returned status %d", resp.StatusCode), nil)
	}

	var payload listingPayload
	if len(body) == 0 || json.Unmarshal(body, &payload) != nil {
		return nil, nil
	}
	created := payload.toEntity()
	return &created, nil
}
