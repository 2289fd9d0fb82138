package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"muaban/internal/domain/entity"
	"muaban/internal/usecase"
	"muaban/pkg/errors"
	"muaban/pkg/response"
)

type CatalogHandler struct {
	catalogUseCase *usecase.CatalogUseCase
	listingUseCase *usecase.ListingUseCase
}

func NewCatalogHandler(catalogUseCase *usecase.CatalogUseCase, listingUseCase *usecase.ListingUseCase) *CatalogHandler {
	return &CatalogHandler{
		catalogUseCase: catalogUseCase,
		listingUseCase: listingUseCase,
	}
}

type catalogResponse struct {
	Items []entity.Listing `json:"items"`
	// Total is the full catalog size, so an empty Items can be told
	// apart as "no listings at all" versus "no matches for the query".
	Total      int    `json:"total"`
	Query      string `json:"query,omitempty"`
	SelectedID string `json:"selected_id,omitempty"`
}

func (h *CatalogHandler) ListListings(c echo.Context) error {
	listings := h.catalogUseCase.Listings()
	query := c.QueryParam("q")

	filtered := usecase.Filter(listings, query)

	min, err := parsePriceBound(c.QueryParam("min"))
	if err != nil {
		return response.Error(c, err)
	}
	max, err := parsePriceBound(c.QueryParam("max"))
	if err != nil {
		return response.Error(c, err)
	}
	filtered = usecase.FilterPriceRange(filtered, min, max)

	resp := catalogResponse{
		Items: filtered,
		Total: len(listings),
		Query: query,
	}
	if selected := h.catalogUseCase.Selected(); selected != nil {
		resp.SelectedID = selected.ID
	}
	return response.Success(c, resp)
}

func parsePriceBound(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errors.BadRequest("price bound must be a number", err)
	}
	return &v, nil
}

func (h *CatalogHandler) Refresh(c echo.Context) error {
	if err := h.catalogUseCase.Load(c.Request().Context()); err != nil {
		return response.Error(c, err)
	}

	listings := h.catalogUseCase.Listings()
	return response.Success(c, catalogResponse{Items: listings, Total: len(listings)})
}

func (h *CatalogHandler) GetListing(c echo.Context) error {
	listing, err := h.catalogUseCase.Find(c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	detail, err := usecase.ProjectDetail(listing)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, detail)
}

func (h *CatalogHandler) SelectListing(c echo.Context) error {
	id := c.Param("id")
	if err := h.catalogUseCase.Select(id); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"selected_id": id})
}

func (h *CatalogHandler) DeselectListing(c echo.Context) error {
	h.catalogUseCase.Deselect()
	return response.Success(c, map[string]string{"selected_id": ""})
}

func (h *CatalogHandler) MyListings(c echo.Context) error {
	username, _ := c.Get("username").(string)
	listings := usecase.FilterBySeller(h.catalogUseCase.Listings(), username)
	return response.Success(c, catalogResponse{Items: listings, Total: len(listings)})
}

// RemoteSearch delegates to the backend search endpoint instead of
// filtering the local catalog.
func (h *CatalogHandler) RemoteSearch(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return response.Error(c, errors.Validation("q"))
	}

	results, err := h.listingUseCase.RemoteSearch(c.Request().Context(), query)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, catalogResponse{Items: results, Total: len(results), Query: query})
}
