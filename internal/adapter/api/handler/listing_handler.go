package handler

import (
	"io"
	"strconv"

	"github.com/labstack/echo/v4"

	"muaban/internal/usecase"
	"muaban/pkg/errors"
	"muaban/pkg/response"
)

type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
	}
}

// CreateListing accepts the multipart listing form. Field validation
// is owned by the creation pipeline so the error names every missing
// field at once.
func (h *ListingHandler) CreateListing(c echo.Context) error {
	title := c.FormValue("title")
	if title == "" {
		title = c.FormValue("product_type")
	}

	quantity := 0
	if raw := c.FormValue("quantity"); raw != "" {
		q, err := strconv.Atoi(raw)
		if err != nil {
			return response.Error(c, errors.Validation("quantity"))
		}
		quantity = q
	}

	draft := usecase.ListingDraft{
		Title:       title,
		Description: c.FormValue("description"),
		Price:       c.FormValue("price"),
		Quantity:    quantity,
		Contact:     c.FormValue("contact"),
	}
	if draft.Contact == "" {
		draft.Contact = c.FormValue("contact_info")
	}

	if fileHeader, err := c.FormFile("image"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			return response.Error(c, errors.BadRequest("failed to read image", err))
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return response.Error(c, errors.BadRequest("failed to read image", err))
		}

		draft.Image = &usecase.ImageAttachment{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Data:        data,
		}
	}

	listing, err := h.listingUseCase.CreateListing(c.Request().Context(), draft)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, listing)
}
