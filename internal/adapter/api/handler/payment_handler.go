package handler

import (
	"github.com/labstack/echo/v4"

	"muaban/internal/domain/entity"
	"muaban/internal/usecase"
	"muaban/pkg/response"
)

type PaymentHandler struct {
	paymentUseCase *usecase.PaymentUseCase
}

func NewPaymentHandler(paymentUseCase *usecase.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{
		paymentUseCase: paymentUseCase,
	}
}

type flowResponse struct {
	usecase.FlowSnapshot
	// PersistedItem is the selected item surviving in local state, so
	// a fresh page can restore an interrupted payment view.
	PersistedItem *entity.Listing `json:"persisted_item,omitempty"`
}

type selectItemRequest struct {
	ListingID string `json:"listing_id" validate:"required"`
}

type selectMethodRequest struct {
	Method string `json:"method" validate:"required"`
}

func (h *PaymentHandler) GetFlow(c echo.Context) error {
	snap := h.paymentUseCase.Snapshot()

	persisted, err := h.paymentUseCase.SelectedItem()
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, flowResponse{FlowSnapshot: snap, PersistedItem: persisted})
}

func (h *PaymentHandler) Methods(c echo.Context) error {
	return response.Success(c, map[string][]string{"methods": h.paymentUseCase.Methods()})
}

func (h *PaymentHandler) SelectItem(c echo.Context) error {
	var req selectItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.paymentUseCase.SelectItem(req.ListingID); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, h.paymentUseCase.Snapshot())
}

func (h *PaymentHandler) SelectMethod(c echo.Context) error {
	var req selectMethodRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.paymentUseCase.SelectMethod(req.Method); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, h.paymentUseCase.Snapshot())
}

func (h *PaymentHandler) Confirm(c echo.Context) error {
	if err := h.paymentUseCase.Confirm(c.Request().Context()); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, h.paymentUseCase.Snapshot())
}

func (h *PaymentHandler) Retry(c echo.Context) error {
	if err := h.paymentUseCase.Retry(c.Request().Context()); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, h.paymentUseCase.Snapshot())
}

func (h *PaymentHandler) Cancel(c echo.Context) error {
	if err := h.paymentUseCase.Cancel(); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, h.paymentUseCase.Snapshot())
}
