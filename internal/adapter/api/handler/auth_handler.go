package handler

import (
	"github.com/labstack/echo/v4"

	"muaban/internal/usecase"
	"muaban/pkg/response"
)

type AuthHandler struct {
	sessionUseCase *usecase.SessionUseCase
}

func NewAuthHandler(sessionUseCase *usecase.SessionUseCase) *AuthHandler {
	return &AuthHandler{
		sessionUseCase: sessionUseCase,
	}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username        string `json:"username" validate:"required,min=3"`
	Email           string `json:"email" validate:"omitempty,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

type sessionResponse struct {
	Username      string `json:"username"`
	Authenticated bool   `json:"authenticated"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	session, err := h.sessionUseCase.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, sessionResponse{
		Username:      session.Username,
		Authenticated: true,
	})
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	session, err := h.sessionUseCase.Register(c.Request().Context(), usecase.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, sessionResponse{
		Username:      session.Username,
		Authenticated: true,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessionUseCase.Logout(); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, sessionResponse{Authenticated: false})
}

func (h *AuthHandler) Me(c echo.Context) error {
	return response.Success(c, sessionResponse{
		Username:      h.sessionUseCase.Username(),
		Authenticated: h.sessionUseCase.IsAuthenticated(),
	})
}
