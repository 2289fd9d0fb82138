package backend

import (
	"context"

	"muaban/internal/usecase"
	"muaban/pkg/errors"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email,omitempty"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password,omitempty"`
}

type authPayload struct {
	Token    string `json:"token"`
	Username string `json:"username,omitempty"`
}

func (c *Client) Login(ctx context.Context, username, password string) (*usecase.AuthResult, error) {
	var payload authPayload
	err := c.postJSON(ctx, "/api/users/login", "", loginRequest{Username: username, Password: password}, &payload)
	if err != nil {
		if errors.Is(err, "AUTH_REQUIRED") {
			return nil, errors.AuthRequired("invalid username or password", nil)
		}
		return nil, err
	}
	if payload.Token == "" {
		return nil, errors.Network("login response carried no token", nil)
	}

	return &usecase.AuthResult{Token: payload.Token, Username: username}, nil
}

func (c *Client) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthResult, error) {
	req := registerRequest{
		Username:        input.Username,
		Email:           input.Email,
		Password:        input.Password,
		ConfirmPassword: input.ConfirmPassword,
	}

	var payload authPayload
	if err := c.postJSON(ctx, "/api/users/register", "", req, &payload); err != nil {
		return nil, err
	}
	if payload.Token == "" {
		return nil, errors.Network("register response carried no token", nil)
	}

	return &usecase.AuthResult{Token: payload.Token, Username: input.Username}, nil
}
