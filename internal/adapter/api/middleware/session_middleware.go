package middleware

import (
	"github.com/labstack/echo/v4"

	"muaban/internal/usecase"
	"muaban/pkg/errors"
	"muaban/pkg/response"
)

type SessionMiddleware struct {
	session *usecase.SessionUseCase
}

func NewSessionMiddleware(session *usecase.SessionUseCase) *SessionMiddleware {
	return &SessionMiddleware{
		session: session,
	}
}

// RequireSession gates posting and payment routes on an active
// session.
func (m *SessionMiddleware) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !m.session.IsAuthenticated() {
			return response.Error(c, errors.AuthRequired("", nil))
		}

		c.Set("username", m.session.Username())
		return next(c)
	}
}
