package router

import (
	"github.com/labstack/echo/v4"

	"muaban/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, sessionMiddleware *middleware.SessionMiddleware) {
	SetupAuthRouter(e)
	SetupCatalogRouter(e, sessionMiddleware)
	SetupPaymentRouter(e, sessionMiddleware)
	SetupHealthRouter(e)
}
