package router

import (
	"github.com/labstack/echo/v4"

	"muaban/internal/adapter/api/handler"
	"muaban/internal/adapter/api/middleware"
)

func SetupPaymentRouter(e *echo.Echo, sessionMiddleware *middleware.SessionMiddleware) {
	paymentHandler := handler.GetPaymentHandler()

	payment := e.Group("/v1/payment")
	payment.GET("/methods", paymentHandler.Methods)

	payment.Use(sessionMiddleware.RequireSession)
	payment.GET("", paymentHandler.GetFlow)
	payment.POST("/item", paymentHandler.SelectItem)
	payment.POST("/method", paymentHandler.SelectMethod)
	payment.POST("/confirm", paymentHandler.Confirm)
	payment.POST("/retry", paymentHandler.Retry)
	payment.POST("/cancel", paymentHandler.Cancel)
}
