package router

import (
	"github.com/labstack/echo/v4"

	"muaban/internal/adapter/api/handler"
	"muaban/internal/adapter/api/middleware"
)

func SetupCatalogRouter(e *echo.Echo, sessionMiddleware *middleware.SessionMiddleware) {
	catalogHandler := handler.GetCatalogHandler()
	listingHandler := handler.GetListingHandler()

	listings := e.Group("/v1/listings")
	listings.GET("", catalogHandler.ListListings)
	listings.POST("/refresh", catalogHandler.Refresh)
	listings.GET("/remote-search", catalogHandler.RemoteSearch)
	listings.GET("/:id", catalogHandler.GetListing)
	listings.POST("/:id/select", catalogHandler.SelectListing)
	listings.POST("/deselect", catalogHandler.DeselectListing)

	listings.POST("", listingHandler.CreateListing, sessionMiddleware.RequireSession)

	myListings := e.Group("/v1/my-listings")
	myListings.Use(sessionMiddleware.RequireSession)
	myListings.GET("", catalogHandler.MyListings)
}
