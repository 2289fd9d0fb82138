package handler

import (
	"muaban/internal/usecase"
)

var (
	authHandler    *AuthHandler
	catalogHandler *CatalogHandler
	listingHandler *ListingHandler
	paymentHandler *PaymentHandler
)

func Setup(
	sessionUseCase *usecase.SessionUseCase,
	catalogUseCase *usecase.CatalogUseCase,
	listingUseCase *usecase.ListingUseCase,
	paymentUseCase *usecase.PaymentUseCase,
) {
	authHandler = NewAuthHandler(sessionUseCase)
	catalogHandler = NewCatalogHandler(catalogUseCase, listingUseCase)
	listingHandler = NewListingHandler(listingUseCase)
	paymentHandler = NewPaymentHandler(paymentUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetCatalogHandler() *CatalogHandler {
	return catalogHandler
}

func GetListingHandler() *ListingHandler {
	return listingHandler
}

func GetPaymentHandler() *PaymentHandler {
	return paymentHandler
}
