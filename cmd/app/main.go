package main

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"muaban/internal/adapter/api"
	"muaban/internal/adapter/api/handler"
	apimiddleware "muaban/internal/adapter/api/middleware"
	"muaban/internal/adapter/api/router"
	"muaban/internal/adapter/backend"
	"muaban/internal/infrastructure/localstore"
	"muaban/internal/infrastructure/websocket"
	"muaban/internal/usecase"
	"muaban/pkg/config"
	"muaban/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	store, err := localstore.Open(cfg.LocalStorePath)
	if err != nil {
		log.Fatalf("Failed to open local state store: %v", err)
	}
	defer store.Close()

	backendClient := backend.NewClient(cfg.BackendBaseURL, time.Duration(cfg.RequestTimeout)*time.Second)

	sessionUseCase := usecase.NewSessionUseCase(backendClient, store)
	catalogUseCase := usecase.NewCatalogUseCase(backendClient)
	listingUseCase := usecase.NewListingUseCase(catalogUseCase, sessionUseCase, backendClient)
	paymentUseCase := usecase.NewPaymentUseCase(catalogUseCase, sessionUseCase, backendClient, store, cfg.PaymentMethods)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	// Bridge store events onto the websocket change feed.
	pumpEvents(wsManager, catalogUseCase.Subscribe)
	pumpEvents(wsManager, paymentUseCase.Subscribe)

	// Best-effort initial catalog load; views can refresh later.
	loadCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.RequestTimeout)*time.Second)
	if err := catalogUseCase.Load(loadCtx); err != nil {
		logger.Warn("initial catalog load failed: %v", err)
	}
	cancel()

	handler.Setup(sessionUseCase, catalogUseCase, listingUseCase, paymentUseCase)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	sessionMiddleware := apimiddleware.NewSessionMiddleware(sessionUseCase)
	wsHandler := handler.NewWebSocketHandler(wsManager)

	router.Setup(e, sessionMiddleware)
	router.SetupWebSocketRouter(e, wsHandler)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}

func pumpEvents(manager *websocket.Manager, subscribe func() (string, <-chan usecase.StoreEvent)) {
	_, events := subscribe()
	go func() {
		for event := range events {
			message, err := json.Marshal(event)
			if err != nil {
				logger.Error("failed to encode store event: %v", err)
				continue
			}
			manager.Broadcast(message)
		}
	}()
}
