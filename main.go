// File: tourbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tourbook/config"
	"tourbook/handlers"
	"tourbook/middleware"
	"tourbook/routes"
	"tourbook/services/engine"
	"tourbook/services/reservation"
	"tourbook/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitLockClient()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Booking engine client.
	engineClient := engine.NewClient(
		config.AppConfig.EngineURL,
		config.AppConfig.EngineAPIKey,
		time.Duration(config.AppConfig.EngineTimeoutSec)*time.Second,
	)

	// Services.
	reservationService := &reservation.DefaultService{
		Engine: engineClient,
	}

	availabilityHandler := handlers.NewAvailabilityHandler(reservationService, logger)
	reservationHandler := handlers.NewReservationHandler(reservationService, logger)

	// Register routes.
	routes.RegisterRoutes(router, availabilityHandler, reservationHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("Forced shutdown: %v", err)
	}
	logger.Sugar().Info("Server exited")
}
