package routes

import (
	"net/http"
	"time"

	"tourbook/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAvailabilityRoutes registers availability assembly endpoints.
func RegisterAvailabilityRoutes(r *gin.Engine, ah *handlers.AvailabilityHandler) {
	api := r.Group("/availability")
	{
		api.GET("/:id", ah.GetAvailability)
		api.POST("/:id/options", ah.SetOptions)
		api.GET("/:id/pricing", ah.GetPricing)
	}
}

// RegisterReservationRoutes registers the reservation assembly and commit
// endpoints.
func RegisterReservationRoutes(r *gin.Engine, rh *handlers.ReservationHandler) {
	api := r.Group("/reservations")
	{
		api.POST("", rh.CreateReservation)
		api.POST("/:id/availability", rh.AttachAvailability)
		api.GET("/:id/questions", rh.GetQuestions)
		api.POST("/:id/questions", rh.SubmitQuestions)
		api.POST("/:id/commit", rh.CommitReservation)
	}
}

// RegisterHealthRoute registers the liveness endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes wires all endpoints onto the router.
func RegisterRoutes(r *gin.Engine, ah *handlers.AvailabilityHandler, rh *handlers.ReservationHandler) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAvailabilityRoutes(r, ah)
	RegisterReservationRoutes(r, rh)
}
