package routes

import (
	"net/http"
	"time"

	"taxline/handlers"
	"taxline/middleware"
	"taxline/services/agent"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Taxline"})
	})
}

// RegisterSessionRoutes registers session lifecycle endpoints.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle, store agent.SessionStore) {
	api := r.Group("/api")
	{
		api.POST("/session", hb.OpenSession)

		verified := api.Group("")
		verified.Use(middleware.SessionMiddleware(store))
		verified.POST("/session/verify", hb.VerifyIdentity)
	}
}

// RegisterChatRoutes registers the conversational endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle, store agent.SessionStore) {
	api := r.Group("/api")
	api.Use(middleware.SessionMiddleware(store))
	{
		api.POST("/chat", hb.Chat)
		api.POST("/stt", hb.Transcribe)
	}
}

// RegisterBookingRoutes sets up the scheduling endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle, store agent.SessionStore) {
	bookingGroup := r.Group("/api/bookings")
	bookingGroup.Use(middleware.SessionMiddleware(store))
	{
		bookingGroup.POST("", hb.CreateBooking)
		bookingGroup.GET("", hb.ListBookings)
		bookingGroup.POST("/cancel", hb.CancelBooking)
		bookingGroup.POST("/reschedule", hb.RescheduleBooking)
	}
}

// RegisterAdminRoutes sets up endpoints for back-office operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.AdminAuthMiddleware())
	{
		adminGroup.POST("/records/import", hb.ImportTaxRecords)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, store agent.SessionStore) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Session-ID", "X-Admin-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterSessionRoutes(r, hb, store)
	RegisterChatRoutes(r, hb, store)
	RegisterBookingRoutes(r, hb, store)
	RegisterAdminRoutes(r, hb)
}
