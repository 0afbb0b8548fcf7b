package routes

import (
	"time"

	"flynext/config"
	"flynext/handlers"
	"flynext/middleware"
	"flynext/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers login, logout, refresh and registration.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.RegisterHandler)
		api.POST("/login", hb.LoginHandler)
		api.POST("/logout", hb.LogoutHandler)
		api.POST("/refresh", hb.RefreshHandler)
	}
}

// RegisterVisitorRoutes registers the public search endpoints.
func RegisterVisitorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/visitor")
	{
		api.GET("/cities", hb.CitiesHandler)
		api.GET("/flights", hb.SearchFlightsHandler)
		api.GET("/flights/search", hb.FlightPlacesHandler)
		api.GET("/hotels", hb.SearchHotelsHandler)
		api.GET("/hotels/:id", hb.GetHotelHandler)
		api.GET("/hotels/:id/:roomId", hb.GetRoomHandler)
	}
}

// RegisterUserRoutes registers endpoints for any logged-in account.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/user")
	api.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleUser, models.RoleHotelOwner))
	{
		api.GET("/profile", hb.GetProfileHandler)
		api.PATCH("/profile", hb.UpdateProfileHandler)
		api.PUT("/profile/fcm-token", hb.UpdateFCMTokenHandler)

		api.POST("/add-hotel", hb.AddHotelHandler)
		api.PATCH("/add-hotel", hb.UpdateHotelHandler)

		booking := api.Group("/booking")
		booking.POST("/create/combined", hb.CreateBookingHandler)
		booking.PATCH("/edit", hb.EditBookingHandler)
		booking.PATCH("/cancel/combined", hb.CancelBookingHandler)
		booking.POST("/checkout/combined", hb.CheckoutHandler)
		booking.GET("/retrieve", hb.RetrieveBookingHandler)
		booking.GET("/user", hb.UserBookingsHandler)
		booking.GET("/verify", hb.VerifyBookingHandler)

		api.POST("/payment/validate", hb.ValidatePaymentHandler)
		api.POST("/payment/invoice", hb.InvoiceHandler)

		notifications := api.Group("/notifications")
		notifications.GET("/badge", hb.BadgeHandler)
		notifications.POST("/read", hb.ReadHandler)
		notifications.GET("/recieve", hb.ReceiveHandler)
	}
}

// RegisterHotelOwnerRoutes registers hotel and room management for owners.
func RegisterHotelOwnerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/hotel-owner/my-hotels")
	api.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleHotelOwner))
	{
		api.GET("", hb.ListMyHotelsHandler)
		api.GET("/:id", hb.GetMyHotelHandler)
		api.POST("/:id/add-room", hb.AddRoomHandler)
		api.PATCH("/:id/add-room", hb.UpdateRoomHandler)
		api.GET("/:id/bookings", hb.OwnerBookingsHandler)
		api.GET("/:id/bookings/export", hb.ExportOwnerBookingsHandler)
		api.DELETE("/:id/bookings/:bookingId", hb.OwnerCancelBookingHandler)
		api.GET("/:id/:roomId", hb.GetMyRoomHandler)
		api.PATCH("/:id/:roomId/edit", hb.EditRoomHandler)
		api.DELETE("/:id/:roomId/edit", hb.DeleteRoomHandler)
	}
}

// RegisterUploadRoutes registers file upload and download.
func RegisterUploadRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/upload", middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleUser, models.RoleHotelOwner), hb.UploadFileHandler)
	r.GET("/api/upload/*path", hb.ServeFileHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Cache", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterVisitorRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterHotelOwnerRoutes(r, hb)
	RegisterUploadRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
