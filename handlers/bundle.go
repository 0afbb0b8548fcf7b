// File: flynext/handlers/bundle.go
package handlers

import (
	"flynext/services/booking"
	"flynext/services/flights"
	"flynext/services/hotel"
	"flynext/services/location"
	"flynext/services/notification"
	"flynext/services/storage"
	"flynext/services/user"

	"github.com/gin-gonic/gin"
)

// Services is everything the HTTP layer depends on.
type Services struct {
	Users         user.UserService
	Hotels        hotel.HotelService
	Bookings      booking.BookingService
	Notifications notification.NotificationService
	Storage       storage.StorageService
	Locations     *location.LocationService
	Flights       *flights.SearchService
}

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Auth endpoints
	RegisterHandler gin.HandlerFunc
	LoginHandler    gin.HandlerFunc
	LogoutHandler   gin.HandlerFunc
	RefreshHandler  gin.HandlerFunc

	// Profile endpoints
	GetProfileHandler     gin.HandlerFunc
	UpdateProfileHandler  gin.HandlerFunc
	UpdateFCMTokenHandler gin.HandlerFunc

	// Hotel creation by users
	AddHotelHandler    gin.HandlerFunc
	UpdateHotelHandler gin.HandlerFunc

	// Hotel owner endpoints
	ListMyHotelsHandler        gin.HandlerFunc
	GetMyHotelHandler          gin.HandlerFunc
	AddRoomHandler             gin.HandlerFunc
	UpdateRoomHandler          gin.HandlerFunc
	GetMyRoomHandler           gin.HandlerFunc
	EditRoomHandler            gin.HandlerFunc
	DeleteRoomHandler          gin.HandlerFunc
	OwnerBookingsHandler       gin.HandlerFunc
	ExportOwnerBookingsHandler gin.HandlerFunc
	OwnerCancelBookingHandler  gin.HandlerFunc

	// Booking endpoints
	CreateBookingHandler   gin.HandlerFunc
	EditBookingHandler     gin.HandlerFunc
	CancelBookingHandler   gin.HandlerFunc
	CheckoutHandler        gin.HandlerFunc
	RetrieveBookingHandler gin.HandlerFunc
	UserBookingsHandler    gin.HandlerFunc
	VerifyBookingHandler   gin.HandlerFunc

	// Payment endpoints
	ValidatePaymentHandler gin.HandlerFunc
	InvoiceHandler         gin.HandlerFunc

	// Notification endpoints
	BadgeHandler   gin.HandlerFunc
	ReadHandler    gin.HandlerFunc
	ReceiveHandler gin.HandlerFunc

	// Upload endpoints
	UploadFileHandler gin.HandlerFunc
	ServeFileHandler  gin.HandlerFunc

	// Visitor endpoints
	CitiesHandler        gin.HandlerFunc
	FlightPlacesHandler  gin.HandlerFunc
	SearchFlightsHandler gin.HandlerFunc
	SearchHotelsHandler  gin.HandlerFunc
	GetHotelHandler      gin.HandlerFunc
	GetRoomHandler       gin.HandlerFunc

	HealthHandler gin.HandlerFunc
}

// NewHandlerBundle wires every handler to its service.
func NewHandlerBundle(s Services) *HandlerBundle {
	auth := &AuthHandler{Users: s.Users}
	hotels := &HotelHandler{Hotels: s.Hotels, Bookings: s.Bookings}
	bookings := &BookingHandler{Bookings: s.Bookings}
	notifications := &NotificationHandler{Notifications: s.Notifications}
	uploads := &UploadHandler{Storage: s.Storage}
	visitor := &VisitorHandler{Hotels: s.Hotels, Locations: s.Locations, Flights: s.Flights}

	return &HandlerBundle{
		RegisterHandler: auth.RegisterHandler,
		LoginHandler:    auth.LoginHandler,
		LogoutHandler:   auth.LogoutHandler,
		RefreshHandler:  auth.RefreshHandler,

		GetProfileHandler:     auth.GetProfileHandler,
		UpdateProfileHandler:  auth.UpdateProfileHandler,
		UpdateFCMTokenHandler: auth.UpdateFCMTokenHandler,

		AddHotelHandler:    hotels.AddHotelHandler,
		UpdateHotelHandler: hotels.UpdateHotelHandler,

		ListMyHotelsHandler:        hotels.ListMyHotelsHandler,
		GetMyHotelHandler:          hotels.GetMyHotelHandler,
		AddRoomHandler:             hotels.AddRoomHandler,
		UpdateRoomHandler:          hotels.UpdateRoomHandler,
		GetMyRoomHandler:           hotels.GetMyRoomHandler,
		EditRoomHandler:            hotels.EditRoomHandler,
		DeleteRoomHandler:          hotels.DeleteRoomHandler,
		OwnerBookingsHandler:       hotels.OwnerBookingsHandler,
		ExportOwnerBookingsHandler: hotels.ExportOwnerBookingsHandler,
		OwnerCancelBookingHandler:  hotels.OwnerCancelBookingHandler,

		CreateBookingHandler:   bookings.CreateBookingHandler,
		EditBookingHandler:     bookings.EditBookingHandler,
		CancelBookingHandler:   bookings.CancelBookingHandler,
		CheckoutHandler:        bookings.CheckoutHandler,
		RetrieveBookingHandler: bookings.RetrieveBookingHandler,
		UserBookingsHandler:    bookings.UserBookingsHandler,
		VerifyBookingHandler:   bookings.VerifyBookingHandler,

		ValidatePaymentHandler: ValidatePaymentHandler,
		InvoiceHandler:         InvoiceHandler,

		BadgeHandler:   notifications.BadgeHandler,
		ReadHandler:    notifications.ReadHandler,
		ReceiveHandler: notifications.ReceiveHandler,

		UploadFileHandler: uploads.UploadFileHandler,
		ServeFileHandler:  uploads.ServeFileHandler,

		CitiesHandler:        visitor.CitiesHandler,
		FlightPlacesHandler:  visitor.FlightPlacesHandler,
		SearchFlightsHandler: visitor.SearchFlightsHandler,
		SearchHotelsHandler:  visitor.SearchHotelsHandler,
		GetHotelHandler:      visitor.GetHotelHandler,
		GetRoomHandler:       visitor.GetRoomHandler,

		HealthHandler: HealthHandler,
	}
}
