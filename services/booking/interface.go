package booking

import (
	"context"
	"time"

	bookingRepo "flynext/database/repository/booking"
	hotelRepo "flynext/database/repository/hotel"
	"flynext/models"
	"flynext/services/flights"
	"flynext/services/notification"
	"flynext/services/payment"
	"flynext/services/user"

	"go.uber.org/zap"
)

// BookingService covers the traveller and hotel-owner booking flows.
type BookingService interface {
	Create(ctx context.Context, userID string, req models.CreateBookingRequest) (*models.Booking, error)
	Edit(ctx context.Context, userID string, req models.EditBookingRequest) (*models.Booking, error)
	Cancel(ctx context.Context, userID string, req models.CancelBookingRequest) (*models.Booking, error)
	Checkout(ctx context.Context, userID string, req models.CheckoutRequest) (*models.CheckoutResult, error)
	Retrieve(ctx context.Context, userID, bookingID string) (*models.BookingDetails, error)
	ListUserBookings(ctx context.Context, userID string) ([]models.UserBooking, error)
	Verify(ctx context.Context, userID, bookingID string) (*models.VerifyResult, error)

	ListOwnerBookings(ctx context.Context, ownerID, hotelID string, filter models.OwnerBookingFilter) (*models.OwnerBookings, error)
	OwnerCancel(ctx context.Context, ownerID, hotelID, bookingID string) (*models.Booking, error)
	ExportOwnerBookings(ctx context.Context, ownerID, hotelID string, filter models.OwnerBookingFilter) ([]byte, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Bookings bookingRepo.BookingRepository
	Payments bookingRepo.PaymentRepository
	Hotels   hotelRepo.HotelRepository
	Rooms    hotelRepo.RoomRepository
	Users    user.UserService
	Flights  flights.FlightProvider
	Gateway  payment.PaymentGateway
	Notifier notification.NotificationService
	// Queue schedules check-in reminders; nil disables them.
	Queue  notification.Enqueuer
	Logger *zap.Logger
	Now    func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
