// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"time"

	"flynext/models"
)

// OwnerBookingQuery selects bookings of an owner's hotels.
type OwnerBookingQuery struct {
	HotelIDs []string
	RoomIDs  []string
	From     *time.Time
	To       *time.Time
}

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// Replace overwrites the stored document so cleared portions are removed.
	Replace(ctx context.Context, booking *models.Booking) error
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	// ListOverlapping returns non-cancelled room bookings intersecting [from, to).
	ListOverlapping(ctx context.Context, roomIDs []string, from, to time.Time) ([]models.Booking, error)
	ListForOwner(ctx context.Context, q OwnerBookingQuery) ([]models.Booking, error)
	// DeleteUpcomingForRoom removes bookings of the room starting at or after since.
	DeleteUpcomingForRoom(ctx context.Context, roomID string, since time.Time) (int64, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByBookingID(ctx context.Context, bookingID string) (*models.Payment, error)
	ListByBookingIDs(ctx context.Context, bookingIDs []string) ([]models.Payment, error)
}
