package hotel

import (
	"context"

	bookingRepo "flynext/database/repository/booking"
	hotelRepo "flynext/database/repository/hotel"
	locationRepo "flynext/database/repository/location"
	"flynext/models"
	"flynext/services/user"
)

type HotelService interface {
	// Hotel management
	AddHotel(ctx context.Context, userID string, in models.HotelInput) (*AddHotelResult, error)
	UpdateHotel(ctx context.Context, ownerID, hotelID string, in models.HotelInput) (*models.Hotel, error)
	ListOwnerHotels(ctx context.Context, ownerID string) ([]models.Hotel, error)
	GetOwnerHotel(ctx context.Context, ownerID, hotelID string) (*models.HotelWithRooms, error)

	// Room management
	AddRoom(ctx context.Context, ownerID, hotelID string, in models.RoomInput) (*models.Room, error)
	EditRoom(ctx context.Context, ownerID, hotelID, roomID string, in models.RoomInput) (*models.Room, error)
	DeleteRoom(ctx context.Context, ownerID, hotelID, roomID string) error
	GetOwnerRoom(ctx context.Context, ownerID, hotelID, roomID string) (*models.Room, error)

	// Visitor
	GetHotel(ctx context.Context, hotelID string, roomIDs []string) (*models.HotelDetails, error)
	GetRoom(ctx context.Context, roomID string) (*models.Room, error)
	SearchHotels(ctx context.Context, q models.HotelSearchQuery) ([]models.HotelSearchResult, error)
}

// DefaultHotelService is the production implementation.
type DefaultHotelService struct {
	Hotels    hotelRepo.HotelRepository
	Rooms     hotelRepo.RoomRepository
	Bookings  bookingRepo.BookingRepository
	Locations locationRepo.LocationRepository
	Users     user.UserService
}

// AddHotelResult reports the new hotel and whether the creator became an owner.
type AddHotelResult struct {
	User          *models.User  `json:"user"`
	IsRoleChanged bool          `json:"isRoleChanged"`
	Hotel         *models.Hotel `json:"hotel"`
}
