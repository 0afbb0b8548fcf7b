// File: database/repository/hotel/interface.go
package hotelRepo

import (
	"context"

	"flynext/models"

	"go.mongodb.org/mongo-driver/bson"
)

// HotelSearchCriteria filters hotels by text fields.
type HotelSearchCriteria struct {
	City       string
	Name       string
	StarRating int
}

type HotelRepository interface {
	Create(ctx context.Context, hotel *models.Hotel) error
	GetByID(ctx context.Context, id string) (*models.Hotel, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Hotel, error)
	UpdateFields(ctx context.Context, id string, fields bson.M) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.Hotel, error)
	Search(ctx context.Context, criteria HotelSearchCriteria) ([]models.Hotel, error)
}

type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	GetByID(ctx context.Context, id string) (*models.Room, error)
	UpdateFields(ctx context.Context, id string, fields bson.M) error
	Delete(ctx context.Context, id string) error
	ListByHotel(ctx context.Context, hotelID string) ([]models.Room, error)
	// ListAvailableByHotels returns rooms flagged available for any of the hotels.
	ListAvailableByHotels(ctx context.Context, hotelIDs []string) ([]models.Room, error)
}
