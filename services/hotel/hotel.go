package hotel

import (
	"context"
	"errors"
	"strings"

	"flynext/database"
	"flynext/models"
	"flynext/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// ownedHotel loads a hotel and checks that ownerID owns it.
func (s *DefaultHotelService) ownedHotel(ctx context.Context, ownerID, hotelID string) (*models.Hotel, error) {
	h, err := s.Hotels.GetByID(ctx, hotelID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, utils.NotFound("Hotel not found")
	}
	if err != nil {
		return nil, utils.Internal("failed to load hotel", err)
	}
	if h.OwnerID != ownerID {
		return nil, utils.Forbidden("Access Denied")
	}
	return h, nil
}

func (s *DefaultHotelService) AddHotel(ctx context.Context, userID string, in models.HotelInput) (*AddHotelResult, error) {
	name, address, city, country := deref(in.Name), deref(in.Address), deref(in.City), deref(in.Country)
	if name == "" || address == "" || city == "" || country == "" || len(in.Images) == 0 {
		return nil, utils.BadRequest("Missing required fields")
	}

	rating := 1
	if in.StarRating != nil {
		rating = *in.StarRating
	}
	if rating < 1 || rating > 5 {
		return nil, utils.BadRequest("starRating must be between 1 and 5")
	}

	ok, err := s.Locations.CityExists(ctx, city, country)
	if err != nil {
		return nil, utils.Internal("failed to validate city", err)
	}
	if !ok {
		return nil, utils.BadRequest("City and country do not match")
	}

	u, changed, err := s.Users.PromoteToHotelOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	h := &models.Hotel{
		ID:         uuid.NewString(),
		OwnerID:    userID,
		Name:       name,
		Logo:       deref(in.Logo),
		Address:    address,
		City:       city,
		Country:    country,
		StarRating: rating,
		Images:     in.Images,
	}
	if err := s.Hotels.Create(ctx, h); err != nil {
		return nil, utils.Internal("failed to create hotel", err)
	}
	return &AddHotelResult{User: u, IsRoleChanged: changed, Hotel: h}, nil
}

func (s *DefaultHotelService) UpdateHotel(ctx context.Context, ownerID, hotelID string, in models.HotelInput) (*models.Hotel, error) {
	h, err := s.ownedHotel(ctx, ownerID, hotelID)
	if err != nil {
		return nil, err
	}

	fields := bson.M{}
	if in.Name != nil {
		h.Name = deref(in.Name)
		fields["name"] = h.Name
	}
	if in.Logo != nil {
		h.Logo = deref(in.Logo)
		fields["logo"] = h.Logo
	}
	if in.Address != nil {
		h.Address = deref(in.Address)
		fields["address"] = h.Address
	}
	if in.City != nil || in.Country != nil {
		city, country := h.City, h.Country
		if in.City != nil {
			city = deref(in.City)
		}
		if in.Country != nil {
			country = deref(in.Country)
		}
		ok, err := s.Locations.CityExists(ctx, city, country)
		if err != nil {
			return nil, utils.Internal("failed to validate city", err)
		}
		if !ok {
			return nil, utils.BadRequest("City and country do not match")
		}
		h.City, h.Country = city, country
		fields["city"], fields["country"] = city, country
	}
	if in.StarRating != nil {
		if *in.StarRating < 1 || *in.StarRating > 5 {
			return nil, utils.BadRequest("starRating must be between 1 and 5")
		}
		h.StarRating = *in.StarRating
		fields["starRating"] = h.StarRating
	}
	if in.Images != nil {
		h.Images = in.Images
		fields["images"] = h.Images
	}

	if len(fields) == 0 {
		return h, nil
	}
	if err := s.Hotels.UpdateFields(ctx, hotelID, fields); err != nil {
		return nil, utils.Internal("failed to update hotel", err)
	}
	return h, nil
}

func (s *DefaultHotelService) ListOwnerHotels(ctx context.Context, ownerID string) ([]models.Hotel, error) {
	hotels, err := s.Hotels.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, utils.Internal("failed to load hotels", err)
	}
	return hotels, nil
}

func (s *DefaultHotelService) GetOwnerHotel(ctx context.Context, ownerID, hotelID string) (*models.HotelWithRooms, error) {
	h, err := s.ownedHotel(ctx, ownerID, hotelID)
	if err != nil {
		return nil, err
	}
	rooms, err := s.Rooms.ListByHotel(ctx, hotelID)
	if err != nil {
		return nil, utils.Internal("failed to load rooms", err)
	}
	return &models.HotelWithRooms{Hotel: h, Rooms: rooms}, nil
}

// GetHotel is the public hotel page. roomIDs, when given, selects filteredRooms.
func (s *DefaultHotelService) GetHotel(ctx context.Context, hotelID string, roomIDs []string) (*models.HotelDetails, error) {
	h, err := s.Hotels.GetByID(ctx, hotelID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, utils.NotFound("Hotel not found")
	}
	if err != nil {
		return nil, utils.Internal("failed to load hotel", err)
	}
	rooms, err := s.Rooms.ListByHotel(ctx, hotelID)
	if err != nil {
		return nil, utils.Internal("failed to load rooms", err)
	}

	details := &models.HotelDetails{Hotel: h, AllRooms: rooms}
	if len(roomIDs) > 0 {
		wanted := make(map[string]bool, len(roomIDs))
		for _, id := range roomIDs {
			wanted[id] = true
		}
		details.FilteredRooms = []models.Room{}
		for _, r := range rooms {
			if wanted[r.ID] {
				details.FilteredRooms = append(details.FilteredRooms, r)
			}
		}
	}
	return details, nil
}
