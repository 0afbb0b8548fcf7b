package hotel

import (
	"context"
	"errors"
	"strings"
	"time"

	"flynext/database"
	"flynext/models"
	"flynext/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const defaultRoomType = "Double"

// ownedRoom loads a room of an owned hotel.
func (s *DefaultHotelService) ownedRoom(ctx context.Context, ownerID, hotelID, roomID string) (*models.Room, error) {
	if _, err := s.ownedHotel(ctx, ownerID, hotelID); err != nil {
		return nil, err
	}
	room, err := s.Rooms.GetByID(ctx, roomID)
	if errors.Is(err, database.ErrNotFound) || (err == nil && room.HotelID != hotelID) {
		return nil, utils.NotFound("Room not found")
	}
	if err != nil {
		return nil, utils.Internal("failed to load room", err)
	}
	return room, nil
}

func (s *DefaultHotelService) AddRoom(ctx context.Context, ownerID, hotelID string, in models.RoomInput) (*models.Room, error) {
	if _, err := s.ownedHotel(ctx, ownerID, hotelID); err != nil {
		return nil, err
	}
	if len(in.Amenities) == 0 || in.PricePerNight == nil || len(in.Images) == 0 {
		return nil, utils.BadRequest("Missing required fields")
	}
	if *in.PricePerNight <= 0 {
		return nil, utils.BadRequest("pricePerNight must be positive")
	}

	room := &models.Room{
		ID:            uuid.NewString(),
		HotelID:       hotelID,
		Type:          defaultRoomType,
		Amenities:     in.Amenities,
		PricePerNight: *in.PricePerNight,
		Images:        in.Images,
		Available:     true,
	}
	if t := deref(in.Type); t != "" {
		room.Type = t
	}
	if in.Available != nil {
		room.Available = *in.Available
	}

	if err := s.Rooms.Create(ctx, room); err != nil {
		return nil, utils.Internal("failed to create room", err)
	}
	return room, nil
}

// EditRoom applies a partial update. Taking a room out of service drops its
// upcoming bookings.
func (s *DefaultHotelService) EditRoom(ctx context.Context, ownerID, hotelID, roomID string, in models.RoomInput) (*models.Room, error) {
	room, err := s.ownedRoom(ctx, ownerID, hotelID, roomID)
	if err != nil {
		return nil, err
	}
	wasAvailable := room.Available

	fields := bson.M{}
	if in.Type != nil {
		room.Type = strings.TrimSpace(*in.Type)
		fields["type"] = room.Type
	}
	if in.Amenities != nil {
		room.Amenities = in.Amenities
		fields["amenities"] = room.Amenities
	}
	if in.Images != nil {
		room.Images = in.Images
		fields["images"] = room.Images
	}
	if in.PricePerNight != nil {
		if *in.PricePerNight <= 0 {
			return nil, utils.BadRequest("pricePerNight must be positive")
		}
		room.PricePerNight = *in.PricePerNight
		fields["pricePerNight"] = room.PricePerNight
	}
	if in.Available != nil {
		room.Available = *in.Available
		fields["available"] = room.Available
	}
	if len(fields) == 0 {
		return room, nil
	}

	if err := s.Rooms.UpdateFields(ctx, roomID, fields); err != nil {
		return nil, utils.Internal("failed to update room", err)
	}

	if wasAvailable && !room.Available {
		n, err := s.Bookings.DeleteUpcomingForRoom(ctx, roomID, time.Now())
		if err != nil {
			return nil, utils.Internal("failed to release upcoming bookings", err)
		}
		utils.GetLogger().Info("room taken out of service",
			zap.String("roomId", roomID), zap.Int64("bookingsRemoved", n))
	}
	return room, nil
}

func (s *DefaultHotelService) DeleteRoom(ctx context.Context, ownerID, hotelID, roomID string) error {
	if _, err := s.ownedRoom(ctx, ownerID, hotelID, roomID); err != nil {
		return err
	}
	if err := s.Rooms.Delete(ctx, roomID); err != nil {
		return utils.Internal("failed to delete room", err)
	}
	return nil
}

func (s *DefaultHotelService) GetOwnerRoom(ctx context.Context, ownerID, hotelID, roomID string) (*models.Room, error) {
	return s.ownedRoom(ctx, ownerID, hotelID, roomID)
}

func (s *DefaultHotelService) GetRoom(ctx context.Context, roomID string) (*models.Room, error) {
	room, err := s.Rooms.GetByID(ctx, roomID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, utils.NotFound("Room not found")
	}
	if err != nil {
		return nil, utils.Internal("failed to load room", err)
	}
	return room, nil
}
