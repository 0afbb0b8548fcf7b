package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"flynext/database"
	bookingRepo "flynext/database/repository/booking"
	"flynext/models"
	"flynext/utils"

	"go.uber.org/zap"
)

func (s *DefaultBookingService) ownerHotel(ctx context.Context, ownerID, hotelID string) (*models.Hotel, error) {
	if hotelID == "" {
		return nil, utils.BadRequest("Hotel ID is required")
	}
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

// ListOwnerBookings lists the bookings of one hotel and counts free rooms per type.
// Bookings are matched on checkIn >= startDate and checkOut <= endDate; room
// availability only considers overlaps when both dates are given.
func (s *DefaultBookingService) ListOwnerBookings(ctx context.Context, ownerID, hotelID string, filter models.OwnerBookingFilter) (*models.OwnerBookings, error) {
	if _, err := s.ownerHotel(ctx, ownerID, hotelID); err != nil {
		return nil, err
	}

	rooms, err := s.Rooms.ListByHotel(ctx, hotelID)
	if err != nil {
		return nil, utils.Internal("failed to list rooms", err)
	}
	roomsByID := make(map[string]*models.Room, len(rooms))
	for i := range rooms {
		roomsByID[rooms[i].ID] = &rooms[i]
	}

	bookings, err := s.Bookings.ListForOwner(ctx, bookingRepo.OwnerBookingQuery{
		HotelIDs: []string{hotelID},
		From:     filter.StartDate,
		To:       filter.EndDate,
	})
	if err != nil {
		return nil, utils.Internal("failed to list bookings", err)
	}

	result := &models.OwnerBookings{
		Bookings:         []models.OwnerBooking{},
		RoomAvailability: []models.RoomTypeAvailability{},
	}
	for _, b := range bookings {
		room := roomsByID[b.RoomID]
		if filter.RoomType != "" && (room == nil || room.Type != filter.RoomType) {
			continue
		}
		result.Bookings = append(result.Bookings, models.OwnerBooking{Booking: b, Room: room})
	}

	busy := map[string]bool{}
	if filter.StartDate != nil && filter.EndDate != nil && len(rooms) > 0 {
		ids := make([]string, 0, len(rooms))
		for _, r := range rooms {
			ids = append(ids, r.ID)
		}
		overlapping, err := s.Bookings.ListOverlapping(ctx, ids, *filter.StartDate, *filter.EndDate)
		if err != nil {
			return nil, utils.Internal("failed to check room availability", err)
		}
		for _, b := range overlapping {
			busy[b.RoomID] = true
		}
	}

	counts := map[string]int{}
	for _, r := range rooms {
		if !r.Available || busy[r.ID] {
			continue
		}
		if filter.RoomType != "" && r.Type != filter.RoomType {
			continue
		}
		counts[r.Type]++
	}
	for t, n := range counts {
		result.RoomAvailability = append(result.RoomAvailability, models.RoomTypeAvailability{Type: t, Available: n})
	}
	sort.Slice(result.RoomAvailability, func(i, j int) bool {
		return result.RoomAvailability[i].Type < result.RoomAvailability[j].Type
	})
	return result, nil
}

// OwnerCancel drops the room portion of a booking at the owner's hotel.
func (s *DefaultBookingService) OwnerCancel(ctx context.Context, ownerID, hotelID, bookingID string) (*models.Booking, error) {
	if bookingID == "" || hotelID == "" {
		return nil, utils.BadRequest("Booking ID and Hotel ID are required")
	}
	if _, err := s.ownerHotel(ctx, ownerID, hotelID); err != nil {
		return nil, err
	}
	b, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.HotelID != hotelID {
		return nil, utils.NotFound("Booking not found")
	}

	hadFlight := b.HasFlight()
	clearRoom(b)
	settle(b)
	if err := s.Bookings.Replace(ctx, b); err != nil {
		return nil, utils.Internal("failed to update booking", err)
	}
	s.logger().Info("room booking cancelled by owner", zap.String("bookingId", b.ID), zap.String("hotelId", hotelID))

	msg := fmt.Sprintf("Booking Update: the room portion of your booking #%s has been cancelled by the owner.", b.ID)
	if hadFlight {
		msg += " Your flight booking remains active."
	}
	s.notify(ctx, false, b.UserID, msg)
	return b, nil
}
