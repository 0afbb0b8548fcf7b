package booking

import (
	"context"
	"encoding/json"
	"strings"

	"flynext/models"
	"flynext/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create stores a PENDING booking combining an optional room stay with an optional itinerary.
func (s *DefaultBookingService) Create(ctx context.Context, userID string, req models.CreateBookingRequest) (*models.Booking, error) {
	flightRaw := strings.TrimSpace(string(req.FlightBookingInfo))
	if flightRaw != "" {
		if _, err := models.ParseFlightInfo(flightRaw); err != nil {
			return nil, utils.BadRequest("Invalid flight booking info")
		}
	}

	var room models.RoomBookingInfo
	if raw := strings.TrimSpace(string(req.RoomBookingInfo)); raw != "" {
		if err := json.Unmarshal([]byte(raw), &room); err != nil {
			return nil, utils.BadRequest("Invalid room booking info")
		}
	}

	b := &models.Booking{
		ID:                uuid.NewString(),
		UserID:            userID,
		FlightBookingInfo: flightRaw,
		BookStatus:        models.BookingPending,
		FlightStatus:      models.FlightScheduled,
		CreatedAt:         s.now(),
	}

	if room.HotelID != "" && room.RoomID != "" {
		in, out, err := parseStay(room.CheckIn, room.CheckOut)
		if err != nil {
			return nil, err
		}
		if _, err := s.checkRoom(ctx, room.HotelID, room.RoomID); err != nil {
			return nil, err
		}
		if err := s.ensureRoomFree(ctx, room.RoomID, in, out, ""); err != nil {
			return nil, err
		}
		b.HotelID, b.RoomID = room.HotelID, room.RoomID
		b.CheckIn, b.CheckOut = &in, &out
	}

	if !b.HasRoom() && !b.HasFlight() {
		return nil, utils.BadRequest("A booking needs a room or at least one flight")
	}

	if err := s.Bookings.Create(ctx, b); err != nil {
		return nil, utils.Internal("failed to create booking", err)
	}
	s.logger().Info("booking created", zap.String("bookingId", b.ID), zap.String("userId", userID),
		zap.Bool("room", b.HasRoom()), zap.Bool("flight", b.HasFlight()))
	return b, nil
}

// Edit changes a PENDING booking. Changing the room or dates re-checks availability.
func (s *DefaultBookingService) Edit(ctx context.Context, userID string, req models.EditBookingRequest) (*models.Booking, error) {
	b, err := s.ownBooking(ctx, userID, req.BookingID)
	if err != nil {
		return nil, err
	}
	if b.BookStatus != models.BookingPending {
		return nil, utils.BadRequest("Only pending bookings can be edited")
	}

	roomChanged := false
	if req.HotelID != nil {
		b.HotelID = strings.TrimSpace(*req.HotelID)
		roomChanged = true
	}
	if req.RoomID != nil {
		b.RoomID = strings.TrimSpace(*req.RoomID)
		roomChanged = true
	}
	if req.CheckIn != nil || req.CheckOut != nil {
		checkIn, checkOut := formatDay(b.CheckIn), formatDay(b.CheckOut)
		if req.CheckIn != nil {
			checkIn = *req.CheckIn
		}
		if req.CheckOut != nil {
			checkOut = *req.CheckOut
		}
		in, out, err := parseStay(checkIn, checkOut)
		if err != nil {
			return nil, err
		}
		b.CheckIn, b.CheckOut = &in, &out
		roomChanged = true
	}
	if req.FlightBookingInfo != nil {
		raw := strings.TrimSpace(string(*req.FlightBookingInfo))
		if _, err := models.ParseFlightInfo(raw); err != nil {
			return nil, utils.BadRequest("Invalid flight booking info")
		}
		if raw != b.FlightBookingInfo {
			b.Reference = ""
		}
		b.FlightBookingInfo = raw
	}

	if b.HotelID == "" && b.RoomID == "" {
		clearRoom(b)
	} else if roomChanged {
		if !b.HasRoom() || b.CheckIn == nil || b.CheckOut == nil {
			return nil, utils.BadRequest("hotelId, roomId, checkIn and checkOut are required for a room booking")
		}
		if _, err := s.checkRoom(ctx, b.HotelID, b.RoomID); err != nil {
			return nil, err
		}
		if err := s.ensureRoomFree(ctx, b.RoomID, *b.CheckIn, *b.CheckOut, b.ID); err != nil {
			return nil, err
		}
	}
	if !b.HasRoom() && !b.HasFlight() {
		return nil, utils.BadRequest("A booking needs a room or at least one flight")
	}

	if err := s.Bookings.Replace(ctx, b); err != nil {
		return nil, utils.Internal("failed to update booking", err)
	}
	return b, nil
}
