package booking

import (
	"context"
	"errors"
	"time"

	"flynext/database"
	"flynext/models"
	"flynext/utils"

	"go.uber.org/zap"
)

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return utils.GetLogger()
}

func (s *DefaultBookingService) loadBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	if bookingID == "" {
		return nil, utils.BadRequest("Missing bookingId")
	}
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, utils.NotFound("Booking not found")
	}
	if err != nil {
		return nil, utils.Internal("failed to load booking", err)
	}
	return b, nil
}

// ownBooking loads a booking that must belong to userID. Foreign bookings look missing.
func (s *DefaultBookingService) ownBooking(ctx context.Context, userID, bookingID string) (*models.Booking, error) {
	b, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, utils.NotFound("Booking not found")
	}
	return b, nil
}

// parseStay validates a check-in/check-out pair.
func parseStay(checkIn, checkOut string) (time.Time, time.Time, error) {
	if checkIn == "" || checkOut == "" {
		return time.Time{}, time.Time{}, utils.BadRequest("Missing checkIn or checkOut dates for room booking")
	}
	in, err := utils.ParseDate(checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, utils.BadRequest("Invalid checkIn date")
	}
	out, err := utils.ParseDate(checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, utils.BadRequest("Invalid checkOut date")
	}
	if !out.After(in) {
		return time.Time{}, time.Time{}, utils.BadRequest("checkOut must be after checkIn")
	}
	return in, out, nil
}

// ensureRoomFree rejects a stay overlapping another live booking of the room.
func (s *DefaultBookingService) ensureRoomFree(ctx context.Context, roomID string, in, out time.Time, ignoreID string) error {
	overlapping, err := s.Bookings.ListOverlapping(ctx, []string{roomID}, in, out)
	if err != nil {
		return utils.Internal("failed to check room availability", err)
	}
	for _, b := range overlapping {
		if b.ID != ignoreID {
			return utils.BadRequest("Room is already booked for the selected dates")
		}
	}
	return nil
}

// checkRoom verifies that the room exists, belongs to the hotel and is open for booking.
func (s *DefaultBookingService) checkRoom(ctx context.Context, hotelID, roomID string) (*models.Room, error) {
	room, err := s.Rooms.GetByID(ctx, roomID)
	if errors.Is(err, database.ErrNotFound) || (err == nil && room.HotelID != hotelID) {
		return nil, utils.NotFound("Room not found")
	}
	if err != nil {
		return nil, utils.Internal("failed to load room", err)
	}
	if !room.Available {
		return nil, utils.BadRequest("Room is not available")
	}
	return room, nil
}

// computePrice returns room cost plus flight cost and the number of nights.
func (s *DefaultBookingService) computePrice(ctx context.Context, b *models.Booking) (float64, int, *models.Room, error) {
	var (
		total  float64
		nights int
		room   *models.Room
	)
	if b.RoomID != "" {
		r, err := s.Rooms.GetByID(ctx, b.RoomID)
		if err != nil && !errors.Is(err, database.ErrNotFound) {
			return 0, 0, nil, utils.Internal("failed to load room", err)
		}
		if err == nil {
			room = r
			nights = b.Nights()
			total += r.PricePerNight * float64(nights)
		}
	}
	info, err := models.ParseFlightInfo(b.FlightBookingInfo)
	if err != nil {
		return 0, 0, nil, utils.BadRequest("Invalid flight booking info")
	}
	total += info.TotalPrice()
	return utils.RoundMoney(total), nights, room, nil
}

func (s *DefaultBookingService) hotelOwner(ctx context.Context, hotelID string) (*models.Hotel, error) {
	if hotelID == "" {
		return nil, nil
	}
	h, err := s.Hotels.GetByID(ctx, hotelID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	return h, err
}

func formatDay(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// notify is best effort; a failed notification never fails the booking flow.
func (s *DefaultBookingService) notify(ctx context.Context, toOwner bool, recipient, message string) {
	if s.Notifier == nil || recipient == "" {
		return
	}
	var err error
	if toOwner {
		err = s.Notifier.NotifyHotelOwner(ctx, recipient, message)
	} else {
		err = s.Notifier.NotifyUser(ctx, recipient, message)
	}
	if err != nil {
		s.logger().Warn("notification failed", zap.String("recipient", recipient), zap.Error(err))
	}
}
