package booking

import (
	"context"
	"fmt"

	"flynext/models"
	"flynext/utils"

	"go.uber.org/zap"
)

func clearRoom(b *models.Booking) {
	b.HotelID, b.RoomID = "", ""
	b.CheckIn, b.CheckOut = nil, nil
}

func clearFlight(b *models.Booking) {
	b.FlightBookingInfo = ""
	b.FlightStatus = models.FlightCancelled
}

// settle marks the booking cancelled once neither portion remains.
func settle(b *models.Booking) {
	if !b.HasRoom() && !b.HasFlight() {
		b.BookStatus = models.BookingCancelled
	}
}

// ApplyCancellation removes the requested portion from b. It reports an error
// for unknown cancel types and leaves b untouched in that case.
func ApplyCancellation(b *models.Booking, cancelType string) error {
	switch cancelType {
	case models.CancelFlight:
		clearFlight(b)
	case models.CancelRoom:
		clearRoom(b)
	case models.CancelBoth:
		clearFlight(b)
		clearRoom(b)
	default:
		return utils.BadRequest("Invalid cancelType")
	}
	settle(b)
	return nil
}

// Cancel drops the flight, room or both portions of the traveller's booking.
func (s *DefaultBookingService) Cancel(ctx context.Context, userID string, req models.CancelBookingRequest) (*models.Booking, error) {
	b, err := s.ownBooking(ctx, userID, req.BookingID)
	if err != nil {
		return nil, err
	}
	if b.BookStatus == models.BookingCancelled {
		return nil, utils.BadRequest("Booking is already cancelled")
	}

	before := *b
	if err := ApplyCancellation(b, req.CancelType); err != nil {
		return nil, err
	}
	if err := s.Bookings.Replace(ctx, b); err != nil {
		return nil, utils.Internal("failed to update booking", err)
	}
	s.logger().Info("booking cancelled", zap.String("bookingId", b.ID),
		zap.String("cancelType", req.CancelType), zap.String("status", b.BookStatus))

	roomDropped := req.CancelType == models.CancelRoom || req.CancelType == models.CancelBoth
	if roomDropped && before.HotelID != "" && before.BookStatus == models.BookingConfirmed {
		msg := fmt.Sprintf("Booking Update: the room portion of your booking #%s has been cancelled.", before.ID)
		if before.HasFlight() && req.CancelType == models.CancelRoom {
			msg += " Your flight booking remains active."
		}
		s.notify(ctx, false, before.UserID, msg)

		if h, err := s.hotelOwner(ctx, before.HotelID); err == nil && h != nil {
			ownerMsg := fmt.Sprintf("Booking Cancellation: the room portion of booking #%s at %s has been cancelled by the guest.", before.ID, h.Name)
			if before.CheckIn != nil {
				ownerMsg += " Original check-in: " + formatDay(before.CheckIn) + "."
			}
			if before.CheckOut != nil {
				ownerMsg += " Original check-out: " + formatDay(before.CheckOut) + "."
			}
			s.notify(ctx, true, h.OwnerID, ownerMsg)
		}
	}
	return b, nil
}
