package booking

import (
	"context"
	"errors"
	"fmt"

	"flynext/database"
	"flynext/models"
	"flynext/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Retrieve builds the itinerary view of one of the user's bookings.
func (s *DefaultBookingService) Retrieve(ctx context.Context, userID, bookingID string) (*models.BookingDetails, error) {
	b, err := s.ownBooking(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	price, nights, room, err := s.computePrice(ctx, b)
	if err != nil {
		return nil, err
	}
	hotel, err := s.hotelOwner(ctx, b.HotelID)
	if err != nil {
		return nil, utils.Internal("failed to load hotel", err)
	}

	info, _ := models.ParseFlightInfo(b.FlightBookingInfo)
	details := &models.BookingDetails{
		Booking:      b,
		Hotel:        hotel,
		Room:         room,
		Flights:      info.Flights,
		Price:        price,
		NightsStayed: nights,
	}
	if details.Flights == nil {
		details.Flights = []models.FlightSegment{}
	}
	if n := len(info.Flights); n > 0 {
		last := info.Flights[n-1]
		details.MainDestination = last.MainDestination
		if details.MainDestination == "" {
			details.MainDestination = last.Destination
		}
	}
	return details, nil
}

// ListUserBookings returns the user's bookings newest first with hotel, room and payment.
func (s *DefaultBookingService) ListUserBookings(ctx context.Context, userID string) ([]models.UserBooking, error) {
	bookings, err := s.Bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.Internal("failed to list bookings", err)
	}
	if len(bookings) == 0 {
		return []models.UserBooking{}, nil
	}

	var (
		hotelIDs   []string
		bookingIDs = make([]string, 0, len(bookings))
		seenHotel  = map[string]bool{}
	)
	for _, b := range bookings {
		bookingIDs = append(bookingIDs, b.ID)
		if b.HotelID != "" && !seenHotel[b.HotelID] {
			seenHotel[b.HotelID] = true
			hotelIDs = append(hotelIDs, b.HotelID)
		}
	}

	hotels := map[string]*models.Hotel{}
	payments := map[string]*models.Payment{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if len(hotelIDs) == 0 {
			return nil
		}
		list, err := s.Hotels.GetByIDs(gctx, hotelIDs)
		if err != nil {
			return err
		}
		for i := range list {
			hotels[list[i].ID] = &list[i]
		}
		return nil
	})
	g.Go(func() error {
		list, err := s.Payments.ListByBookingIDs(gctx, bookingIDs)
		if err != nil {
			return err
		}
		for i := range list {
			payments[list[i].BookingID] = &list[i]
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, utils.Internal("failed to load booking details", err)
	}

	rooms := map[string]*models.Room{}
	out := make([]models.UserBooking, 0, len(bookings))
	for _, b := range bookings {
		ub := models.UserBooking{Booking: b, Hotel: hotels[b.HotelID], Payment: payments[b.ID]}
		if b.RoomID != "" {
			room, ok := rooms[b.RoomID]
			if !ok {
				r, err := s.Rooms.GetByID(ctx, b.RoomID)
				if err != nil && !errors.Is(err, database.ErrNotFound) {
					return nil, utils.Internal("failed to load room", err)
				}
				room = r
				rooms[b.RoomID] = r
			}
			ub.Room = room
		}
		out = append(out, ub)
	}
	return out, nil
}

// Verify checks every flight of the booking against AFS and records the observed status.
func (s *DefaultBookingService) Verify(ctx context.Context, userID, bookingID string) (*models.VerifyResult, error) {
	b, err := s.ownBooking(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}
	info, err := models.ParseFlightInfo(b.FlightBookingInfo)
	if err != nil {
		return nil, utils.BadRequest("Invalid flight booking info")
	}
	if len(info.Flights) == 0 {
		return &models.VerifyResult{Verified: false, Message: "No flight booking info available"}, nil
	}
	if s.Flights == nil || !s.Flights.Configured() {
		return nil, utils.Internal("AFS API key not configured", nil)
	}

	found := make([]*models.AFSFlight, len(info.Flights))
	g, gctx := errgroup.WithContext(ctx)
	for i, seg := range info.Flights {
		g.Go(func() error {
			f, err := s.Flights.GetFlight(gctx, seg.FlightID)
			if err != nil {
				return fmt.Errorf("flight %s: %w", seg.FlightID, err)
			}
			found[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, utils.Internal("Failed to verify flight", err)
	}

	observed := models.FlightScheduled
	result := &models.VerifyResult{Verified: true}
	for i, f := range found {
		status := f.Status
		if status == models.FlightScheduled {
			continue
		}
		if result.Verified {
			number := f.FlightNumber
			if number == "" {
				number = info.Flights[i].FlightNumber
			}
			result.Verified = false
			result.Message = fmt.Sprintf("Flight %s is not confirmed: %s", number, status)
		}
		switch {
		case status == models.FlightCancelled:
			observed = models.FlightCancelled
		case status == models.FlightDelayed && observed == models.FlightScheduled:
			observed = models.FlightDelayed
		}
	}

	if b.FlightStatus != observed {
		b.FlightStatus = observed
		if err := s.Bookings.Replace(ctx, b); err != nil {
			s.logger().Warn("failed to record flight status", zap.String("bookingId", b.ID), zap.Error(err))
		}
	}
	return result, nil
}
