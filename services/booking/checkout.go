package booking

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"flynext/database"
	"flynext/models"
	"flynext/services/payment"
	"flynext/services/tasks"
	"flynext/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// afsPassportNumber is sent with every AFS booking; passports are not collected.
const afsPassportNumber = "A12345678"

// reminderLead is how long before check-in the reminder fires.
const reminderLead = 24 * time.Hour

// Checkout charges the card, confirms flights with AFS and marks the booking CONFIRMED.
func (s *DefaultBookingService) Checkout(ctx context.Context, userID string, req models.CheckoutRequest) (*models.CheckoutResult, error) {
	logger := s.logger().With(zap.String("bookingId", req.BookingID), zap.String("userId", userID))

	if req.BookingID == "" || req.CardNumber == "" || req.ExpiryDate == "" {
		return nil, utils.BadRequest("Missing required fields")
	}
	b, err := s.loadBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, utils.Forbidden("Access Denied")
	}
	if b.BookStatus != models.BookingPending {
		return nil, utils.BadRequest("This booking is not pending")
	}
	if err := payment.ValidateCard(req.CardNumber, req.ExpiryDate, s.now()); err != nil {
		return nil, err
	}

	if _, err := s.Payments.GetByBookingID(ctx, b.ID); err == nil {
		return nil, utils.BadRequest("Payment already exists for this booking")
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, utils.Internal("failed to check payment", err)
	}

	amount, _, _, err := s.computePrice(ctx, b)
	if err != nil {
		return nil, err
	}

	u, err := s.Users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Flights are confirmed first so a rejected itinerary leaves no payment behind.
	// The reference is stored right away so a retried checkout reuses it.
	info, _ := models.ParseFlightInfo(b.FlightBookingInfo)
	if len(info.Flights) > 0 && b.Reference == "" {
		ref, err := s.confirmFlights(ctx, u, info)
		if err != nil {
			return nil, err
		}
		b.Reference = ref
		if err := s.Bookings.Replace(ctx, b); err != nil {
			return nil, utils.Internal("failed to store flight reference", err)
		}
	}

	last4 := payment.Last4(req.CardNumber)
	charge, err := s.Gateway.Charge(ctx, b.ID, amount, last4)
	if err != nil {
		return nil, utils.Internal("payment gateway error", err)
	}
	if !charge.Succeeded {
		return nil, utils.NewAppError(402, "Payment was declined")
	}

	p := &models.Payment{
		ID:         uuid.NewString(),
		BookingID:  b.ID,
		UserID:     userID,
		Amount:     amount,
		CardLast4:  last4,
		Status:     models.PaymentSuccess,
		GatewayRef: charge.Reference,
		CreatedAt:  s.now(),
	}
	if err := s.Payments.Create(ctx, p); err != nil {
		return nil, utils.Internal("failed to record payment", err)
	}

	b.BookStatus = models.BookingConfirmed
	if err := s.Bookings.Replace(ctx, b); err != nil {
		return nil, utils.Internal("failed to confirm booking", err)
	}
	logger.Info("booking confirmed", zap.Float64("amount", amount), zap.String("reference", b.Reference))

	pdf, err := payment.GenerateInvoice(b, p, u)
	if err != nil {
		return nil, utils.Internal("Invoice generation failed", err)
	}

	hotel, err := s.hotelOwner(ctx, b.HotelID)
	if err != nil {
		logger.Warn("hotel lookup failed", zap.Error(err))
	}
	s.announceConfirmation(ctx, b, hotel)
	s.scheduleReminder(ctx, b, hotel)

	return &models.CheckoutResult{
		Message: "Payment processed, booking confirmed, and invoice generated.",
		Invoice: base64.StdEncoding.EncodeToString(pdf),
		Amount:  amount,
	}, nil
}

func (s *DefaultBookingService) confirmFlights(ctx context.Context, u *models.User, info *models.FlightBookingInfo) (string, error) {
	if s.Flights == nil || !s.Flights.Configured() {
		return "", utils.Internal("AFS booking failed", errors.New("AFS API key not configured"))
	}
	resp, err := s.Flights.Book(ctx, models.AFSBookingRequest{
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		PassportNumber: afsPassportNumber,
		FlightIDs:      info.FlightIDs(),
	})
	if err != nil {
		return "", utils.Internal("AFS booking failed", err)
	}
	if resp.Status != models.BookingConfirmed {
		return "", utils.BadRequest("AFS booking not confirmed: " + resp.Status)
	}
	return resp.BookingReference, nil
}

func (s *DefaultBookingService) announceConfirmation(ctx context.Context, b *models.Booking, hotel *models.Hotel) {
	msg := fmt.Sprintf("Your booking #%s has been confirmed!", b.ID)
	if hotel != nil {
		msg += " Hotel: " + hotel.Name + "."
	}
	if b.HasFlight() {
		msg += " Flight details have been confirmed."
	}
	s.notify(ctx, false, b.UserID, msg)

	if hotel == nil {
		return
	}
	ownerMsg := fmt.Sprintf("New Booking Alert! Booking #%s has been confirmed for %s.", b.ID, hotel.Name)
	if b.CheckIn != nil {
		ownerMsg += " Check-in: " + formatDay(b.CheckIn) + "."
	}
	if b.CheckOut != nil {
		ownerMsg += " Check-out: " + formatDay(b.CheckOut) + "."
	}
	s.notify(ctx, true, hotel.OwnerID, ownerMsg)
}

// scheduleReminder enqueues a reminder one day before check-in, or right away
// when check-in is less than a day out.
func (s *DefaultBookingService) scheduleReminder(ctx context.Context, b *models.Booking, hotel *models.Hotel) {
	if s.Queue == nil || b.CheckIn == nil || !b.CheckIn.After(s.now()) {
		return
	}
	payload := models.ReminderPayload{
		BookingID: b.ID,
		UserID:    b.UserID,
		CheckIn:   formatDay(b.CheckIn),
	}
	if hotel != nil {
		payload.HotelName = hotel.Name
	}
	fireAt := b.CheckIn.Add(-reminderLead)
	if fireAt.Before(s.now()) {
		fireAt = s.now()
	}
	task, opts, err := tasks.NewReminderTask(payload, fireAt)
	if err != nil {
		s.logger().Warn("failed to build reminder task", zap.Error(err))
		return
	}
	if _, err := s.Queue.EnqueueContext(ctx, task, opts...); err != nil {
		s.logger().Warn("failed to schedule check-in reminder", zap.String("bookingId", b.ID), zap.Error(err))
	}
}
