package booking

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"testing"

	"flynext/models"
	"flynext/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireAppError(t *testing.T, err error, code int, message string) {
	t.Helper()
	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
	assert.Equal(t, message, appErr.Message)
}

func TestCreateRoomBooking(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	b, err := f.svc.Create(ctx, "u1", roomRequest("r1", "2025-02-01", "2025-02-04"))
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, b.BookStatus)
	assert.Equal(t, models.FlightScheduled, b.FlightStatus)
	assert.True(t, b.HasRoom())
	assert.False(t, b.HasFlight())
	assert.Equal(t, 3, b.Nights())
}

func TestCreateRejectsOverlap(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Create(ctx, "u1", roomRequest("r1", "2025-02-01", "2025-02-04"))
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, "u1", roomRequest("r1", "2025-02-03", "2025-02-06"))
	requireAppError(t, err, http.StatusBadRequest, "Room is already booked for the selected dates")

	// Check-out day is free for the next guest.
	_, err = f.svc.Create(ctx, "u1", roomRequest("r1", "2025-02-04", "2025-02-06"))
	assert.NoError(t, err)
}

func TestCreateIgnoresCancelledBookings(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.svc.Create(ctx, "u1", roomRequest("r1", "2025-02-01", "2025-02-04"))
	require.NoError(t, err)
	_, err = f.svc.Cancel(ctx, "u1", models.CancelBookingRequest{BookingID: first.ID, CancelType: models.CancelBoth})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, "u1", roomRequest("r1", "2025-02-01", "2025-02-04"))
	assert.NoError(t, err)
}

func TestCreateValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Create(ctx, "u1", models.CreateBookingRequest{})
	requireAppError(t, err, http.StatusBadRequest, "A booking needs a room or at least one flight")

	_, err = f.svc.Create(ctx, "u1", models.CreateBookingRequest{FlightBookingInfo: "{not json"})
	requireAppError(t, err, http.StatusBadRequest, "Invalid flight booking info")

	_, err = f.svc.Create(ctx, "u1", roomRequest("r1", "2025-02-04", "2025-02-01"))
	requireAppError(t, err, http.StatusBadRequest, "checkOut must be after checkIn")

	_, err = f.svc.Create(ctx, "u1", roomRequest("r1", "", "2025-02-01"))
	requireAppError(t, err, http.StatusBadRequest, "Missing checkIn or checkOut dates for room booking")

	_, err = f.svc.Create(ctx, "u1", roomRequest("missing", "2025-02-01", "2025-02-02"))
	requireAppError(t, err, http.StatusNotFound, "Room not found")

	_, err = f.svc.Create(ctx, "u1", roomRequest("r3", "2025-02-01", "2025-02-02"))
	requireAppError(t, err, http.StatusBadRequest, "Room is not available")
}

func TestCreateFlightOnly(t *testing.T) {
	f := newFixture()
	b, err := f.svc.Create(context.Background(), "u1", models.CreateBookingRequest{FlightBookingInfo: twoFlights})
	require.NoError(t, err)
	assert.True(t, b.HasFlight())
	assert.False(t, b.HasRoom())
}

func TestApplyCancellation(t *testing.T) {
	in, out := day("2025-02-01"), day("2025-02-03")
	base := func() *models.Booking {
		return &models.Booking{
			ID: "b1", HotelID: "h1", RoomID: "r1", CheckIn: &in, CheckOut: &out,
			FlightBookingInfo: twoFlights, BookStatus: models.BookingConfirmed, FlightStatus: models.FlightScheduled,
		}
	}

	b := base()
	require.NoError(t, ApplyCancellation(b, models.CancelFlight))
	assert.False(t, b.HasFlight())
	assert.True(t, b.HasRoom())
	assert.Equal(t, models.FlightCancelled, b.FlightStatus)
	assert.Equal(t, models.BookingConfirmed, b.BookStatus)

	b = base()
	require.NoError(t, ApplyCancellation(b, models.CancelRoom))
	assert.False(t, b.HasRoom())
	assert.Nil(t, b.CheckIn)
	assert.Equal(t, models.BookingConfirmed, b.BookStatus)

	b = base()
	require.NoError(t, ApplyCancellation(b, models.CancelBoth))
	assert.Equal(t, models.BookingCancelled, b.BookStatus)

	b = base()
	err := ApplyCancellation(b, "everything")
	requireAppError(t, err, http.StatusBadRequest, "Invalid cancelType")
	assert.True(t, b.HasRoom())
	assert.True(t, b.HasFlight())
}

func TestCancelForeignBookingLooksMissing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b, err := f.svc.Create(ctx, "u1", roomRequest("r1", "2025-02-01", "2025-02-04"))
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, "someone-else", models.CancelBookingRequest{BookingID: b.ID, CancelType: models.CancelBoth})
	requireAppError(t, err, http.StatusNotFound, "Booking not found")
}

func TestCancelTwice(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b, err := f.svc.Create(ctx, "u1", roomRequest("r1", "2025-02-01", "2025-02-04"))
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, "u1", models.CancelBookingRequest{BookingID: b.ID, CancelType: models.CancelRoom})
	require.NoError(t, err)
	_, err = f.svc.Cancel(ctx, "u1", models.CancelBookingRequest{BookingID: b.ID, CancelType: models.CancelBoth})
	requireAppError(t, err, http.StatusBadRequest, "Booking is already cancelled")
}

func TestEditOnlyPending(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b, err := f.svc.Create(ctx, "u1", roomRequest("r1", "2025-02-01", "2025-02-04"))
	require.NoError(t, err)

	newOut := "2025-02-06"
	edited, err := f.svc.Edit(ctx, "u1", models.EditBookingRequest{BookingID: b.ID, CheckOut: &newOut})
	require.NoError(t, err)
	assert.Equal(t, 5, edited.Nights())

	stored, _ := f.bookings.GetByID(ctx, b.ID)
	stored.BookStatus = models.BookingConfirmed
	require.NoError(t, f.bookings.Replace(ctx, stored))

	_, err = f.svc.Edit(ctx, "u1", models.EditBookingRequest{BookingID: b.ID, CheckOut: &newOut})
	requireAppError(t, err, http.StatusBadRequest, "Only pending bookings can be edited")
}

func TestCheckoutConfirmsBooking(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	req := roomRequest("r1", "2025-02-01", "2025-02-04")
	req.FlightBookingInfo = twoFlights
	b, err := f.svc.Create(ctx, "u1", req)
	require.NoError(t, err)

	res, err := f.svc.Checkout(ctx, "u1", models.CheckoutRequest{
		BookingID: b.ID, CardNumber: "4242424242424242", ExpiryDate: "12/30",
	})
	require.NoError(t, err)
	assert.Equal(t, "Payment processed, booking confirmed, and invoice generated.", res.Message)
	assert.Equal(t, 650.0, res.Amount)
	assert.Equal(t, 650.0, f.gateway.charged)

	pdf, err := base64.StdEncoding.DecodeString(res.Invoice)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"))

	stored, err := f.bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, stored.BookStatus)
	assert.Equal(t, "AFS-REF-1", stored.Reference)

	require.Len(t, f.flights.booked, 1)
	assert.Equal(t, []string{"F1", "F2"}, f.flights.booked[0].FlightIDs)
	assert.Equal(t, afsPassportNumber, f.flights.booked[0].PassportNumber)

	p, err := f.payments.GetByBookingID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "4242", p.CardLast4)
	assert.Equal(t, models.PaymentSuccess, p.Status)

	var toOwner, toUser int
	for _, n := range f.notifier.sent {
		if n.owner {
			toOwner++
			assert.Equal(t, "owner-1", n.recipient)
		} else {
			toUser++
			assert.Equal(t, "u1", n.recipient)
		}
	}
	assert.Equal(t, 1, toOwner)
	assert.Equal(t, 1, toUser)

	_, err = f.svc.Checkout(ctx, "u1", models.CheckoutRequest{
		BookingID: b.ID, CardNumber: "4242424242424242", ExpiryDate: "12/30",
	})
	requireAppError(t, err, http.StatusBadRequest, "This booking is not pending")
}

func TestCheckoutFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("missing fields", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Checkout(ctx, "u1", models.CheckoutRequest{BookingID: "x"})
		requireAppError(t, err, http.StatusBadRequest, "Missing required fields")
	})

	t.Run("foreign booking", func(t *testing.T) {
		f := newFixture()
		b, err := f.svc.Create(ctx, "u1", roomRequest("r1", "2025-02-01", "2025-02-04"))
		require.NoError(t, err)
		_, err = f.svc.Checkout(ctx, "intruder", models.CheckoutRequest{
			BookingID: b.ID, CardNumber: "4242424242424242", ExpiryDate: "12/30",
		})
		requireAppError(t, err, http.StatusForbidden, "Access Denied")
	})

	t.Run("afs not confirmed leaves no payment", func(t *testing.T) {
		f := newFixture()
		f.flights.bookStatus = "PENDING"
		b, err := f.svc.Create(ctx, "u1", models.CreateBookingRequest{FlightBookingInfo: twoFlights})
		require.NoError(t, err)
		_, err = f.svc.Checkout(ctx, "u1", models.CheckoutRequest{
			BookingID: b.ID, CardNumber: "4242424242424242", ExpiryDate: "12/30",
		})
		requireAppError(t, err, http.StatusBadRequest, "AFS booking not confirmed: PENDING")
		_, err = f.payments.GetByBookingID(ctx, b.ID)
		assert.Error(t, err)
	})

	t.Run("declined", func(t *testing.T) {
		f := newFixture()
		f.gateway.declined = true
		b, err := f.svc.Create(ctx, "u1", roomRequest("r1", "2025-02-01", "2025-02-04"))
		require.NoError(t, err)
		_, err = f.svc.Checkout(ctx, "u1", models.CheckoutRequest{
			BookingID: b.ID, CardNumber: "4242424242424242", ExpiryDate: "12/30",
		})
		requireAppError(t, err, http.StatusPaymentRequired, "Payment was declined")
		stored, _ := f.bookings.GetByID(ctx, b.ID)
		assert.Equal(t, models.BookingPending, stored.BookStatus)
	})
}

func TestRetrieve(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	req := roomRequest("r2", "2025-02-01", "2025-02-03")
	req.FlightBookingInfo = twoFlights
	b, err := f.svc.Create(ctx, "u1", req)
	require.NoError(t, err)

	details, err := f.svc.Retrieve(ctx, "u1", b.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, details.NightsStayed)
	assert.Equal(t, 850.0, details.Price)
	assert.Equal(t, "Los Angeles", details.MainDestination)
	assert.Equal(t, "Harbour Inn", details.Hotel.Name)
	assert.Len(t, details.Flights, 2)

	_, err = f.svc.Retrieve(ctx, "u1", "")
	requireAppError(t, err, http.StatusBadRequest, "Missing bookingId")
}

func TestListUserBookings(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.svc.Create(ctx, "u1", roomRequest("r1", "2025-02-01", "2025-02-03"))
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, "u1", models.CreateBookingRequest{FlightBookingInfo: twoFlights})
	require.NoError(t, err)

	list, err := f.svc.ListUserBookings(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, ub := range list {
		if ub.HasRoom() {
			require.NotNil(t, ub.Hotel)
			require.NotNil(t, ub.Room)
			assert.Equal(t, "Deluxe", ub.Room.Type)
		}
	}

	empty, err := f.svc.ListUserBookings(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestVerify(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b, err := f.svc.Create(ctx, "u1", models.CreateBookingRequest{FlightBookingInfo: twoFlights})
	require.NoError(t, err)

	res, err := f.svc.Verify(ctx, "u1", b.ID)
	require.NoError(t, err)
	assert.True(t, res.Verified)

	f.flights.statuses["F2"] = models.FlightDelayed
	res, err = f.svc.Verify(ctx, "u1", b.ID)
	require.NoError(t, err)
	assert.False(t, res.Verified)
	assert.Equal(t, "Flight AC201 is not confirmed: DELAYED", res.Message)
	stored, _ := f.bookings.GetByID(ctx, b.ID)
	assert.Equal(t, models.FlightDelayed, stored.FlightStatus)

	f.flights.statuses["F1"] = models.FlightCancelled
	_, err = f.svc.Verify(ctx, "u1", b.ID)
	require.NoError(t, err)
	stored, _ = f.bookings.GetByID(ctx, b.ID)
	assert.Equal(t, models.FlightCancelled, stored.FlightStatus)

	roomOnly, err := f.svc.Create(ctx, "u1", roomRequest("r1", "2025-02-01", "2025-02-03"))
	require.NoError(t, err)
	res, err = f.svc.Verify(ctx, "u1", roomOnly.ID)
	require.NoError(t, err)
	assert.False(t, res.Verified)
	assert.Equal(t, "No flight booking info available", res.Message)
}

func TestOwnerBookingsAndAvailability(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.svc.Create(ctx, "u1", roomRequest("r1", "2025-02-01", "2025-02-03"))
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, "u1", roomRequest("r2", "2025-03-01", "2025-03-03"))
	require.NoError(t, err)

	start, end := day("2025-02-01"), day("2025-02-10")
	res, err := f.svc.ListOwnerBookings(ctx, "owner-1", "h1", models.OwnerBookingFilter{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	require.Len(t, res.Bookings, 1)
	assert.Equal(t, "r1", res.Bookings[0].RoomID)
	// r1 is booked, r3 is closed, r2 is free.
	assert.Equal(t, []models.RoomTypeAvailability{{Type: "Suite", Available: 1}}, res.RoomAvailability)

	all, err := f.svc.ListOwnerBookings(ctx, "owner-1", "h1", models.OwnerBookingFilter{RoomType: "Suite"})
	require.NoError(t, err)
	require.Len(t, all.Bookings, 1)
	assert.Equal(t, "r2", all.Bookings[0].RoomID)

	_, err = f.svc.ListOwnerBookings(ctx, "someone", "h1", models.OwnerBookingFilter{})
	requireAppError(t, err, http.StatusForbidden, "Access Denied")
	_, err = f.svc.ListOwnerBookings(ctx, "owner-1", "nope", models.OwnerBookingFilter{})
	requireAppError(t, err, http.StatusNotFound, "Hotel not found")

	xlsx, err := f.svc.ExportOwnerBookings(ctx, "owner-1", "h1", models.OwnerBookingFilter{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(xlsx), "PK"))
}

func TestOwnerCancelKeepsFlight(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	req := roomRequest("r1", "2025-02-01", "2025-02-03")
	req.FlightBookingInfo = twoFlights
	b, err := f.svc.Create(ctx, "u1", req)
	require.NoError(t, err)

	updated, err := f.svc.OwnerCancel(ctx, "owner-1", "h1", b.ID)
	require.NoError(t, err)
	assert.False(t, updated.HasRoom())
	assert.True(t, updated.HasFlight())
	assert.Equal(t, models.BookingPending, updated.BookStatus)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "u1", f.notifier.sent[0].recipient)
	assert.Contains(t, f.notifier.sent[0].message, "Your flight booking remains active.")

	_, err = f.svc.OwnerCancel(ctx, "owner-1", "h1", "")
	requireAppError(t, err, http.StatusBadRequest, "Booking ID and Hotel ID are required")
}

func TestCheckoutRetryAfterDeclineReusesFlightReference(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b, err := f.svc.Create(ctx, "u1", models.CreateBookingRequest{FlightBookingInfo: twoFlights})
	require.NoError(t, err)
	checkout := models.CheckoutRequest{BookingID: b.ID, CardNumber: "4242424242424242", ExpiryDate: "12/30"}

	f.gateway.declined = true
	_, err = f.svc.Checkout(ctx, "u1", checkout)
	requireAppError(t, err, http.StatusPaymentRequired, "Payment was declined")
	stored, _ := f.bookings.GetByID(ctx, b.ID)
	assert.Equal(t, models.BookingPending, stored.BookStatus)
	assert.Equal(t, "AFS-REF-1", stored.Reference)

	f.gateway.declined = false
	_, err = f.svc.Checkout(ctx, "u1", checkout)
	require.NoError(t, err)
	assert.Len(t, f.flights.booked, 1)
	stored, _ = f.bookings.GetByID(ctx, b.ID)
	assert.Equal(t, models.BookingConfirmed, stored.BookStatus)
	assert.Equal(t, "AFS-REF-1", stored.Reference)
}

func TestEditItineraryDropsFlightReference(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b, err := f.svc.Create(ctx, "u1", models.CreateBookingRequest{FlightBookingInfo: twoFlights})
	require.NoError(t, err)
	stored, _ := f.bookings.GetByID(ctx, b.ID)
	stored.Reference = "AFS-REF-OLD"
	require.NoError(t, f.bookings.Replace(ctx, stored))

	oneFlight := models.RawJSON(`{"flights":[{"flightId":"F1","flightNumber":"AC100","origin":"YYZ","destination":"JFK","price":150}]}`)
	edited, err := f.svc.Edit(ctx, "u1", models.EditBookingRequest{BookingID: b.ID, FlightBookingInfo: &oneFlight})
	require.NoError(t, err)
	assert.Empty(t, edited.Reference)
}

func TestEditClearingRoomDropsDates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	req := roomRequest("r1", "2025-02-01", "2025-02-04")
	req.FlightBookingInfo = twoFlights
	b, err := f.svc.Create(ctx, "u1", req)
	require.NoError(t, err)

	empty := ""
	edited, err := f.svc.Edit(ctx, "u1", models.EditBookingRequest{BookingID: b.ID, HotelID: &empty, RoomID: &empty})
	require.NoError(t, err)
	assert.False(t, edited.HasRoom())
	assert.Nil(t, edited.CheckIn)
	assert.Nil(t, edited.CheckOut)
	assert.True(t, edited.HasFlight())

	stored, _ := f.bookings.GetByID(ctx, b.ID)
	assert.Nil(t, stored.CheckIn)
	assert.Nil(t, stored.CheckOut)

	// The room can be released now that the dates are gone.
	_, err = f.svc.Create(ctx, "u1", roomRequest("r1", "2025-02-02", "2025-02-03"))
	require.NoError(t, err)

	_, err = f.svc.Edit(ctx, "u1", models.EditBookingRequest{BookingID: b.ID, HotelID: &empty, RoomID: &empty,
		FlightBookingInfo: func() *models.RawJSON { r := models.RawJSON(`{"flights":[]}`); return &r }()})
	requireAppError(t, err, http.StatusBadRequest, "A booking needs a room or at least one flight")
}

func TestCancelConfirmedRoomNotifiesUserAndOwner(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	req := roomRequest("r1", "2025-02-01", "2025-02-03")
	req.FlightBookingInfo = twoFlights
	b, err := f.svc.Create(ctx, "u1", req)
	require.NoError(t, err)
	stored, _ := f.bookings.GetByID(ctx, b.ID)
	stored.BookStatus = models.BookingConfirmed
	require.NoError(t, f.bookings.Replace(ctx, stored))
	f.notifier.sent = nil

	updated, err := f.svc.Cancel(ctx, "u1", models.CancelBookingRequest{BookingID: b.ID, CancelType: models.CancelRoom})
	require.NoError(t, err)
	assert.False(t, updated.HasRoom())
	assert.Equal(t, models.BookingConfirmed, updated.BookStatus)

	require.Len(t, f.notifier.sent, 2)
	var userMsg, ownerMsg string
	for _, n := range f.notifier.sent {
		if n.owner {
			assert.Equal(t, "owner-1", n.recipient)
			ownerMsg = n.message
		} else {
			assert.Equal(t, "u1", n.recipient)
			userMsg = n.message
		}
	}
	assert.Contains(t, userMsg, "the room portion of your booking #"+b.ID+" has been cancelled.")
	assert.Contains(t, userMsg, "Your flight booking remains active.")
	assert.Contains(t, ownerMsg, "at Harbour Inn has been cancelled by the guest.")
	assert.Contains(t, ownerMsg, "Original check-in: 2025-02-01.")
}

func TestCancelPendingRoomSendsNothing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	b, err := f.svc.Create(ctx, "u1", roomRequest("r1", "2025-02-01", "2025-02-03"))
	require.NoError(t, err)
	f.notifier.sent = nil

	_, err = f.svc.Cancel(ctx, "u1", models.CancelBookingRequest{BookingID: b.ID, CancelType: models.CancelRoom})
	require.NoError(t, err)
	assert.Empty(t, f.notifier.sent)
}
