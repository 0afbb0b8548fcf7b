package models

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

// Booking statuses.
const (
	BookingPending   = "PENDING"
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
)

// Flight statuses as reported by AFS.
const (
	FlightScheduled = "SCHEDULED"
	FlightCancelled = "CANCELLED"
	FlightDelayed   = "DELAYED"
)

// Booking combines an optional room stay with an optional flight itinerary.
type Booking struct {
	ID                string     `bson:"id" json:"id"`
	UserID            string     `bson:"userId" json:"userId"`
	HotelID           string     `bson:"hotelId,omitempty" json:"hotelId,omitempty"`
	RoomID            string     `bson:"roomId,omitempty" json:"roomId,omitempty"`
	CheckIn           *time.Time `bson:"checkIn,omitempty" json:"checkIn,omitempty"`
	CheckOut          *time.Time `bson:"checkOut,omitempty" json:"checkOut,omitempty"`
	FlightBookingInfo string     `bson:"flightBookingInfo,omitempty" json:"flightBookingInfo,omitempty"`
	Reference         string     `bson:"reference,omitempty" json:"reference,omitempty"`
	BookStatus        string     `bson:"bookStatus" json:"bookStatus"`
	FlightStatus      string     `bson:"flightStatus" json:"flightStatus"`
	CreatedAt         time.Time  `bson:"createdAt" json:"createdAt"`
}

// HasRoom reports whether the room portion is still present.
func (b *Booking) HasRoom() bool {
	return b.HotelID != "" && b.RoomID != ""
}

// HasFlight reports whether the flight portion is still present.
func (b *Booking) HasFlight() bool {
	info, err := ParseFlightInfo(b.FlightBookingInfo)
	return err == nil && len(info.Flights) > 0
}

// Nights is the number of nights between check-in and check-out, at least 1 when both are set.
func (b *Booking) Nights() int {
	if b.CheckIn == nil || b.CheckOut == nil {
		return 0
	}
	n := int(math.Round(b.CheckOut.Sub(*b.CheckIn).Hours() / 24))
	if n < 1 {
		n = 1
	}
	return n
}

// FlightSegment is one leg of the itinerary, as returned by AFS.
type FlightSegment struct {
	FlightID        string  `json:"flightId"`
	FlightNumber    string  `json:"flightNumber"`
	Origin          string  `json:"origin"`
	Destination     string  `json:"destination"`
	Airline         string  `json:"airline"`
	DepartureTime   string  `json:"departureTime"`
	ArrivalTime     string  `json:"arrivalTime"`
	Status          string  `json:"status"`
	Price           float64 `json:"price"`
	MainDestination string  `json:"mainDestination,omitempty"`
}

// FlightBookingInfo is the decoded form of Booking.FlightBookingInfo.
type FlightBookingInfo struct {
	Flights []FlightSegment `json:"flights"`
}

// ParseFlightInfo decodes the stored blob. An empty blob means no flights.
func ParseFlightInfo(raw string) (*FlightBookingInfo, error) {
	info := &FlightBookingInfo{}
	if strings.TrimSpace(raw) == "" {
		return info, nil
	}
	if err := json.Unmarshal([]byte(raw), info); err != nil {
		return nil, err
	}
	return info, nil
}

// TotalPrice sums segment prices.
func (f *FlightBookingInfo) TotalPrice() float64 {
	var sum float64
	for _, s := range f.Flights {
		sum += s.Price
	}
	return sum
}

// FlightIDs lists the AFS ids of all segments.
func (f *FlightBookingInfo) FlightIDs() []string {
	ids := make([]string, 0, len(f.Flights))
	for _, s := range f.Flights {
		ids = append(ids, s.FlightID)
	}
	return ids
}

// RawJSON accepts a JSON object or a string holding one and keeps the object text.
type RawJSON string

func (r *RawJSON) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*r = RawJSON(s)
		return nil
	}
	if string(b) == "null" {
		*r = ""
		return nil
	}
	*r = RawJSON(b)
	return nil
}

// RoomBookingInfo is the room part of a combined booking request.
type RoomBookingInfo struct {
	HotelID  string `json:"hotelId"`
	RoomID   string `json:"roomId"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
}

// CreateBookingRequest is the body of the combined create endpoint.
type CreateBookingRequest struct {
	FlightBookingInfo RawJSON `json:"flightBookingInfo"`
	RoomBookingInfo   RawJSON `json:"roomBookingInfo"`
}

// EditBookingRequest carries optional booking fields.
type EditBookingRequest struct {
	BookingID         string   `json:"bookingId"`
	HotelID           *string  `json:"hotelId"`
	RoomID            *string  `json:"roomId"`
	CheckIn           *string  `json:"checkIn"`
	CheckOut          *string  `json:"checkOut"`
	FlightBookingInfo *RawJSON `json:"flightBookingInfo"`
}

// Cancel types.
const (
	CancelFlight = "flight"
	CancelRoom   = "room"
	CancelBoth   = "both"
)

// CancelBookingRequest is the body of the combined cancel endpoint.
type CancelBookingRequest struct {
	BookingID  string `json:"bookingId"`
	CancelType string `json:"cancelType"`
}

// CheckoutRequest is the body of the combined checkout endpoint.
type CheckoutRequest struct {
	BookingID  string `json:"bookingId"`
	CardNumber string `json:"cardNumber"`
	ExpiryDate string `json:"expiryDate"`
}

// CheckoutResult is returned after a successful checkout.
type CheckoutResult struct {
	Message string  `json:"message"`
	Invoice string  `json:"invoice"`
	Amount  float64 `json:"amount"`
}

// BookingDetails is the itinerary view of one booking.
type BookingDetails struct {
	Booking         *Booking        `json:"booking"`
	Hotel           *Hotel          `json:"hotel"`
	Room            *Room           `json:"room"`
	Flights         []FlightSegment `json:"flight"`
	Price           float64         `json:"price"`
	NightsStayed    int             `json:"nightsStayed"`
	MainDestination string          `json:"mainDestination,omitempty"`
}

// UserBooking is a booking with its related records.
type UserBooking struct {
	Booking
	Hotel   *Hotel   `json:"hotel,omitempty"`
	Room    *Room    `json:"room,omitempty"`
	Payment *Payment `json:"payment,omitempty"`
}

// VerifyResult reports whether all flights are still scheduled.
type VerifyResult struct {
	Verified bool   `json:"verified"`
	Message  string `json:"message,omitempty"`
}

// OwnerBookingFilter narrows the owner's bookings list.
type OwnerBookingFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	RoomType  string
}

// OwnerBooking is a booking of an owner's hotel with its room.
type OwnerBooking struct {
	Booking
	Room *Room `json:"room,omitempty"`
}

// RoomTypeAvailability counts free rooms of one type.
type RoomTypeAvailability struct {
	Type      string `json:"type"`
	Available int    `json:"available"`
}

// OwnerBookings is the owner's booking list plus room availability per type.
type OwnerBookings struct {
	Bookings         []OwnerBooking         `json:"bookings"`
	RoomAvailability []RoomTypeAvailability `json:"roomAvailability"`
}
