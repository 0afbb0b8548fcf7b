package models

// FlightSearchQuery is the visitor flight search input.
type FlightSearchQuery struct {
	Origin      string
	Destination string
	Date        string
	TripType    string
	ReturnDate  string
}

// Trip types.
const (
	TripOneWay    = "one-way"
	TripRoundTrip = "round-trip"
)

// AFSBookingRequest is sent to AFS to confirm flights.
type AFSBookingRequest struct {
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Email          string   `json:"email"`
	PassportNumber string   `json:"passportNumber"`
	FlightIDs      []string `json:"flightIds"`
}

// AFSBookingResponse is the relevant part of the AFS booking response.
type AFSBookingResponse struct {
	BookingReference string `json:"bookingReference"`
	Status           string `json:"status"`
}

// AFSFlight is a single flight as returned by AFS.
type AFSFlight struct {
	ID             string         `json:"id"`
	FlightNumber   string         `json:"flightNumber"`
	DepartureTime  string         `json:"departureTime"`
	ArrivalTime    string         `json:"arrivalTime"`
	Duration       int            `json:"duration"`
	Price          float64        `json:"price"`
	Currency       string         `json:"currency"`
	AvailableSeats int            `json:"availableSeats"`
	Status         string         `json:"status"`
	Airline        map[string]any `json:"airline,omitempty"`
	Origin         map[string]any `json:"origin,omitempty"`
	Destination    map[string]any `json:"destination,omitempty"`
}

// RoundTripResult pairs outbound and inbound search results.
type RoundTripResult struct {
	Outbound any `json:"outbound"`
	Inbound  any `json:"inbound"`
}
