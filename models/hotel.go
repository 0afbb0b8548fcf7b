package models

import (
	"encoding/json"
	"time"
)

// Hotel is a property listed by a hotel owner.
type Hotel struct {
	ID         string    `bson:"id" json:"id"`
	OwnerID    string    `bson:"ownerId" json:"ownerId"`
	Name       string    `bson:"name" json:"name"`
	Logo       string    `bson:"logo,omitempty" json:"logo,omitempty"`
	Address    string    `bson:"address" json:"address"`
	City       string    `bson:"city" json:"city"`
	Country    string    `bson:"country" json:"country"`
	StarRating int       `bson:"starRating" json:"starRating"`
	Images     []string  `bson:"images" json:"images"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// Room is a bookable unit of a hotel.
type Room struct {
	ID            string   `bson:"id" json:"id"`
	HotelID       string   `bson:"hotelId" json:"hotelId"`
	Type          string   `bson:"type" json:"type"`
	Amenities     []string `bson:"amenities" json:"amenities"`
	PricePerNight float64  `bson:"pricePerNight" json:"pricePerNight"`
	Images        []string `bson:"images" json:"images"`
	Available     bool     `bson:"available" json:"available"`
}

// StringList accepts either a JSON array or a string holding a JSON array.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err == nil {
		if raw == "" {
			*l = StringList{}
			return nil
		}
		b = []byte(raw)
	}
	var items []string
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	*l = items
	return nil
}

// HotelInput is used to create or partially update a hotel.
type HotelInput struct {
	Name       *string    `json:"name"`
	Logo       *string    `json:"logo"`
	Address    *string    `json:"address"`
	City       *string    `json:"city"`
	Country    *string    `json:"country"`
	StarRating *int       `json:"starRating"`
	Images     StringList `json:"images"`
}

// RoomInput is used to create or partially update a room.
type RoomInput struct {
	RoomID        string     `json:"roomId,omitempty"`
	Type          *string    `json:"type"`
	Amenities     StringList `json:"amenities"`
	PricePerNight *float64   `json:"pricePerNight"`
	Images        StringList `json:"images"`
	Available     *bool      `json:"available"`
}

// HotelWithRooms is the owner's view of one hotel.
type HotelWithRooms struct {
	Hotel *Hotel `json:"hotel"`
	Rooms []Room `json:"rooms"`
}

// HotelDetails is the visitor view of a hotel.
type HotelDetails struct {
	Hotel         *Hotel `json:"hotel"`
	AllRooms      []Room `json:"allRooms"`
	FilteredRooms []Room `json:"filteredRooms"`
}

// HotelSearchQuery holds the visitor search filters.
type HotelSearchQuery struct {
	CheckIn        time.Time
	CheckOut       time.Time
	City           string
	Name           string
	StarRating     int
	MinPrice       *float64
	MaxPrice       *float64
	PriceAscending bool
}

// HotelSearchResult is a hotel with its cheapest matching room.
type HotelSearchResult struct {
	Hotel
	StartingPrice *float64 `json:"startingPrice"`
	MapLocation   string   `json:"mapLocation"`
	FilteredRooms []string `json:"filteredRooms"`
}
