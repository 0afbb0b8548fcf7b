package models

// City is a known city/country pair.
type City struct {
	City    string `bson:"city" json:"city"`
	Country string `bson:"country" json:"country"`
}

// Airport is an AFS-known airport.
type Airport struct {
	ID      string `bson:"id" json:"id"`
	Code    string `bson:"code" json:"code"`
	Name    string `bson:"name" json:"name"`
	City    string `bson:"city" json:"city"`
	Country string `bson:"country" json:"country"`
}

// PlaceSuggestion is a flight-search autocomplete entry.
type PlaceSuggestion struct {
	Label string `json:"label"`
	Type  string `json:"type"`
	Code  string `json:"code,omitempty"`
	City  string `json:"city"`
}
