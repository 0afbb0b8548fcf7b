package models

import "time"

// Payment statuses.
const (
	PaymentSuccess = "SUCCESS"
	PaymentFailed  = "FAILED"
)

// Payment records a checkout charge.
type Payment struct {
	ID         string    `bson:"id" json:"id"`
	BookingID  string    `bson:"bookingId" json:"bookingId"`
	UserID     string    `bson:"userId" json:"userId"`
	Amount     float64   `bson:"amount" json:"amount"`
	CardLast4  string    `bson:"cardLast4,omitempty" json:"cardLast4,omitempty"`
	Status     string    `bson:"status" json:"status"`
	GatewayRef string    `bson:"gatewayRef,omitempty" json:"gatewayRef,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// CardDetails is the body of the card validation endpoint.
type CardDetails struct {
	CardNumber string `json:"cardNumber"`
	ExpiryDate string `json:"expiryDate"`
}

// InvoiceRequest is the body of the invoice endpoint.
type InvoiceRequest struct {
	Booking *Booking `json:"booking"`
	Payment *Payment `json:"payment"`
	User    *User    `json:"user"`
}
