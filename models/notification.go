package models

import "time"

// Notification is an in-app message for a traveller or a hotel owner.
type Notification struct {
	ID           string    `bson:"id" json:"id"`
	UserID       string    `bson:"userId,omitempty" json:"userId,omitempty"`
	HotelOwnerID string    `bson:"hotelOwnerId,omitempty" json:"hotelOwnerId,omitempty"`
	Message      string    `bson:"message" json:"message"`
	IsRead       bool      `bson:"isRead" json:"isRead"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// Recipient returns whichever id the notification is addressed to.
func (n *Notification) Recipient() string {
	if n.UserID != "" {
		return n.UserID
	}
	return n.HotelOwnerID
}

// MarkReadRequest is the body of the read endpoint.
type MarkReadRequest struct {
	NotificationIDs []string `json:"notificationIds"`
}

// PushPayload is the task payload for asynchronous push delivery.
type PushPayload struct {
	RecipientID string `json:"recipientId"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	Kind        string `json:"kind,omitempty"`
}

// ReminderPayload schedules a check-in reminder.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	UserID    string `json:"userId"`
	HotelName string `json:"hotelName"`
	CheckIn   string `json:"checkIn"`
}
