package models

import "time"

// Roles.
const (
	RoleUser       = "USER"
	RoleHotelOwner = "HOTEL_OWNER"
)

// User represents a platform account.
type User struct {
	ID             string    `bson:"id" json:"id"`
	Email          string    `bson:"email" json:"email"`
	Password       string    `bson:"password" json:"-"`
	FirstName      string    `bson:"firstName" json:"firstName"`
	LastName       string    `bson:"lastName" json:"lastName"`
	Role           string    `bson:"role" json:"role"`
	ProfilePicture string    `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
	Phone          string    `bson:"phone,omitempty" json:"phone,omitempty"`
	FCMToken       string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}

// FullName joins first and last name.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// RegisterRequest is the body of the registration endpoint.
type RegisterRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Role           string `json:"role"`
	Phone          string `json:"phone"`
	ProfilePicture string `json:"profilePicture"`
}

// LoginRequest is the body of the login endpoint.
type LoginRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	IsVisitor bool   `json:"isVisitor"`
}

// Profile is the public view of the logged-in user.
type Profile struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	ProfilePicture string `json:"profilePicture"`
	Phone          string `json:"phone"`
}

// ProfileUpdate carries optional profile fields.
type ProfileUpdate struct {
	FirstName      *string `json:"firstName"`
	LastName       *string `json:"lastName"`
	ProfilePicture *string `json:"profilePicture"`
	Phone          *string `json:"phone"`
}
