package user

import (
	"context"

	userRepo "flynext/database/repository/user"
	"flynext/models"
)

type UserService interface {
	// Authentication
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error)

	// Profile
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (*models.Profile, error)
	UpdateFCMToken(ctx context.Context, userID, token string) error
	PromoteToHotelOwner(ctx context.Context, userID string) (*models.User, bool, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo       userRepo.UserRepository
	SaltRounds int
}

// AuthResponse holds the freshly issued tokens and the identity they carry.
type AuthResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"-"`
	RefreshToken string       `json:"-"`
	ExpiresAt    int64        `json:"expiresAt"`
}
