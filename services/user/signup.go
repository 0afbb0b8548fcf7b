package user

import (
	"context"
	"errors"
	"strings"

	"flynext/database"
	"flynext/models"
	"flynext/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func (s *DefaultUserService) cost() int {
	if s.SaltRounds < bcrypt.MinCost || s.SaltRounds > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return s.SaltRounds
}

// HashPassword hashes a plain password with the given bcrypt cost.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register creates a USER (or HOTEL_OWNER when asked) account.
func (s *DefaultUserService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		return nil, utils.BadRequest("Missing required fields")
	}

	role := models.RoleUser
	switch req.Role {
	case "", models.RoleUser:
	case models.RoleHotelOwner:
		role = models.RoleHotelOwner
	default:
		return nil, utils.BadRequest("Invalid role")
	}

	existing, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return nil, utils.Internal("registration failed", err)
	}
	if existing != nil {
		return nil, utils.BadRequest("Email already exists")
	}

	hash, err := HashPassword(req.Password, s.cost())
	if err != nil {
		return nil, utils.Internal("failed to hash password", err)
	}

	u := &models.User{
		ID:             uuid.NewString(),
		Email:          req.Email,
		Password:       hash,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Role:           role,
		Phone:          req.Phone,
		ProfilePicture: req.ProfilePicture,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, utils.Internal("failed to create user", err)
	}
	return u, nil
}
