package user

import (
	"context"
	"errors"

	"flynext/database"
	"flynext/models"
	"flynext/utils"

	"go.mongodb.org/mongo-driver/bson"
)

func (s *DefaultUserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, utils.NotFound("User not found")
	}
	if err != nil {
		return nil, utils.Internal("failed to load user", err)
	}
	return u, nil
}

func toProfile(u *models.User) *models.Profile {
	return &models.Profile{
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		Role:           u.Role,
		ProfilePicture: u.ProfilePicture,
		Phone:          u.Phone,
	}
}

func (s *DefaultUserService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	u, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toProfile(u), nil
}

// UpdateProfile applies only the fields present in update.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (*models.Profile, error) {
	fields := bson.M{}
	if update.FirstName != nil {
		fields["firstName"] = *update.FirstName
	}
	if update.LastName != nil {
		fields["lastName"] = *update.LastName
	}
	if update.ProfilePicture != nil {
		fields["profilePicture"] = *update.ProfilePicture
	}
	if update.Phone != nil {
		fields["phone"] = *update.Phone
	}

	if len(fields) > 0 {
		err := s.Repo.UpdateFields(ctx, userID, fields)
		if errors.Is(err, database.ErrNotFound) {
			return nil, utils.NotFound("User not found")
		}
		if err != nil {
			return nil, utils.Internal("failed to update profile", err)
		}
	}
	return s.GetProfile(ctx, userID)
}

// UpdateFCMToken stores the device token used for push notifications.
func (s *DefaultUserService) UpdateFCMToken(ctx context.Context, userID, token string) error {
	if token == "" {
		return utils.BadRequest("fcmToken is required")
	}
	if err := s.Repo.UpdateFields(ctx, userID, bson.M{"fcmToken": token}); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return utils.NotFound("User not found")
		}
		return utils.Internal("failed to store fcm token", err)
	}
	return nil
}

// PromoteToHotelOwner switches a USER to HOTEL_OWNER. The bool reports whether the role changed.
func (s *DefaultUserService) PromoteToHotelOwner(ctx context.Context, userID string) (*models.User, bool, error) {
	u, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if u.Role == models.RoleHotelOwner {
		return u, false, nil
	}
	if err := s.Repo.UpdateFields(ctx, userID, bson.M{"role": models.RoleHotelOwner}); err != nil {
		return nil, false, utils.Internal("failed to update role", err)
	}
	u.Role = models.RoleHotelOwner
	return u, true, nil
}
