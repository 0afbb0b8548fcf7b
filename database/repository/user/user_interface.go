package userRepo

import (
	"context"

	"flynext/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address. Returns database.ErrNotFound when absent.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByIDs retrieves several users at once.
	GetByIDs(ctx context.Context, ids []string) ([]models.User, error)
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
	// UpdateFields applies a $set to one user.
	UpdateFields(ctx context.Context, id string, fields bson.M) error
	// Delete removes a user record by its ID.
	Delete(ctx context.Context, id string) error
}
