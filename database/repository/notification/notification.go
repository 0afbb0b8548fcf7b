package notificationRepo

import (
	"context"
	"fmt"
	"time"

	"flynext/database"
	"flynext/models"
	"flynext/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	// ListForRecipient returns notifications addressed to the id as user or owner, newest first.
	ListForRecipient(ctx context.Context, recipientID string) ([]models.Notification, error)
	// MarkRead flags the unread notifications among ids and returns how many changed.
	MarkRead(ctx context.Context, recipientID string, ids []string) (int64, error)
	CountUnread(ctx context.Context, recipientID string) (int64, error)
}

type mongoNotificationRepo struct {
	coll *mongo.Collection
}

// NewMongoNotificationRepo constructs a new MongoDB NotificationRepository.
func NewMongoNotificationRepo() NotificationRepository {
	repo := &mongoNotificationRepo{coll: database.DB().Collection("notifications")}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := repo.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "isRead", Value: 1}}},
		{Keys: bson.D{{Key: "hotelOwnerId", Value: 1}, {Key: "isRead", Value: 1}}},
	})
	if err != nil {
		utils.GetLogger().Warn("notifications: index creation failed", zap.Error(err))
	}
	return repo
}

func recipientFilter(recipientID string) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"userId": recipientID},
		bson.M{"hotelOwnerId": recipientID},
	}}
}

func (r *mongoNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *mongoNotificationRepo) ListForRecipient(ctx context.Context, recipientID string) ([]models.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, recipientFilter(recipientID), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer cursor.Close(ctx)

	out := []models.Notification{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return out, nil
}

func (r *mongoNotificationRepo) MarkRead(ctx context.Context, recipientID string, ids []string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := recipientFilter(recipientID)
	filter["id"] = bson.M{"$in": ids}
	filter["isRead"] = false

	result, err := r.coll.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"isRead": true}})
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return result.ModifiedCount, nil
}

func (r *mongoNotificationRepo) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := recipientFilter(recipientID)
	filter["isRead"] = false
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	return n, nil
}
