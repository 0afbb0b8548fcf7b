package bookingRepo

import (
	"context"
	"errors"
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

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	repo := &mongoBookingRepo{coll: database.DB().Collection("bookings")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("bookings: index creation failed", zap.Error(err))
	}
	return repo
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoBookingRepo) ensureIndexes() error {
	ctx, cancel := withTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "roomId", Value: 1}, {Key: "checkIn", Value: 1}, {Key: "checkOut", Value: 1}}},
		{Keys: bson.D{{Key: "hotelId", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *mongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *mongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &booking, nil
}

func (r *mongoBookingRepo) Replace(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.ReplaceOne(ctx, bson.M{"id": booking.ID}, booking)
	if err != nil {
		return fmt.Errorf("failed to update booking %s: %w", booking.ID, err)
	}
	if result.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *mongoBookingRepo) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Booking, error) {
	ctx, cancel := withTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (r *mongoBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"userId": userID}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *mongoBookingRepo) ListOverlapping(ctx context.Context, roomIDs []string, from, to time.Time) ([]models.Booking, error) {
	return r.find(ctx, bson.M{
		"roomId":     bson.M{"$in": roomIDs},
		"bookStatus": bson.M{"$ne": models.BookingCancelled},
		"checkIn":    bson.M{"$lt": to},
		"checkOut":   bson.M{"$gt": from},
	})
}

func (r *mongoBookingRepo) ListForOwner(ctx context.Context, q OwnerBookingQuery) ([]models.Booking, error) {
	filter := bson.M{"hotelId": bson.M{"$in": q.HotelIDs}}
	if q.RoomIDs != nil {
		filter["roomId"] = bson.M{"$in": q.RoomIDs}
	}
	if q.From != nil {
		filter["checkIn"] = bson.M{"$gte": *q.From}
	}
	if q.To != nil {
		filter["checkOut"] = bson.M{"$lte": *q.To}
	}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "checkIn", Value: 1}}))
}

func (r *mongoBookingRepo) DeleteUpcomingForRoom(ctx context.Context, roomID string, since time.Time) (int64, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteMany(ctx, bson.M{"roomId": roomID, "checkIn": bson.M{"$gte": since}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete bookings of room %s: %w", roomID, err)
	}
	return result.DeletedCount, nil
}
