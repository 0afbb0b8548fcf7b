package hotelRepo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"flynext/database"
	"flynext/models"
	"flynext/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type mongoHotelRepo struct {
	coll *mongo.Collection
}

// NewMongoHotelRepo constructs a new MongoDB HotelRepository.
func NewMongoHotelRepo() HotelRepository {
	repo := &mongoHotelRepo{coll: database.DB().Collection("hotels")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("hotels: index creation failed", zap.Error(err))
	}
	return repo
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoHotelRepo) ensureIndexes() error {
	ctx, cancel := withTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "ownerId", Value: 1}}},
		{Keys: bson.D{{Key: "city", Value: 1}, {Key: "starRating", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *mongoHotelRepo) Create(ctx context.Context, hotel *models.Hotel) error {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	hotel.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, hotel); err != nil {
		return fmt.Errorf("failed to create hotel: %w", err)
	}
	return nil
}

func (r *mongoHotelRepo) GetByID(ctx context.Context, id string) (*models.Hotel, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	var hotel models.Hotel
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&hotel); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch hotel %s: %w", id, err)
	}
	return &hotel, nil
}

func (r *mongoHotelRepo) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Hotel, error) {
	ctx, cancel := withTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to query hotels: %w", err)
	}
	defer cursor.Close(ctx)

	hotels := []models.Hotel{}
	if err := cursor.All(ctx, &hotels); err != nil {
		return nil, fmt.Errorf("failed to decode hotels: %w", err)
	}
	return hotels, nil
}

func (r *mongoHotelRepo) GetByIDs(ctx context.Context, ids []string) ([]models.Hotel, error) {
	return r.find(ctx, bson.M{"id": bson.M{"$in": ids}})
}

func (r *mongoHotelRepo) UpdateFields(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update hotel %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *mongoHotelRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Hotel, error) {
	return r.find(ctx, bson.M{"ownerId": ownerID}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

// containsFilter is a case-insensitive substring match.
func containsFilter(s string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
}

func (r *mongoHotelRepo) Search(ctx context.Context, criteria HotelSearchCriteria) ([]models.Hotel, error) {
	filter := bson.M{}
	if criteria.City != "" {
		filter["city"] = containsFilter(criteria.City)
	}
	if criteria.Name != "" {
		filter["name"] = containsFilter(criteria.Name)
	}
	if criteria.StarRating > 0 {
		filter["starRating"] = criteria.StarRating
	}
	return r.find(ctx, filter)
}
