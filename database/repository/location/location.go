// File: database/repository/location/location.go
package locationRepo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"flynext/database"
	"flynext/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type LocationRepository interface {
	CityExists(ctx context.Context, city, country string) (bool, error)
	// CitiesWithPrefix returns distinct city names starting with prefix, case-insensitively.
	CitiesWithPrefix(ctx context.Context, prefix string, limit int) ([]string, error)
	// AirportsWithCodePrefix returns airports whose code starts with prefix.
	AirportsWithCodePrefix(ctx context.Context, prefix string, limit int) ([]models.Airport, error)
}

type mongoLocationRepo struct {
	cities   *mongo.Collection
	airports *mongo.Collection
}

// NewMongoLocationRepo constructs a LocationRepository over the cities and airports collections.
func NewMongoLocationRepo() LocationRepository {
	db := database.DB()
	repo := &mongoLocationRepo{
		cities:   db.Collection("cities"),
		airports: db.Collection("airports"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, _ = repo.cities.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "city", Value: 1}, {Key: "country", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	_, _ = repo.airports.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "code", Value: 1}}})
	return repo
}

func prefixFilter(prefix string) bson.M {
	return bson.M{"$regex": "^" + regexp.QuoteMeta(prefix), "$options": "i"}
}

func (r *mongoLocationRepo) CityExists(ctx context.Context, city, country string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.cities.CountDocuments(ctx, bson.M{"city": city, "country": country}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to look up city: %w", err)
	}
	return n > 0, nil
}

func (r *mongoLocationRepo) CitiesWithPrefix(ctx context.Context, prefix string, limit int) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	values, err := r.cities.Distinct(ctx, "city", bson.M{"city": prefixFilter(prefix)})
	if err != nil {
		return nil, fmt.Errorf("failed to query cities: %w", err)
	}

	cities := make([]string, 0, limit)
	for _, v := range values {
		if s, ok := v.(string); ok {
			cities = append(cities, s)
		}
		if len(cities) == limit {
			break
		}
	}
	return cities, nil
}

func (r *mongoLocationRepo) AirportsWithCodePrefix(ctx context.Context, prefix string, limit int) ([]models.Airport, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetLimit(int64(limit)).SetSort(bson.D{{Key: "code", Value: 1}})
	cursor, err := r.airports.Find(ctx, bson.M{"code": prefixFilter(prefix)}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query airports: %w", err)
	}
	defer cursor.Close(ctx)

	airports := []models.Airport{}
	if err := cursor.All(ctx, &airports); err != nil {
		return nil, fmt.Errorf("failed to decode airports: %w", err)
	}
	return airports, nil
}
