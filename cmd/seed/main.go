// File: flynext/cmd/seed/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"flynext/config"
	"flynext/database"
	bookingRepo "flynext/database/repository/booking"
	hotelRepo "flynext/database/repository/hotel"
	userRepoPkg "flynext/database/repository/user"
	"flynext/models"
	"flynext/services/user"
	"flynext/utils"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// collections are cleared in this order before importing.
var collections = []string{"payments", "bookings", "notifications", "rooms", "hotels", "users", "cities", "airports"}

// idKeys hold references that may be numeric in exported data.
var idKeys = []string{"id", "userId", "ownerId", "hotelId", "roomId", "bookingId"}

func main() {
	var dir string

	root := &cobra.Command{
		Use:   "seed",
		Short: "Reset the FlyNext database and import JSON fixtures",
		PreRun: func(cmd *cobra.Command, args []string) {
			config.LoadConfig()
			if dir == "" {
				dir = config.AppConfig.SeedDir
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			database.InitDB()
			defer database.Disconnect(context.Background())
			return run(cmd.Context(), dir)
		},
	}
	root.Flags().StringVar(&dir, "dir", "", "directory holding cities.json, airports.json, users.json, hotels.json, rooms.json, bookings.json and payments.json (default SEED_DIR)")

	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// seedUser exposes the password that models.User hides from JSON.
type seedUser struct {
	models.User
	Password string `json:"password"`
}

func run(ctx context.Context, dir string) error {
	logger := utils.GetLogger()
	db := database.DB()

	logger.Info("clearing collections")
	for _, name := range collections {
		if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			return fmt.Errorf("clear %s: %w", name, err)
		}
	}

	var cities []models.City
	if err := load(dir, "cities.json", &cities); err != nil {
		return err
	}
	if err := insertAll(ctx, "cities", cities); err != nil {
		return err
	}

	var airports []models.Airport
	if err := load(dir, "airports.json", &airports); err != nil {
		return err
	}
	if err := insertAll(ctx, "airports", airports); err != nil {
		return err
	}

	users := userRepoPkg.NewMongoUserRepo()
	var userList []seedUser
	if err := load(dir, "users.json", &userList); err != nil {
		return err
	}
	cost := config.AppConfig.SaltRounds
	for i := range userList {
		u := &userList[i].User
		u.Password = userList[i].Password
		if !strings.HasPrefix(u.Password, "$2") {
			hashed, err := user.HashPassword(u.Password, cost)
			if err != nil {
				return fmt.Errorf("hash password of %s: %w", u.Email, err)
			}
			u.Password = hashed
		}
		if u.Role == "" {
			u.Role = models.RoleUser
		}
		if u.CreatedAt.IsZero() {
			u.CreatedAt = time.Now()
			u.UpdatedAt = u.CreatedAt
		}
		if err := users.Create(ctx, u); err != nil {
			return fmt.Errorf("import user %s: %w", u.Email, err)
		}
	}
	logger.Info("imported", zap.String("collection", "users"), zap.Int("count", len(userList)))

	hotels := hotelRepo.NewMongoHotelRepo()
	var hotelList []models.Hotel
	if err := load(dir, "hotels.json", &hotelList); err != nil {
		return err
	}
	for i := range hotelList {
		if err := hotels.Create(ctx, &hotelList[i]); err != nil {
			return fmt.Errorf("import hotel %s: %w", hotelList[i].ID, err)
		}
	}
	logger.Info("imported", zap.String("collection", "hotels"), zap.Int("count", len(hotelList)))

	rooms := hotelRepo.NewMongoRoomRepo()
	var roomList []models.Room
	if err := load(dir, "rooms.json", &roomList); err != nil {
		return err
	}
	for i := range roomList {
		if err := rooms.Create(ctx, &roomList[i]); err != nil {
			return fmt.Errorf("import room %s: %w", roomList[i].ID, err)
		}
	}
	logger.Info("imported", zap.String("collection", "rooms"), zap.Int("count", len(roomList)))

	bookings := bookingRepo.NewMongoBookingRepo()
	var bookingList []models.Booking
	if err := load(dir, "bookings.json", &bookingList); err != nil {
		return err
	}
	for i := range bookingList {
		b := &bookingList[i]
		if b.BookStatus == "" {
			b.BookStatus = models.BookingPending
		}
		if b.FlightStatus == "" {
			b.FlightStatus = models.FlightScheduled
		}
		if err := bookings.Create(ctx, b); err != nil {
			return fmt.Errorf("import booking %s: %w", b.ID, err)
		}
	}
	logger.Info("imported", zap.String("collection", "bookings"), zap.Int("count", len(bookingList)))

	payments := bookingRepo.NewMongoPaymentRepo()
	var paymentList []models.Payment
	if err := load(dir, "payments.json", &paymentList); err != nil {
		return err
	}
	for i := range paymentList {
		if err := payments.Create(ctx, &paymentList[i]); err != nil {
			return fmt.Errorf("import payment %s: %w", paymentList[i].ID, err)
		}
	}
	logger.Info("imported", zap.String("collection", "payments"), zap.Int("count", len(paymentList)))
	return nil
}

// load reads dir/name into out after turning numeric ids into strings.
// A missing file imports nothing.
func load(dir, name string, out any) error {
	raw, err := os.ReadFile(filepath.Join(dir, name))
	if os.IsNotExist(err) {
		utils.GetLogger().Warn("seed file missing, skipping", zap.String("file", name))
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	var rows []map[string]any
	if err := json.Unmarshal(raw, &rows); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	for _, row := range rows {
		normalizeIDs(row)
	}
	normalized, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(normalized, out); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func normalizeIDs(row map[string]any) {
	for _, key := range idKeys {
		if v, ok := row[key].(float64); ok {
			row[key] = strconv.FormatInt(int64(v), 10)
		}
	}
	if id, _ := row["id"].(string); id == "" {
		row["id"] = uuid.NewString()
	}
	// Exported relational data keeps flight details as a JSON string already;
	// objects are accepted too.
	if v, ok := row["flightBookingInfo"]; ok && v != nil {
		if _, isString := v.(string); !isString {
			if b, err := json.Marshal(v); err == nil {
				row["flightBookingInfo"] = string(b)
			}
		}
	}
}

func insertAll[T any](ctx context.Context, collection string, docs []T) error {
	if len(docs) == 0 {
		return nil
	}
	batch := make([]any, 0, len(docs))
	for _, d := range docs {
		batch = append(batch, d)
	}
	if _, err := database.DB().Collection(collection).InsertMany(ctx, batch); err != nil {
		return fmt.Errorf("import %s: %w", collection, err)
	}
	utils.GetLogger().Info("imported", zap.String("collection", collection), zap.Int("count", len(docs)))
	return nil
}
