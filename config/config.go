package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	CORSOrigins       string `mapstructure:"CORS_ORIGINS"`

	// MongoDB.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Auth.
	AccessTokenSecret  string `mapstructure:"ACCESS_TOKEN_SECRET"`
	RefreshTokenSecret string `mapstructure:"REFRESH_TOKEN_SECRET"`
	AccessTokenExpiry  string `mapstructure:"ACCESS_TOKEN_EXPIRY"`
	RefreshTokenExpiry string `mapstructure:"REFRESH_TOKEN_EXPIRY"`
	SaltRounds         int    `mapstructure:"SALT_ROUNDS"`

	// Advanced Flight System.
	AFSBaseURL string `mapstructure:"AFS_BASE_URL"`
	AFSAPIKey  string `mapstructure:"AFS_API_KEY"`

	// Redis configuration.
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int           `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int           `mapstructure:"REDIS_QUEUE_DB"`
	BadgeCacheTTL time.Duration `mapstructure:"BADGE_CACHE_TTL"`

	// Storage and third-party services. Empty values disable the integration.
	UploadDir           string `mapstructure:"UPLOAD_DIR"`
	CloudinaryURL       string `mapstructure:"CLOUDINARY_URL"`
	FirebaseCredentials string `mapstructure:"FIREBASE_CREDENTIALS"`
	StripeKey           string `mapstructure:"STRIPE_KEY"`

	SeedDir string `mapstructure:"SEED_DIR"`
}

var AppConfig Config

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "flynext")
	viper.SetDefault("ACCESS_TOKEN_SECRET", "")
	viper.SetDefault("REFRESH_TOKEN_SECRET", "")
	viper.SetDefault("ACCESS_TOKEN_EXPIRY", "15m")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY", "7d")
	viper.SetDefault("SALT_ROUNDS", 10)
	viper.SetDefault("AFS_BASE_URL", "https://advanced-flights-system.replit.app")
	viper.SetDefault("AFS_API_KEY", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("BADGE_CACHE_TTL", 30*time.Second)
	viper.SetDefault("UPLOAD_DIR", "./uploads")
	viper.SetDefault("CLOUDINARY_URL", "")
	viper.SetDefault("FIREBASE_CREDENTIALS", "")
	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("SEED_DIR", "./data")
}

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := AppConfig.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
}

// Validate rejects configurations that cannot run safely.
func (c Config) Validate() error {
	if c.AccessTokenSecret == "" || c.RefreshTokenSecret == "" {
		return errors.New("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must be set")
	}
	return nil
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// AllowedOrigins splits CORS_ORIGINS on commas, falling back to the local frontend.
func AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(AppConfig.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	return origins
}
