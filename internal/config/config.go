// Package config loads the service configuration from the environment, with
// an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"shopkeeper/internal/db/models"
	"shopkeeper/internal/filter"
	"shopkeeper/internal/logger"
)

// Config holds the full service configuration
type Config struct {
	ListenPort string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSL      bool

	RedisAddress string
	NATSURL      string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool

	// SessionSecret signs the session tokens the Discord bridge issues
	SessionSecret string

	DiscordGuildID   string
	DiscordChannelID string

	// ReminderSchedule is a cron expression for the issue reminder sweep
	ReminderSchedule string

	// FilterDefaults is the default listing filter; what counts as default
	// is deployment configuration, not a constant.
	FilterDefaults filter.Defaults
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	// .env is optional; environment variables are the canonical source
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, relying on environment variables")
	}

	dbPort, err := strconv.Atoi(GetEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	defaults, err := loadFilterDefaults()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ListenPort: GetEnv("LISTEN_PORT", "8080"),

		DBHost:     GetEnv("DB_HOST", "localhost"),
		DBPort:     dbPort,
		DBUser:     GetEnv("DB_USER", "postgres"),
		DBPassword: GetEnv("DB_PASSWORD", "postgres"),
		DBName:     GetEnv("DB_NAME", "shopkeeper"),
		DBSSL:      getEnvBool("DB_SSL", false),

		RedisAddress: GetEnv("REDIS_ADDRESS", "localhost:6379"),
		NATSURL:      GetEnv("NATS_URL", "nats://localhost:4222"),

		MinIOEndpoint:  GetEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOAccessKey: GetEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey: GetEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:    GetEnv("MINIO_BUCKET", "listing-images"),
		MinIOUseSSL:    getEnvBool("MINIO_USE_SSL", false),

		SessionSecret: GetEnv("SESSION_SECRET", ""),

		DiscordGuildID:   GetEnv("DISCORD_GUILD_ID", ""),
		DiscordChannelID: GetEnv("DISCORD_CHANNEL_ID", ""),

		ReminderSchedule: GetEnv("REMINDER_SCHEDULE", "0 9 * * 1"),

		FilterDefaults: defaults,
	}

	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is not set; it is required to verify session tokens")
	}

	return cfg, nil
}

// GetEnv retrieves the value of an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	raw := GetEnv(key, strconv.FormatBool(fallback))
	value, err := strconv.ParseBool(raw)
	if err != nil {
		logger.Warnf("Invalid %s value %q, defaulting to %t", key, raw, fallback)
		return fallback
	}
	return value
}

// loadFilterDefaults reads the default filter sets from DEFAULT_STATUSES and
// DEFAULT_TYPES, comma-separated. Unknown values fail loudly; a misconfigured
// deployment should not come up with a silently different default filter.
func loadFilterDefaults() (filter.Defaults, error) {
	defaults := filter.StandardDefaults()

	if raw := GetEnv("DEFAULT_STATUSES", ""); raw != "" {
		statuses := make([]models.ListingStatus, 0, 3)
		for _, part := range strings.Split(raw, ",") {
			status, err := models.ParseListingStatus(strings.TrimSpace(part))
			if err != nil {
				return filter.Defaults{}, fmt.Errorf("invalid DEFAULT_STATUSES: %w", err)
			}
			statuses = append(statuses, status)
		}
		defaults.Statuses = statuses
	}

	if raw := GetEnv("DEFAULT_TYPES", ""); raw != "" {
		types := make([]models.ListingType, 0, 2)
		for _, part := range strings.Split(raw, ",") {
			typ, err := models.ParseListingType(strings.TrimSpace(part))
			if err != nil {
				return filter.Defaults{}, fmt.Errorf("invalid DEFAULT_TYPES: %w", err)
			}
			types = append(types, typ)
		}
		defaults.Types = types
	}

	return defaults, nil
}
