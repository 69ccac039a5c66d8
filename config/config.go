package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Broadcast matching tunables.
	BroadcastRadiusMeters  float64 `mapstructure:"BROADCAST_RADIUS_METERS"`
	BroadcastMaxCandidates int64   `mapstructure:"BROADCAST_MAX_CANDIDATES"`

	// Offer expiry sweep. Disabled by default: offers stay "sent" until
	// someone responds.
	BroadcastExpiryEnabled bool `mapstructure:"BROADCAST_EXPIRY_ENABLED"`
	BroadcastOfferTTLMin   int  `mapstructure:"BROADCAST_OFFER_TTL_MIN"`
	BroadcastSweepEveryMin int  `mapstructure:"BROADCAST_SWEEP_EVERY_MIN"`

	// Firebase service account for push notifications.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "righttouch")
	viper.SetDefault("BROADCAST_RADIUS_METERS", 5000)
	viper.SetDefault("BROADCAST_MAX_CANDIDATES", 50)
	viper.SetDefault("BROADCAST_EXPIRY_ENABLED", false)
	viper.SetDefault("BROADCAST_OFFER_TTL_MIN", 30)
	viper.SetDefault("BROADCAST_SWEEP_EVERY_MIN", 5)
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
