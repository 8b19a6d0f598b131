package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string   `mapstructure:"APP_PORT"`
	Env               string   `mapstructure:"ENV"`
	LogLevel          string   `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int      `mapstructure:"MAX_REQUESTS_PER_MIN"`
	AllowedOrigins    []string `mapstructure:"ALLOWED_ORIGINS"`
	// Proxies whose forwarding headers are trusted for the client address.
	TrustedProxies    []string `mapstructure:"TRUSTED_PROXIES"`

	// DATABASE_URL of "memory://" runs every repository in process.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Secret shared with the hosted auth provider that signs access tokens.
	JWTSecret string `mapstructure:"JWT_SECRET"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Booking behaviour.
	DraftTTL                time.Duration `mapstructure:"DRAFT_TTL"`
	Timezone                string        `mapstructure:"TIMEZONE"`
	StrictStatusTransitions bool          `mapstructure:"STRICT_STATUS_TRANSITIONS"`
	ReconcileAfter          time.Duration `mapstructure:"RECONCILE_AFTER"`
	ReconcileSchedule       string        `mapstructure:"RECONCILE_SCHEDULE"`
	SupportWhatsAppNumber   string        `mapstructure:"SUPPORT_WHATSAPP_NUMBER"`

	// Photo storage: "supabase" or "cloudinary".
	PhotoStore          string `mapstructure:"PHOTO_STORE"`
	SupabaseURL         string `mapstructure:"SUPABASE_URL"`
	SupabaseServiceKey  string `mapstructure:"SUPABASE_SERVICE_KEY"`
	SupabasePhotoBucket string `mapstructure:"SUPABASE_PHOTO_BUCKET"`
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`

	// Notifications.
	FirebaseCredentialsPath string `mapstructure:"FIREBASE_CREDENTIALS_PATH"`
	TelegramBotToken        string `mapstructure:"TELEGRAM_BOT_TOKEN"`
	TelegramOpsChatID       int64  `mapstructure:"TELEGRAM_OPS_CHAT_ID"`
}

var AppConfig Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

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
	viper.SetDefault("ALLOWED_ORIGINS", []string{"*"})
	viper.SetDefault("TRUSTED_PROXIES", []string{})
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "scrapiz")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("DRAFT_TTL", "24h")
	viper.SetDefault("TIMEZONE", "UTC")
	viper.SetDefault("STRICT_STATUS_TRANSITIONS", false)
	viper.SetDefault("RECONCILE_AFTER", "30m")
	viper.SetDefault("RECONCILE_SCHEDULE", "@every 10m")
	viper.SetDefault("SUPPORT_WHATSAPP_NUMBER", "1234567890")
	viper.SetDefault("PHOTO_STORE", "supabase")
	viper.SetDefault("SUPABASE_URL", "")
	viper.SetDefault("SUPABASE_SERVICE_KEY", "")
	viper.SetDefault("SUPABASE_PHOTO_BUCKET", "booking-photos")
	viper.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	viper.SetDefault("CLOUDINARY_API_KEY", "")
	viper.SetDefault("CLOUDINARY_API_SECRET", "")
	viper.SetDefault("FIREBASE_CREDENTIALS_PATH", "")
	viper.SetDefault("TELEGRAM_BOT_TOKEN", "")
	viper.SetDefault("TELEGRAM_OPS_CHAT_ID", 0)

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

// Location resolves TIMEZONE, falling back to UTC for unknown zones.
func Location() *time.Location {
	if AppConfig.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(AppConfig.Timezone)
	if err != nil {
		log.Printf("Unknown TIMEZONE %q, using UTC", AppConfig.Timezone)
		return time.UTC
	}
	return loc
}
