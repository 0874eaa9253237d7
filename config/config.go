package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	CORSOrigins       string `mapstructure:"CORS_ORIGINS"`
	UploadMaxBytes    int64  `mapstructure:"UPLOAD_MAX_BYTES"`

	// Persistence.
	StoreDriver  string `mapstructure:"STORE_DRIVER"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Identity tokens.
	JWTSecret    string        `mapstructure:"JWT_SECRET"`
	TokenTTL     time.Duration `mapstructure:"TOKEN_TTL"`
	AuthCacheTTL time.Duration `mapstructure:"AUTH_CACHE_TTL"`

	// Redis configuration.
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int           `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB   int           `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB  int           `mapstructure:"REDIS_QUEUE_DB"`
	StatsCacheTTL time.Duration `mapstructure:"STATS_CACHE_TTL"`

	// Object storage.
	StorageDriver       string `mapstructure:"STORAGE_DRIVER"`
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
	CloudinaryFolder    string `mapstructure:"CLOUDINARY_FOLDER"`
	MinioEndpoint       string `mapstructure:"MINIO_ENDPOINT"`
	MinioAccessKey      string `mapstructure:"MINIO_ACCESS_KEY"`
	MinioSecretKey      string `mapstructure:"MINIO_SECRET_KEY"`
	MinioBucket         string `mapstructure:"MINIO_BUCKET"`
	MinioPublicURL      string `mapstructure:"MINIO_PUBLIC_URL"`
	MinioUseSSL         bool   `mapstructure:"MINIO_USE_SSL"`

	// Booking policy.
	BookingStrictTransitions bool `mapstructure:"BOOKING_STRICT_TRANSITIONS"`
}

var AppConfig Config

func LoadConfig() {
	// A local .env file is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, continuing")
	}

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
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("CORS_ORIGINS", "*")
	viper.SetDefault("UPLOAD_MAX_BYTES", 5<<20)
	viper.SetDefault("STORE_DRIVER", "mongo")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "urbanset")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("TOKEN_TTL", 24*time.Hour)
	viper.SetDefault("AUTH_CACHE_TTL", 10*time.Minute)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("STATS_CACHE_TTL", 5*time.Minute)
	viper.SetDefault("STORAGE_DRIVER", "cloudinary")
	viper.SetDefault("CLOUDINARY_FOLDER", "urbanset_profiles")
	viper.SetDefault("MINIO_BUCKET", "urbanset")
	viper.SetDefault("MINIO_USE_SSL", false)
	viper.SetDefault("BOOKING_STRICT_TRANSITIONS", true)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(AppConfig.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
