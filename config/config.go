package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type ZoomConfig struct {
	APIKey     string
	APISecret  string
	AccountID  string
	OAuthURL   string
	APIBaseURL string
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type GCSConfig struct {
	Bucket          string
	CredentialsFile string
}

type Config struct {
	Port         string
	Env          string
	MongoURI     string
	DatabaseName string
	JWTSecret    string
	JWTExpire    time.Duration
	ClientURL    string

	Zoom  ZoomConfig
	Email EmailConfig
	Redis RedisConfig
	GCS   GCSConfig
}

// Load reads the .env file (if present) and builds the config from the
// environment. Called once in main; the result is passed down explicitly.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		Port:         getEnv("PORT", "5000"),
		Env:          getEnv("APP_ENV", "development"),
		MongoURI:     os.Getenv("MONGODB_URI"),
		DatabaseName: getEnv("DATABASE_NAME", "interview_portal"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWTExpire:    getEnvDuration("JWT_EXPIRE_HOURS", 24*7) * time.Hour,
		ClientURL:    getEnv("CLIENT_URL", "http://localhost:5173"),
		Zoom: ZoomConfig{
			APIKey:     os.Getenv("ZOOM_API_KEY"),
			APISecret:  os.Getenv("ZOOM_API_SECRET"),
			AccountID:  os.Getenv("ZOOM_ACCOUNT_ID"),
			OAuthURL:   getEnv("ZOOM_OAUTH_URL", "https://zoom.us/oauth/token"),
			APIBaseURL: getEnv("ZOOM_API_BASE_URL", "https://api.zoom.us/v2"),
		},
		Email: EmailConfig{
			Host:     os.Getenv("EMAIL_HOST"),
			Port:     getEnvInt("EMAIL_PORT", 587),
			User:     os.Getenv("EMAIL_USER"),
			Password: os.Getenv("EMAIL_PASS"),
			From:     getEnv("EMAIL_FROM", "Interview Portal <no-reply@interviewportal.dev>"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		GCS: GCSConfig{
			Bucket:          os.Getenv("GCS_BUCKET"),
			CredentialsFile: os.Getenv("CREDENTIALS_FILE_LOCATION"),
		},
	}
}

// IsDevelopment controls whether raw error messages leak into 500 responses.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvDuration(key string, def int) time.Duration {
	return time.Duration(getEnvInt(key, def))
}
