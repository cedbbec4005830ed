package config

import (
	"os"
	"strconv"
)

// Config holds all runtime configuration, loaded from environment variables.
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	JWT     JWTConfig
	Email   EmailConfig
	Logger  LoggerConfig
}

type ServerConfig struct {
	Port    string
	BaseURL string
}

type StorageConfig struct {
	// Driver selects the blob store backend: "file", "mongo" or "redis".
	Driver        string
	DataDir       string
	MongoURI      string
	MongoDB       string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

type JWTConfig struct {
	Secret string
}

type EmailConfig struct {
	SendgridAPIKey string
	Sender         string
}

type LoggerConfig struct {
	// Mode is "production" or "development".
	Mode string
}

// Load builds a Config from the environment, applying defaults for anything
// not set. godotenv is expected to have populated the environment already.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8000"),
			BaseURL: getEnv("BASE_URL", "http://localhost:8000"),
		},
		Storage: StorageConfig{
			Driver:        getEnv("STORAGE_DRIVER", "file"),
			DataDir:       getEnv("DATA_DIR", "./data"),
			MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			MongoDB:       getEnv("MONGO_DB", "platyo"),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
		},
		Email: EmailConfig{
			SendgridAPIKey: getEnv("SENDGRID_API_KEY", ""),
			Sender:         getEnv("EMAIL_SENDER", "no-reply@platyo.app"),
		},
		Logger: LoggerConfig{
			Mode: getEnv("LOG_MODE", "development"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
