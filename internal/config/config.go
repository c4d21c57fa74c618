package config

import (
	"os"
	"strings"
	"time"

	"task-tracker/internal/utils"
)

// Config holds all process-wide settings. It is built once at startup and
// passed into constructors; nothing reads the environment after Load returns.
type Config struct {
	Addr           string
	MongoURI       string
	DBName         string
	JWTSecret      string
	JWTExpiration  time.Duration
	ConnectTimeout time.Duration
	AllowedOrigins []string
	Debug          bool
}

const (
	defaultAddr           = ":5000"
	defaultMongoURI       = "mongodb://localhost:27017"
	defaultDBName         = "tasktracker"
	defaultJWTExpiration  = time.Hour
	defaultConnectTimeout = 5 * time.Second
)

// Load reads configuration from the environment. A missing JWT_SECRET is not
// an error here: protected routes answer with a server configuration error
// instead of the process refusing to start.
func Load() Config {
	cfg := Config{
		Addr:           getEnv("ADDR", defaultAddr),
		MongoURI:       getEnv("MONGO_URI", defaultMongoURI),
		DBName:         getEnv("DB_NAME", defaultDBName),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTExpiration:  getDuration("JWT_EXPIRATION", defaultJWTExpiration),
		ConnectTimeout: getDuration("MONGO_CONNECT_TIMEOUT", defaultConnectTimeout),
		AllowedOrigins: getList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		Debug:          os.Getenv("DEBUG") == "true",
	}

	if cfg.JWTSecret == "" {
		utils.LogWarning("Config", "JWT_SECRET is not set; protected routes will fail with a configuration error")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		utils.LogWarning("Config", "Invalid duration for %s: %q, using %v", key, value, fallback)
		return fallback
	}
	return d
}

func getList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
