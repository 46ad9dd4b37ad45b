package config

import (
	"os"
	"strconv"
)

type Config struct {
	HTTPAddr    string
	PostgresDSN string
	MongoURI    string
	MongoDB     string
	CORSOrigins []string
}

type JWTConfig struct {
	Secret   []byte
	TTLHours int
}

func Load() *Config {
	return &Config{
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		PostgresDSN: getEnv("POSTGRES_DSN", "host=localhost user=postgres password=postgres dbname=swap_market port=5432 sslmode=disable"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getEnv("MONGO_DB", "swap_market"),
		CORSOrigins: []string{getEnv("CORS_ORIGIN", "*")},
	}
}

func LoadJWT() JWTConfig {
	ttl := 24
	if v := os.Getenv("JWT_TTL_HOURS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			ttl = parsed
		}
	}
	return JWTConfig{
		Secret:   []byte(getEnv("JWT_SECRET", "dev-secret-change-me")),
		TTLHours: ttl,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
