package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const defaultBaseURL = "http://localhost"

// Config holds environment-driven configuration.
type Config struct {
	Addr string
	// AuthURL is the base URL of the external SSO service.
	AuthURL string
	// APIURL is the base URL of the persona / RAG / log backend.
	APIURL    string
	Env       string
	LogLevel  string
	JWTSecret string
	// CORSOrigins enables CORS for the listed origins when non-empty.
	CORSOrigins string
}

// Load reads configuration from environment variables. A .env file is
// loaded first when present; missing files are not an error.
func Load(envFiles ...string) Config {
	_ = godotenv.Load(envFiles...)

	return Config{
		Addr:      getenv("PERSONAS_ADDR", ":3000"),
		AuthURL:   trimBase(getenv("AUTH_URL", defaultBaseURL)),
		APIURL:    trimBase(getenv("API_URL", defaultBaseURL)),
		Env:       getenv("APP_ENV", "production"),
		LogLevel:  getenv("LOG_LEVEL", "info"),
		JWTSecret: os.Getenv("JWT_SECRET"),

		CORSOrigins: strings.TrimSpace(os.Getenv("CORS_ORIGINS")),
	}
}

// IsDevelopment reports whether the app runs in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "dev"
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func trimBase(u string) string {
	return strings.TrimRight(u, "/")
}
