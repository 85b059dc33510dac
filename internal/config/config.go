package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultRetentionDays is how long user data is kept after logout before the
// sweep is allowed to delete it.
const DefaultRetentionDays = 35

type Config struct {
	MongoURL string
	DBName   string

	PostgresURI string
	RedisURI    string

	GoogleClientID     string
	GoogleClientSecret string
	OAuthCallbackURL   string // defaults to BACKEND_PUBLIC_URL + /auth/callback

	OpenAIKey           string
	VisionModelPrimary  string
	VisionModelFallback string

	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	RetentionDays int

	Port           string
	AllowedOrigins []string
	AllowedHost    string
	Environment    string
}

func Load() *Config {
	backendURL := getEnv("BACKEND_PUBLIC_URL", "https://caloriediet-backend.onrender.com")
	callback := strings.TrimSpace(os.Getenv("OAUTH_CALLBACK_URL"))
	if callback == "" {
		callback = strings.TrimRight(backendURL, "/") + "/auth/callback"
	}

	// The key lives under either name depending on the deploy target.
	openaiKey := strings.TrimSpace(os.Getenv("OPENAI_KEY"))
	if openaiKey == "" {
		openaiKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	}
	openaiKey = strings.Trim(openaiKey, `"'`)

	retention := DefaultRetentionDays
	if s := os.Getenv("DATA_RETENTION_DAYS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			retention = n
		}
	}

	return &Config{
		MongoURL:            strings.TrimSpace(os.Getenv("MONGO_URL")),
		DBName:              getEnv("DB_NAME", "caloriediet"),
		PostgresURI:         getEnv("POSTGRES_URI", "postgres://localhost:5432/caloriediet?sslmode=disable"),
		RedisURI:            getEnv("REDIS_URI", "redis://localhost:6379/0"),
		GoogleClientID:      strings.TrimSpace(os.Getenv("GOOGLE_OAUTH_CLIENT_ID")),
		GoogleClientSecret:  strings.TrimSpace(os.Getenv("GOOGLE_OAUTH_CLIENT_SECRET")),
		OAuthCallbackURL:    callback,
		OpenAIKey:           openaiKey,
		VisionModelPrimary:  getEnv("OPENAI_MODEL", "gpt-5-nano"),
		VisionModelFallback: getEnv("OPENAI_MODEL_FALLBACK", "gpt-4o-mini"),
		CloudinaryName:      os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		RetentionDays:       retention,
		Port:                getEnv("PORT", "8080"),
		AllowedOrigins:      parseOrigins(getEnv("ALLOWED_ORIGINS", "*")),
		AllowedHost:         strings.TrimSpace(os.Getenv("ALLOWED_HOST")),
		Environment:         strings.ToLower(strings.TrimSpace(getEnv("ENV", "development"))),
	}
}

// Validate checks for configuration without which the server cannot do useful
// work. Vision and Cloudinary keys are optional; their endpoints fail with a
// not-configured error instead.
func (c *Config) Validate() error {
	if c.MongoURL == "" {
		return fmt.Errorf("MONGO_URL is required")
	}
	if c.DBName == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// MongoHost extracts the host portion of the Mongo URL for debug output,
// without credentials.
func (c *Config) MongoHost() string {
	u := c.MongoURL
	if u == "" {
		return "not_configured"
	}
	if i := strings.Index(u, "://"); i != -1 {
		u = u[i+3:]
	}
	if i := strings.LastIndex(u, "@"); i != -1 {
		u = u[i+1:]
	}
	if i := strings.IndexAny(u, "/?"); i != -1 {
		u = u[:i]
	}
	return u
}

func parseOrigins(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
