package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	LogLevel            string
	DatabaseURL         string
	RedisURL            string
	SupabaseURL         string // e.g. https://<ref>.supabase.co, used for storage uploads and public URLs
	SupabaseSecretKey   string // service_role key; storage writes need it
	SupabaseJWTSecret   string // verifies Bearer tokens issued by the backend
	DocumentsBucket     string
	FrontendURLEndsWith string
	DevPassword         string
	HealthAdminKey      string
	FeeAtomicity        string // best_effort | atomic
	DashboardCacheTTL   time.Duration
}

const (
	defaultPort            = "8080"
	defaultDocumentsBucket = "documents"
	defaultDashboardTTL    = 30 * time.Second
)

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", defaultPort)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DOCUMENTS_BUCKET", defaultDocumentsBucket)
	v.SetDefault("FEE_ATOMICITY", "best_effort")
	v.SetDefault("DASHBOARD_CACHE_TTL", defaultDashboardTTL)

	env := strings.ToLower(v.GetString("APP_ENV"))

	var dbURL string
	switch env {
	case "production":
		dbURL = v.GetString("DATABASE_URL_PROD")
	case "test":
		dbURL = v.GetString("DATABASE_URL_TEST")
	}
	if dbURL == "" {
		dbURL = v.GetString("DATABASE_URL_DEV")
	}

	ttl := v.GetDuration("DASHBOARD_CACHE_TTL")
	if ttl < 0 {
		ttl = defaultDashboardTTL
	}

	return &Config{
		Env:                 env,
		Port:                v.GetString("PORT"),
		LogLevel:            v.GetString("LOG_LEVEL"),
		DatabaseURL:         dbURL,
		RedisURL:            v.GetString("REDIS_URL"),
		SupabaseURL:         strings.TrimRight(v.GetString("SUPABASE_URL"), "/"),
		SupabaseSecretKey:   v.GetString("SUPABASE_SECRET_KEY"),
		SupabaseJWTSecret:   v.GetString("SUPABASE_JWT_SECRET"),
		DocumentsBucket:     v.GetString("DOCUMENTS_BUCKET"),
		FrontendURLEndsWith: v.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         v.GetString("DEV_PASSWORD"),
		HealthAdminKey:      v.GetString("HEALTH_ADMIN_KEY"),
		FeeAtomicity:        v.GetString("FEE_ATOMICITY"),
		DashboardCacheTTL:   ttl,
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
