package config

import (
	"os"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	SupabaseURL string
	SupabaseKey string
	AuthJWKSURL string // Constructed from SupabaseURL + /auth/v1/.well-known/jwks.json
	CORSOrigins string
	TablePrefix string
	LogDir      string // Empty = stdout only
	DemoUserID  string // User the seed tool populates

	// Object storage (MinIO / S3-compatible)
	Storage StorageConfig
}

// StorageConfig holds the object-storage connection settings.
type StorageConfig struct {
	Endpoint      string
	AccessKeyID   string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string // Base for public object URLs; empty = derive from endpoint
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	supabaseURL := getEnv("SUPABASE_URL", "")

	// Construct JWKS URL from Supabase URL unless explicitly overridden
	jwksURL := getEnv("AUTH_JWKS_URL", supabaseURL+"/auth/v1/.well-known/jwks.json")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		DatabaseURL: getEnv("DATABASE_URL", ""),
		SupabaseURL: supabaseURL,
		SupabaseKey: getEnv("SUPABASE_KEY", ""),
		AuthJWKSURL: jwksURL,
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix: getTablePrefix(env),
		LogDir:      getEnv("LOG_DIR", ""),
		DemoUserID:  getEnv("DEMO_USER_ID", "00000000-0000-0000-0000-000000000001"),
		Storage: StorageConfig{
			Endpoint:      getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKeyID:   getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey:     getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:        getEnv("MINIO_BUCKET", "resources"),
			UseSSL:        getEnv("MINIO_USE_SSL", "false") == "true",
			PublicBaseURL: getEnv("MINIO_PUBLIC_URL", ""),
		},
	}
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	// Auto-generate based on environment
	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
