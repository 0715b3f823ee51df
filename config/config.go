package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	Server  ServerConfig
	JWT     JWTConfig
	Storage StorageConfig
	Orgs    OrgPolicyConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string
	ReadTimeout        int
	WriteTimeout       int
	CORSAllowedOrigins string // comma-separated, or "*" for all
}

// JWTConfig holds token signing and validation settings.
type JWTConfig struct {
	Secret      string
	ExpireHours int
}

// StorageConfig holds the JSON collection store settings.
type StorageConfig struct {
	DataDir string // directory holding one <collection>.json per collection
}

// OrgPolicyConfig holds ownership policy knobs.
type OrgPolicyConfig struct {
	// SinglePerUser rejects organization creation when the caller already
	// owns one. Off by default; event creation always binds the caller's
	// first owned organization either way.
	SinglePerUser bool
}

// Load reads configuration from environment, with optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			ReadTimeout:        getEnvInt("READ_TIMEOUT_SEC", 30),
			WriteTimeout:       getEnvInt("WRITE_TIMEOUT_SEC", 30),
			CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", "change-me-in-production"),
			ExpireHours: getEnvInt("JWT_EXPIRE_HOURS", 1),
		},
		Storage: StorageConfig{
			DataDir: getEnv("DATA_DIR", "data"),
		},
		Orgs: OrgPolicyConfig{
			SinglePerUser: getEnvBool("ORG_SINGLE_PER_USER", false),
		},
	}
	return cfg, nil
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

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
