package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config groups the application configuration (read via Viper from env and
// optionally a file; env vars win).
type Config struct {
	App     AppConfig
	API     APIConfig
	State   StateConfig
	Sandbox SandboxConfig
}

// AppConfig general application settings.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// APIConfig points the client at a backend.
type APIConfig struct {
	BaseURL string
}

// StateConfig configures the local key-value state store (drafts, cached
// session). Backend is "file", "memory", or "redis".
type StateConfig struct {
	Backend       string
	Dir           string // file backend
	RedisAddr     string // redis backend
	RedisPassword string
}

// SandboxConfig configures the local in-memory sandbox server.
type SandboxConfig struct {
	Host          string
	Port          int
	JWTSecret     string
	JWTExpMinutes int
	Issuer        string
}

// Addr returns the sandbox listen address (host:port).
func (c SandboxConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads configuration from environment variables (and optionally a
// .env file in the working directory). Expected names: APP_ENV,
// API_BASE_URL, STATE_BACKEND, STATE_DIR, REDIS_ADDR, SANDBOX_PORT, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Optional .env file; missing is fine.
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "naayikhata"),
		},
		API: APIConfig{
			BaseURL: getString(v, "API_BASE_URL", "http://127.0.0.1:8080"),
		},
		State: StateConfig{
			Backend:       getString(v, "STATE_BACKEND", "file"),
			Dir:           getString(v, "STATE_DIR", defaultStateDir()),
			RedisAddr:     getString(v, "REDIS_ADDR", "127.0.0.1:6379"),
			RedisPassword: getString(v, "REDIS_PASSWORD", ""),
		},
		Sandbox: SandboxConfig{
			Host:          getString(v, "SANDBOX_HOST", "127.0.0.1"),
			Port:          getInt(v, "SANDBOX_PORT", 8080),
			JWTSecret:     getString(v, "SANDBOX_JWT_SECRET", "sandbox-not-a-secret"),
			JWTExpMinutes: getInt(v, "SANDBOX_JWT_EXP_MINUTES", 12*60),
			Issuer:        getString(v, "SANDBOX_JWT_ISSUER", "naayikhata-sandbox"),
		},
	}

	return cfg, nil
}

// defaultStateDir keeps drafts and the session cache under the user's
// config directory, falling back to the working directory.
func defaultStateDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".naayikhata"
	}
	return filepath.Join(base, "naayikhata")
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		return v.GetInt(key)
	}
	return def
}
