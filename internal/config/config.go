package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Security SecurityConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
}

// SecurityConfig tunes the abuse shield. Ceilings are requests per window
// and must keep guest < user < admin ordering.
type SecurityConfig struct {
	Enabled              bool
	WindowSeconds        int
	GuestCeiling         int
	UserCeiling          int
	AdminCeiling         int
	BackendTimeoutMillis int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	env := getEnv("APP_ENV", "development")

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "acquisitions-api"),
			Env:                   env,
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             os.Getenv("AUTH_JWT_SECRET"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 15),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
		},
		Security: SecurityConfig{
			Enabled:              getEnvAsBool("SECURITY_ENABLED", env != "test"),
			WindowSeconds:        getEnvAsInt("SECURITY_WINDOW_SECONDS", 60),
			GuestCeiling:         getEnvAsInt("SECURITY_GUEST_CEILING", 5),
			UserCeiling:          getEnvAsInt("SECURITY_USER_CEILING", 10),
			AdminCeiling:         getEnvAsInt("SECURITY_ADMIN_CEILING", 20),
			BackendTimeoutMillis: getEnvAsInt("SECURITY_BACKEND_TIMEOUT_MILLIS", 500),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate enforces settings that must hold before the server accepts
// traffic. A missing JWT secret outside dev/test aborts startup; failing
// per-request instead would turn a misconfiguration into a flood of 500s.
func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		if c.App.Env != "development" && c.App.Env != "test" {
			return fmt.Errorf("AUTH_JWT_SECRET is required when APP_ENV=%s", c.App.Env)
		}
		c.Auth.JWTSecret = "dev-secret"
	}

	if c.Security.GuestCeiling > c.Security.UserCeiling || c.Security.UserCeiling > c.Security.AdminCeiling {
		return fmt.Errorf("rate ceilings must be ordered guest <= user <= admin, got %d/%d/%d",
			c.Security.GuestCeiling, c.Security.UserCeiling, c.Security.AdminCeiling)
	}

	return nil
}

// IsDevelopment reports whether the service runs in a local context where
// cookies may be sent without the Secure flag.
func (a AppConfig) IsDevelopment() bool {
	return a.Env == "development" || a.Env == "test"
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Window returns the rate-limit window duration.
func (s SecurityConfig) Window() time.Duration {
	if s.WindowSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(s.WindowSeconds) * time.Second
}

// BackendTimeout bounds the abuse-classification call.
func (s SecurityConfig) BackendTimeout() time.Duration {
	if s.BackendTimeoutMillis <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(s.BackendTimeoutMillis) * time.Millisecond
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
