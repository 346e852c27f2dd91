package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, secrets)
// - default: Values common across all environments (timezone, thresholds, timeouts)
// -----------------------------------------------------------------------------

type Config struct {
	Server         ServerConfig
	DB             DBConfig
	Redis          RedisConfig
	CORS           CORSConfig
	Log            LogConfig
	JWT            JWTConfig
	Cookie         CookieConfig
	RateLimit      RateLimitConfig
	Throttle       ThrottleConfig
	PaymentGateway PaymentGatewayConfig
	Migration      MigrationConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"America/Sao_Paulo"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	Prefix   string `envconfig:"REDIS_PREFIX" default:"zurbo"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Retry-After"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"America/Sao_Paulo"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"-10800"` // -3*60*60
}

type JWTConfig struct {
	Secret   string        `envconfig:"JWT_SECRET" required:"true"`
	Duration time.Duration `envconfig:"JWT_DURATION" default:"24h"`
	Issuer   string        `envconfig:"JWT_ISSUER" default:"zurbo"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"true"`
	SameSite string `envconfig:"COOKIE_SAME_SITE" default:"Lax"`
}

// Store selects the usage backend: "postgres" or "redis".
type RateLimitConfig struct {
	Store         string        `envconfig:"USAGE_STORE" default:"postgres"`
	MaxPerHour    int           `envconfig:"USAGE_MAX_PER_HOUR" default:"3"`
	HourlyBlock   time.Duration `envconfig:"USAGE_HOURLY_BLOCK" default:"6h"`
	MaxPerDay     int           `envconfig:"USAGE_MAX_PER_DAY" default:"10"`
	DailyBlock    time.Duration `envconfig:"USAGE_DAILY_BLOCK" default:"24h"`
	MaxActive     int           `envconfig:"USAGE_MAX_ACTIVE" default:"5"`
	MinSpacing    time.Duration `envconfig:"USAGE_MIN_SPACING" default:"10m"`
	MutateRetries int           `envconfig:"USAGE_MUTATE_RETRIES" default:"5"`
}

type ThrottleConfig struct {
	Enabled      bool          `envconfig:"THROTTLE_ENABLED" default:"true"`
	RPS          float64       `envconfig:"THROTTLE_RPS" default:"10"`
	Burst        int           `envconfig:"THROTTLE_BURST" default:"20"`
	IdleTTL      time.Duration `envconfig:"THROTTLE_IDLE_TTL" default:"15m"`
	CleanupEvery time.Duration `envconfig:"THROTTLE_CLEANUP_EVERY" default:"2m"`
}

type PaymentGatewayConfig struct {
	BaseURL   string        `envconfig:"PAYMENT_GATEWAY_URL" required:"true"`
	Token     string        `envconfig:"PAYMENT_GATEWAY_TOKEN" required:"true"`
	Operation string        `envconfig:"PAYMENT_GATEWAY_RELEASE_OPERATION" default:"release-escrow-payment"`
	Timeout   time.Duration `envconfig:"PAYMENT_GATEWAY_TIMEOUT" default:"15s"`
}

type MigrationConfig struct {
	SchemaFile string `envconfig:"MIGRATION_SCHEMA_FILE" default:"migrations/001_initial_schema.sql"`
	DevURL     string `envconfig:"MIGRATION_DEV_URL" default:"docker://postgres/17/dev"`
	AtlasBin   string `envconfig:"MIGRATION_ATLAS_BIN" default:"atlas"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "America/Sao_Paulo",
			MaxConns: 5,
		},
		Redis: RedisConfig{
			Addr:   "localhost:16379",
			Prefix: "zurbo-test",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "America/Sao_Paulo",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: -10800,
		},
		JWT: JWTConfig{
			Secret:   "test-secret-key-for-zurbo",
			Duration: time.Hour,
			Issuer:   "zurbo-test",
		},
		Cookie: CookieConfig{
			SameSite: "Lax",
		},
		RateLimit: RateLimitConfig{
			Store:         "postgres",
			MaxPerHour:    3,
			HourlyBlock:   6 * time.Hour,
			MaxPerDay:     10,
			DailyBlock:    24 * time.Hour,
			MaxActive:     5,
			MinSpacing:    10 * time.Minute,
			MutateRetries: 5,
		},
		Throttle: ThrottleConfig{
			Enabled: false,
		},
		PaymentGateway: PaymentGatewayConfig{
			BaseURL:   "http://localhost:54321/functions/v1",
			Token:     "test-token",
			Operation: "release-escrow-payment",
			Timeout:   2 * time.Second,
		},
	}
}
