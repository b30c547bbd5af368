// Package config provides application configuration loaded from environment variables.
// Use the package-level Get() function to obtain the singleton Config instance.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"
)

// ──────────────────────────────────────────────────────────────────────────────
// Sub-config structs
// ──────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        // e.g. "8080"
	Env          string        // "development" | "production"
	ReadTimeout  time.Duration // default 10s
	WriteTimeout time.Duration // default 10s
	AuthRPS      int           // per-IP budget for auth endpoints, default 10; <=0 disables
	WagerRPS     int           // per-IP budget for bet endpoints, default 30; <=0 disables
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	DSN             string        // full postgres DSN
	MaxOpenConns    int           // default 25
	MaxIdleConns    int           // default 10
	ConnMaxLifetime time.Duration // default 5m
}

// JWTConfig holds JWT signing settings.
type JWTConfig struct {
	AccessSecret  string        // must be set
	RefreshSecret string        // must be set
	AccessTTL     time.Duration // default 15m
	RefreshTTL    time.Duration // default 720h (30 days)
}

// RedisConfig holds the optional ranking cache settings. When Addr is empty
// the service runs without a cache and recomputes rankings on every request.
type RedisConfig struct {
	Addr       string        // e.g. "localhost:6379"; "" disables the cache
	Password   string        // default ""
	DB         int           // default 0
	RankingTTL time.Duration // default 30s
}

// CasinoConfig holds house rules for wagering.
type CasinoConfig struct {
	WelcomeCredit float64       // starting balance credited at registration
	MinBet        float64       // smallest accepted stake
	MaxBet        float64       // largest accepted stake; 0 = unlimited
	SweepInterval time.Duration // liability sweep cadence, default 1m
	PendingMaxAge time.Duration // pending bets older than this count as stale, default 5m
}

// ──────────────────────────────────────────────────────────────────────────────
// Top-level Config
// ──────────────────────────────────────────────────────────────────────────────

// Config is the root configuration object for the entire application.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	Redis  RedisConfig
	Casino CasinoConfig
}

// IsProd returns true when running in the production environment.
func (c *Config) IsProd() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// Returns the first validation error encountered.
func (c *Config) Validate() error {
	var errs []error

	// JWT secrets are mandatory
	if c.JWT.AccessSecret == "" {
		errs = append(errs, errors.New("JWT_ACCESS_SECRET must be set"))
	}
	if c.JWT.RefreshSecret == "" {
		errs = append(errs, errors.New("JWT_REFRESH_SECRET must be set"))
	}

	// In production, DB DSN must be explicit
	if c.IsProd() && c.DB.DSN == "" {
		errs = append(errs, errors.New("DATABASE_DSN must be set in production"))
	}

	if c.Casino.MinBet <= 0 {
		errs = append(errs, fmt.Errorf("CASINO_MIN_BET must be positive, got %.4f", c.Casino.MinBet))
	}
	if c.Casino.MaxBet != 0 && c.Casino.MaxBet < c.Casino.MinBet {
		errs = append(errs, fmt.Errorf(
			"CASINO_MAX_BET (%.4f) must be zero or >= CASINO_MIN_BET (%.4f)",
			c.Casino.MaxBet, c.Casino.MinBet,
		))
	}
	if c.Casino.WelcomeCredit < 0 {
		errs = append(errs, fmt.Errorf("CASINO_WELCOME_CREDIT must not be negative, got %.4f", c.Casino.WelcomeCredit))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Singleton
// ──────────────────────────────────────────────────────────────────────────────

var (
	instance *Config
	once     sync.Once
	loadErr  error
)

// Get returns the singleton Config, loading it once from environment variables.
// Panics if loading fails — call this early in main() to catch misconfigurations
// at startup.
func Get() *Config {
	once.Do(func() {
		instance, loadErr = load()
	})
	if loadErr != nil {
		panic(fmt.Sprintf("config: failed to load: %v", loadErr))
	}
	return instance
}

// MustLoad loads and validates configuration. Intended for use in main().
// Panics on any error so misconfiguration is caught immediately at boot.
func MustLoad() *Config {
	cfg := Get()
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("config: validation failed: %v", err))
	}
	return cfg
}

// ──────────────────────────────────────────────────────────────────────────────
// Internal loader
// ──────────────────────────────────────────────────────────────────────────────

func load() (*Config, error) {
	cfg := &Config{}

	// ── Server ────────────────────────────────────────────────────────────────
	authRPS, err := getInt("RATE_LIMIT_AUTH_RPS", 10)
	if err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_AUTH_RPS: %w", err)
	}
	wagerRPS, err := getInt("RATE_LIMIT_WAGER_RPS", 30)
	if err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_WAGER_RPS: %w", err)
	}
	cfg.Server = ServerConfig{
		Port:         getEnv("SERVER_PORT", "8080"),
		Env:          getEnv("ENVIRONMENT", "development"),
		ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
		WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
		AuthRPS:      authRPS,
		WagerRPS:     wagerRPS,
	}

	// ── Database ──────────────────────────────────────────────────────────────
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		// Build DSN from individual components for convenience in dev
		dsn = fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", ""),
			getEnv("DB_NAME", "casino"),
			getEnv("DB_SSLMODE", "disable"),
		)
	}

	maxOpen, err := getInt("DB_MAX_OPEN_CONNS", 25)
	if err != nil {
		return nil, fmt.Errorf("DB_MAX_OPEN_CONNS: %w", err)
	}
	maxIdle, err := getInt("DB_MAX_IDLE_CONNS", 10)
	if err != nil {
		return nil, fmt.Errorf("DB_MAX_IDLE_CONNS: %w", err)
	}

	cfg.DB = DBConfig{
		DSN:             dsn,
		MaxOpenConns:    maxOpen,
		MaxIdleConns:    maxIdle,
		ConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
	}

	// ── JWT ───────────────────────────────────────────────────────────────────
	cfg.JWT = JWTConfig{
		AccessSecret:  getEnv("JWT_ACCESS_SECRET", ""),
		RefreshSecret: getEnv("JWT_REFRESH_SECRET", ""),
		AccessTTL:     getDuration("JWT_ACCESS_TTL", 15*time.Minute),
		RefreshTTL:    getDuration("JWT_REFRESH_TTL", 30*24*time.Hour),
	}

	// ── Redis ─────────────────────────────────────────────────────────────────
	redisDB, err := getInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("REDIS_DB: %w", err)
	}
	cfg.Redis = RedisConfig{
		Addr:       getEnv("REDIS_ADDR", ""),
		Password:   getEnv("REDIS_PASSWORD", ""),
		DB:         redisDB,
		RankingTTL: getDuration("REDIS_RANKING_TTL", 30*time.Second),
	}

	// ── Casino ────────────────────────────────────────────────────────────────
	welcome, err := getFloat("CASINO_WELCOME_CREDIT", 1000)
	if err != nil {
		return nil, fmt.Errorf("CASINO_WELCOME_CREDIT: %w", err)
	}
	minBet, err := getFloat("CASINO_MIN_BET", 1)
	if err != nil {
		return nil, fmt.Errorf("CASINO_MIN_BET: %w", err)
	}
	maxBet, err := getFloat("CASINO_MAX_BET", 10000)
	if err != nil {
		return nil, fmt.Errorf("CASINO_MAX_BET: %w", err)
	}

	cfg.Casino = CasinoConfig{
		WelcomeCredit: welcome,
		MinBet:        minBet,
		MaxBet:        maxBet,
		SweepInterval: getDuration("CASINO_SWEEP_INTERVAL", 1*time.Minute),
		PendingMaxAge: getDuration("CASINO_PENDING_MAX_AGE", 5*time.Minute),
	}

	return cfg, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helper functions
// ──────────────────────────────────────────────────────────────────────────────

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getInt(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", v)
	}
	return n, nil
}

func getFloat(key string, defaultVal float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float %q", v)
	}
	return f, nil
}

// getDuration parses an env var as a Go duration string (e.g. "15m", "2s").
// Falls back to defaultVal if the variable is unset or empty.
func getDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
