package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Leave    LeaveConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// LeaveConfig holds the leave policy knobs that are deployment-tunable.
// The tenure accrual law itself is statutory and lives in the entitlement
// calculator, not here.
type LeaveConfig struct {
	MaxCarryOverDays       float64
	WFHWeeklyLimit         int
	WFHMonthlyLimit        int
	EmergencyDays          float64
	MaternityDays          float64
	SickFullPayDays        float64
	SickHalfPayDays        float64
	SickUnpaidDays         float64
	RecomputeInterval      time.Duration
	CarryOverCheckInterval time.Duration
}

func Load() (*Config, error) {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "yazmedia-hr"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Leave policy configuration
	leave, err := loadLeaveConfig()
	if err != nil {
		return nil, err
	}
	config.Leave = leave

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadLeaveConfig() (LeaveConfig, error) {
	cfg := LeaveConfig{}

	var err error
	if cfg.MaxCarryOverDays, err = getEnvFloat("LEAVE_MAX_CARRY_OVER_DAYS", 5); err != nil {
		return cfg, err
	}
	if cfg.WFHWeeklyLimit, err = getEnvInt("LEAVE_WFH_WEEKLY_LIMIT", 1); err != nil {
		return cfg, err
	}
	if cfg.WFHMonthlyLimit, err = getEnvInt("LEAVE_WFH_MONTHLY_LIMIT", 4); err != nil {
		return cfg, err
	}
	if cfg.EmergencyDays, err = getEnvFloat("LEAVE_EMERGENCY_DAYS", 5); err != nil {
		return cfg, err
	}
	if cfg.MaternityDays, err = getEnvFloat("LEAVE_MATERNITY_DAYS", 60); err != nil {
		return cfg, err
	}
	if cfg.SickFullPayDays, err = getEnvFloat("LEAVE_SICK_FULL_PAY_DAYS", 15); err != nil {
		return cfg, err
	}
	if cfg.SickHalfPayDays, err = getEnvFloat("LEAVE_SICK_HALF_PAY_DAYS", 30); err != nil {
		return cfg, err
	}
	if cfg.SickUnpaidDays, err = getEnvFloat("LEAVE_SICK_UNPAID_DAYS", 45); err != nil {
		return cfg, err
	}

	recompute := getEnv("LEAVE_RECOMPUTE_INTERVAL", "24h")
	if cfg.RecomputeInterval, err = time.ParseDuration(recompute); err != nil {
		return cfg, fmt.Errorf("invalid LEAVE_RECOMPUTE_INTERVAL: %w", err)
	}
	carryOver := getEnv("LEAVE_CARRY_OVER_CHECK_INTERVAL", "24h")
	if cfg.CarryOverCheckInterval, err = time.ParseDuration(carryOver); err != nil {
		return cfg, fmt.Errorf("invalid LEAVE_CARRY_OVER_CHECK_INTERVAL: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Leave.MaxCarryOverDays < 0 {
		return fmt.Errorf("LEAVE_MAX_CARRY_OVER_DAYS must not be negative")
	}
	if c.Leave.WFHWeeklyLimit < 1 || c.Leave.WFHMonthlyLimit < 1 {
		return fmt.Errorf("WFH limits must be at least 1")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}
