package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	AccessTTL  string `yaml:"access_ttl"`
	RefreshTTL string `yaml:"refresh_ttl"`
}

type ThrottleConfig struct {
	MaxAttempts int    `yaml:"max_attempts"`
	Window      string `yaml:"window"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	Throttle ThrottleConfig `yaml:"throttle"`
}

type Config struct {
	Port          string
	GinMode       string
	DSN           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	LoginMaxAttempts int
	LoginWindow      time.Duration
}

// Insecure fallback defaults; a deployment must override them. They mirror
// what the first production rollout shipped with, so an un-configured dev
// instance still boots.
const (
	defaultJWTSecret  = "your-super-secret-jwt-key-change-this-in-production"
	defaultAccessTTL  = 168 * time.Hour // 7 days
	defaultRefreshTTL = 720 * time.Hour // 30 days
)

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load resolves configuration: defaults, then the optional yaml file, then
// environment variables (the .env file is folded into the environment
// first). Later stages override earlier ones.
func Load() (*Config, error) {
	// Best effort; a missing .env file is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		Port:             "3000",
		GinMode:          "release",
		DSN:              env("POSTGRES_URL", ""),
		JWTSecret:        defaultJWTSecret,
		AccessTTL:        defaultAccessTTL,
		RefreshTTL:       defaultRefreshTTL,
		LoginMaxAttempts: 10,
		LoginWindow:      15 * time.Minute,
	}

	if file, err := loadConfigFile(env("CONFIG_FILE", "config/config.yml")); err == nil {
		if err := applyFile(cfg, file); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}
	return &config, nil
}

func applyFile(cfg *Config, file *ConfigFile) error {
	if file.App.Port != 0 {
		cfg.Port = strconv.Itoa(file.App.Port)
	}
	if file.App.GinMode != "" {
		cfg.GinMode = file.App.GinMode
	}
	if file.Database.DSN != "" {
		cfg.DSN = file.Database.DSN
	}
	if file.Redis.Addr != "" {
		cfg.RedisAddr = file.Redis.Addr
		cfg.RedisPassword = file.Redis.Password
		cfg.RedisDB = file.Redis.DB
	}
	if file.JWT.Secret != "" {
		cfg.JWTSecret = file.JWT.Secret
	}
	if file.JWT.AccessTTL != "" {
		ttl, err := time.ParseDuration(file.JWT.AccessTTL)
		if err != nil {
			return fmt.Errorf("invalid JWT access TTL: %w", err)
		}
		cfg.AccessTTL = ttl
	}
	if file.JWT.RefreshTTL != "" {
		ttl, err := time.ParseDuration(file.JWT.RefreshTTL)
		if err != nil {
			return fmt.Errorf("invalid JWT refresh TTL: %w", err)
		}
		cfg.RefreshTTL = ttl
	}
	if file.Throttle.MaxAttempts != 0 {
		cfg.LoginMaxAttempts = file.Throttle.MaxAttempts
	}
	if file.Throttle.Window != "" {
		w, err := time.ParseDuration(file.Throttle.Window)
		if err != nil {
			return fmt.Errorf("invalid throttle window: %w", err)
		}
		cfg.LoginWindow = w
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.Port = env("PORT", cfg.Port)
	cfg.GinMode = env("GIN_MODE", cfg.GinMode)
	cfg.DSN = env("POSTGRES_URL", cfg.DSN)
	cfg.RedisAddr = env("REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = env("REDIS_PASSWORD", cfg.RedisPassword)
	cfg.JWTSecret = env("JWT_SECRET", cfg.JWTSecret)

	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
	}
	if v := os.Getenv("JWT_EXPIRES_IN"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid JWT_EXPIRES_IN: %w", err)
		}
		cfg.AccessTTL = ttl
	}
	if v := os.Getenv("JWT_REFRESH_EXPIRES_IN"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid JWT_REFRESH_EXPIRES_IN: %w", err)
		}
		cfg.RefreshTTL = ttl
	}
	return nil
}
