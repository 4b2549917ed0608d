package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "manuald.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// YAML file is optional; missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. The YAML file is optional.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is validated by caller
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "MANUALD_PORT")
	setString(&cfg.Server.CORSOrigin, "MANUALD_CORS_ORIGIN")
	setString(&cfg.Server.ImportPagePath, "MANUALD_IMPORT_PAGE_PATH")
	setString(&cfg.Postgres.DSN, "DATABASE_URL")
	setInt32(&cfg.Postgres.MaxConns, "MANUALD_PG_MAX_CONNS")
	setInt32(&cfg.Postgres.MinConns, "MANUALD_PG_MIN_CONNS")
	setDuration(&cfg.Postgres.MaxConnLifetime, "MANUALD_PG_MAX_CONN_LIFETIME")
	setDuration(&cfg.Postgres.MaxConnIdleTime, "MANUALD_PG_MAX_CONN_IDLE_TIME")
	setDuration(&cfg.Postgres.HealthCheck, "MANUALD_PG_HEALTH_CHECK")
	setInt64(&cfg.Cache.MaxSizeMB, "MANUALD_CACHE_SIZE_MB")
	setBool(&cfg.Auth.Enabled, "MANUALD_AUTH_ENABLED")
	setString(&cfg.Auth.Secret, "MANUALD_AUTH_SECRET")
	setDuration(&cfg.Auth.TokenTTL, "MANUALD_AUTH_TOKEN_TTL")
	setDuration(&cfg.Auth.NonceTTL, "MANUALD_AUTH_NONCE_TTL")
	setInt(&cfg.Auth.BcryptCost, "MANUALD_AUTH_BCRYPT_COST")
	setString(&cfg.Auth.AdminEmail, "MANUALD_ADMIN_EMAIL")
	setString(&cfg.Auth.AdminName, "MANUALD_ADMIN_NAME")
	setString(&cfg.Auth.AdminPassword, "MANUALD_ADMIN_PASSWORD")
	setInt64(&cfg.Import.MaxFileBytes, "MANUALD_IMPORT_MAX_FILE_BYTES")
	setDuration(&cfg.Import.FlashTTL, "MANUALD_IMPORT_FLASH_TTL")
	setString(&cfg.Logging.Level, "MANUALD_LOG_LEVEL")
	setString(&cfg.Logging.Service, "MANUALD_LOG_SERVICE")
}

// validate checks that required fields are set.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if cfg.Postgres.DSN == "" {
		return errors.New("postgres.dsn is required")
	}
	if cfg.Postgres.MaxConns < 1 {
		return errors.New("postgres.max_conns must be >= 1")
	}
	if cfg.Cache.MaxSizeMB < 1 {
		return errors.New("cache.max_size_mb must be >= 1")
	}
	if cfg.Auth.Enabled && cfg.Auth.Secret == "" {
		return errors.New("auth.secret is required when auth is enabled")
	}
	if cfg.Import.MaxFileBytes < 1 {
		return errors.New("import.max_file_bytes must be >= 1")
	}
	if cfg.Import.FlashTTL <= 0 {
		return errors.New("import.flash_ttl must be positive")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt32(dst *int32, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			*dst = int32(n)
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
