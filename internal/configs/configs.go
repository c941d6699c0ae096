package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultJWTSecret is the signing secret used when none is configured. It is
// public, so tokens signed with it offer no protection.
const DefaultJWTSecret = "mysecretkey"

const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

type Config struct {
	ListenAddress          string   `toml:"listen_address"`
	UsersFilePath          string   `toml:"users_file_path"`
	TodosFilePath          string   `toml:"todos_file_path"`
	JWTSecret              string   `toml:"jwt_secret"`
	TaskStoreDriver        string   `toml:"task_store_driver"`
	DatabaseDSN            string   `toml:"database_dsn"`
	DatabaseURL            string   `toml:"database_url"`
	RedisAddr              string   `toml:"redis_addr"`
	TaskSnapshotKey        string   `toml:"task_snapshot_key"`
	SerializeMutations     bool     `toml:"serialize_mutations"`
	LockTimeoutSeconds     int      `toml:"lock_timeout_seconds"`
	RateLimit              int      `toml:"rate_limit_per_minute"`
	ShutdownTimeoutSeconds int      `toml:"shutdown_timeout_seconds"`
	LogLevel               string   `toml:"log_level"`
	CORSAllowOrigins       []string `toml:"cors_allow_origins"`
}

func Defaults() Config {
	return Config{
		ListenAddress:          "127.0.0.1:3072",
		UsersFilePath:          "users.json",
		TodosFilePath:          "todos.json",
		JWTSecret:              DefaultJWTSecret,
		TaskStoreDriver:        DriverFile,
		DatabaseDSN:            "tasks.db",
		RedisAddr:              "127.0.0.1:6379",
		TaskSnapshotKey:        "todos",
		LockTimeoutSeconds:     5,
		RateLimit:              120,
		ShutdownTimeoutSeconds: 20,
		LogLevel:               "info",
		CORSAllowOrigins:       []string{"*"},
	}
}

// Load layers defaults, the optional TOML file at path and the environment,
// in that order.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode config file %s: %w", path, err)
		}
	}

	var err error
	cfg.ListenAddress = getEnv("LISTEN_ADDRESS", cfg.ListenAddress)
	cfg.UsersFilePath = getEnv("USERS_FILE_PATH", cfg.UsersFilePath)
	cfg.TodosFilePath = getEnv("TODOS_FILE_PATH", cfg.TodosFilePath)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.TaskStoreDriver = strings.ToLower(getEnv("TASK_STORE_DRIVER", cfg.TaskStoreDriver))
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", cfg.DatabaseDSN)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.TaskSnapshotKey = getEnv("TASK_SNAPSHOT_KEY", cfg.TaskSnapshotKey)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	if v := os.Getenv("CORS_ALLOW_ORIGIN"); v != "" {
		cfg.CORSAllowOrigins = splitList(v)
	}
	if cfg.SerializeMutations, err = getEnvAsBool("SERIALIZE_MUTATIONS", cfg.SerializeMutations); err != nil {
		return Config{}, err
	}
	if cfg.LockTimeoutSeconds, err = getEnvAsInt("LOCK_TIMEOUT_SECONDS", cfg.LockTimeoutSeconds); err != nil {
		return Config{}, err
	}
	if cfg.RateLimit, err = getEnvAsInt("RATE_LIMIT_PER_MINUTE", cfg.RateLimit); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeoutSeconds, err = getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", cfg.ShutdownTimeoutSeconds); err != nil {
		return Config{}, err
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// UsesDefaultSecret reports whether tokens are signed with the public
// fallback secret.
func (c Config) UsesDefaultSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

func validate(cfg Config) error {
	if cfg.ListenAddress == "" {
		return fmt.Errorf("LISTEN_ADDRESS must not be empty (e.g. 127.0.0.1:3072)")
	}
	if cfg.UsersFilePath == "" {
		return fmt.Errorf("USERS_FILE_PATH must not be empty")
	}
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if cfg.RateLimit <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.LockTimeoutSeconds <= 0 {
		return fmt.Errorf("LOCK_TIMEOUT_SECONDS must be greater than 0")
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}

	switch cfg.TaskStoreDriver {
	case DriverFile:
		if cfg.TodosFilePath == "" {
			return fmt.Errorf("TODOS_FILE_PATH must not be empty")
		}
	case DriverSQLite:
		if cfg.DatabaseDSN == "" {
			return fmt.Errorf("DATABASE_DSN must not be empty for the sqlite driver")
		}
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL must not be empty for the postgres driver")
		}
	case DriverRedis:
		if cfg.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR must not be empty for the redis driver")
		}
	default:
		return fmt.Errorf("unknown TASK_STORE_DRIVER %q", cfg.TaskStoreDriver)
	}

	if cfg.TaskStoreDriver != DriverFile && cfg.TaskSnapshotKey == "" {
		return fmt.Errorf("TASK_SNAPSHOT_KEY must not be empty")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) (int, error) {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s", key)
		}
		return i, nil
	}
	return defaultVal, nil
}

func getEnvAsBool(key string, defaultVal bool) (bool, error) {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("invalid boolean value for %s", key)
		}
		return b, nil
	}
	return defaultVal, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
