package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/robfig/cron/v3"
)

// Config represents the application configuration
type Config struct {
	Environment string           `toml:"environment"` // "development" or "production"
	Server      ServerConfig     `toml:"server"`
	Storage     StorageConfig    `toml:"storage"`
	Curves      CurvesConfig     `toml:"curves"`
	Projection  ProjectionConfig `toml:"projection"`
	Cache       CacheConfig      `toml:"cache"`
	RateLimit   RateLimitConfig  `toml:"rate_limit"`
	Logging     LoggingConfig    `toml:"logging"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type StorageConfig struct {
	Type     string         `toml:"type"` // "badger" or "postgres"
	Badger   BadgerConfig   `toml:"badger"`
	Postgres PostgresConfig `toml:"postgres"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
	InMemory       bool   `toml:"in_memory"`        // Keep everything in memory, nothing written to Path
}

// PostgresConfig represents PostgreSQL-specific configuration
type PostgresConfig struct {
	URL      string `toml:"url"` // Falls back to DATABASE_URL
	MaxConns int32  `toml:"max_conns"`
}

// CurvesConfig controls where curve datasets come from and how often the snapshot is rebuilt
type CurvesConfig struct {
	Dir            string `toml:"dir"`             // Directory of *.toml / *.yaml curve files seeded at startup
	ReloadSchedule string `toml:"reload_schedule"` // Cron spec; empty disables periodic reload
}

type ProjectionConfig struct {
	HandoverGrowthRate float64 `toml:"handover_growth_rate"` // Annual off-plan growth before handover
	BatchWorkers       int     `toml:"batch_workers"`        // Concurrent projections per batch request
	MaxBatchSize       int     `toml:"max_batch_size"`       // Requests accepted per batch
}

// CacheConfig selects the report cache backend
type CacheConfig struct {
	Backend       string `toml:"backend"` // "memory", "redis" or "none"
	TTL           string `toml:"ttl"`     // e.g. "1h"
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// TTLDuration parses TTL, falling back to one hour
func (c CacheConfig) TTLDuration() time.Duration {
	d, err := time.ParseDuration(c.TTL)
	if err != nil || d <= 0 {
		return time.Hour
	}
	return d
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `toml:"requests_per_second"` // 0 disables
	Burst             int     `toml:"burst"`
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Format     string   `toml:"format"`      // "json" or "text"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs (default: "15:04:05")
	Directory  string   `toml:"directory"`   // Log directory (default: logs/ next to the executable)
	FileName   string   `toml:"file_name"`   // Log file name (default: "propcast.log")
}

// NewDefaultConfig creates a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Type: "badger",
			Badger: BadgerConfig{
				Path: "./data",
			},
			Postgres: PostgresConfig{
				MaxConns: 10,
			},
		},
		Curves: CurvesConfig{
			Dir: "./curves",
		},
		Projection: ProjectionConfig{
			HandoverGrowthRate: 0.10,
			BatchWorkers:       4,
			MaxBatchSize:       50,
		},
		Cache: CacheConfig{
			Backend:   "memory",
			TTL:       "1h",
			RedisAddr: "localhost:6379",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 10,
			Burst:             20,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			Output:     []string{"stdout", "file"},
			TimeFormat: "15:04:05",
		},
	}
}

// LoadFromFiles loads configuration from multiple files with priority: default -> file1 -> file2 -> ... -> env -> CLI
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		// Unmarshal merges with existing values
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("PROPCAST_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("PROPCAST_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("PROPCAST_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Storage configuration
	if storageType := os.Getenv("PROPCAST_STORAGE_TYPE"); storageType != "" {
		config.Storage.Type = storageType
	}
	if badgerPath := os.Getenv("PROPCAST_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}
	if inMemory := os.Getenv("PROPCAST_BADGER_IN_MEMORY"); inMemory != "" {
		if b, err := strconv.ParseBool(inMemory); err == nil {
			config.Storage.Badger.InMemory = b
		}
	}
	if url := os.Getenv("PROPCAST_POSTGRES_URL"); url != "" {
		config.Storage.Postgres.URL = url
	} else if url := os.Getenv("DATABASE_URL"); url != "" && config.Storage.Postgres.URL == "" {
		config.Storage.Postgres.URL = url
	}

	// Curves configuration
	if dir := os.Getenv("PROPCAST_CURVES_DIR"); dir != "" {
		config.Curves.Dir = dir
	}
	if schedule := os.Getenv("PROPCAST_CURVES_RELOAD_SCHEDULE"); schedule != "" {
		config.Curves.ReloadSchedule = schedule
	}

	// Projection configuration
	if rate := os.Getenv("PROPCAST_HANDOVER_GROWTH_RATE"); rate != "" {
		if r, err := strconv.ParseFloat(rate, 64); err == nil {
			config.Projection.HandoverGrowthRate = r
		}
	}
	if workers := os.Getenv("PROPCAST_BATCH_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil {
			config.Projection.BatchWorkers = w
		}
	}

	// Cache configuration
	if backend := os.Getenv("PROPCAST_CACHE_BACKEND"); backend != "" {
		config.Cache.Backend = backend
	}
	if ttl := os.Getenv("PROPCAST_CACHE_TTL"); ttl != "" {
		config.Cache.TTL = ttl
	}
	if addr := os.Getenv("PROPCAST_REDIS_ADDR"); addr != "" {
		config.Cache.RedisAddr = addr
	}
	if password := os.Getenv("PROPCAST_REDIS_PASSWORD"); password != "" {
		config.Cache.RedisPassword = password
	}
	if db := os.Getenv("PROPCAST_REDIS_DB"); db != "" {
		if d, err := strconv.Atoi(db); err == nil {
			config.Cache.RedisDB = d
		}
	}

	// Rate limit configuration
	if rps := os.Getenv("PROPCAST_RATE_LIMIT_RPS"); rps != "" {
		if r, err := strconv.ParseFloat(rps, 64); err == nil {
			config.RateLimit.RequestsPerSecond = r
		}
	}
	if burst := os.Getenv("PROPCAST_RATE_LIMIT_BURST"); burst != "" {
		if b, err := strconv.Atoi(burst); err == nil {
			config.RateLimit.Burst = b
		}
	}

	// Logging configuration
	if level := os.Getenv("PROPCAST_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("PROPCAST_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
	if dir := os.Getenv("PROPCAST_LOG_DIR"); dir != "" {
		config.Logging.Directory = dir
	}
	if output := os.Getenv("PROPCAST_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, port int, host string) {
	// Command-line flags have highest priority
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate rejects settings the application cannot start with
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case "", "badger", "postgres":
	default:
		return fmt.Errorf("unsupported storage type: %s (expected 'badger' or 'postgres')", c.Storage.Type)
	}

	switch c.Cache.Backend {
	case "", "memory", "redis", "none":
	default:
		return fmt.Errorf("unsupported cache backend: %s (expected 'memory', 'redis' or 'none')", c.Cache.Backend)
	}

	if c.Projection.HandoverGrowthRate < 0 {
		return fmt.Errorf("projection.handover_growth_rate must not be negative")
	}

	if c.Projection.BatchWorkers < 1 || c.Projection.MaxBatchSize < 1 {
		return fmt.Errorf("projection.batch_workers and projection.max_batch_size must be positive")
	}

	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("unsupported log format: %s (expected 'text' or 'json')", c.Logging.Format)
	}
	for _, output := range c.Logging.Output {
		switch output {
		case "stdout", "console", "file":
		default:
			return fmt.Errorf("unsupported log output: %s (expected 'stdout' or 'file')", output)
		}
	}

	if c.Curves.ReloadSchedule != "" {
		if err := ValidateReloadSchedule(c.Curves.ReloadSchedule); err != nil {
			return fmt.Errorf("curves.reload_schedule: %w", err)
		}
	}

	return nil
}

// ValidateReloadSchedule validates a standard 5-field cron expression or a descriptor such as "@every 10m"
func ValidateReloadSchedule(schedule string) error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}
	return nil
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
