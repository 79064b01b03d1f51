// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/danielhkuo/rate-anything/logging"
)

// Database types.
const (
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
	DatabaseMemory   = "memory"
)

type Config struct {
	Port         int    `koanf:"port"`
	DatabaseType string `koanf:"database_type"`
	DatabaseURL  string `koanf:"database_url"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	SearchEndpoint  string        `koanf:"search_endpoint"`
	SearchUserAgent string        `koanf:"search_user_agent"`
	SearchTimeout   time.Duration `koanf:"search_timeout"`
	SearchCacheTTL  time.Duration `koanf:"search_cache_ttl"`
	RedisURL        string        `koanf:"redis_url"`

	ItemsFile   string   `koanf:"items_file"`
	BannedWords []string `koanf:"banned_words"`

	// IPSalt keys voter fingerprints in the logs. Empty means a fresh
	// salt per process.
	IPSalt string `koanf:"ip_salt"`

	RankPageSize    int `koanf:"rank_page_size"`
	MaxRankPageSize int `koanf:"max_rank_page_size"`

	MetricsEnabled    bool    `koanf:"metrics_enabled"`
	TracingEnabled    bool    `koanf:"tracing_enabled"`
	TracingExporter   string  `koanf:"tracing_exporter"`
	TracingEndpoint   string  `koanf:"tracing_endpoint"`
	TracingSampleRate float64 `koanf:"tracing_sample_rate"`
	TracingInsecure   bool    `koanf:"tracing_insecure"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Port:              3318,
		DatabaseType:      DatabaseSQLite,
		LogLevel:          "info",
		LogFormat:         "text",
		SearchEndpoint:    "https://en.wikipedia.org/w/api.php",
		SearchUserAgent:   "rate-anything/1.0 (https://github.com/danielhkuo/rate-anything)",
		SearchTimeout:     3 * time.Second,
		SearchCacheTTL:    10 * time.Minute,
		RankPageSize:      100,
		MaxRankPageSize:   500,
		MetricsEnabled:    true,
		TracingExporter:   "otlp-http",
		TracingSampleRate: 0.1,
	}
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"p":         "port",
	"t":         "database_type",
	"d":         "database_url",
	"log-level": "log_level",
	"items":     "items_file",
	"redis":     "redis_url",
}

// ParseFlags layers configuration from lowest to highest precedence:
//  1. Default()
//  2. YAML file named by -c or CONFIG_FILE
//  3. environment variables (PORT, DATABASE_URL, ...)
//  4. flags given on the command line
func ParseFlags(args []string) (Config, error) {
	fs := flag.NewFlagSet("rate-anything", flag.ContinueOnError)

	configFile := fs.String("c", "", "YAML config file")
	fs.Int("p", 0, "Server port")
	fs.String("t", "", "Database type (postgres, sqlite or memory)")
	fs.String("d", "", "Database URL")
	fs.String("log-level", "", "Log level (debug, info, warn, error)")
	fs.String("items", "", "Weighted items file")
	fs.String("redis", "", "Redis URL for the search cache")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	k := koanf.New(".")

	path := *configFile
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file: %w", err)
		}
	}

	known := knownKeys()
	envProvider := env.Provider("", ".", func(s string) string {
		key := strings.ToLower(s)
		if _, ok := known[key]; !ok {
			return ""
		}
		return key
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	var setErr error
	fs.Visit(func(f *flag.Flag) {
		if key, ok := flagKeys[f.Name]; ok && setErr == nil {
			setErr = k.Set(key, f.Value.String())
		}
	})
	if setErr != nil {
		return Config{}, setErr
	}

	cfg := Default()
	// Env and flag values arrive as strings; lists are comma separated.
	err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and required values.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	switch c.DatabaseType {
	case DatabasePostgres, DatabaseSQLite:
		if c.DatabaseURL == "" {
			return errors.New("database URL required (use -d or DATABASE_URL env)")
		}
	case DatabaseMemory:
	default:
		return fmt.Errorf("unknown database type %q", c.DatabaseType)
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}

	if c.SearchTimeout <= 0 {
		return errors.New("search_timeout must be positive")
	}
	if c.RankPageSize <= 0 {
		return errors.New("rank_page_size must be positive")
	}
	if c.MaxRankPageSize < c.RankPageSize {
		return errors.New("max_rank_page_size must be at least rank_page_size")
	}
	if c.TracingSampleRate < 0 || c.TracingSampleRate > 1 {
		return fmt.Errorf("tracing_sample_rate must be between 0 and 1, got %v", c.TracingSampleRate)
	}
	return nil
}

func knownKeys() map[string]struct{} {
	return map[string]struct{}{
		"port": {}, "database_type": {}, "database_url": {},
		"log_level": {}, "log_format": {},
		"search_endpoint": {}, "search_user_agent": {}, "search_timeout": {}, "search_cache_ttl": {},
		"redis_url": {}, "items_file": {}, "banned_words": {}, "ip_salt": {},
		"rank_page_size": {}, "max_rank_page_size": {},
		"metrics_enabled": {}, "tracing_enabled": {}, "tracing_exporter": {},
		"tracing_endpoint": {}, "tracing_sample_rate": {}, "tracing_insecure": {},
	}
}
