package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aussiebroadwan/directory/internal/directory/backend"
	"github.com/aussiebroadwan/directory/internal/directory/session"
)

// Session store kinds for the admin console.
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type Config struct {
	Env                  string        `yaml:"env" json:"env"`                                     // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        `yaml:"log_level" json:"log_level"`                         // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        `yaml:"log_format" json:"log_format"`                       // Log format (json, text) (default: json)
	Port                 int           `yaml:"port" json:"port"`                                   // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration `yaml:"shutdown_grace_period" json:"shutdown_grace_period"` // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration `yaml:"housekeeping_interval" json:"housekeeping_interval"` // Housekeeping interval (default: 1h)
	AuditRetention       time.Duration `yaml:"audit_retention" json:"audit_retention"`             // Audit log retention (default: 90 days)
	DatabaseFile         string        `yaml:"database_file" json:"database_file"`                 // SQLite file for the relational backend (default: ./directory.db)
	LoginMinDuration     time.Duration `yaml:"login_min_duration" json:"login_min_duration"`       // Floor for credential submissions (default: 100ms)

	Directory backend.Config `yaml:"directory" json:"directory"`
	Seed      SeedConfig     `yaml:"seed" json:"seed"`
	Engine    EngineConfig   `yaml:"engine" json:"engine"`
	Admin     AdminConfig    `yaml:"admin" json:"admin"`
	API       APIConfig      `yaml:"api" json:"api"`
}

// SeedConfig controls the seeder run at serve start.
type SeedConfig struct {
	DomainName       string `yaml:"domain_name" json:"domain_name"`
	BootstrapAccount string `yaml:"bootstrap_account" json:"bootstrap_account"`
	File             string `yaml:"file" json:"file"`
}

// EngineConfig locates the OpenID Connect engine's interaction API. The
// interaction routes are disabled when URL is empty.
type EngineConfig struct {
	URL   string `yaml:"url" json:"url"`
	Token string `yaml:"token" json:"token"`
}

type AdminConfig struct {
	SessionStore string              `yaml:"session_store" json:"session_store"`
	SessionIdle  time.Duration       `yaml:"session_idle" json:"session_idle"`
	SecureCookie *bool               `yaml:"secure_cookie" json:"secure_cookie"` // nil when a layer leaves it unset
	Redis        session.RedisConfig `yaml:"redis" json:"redis"`
}

// SecureCookies reports whether the session cookie carries the Secure flag.
func (a AdminConfig) SecureCookies() bool {
	return a.SecureCookie != nil && *a.SecureCookie
}

type APIConfig struct {
	Token       string   `yaml:"token" json:"token"`
	CORSOrigins []string `yaml:"cors_origins" json:"cors_origins"`
}

// DefaultConfig is the bottom configuration layer.
func DefaultConfig() Config {
	return Config{
		Env:                  "dev",
		LogLevel:             "info",
		LogFormat:            "json",
		Port:                 8080,
		ShutdownGracePeriod:  10 * time.Second,
		HousekeepingInterval: time.Hour,
		AuditRetention:       90 * 24 * time.Hour,
		DatabaseFile:         "directory.db",
		LoginMinDuration:     100 * time.Millisecond,
		Directory: backend.Config{
			Kind: backend.KindRelational,
			Remote: backend.RemoteConfig{
				Timeout: 10 * time.Second,
			},
		},
		Admin: AdminConfig{
			SessionStore: SessionStoreMemory,
			SessionIdle:  30 * time.Minute,
			Redis: session.RedisConfig{
				KeyPrefix: session.DefaultKeyPrefix,
			},
		},
	}
}

// LoadConfig layers, lowest first: DefaultConfig, the YAML file named by
// DIRECTORY_CONFIG_FILE, the JSON document in DIRECTORY_CONFIG_JSON and the
// discrete environment variables.
func LoadConfig() (Config, error) {
	layers := []Config{DefaultConfig()}

	if path := os.Getenv("DIRECTORY_CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path) // #nosec G304 - path is operator supplied
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		layer, err := ParseYAMLConfig(data)
		if err != nil {
			return Config{}, err
		}
		layers = append(layers, layer)
	}

	if raw := os.Getenv("DIRECTORY_CONFIG_JSON"); raw != "" {
		layer, err := ParseJSONConfig([]byte(raw))
		if err != nil {
			return Config{}, err
		}
		layers = append(layers, layer)
	}

	layers = append(layers, configFromEnv())

	cfg, err := MergeConfig(layers...)
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// MergeConfig folds layers left to right. Non-zero values in later layers
// win and slices are replaced, never concatenated. Pointer fields are taken
// as set whenever they are non-nil, so an explicit false still overrides.
func MergeConfig(layers ...Config) (Config, error) {
	var out Config
	for i, layer := range layers {
		if err := mergo.Merge(&out, layer, mergo.WithOverride, mergo.WithoutDereference); err != nil {
			return Config{}, fmt.Errorf("failed to merge config layer %d: %w", i, err)
		}
	}
	return out, nil
}

// ParseYAMLConfig decodes a config file layer. Durations use Go syntax ("90s").
func ParseYAMLConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// ParseJSONConfig decodes the bulk environment layer. Values are weakly
// typed so "8080" and "1h" decode into ints and durations.
func ParseJSONConfig(data []byte) (Config, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("failed to parse DIRECTORY_CONFIG_JSON: %w", err)
	}

	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &cfg,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("failed to decode DIRECTORY_CONFIG_JSON: %w", err)
	}
	return cfg, nil
}

// configFromEnv reads the discrete variables. Unset variables stay zero so
// they never override a lower layer.
func configFromEnv() Config {
	return Config{
		Env:                  os.Getenv("ENV"),
		LogLevel:             os.Getenv("LOG_LEVEL"),
		LogFormat:            os.Getenv("LOG_FORMAT"),
		Port:                 getEnvIntOrDefault("PORT", 0),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 0),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 0),
		AuditRetention:       getEnvDurationOrDefault("AUDIT_RETENTION", 0),
		DatabaseFile:         os.Getenv("DIRECTORY_DATABASE_FILE"),
		LoginMinDuration:     getEnvDurationOrDefault("LOGIN_MIN_DURATION", 0),
		Directory: backend.Config{
			Kind: os.Getenv("DIRECTORY_BACKEND"),
			Local: backend.LocalConfig{
				UsersJSON: os.Getenv("USERS"),
				UsersFile: os.Getenv("USERS_FILE"),
			},
			Remote: backend.RemoteConfig{
				URL:     os.Getenv("REMOTE_DIRECTORY_URL"),
				Token:   os.Getenv("REMOTE_DIRECTORY_TOKEN"),
				Timeout: getEnvDurationOrDefault("REMOTE_DIRECTORY_TIMEOUT", 0),
			},
		},
		Seed: SeedConfig{
			DomainName:       os.Getenv("SEED_DOMAIN"),
			BootstrapAccount: os.Getenv("BOOTSTRAP_ACCOUNT"),
			File:             os.Getenv("SEED_FILE"),
		},
		Engine: EngineConfig{
			URL:   os.Getenv("ENGINE_URL"),
			Token: os.Getenv("ENGINE_TOKEN"),
		},
		Admin: AdminConfig{
			SessionStore: os.Getenv("ADMIN_SESSION_STORE"),
			SessionIdle:  getEnvDurationOrDefault("ADMIN_SESSION_IDLE", 0),
			SecureCookie: getEnvBoolPtr("ADMIN_SECURE_COOKIE"),
			Redis: session.RedisConfig{
				Addr:     os.Getenv("REDIS_ADDR"),
				Username: os.Getenv("REDIS_USERNAME"),
				Password: os.Getenv("REDIS_PASSWORD"),
				DB:       getEnvIntOrDefault("REDIS_DB", 0),
			},
		},
		API: APIConfig{
			Token:       os.Getenv("DIRECTORY_API_TOKEN"),
			CORSOrigins: getEnvListOrDefault("CORS_ORIGINS", nil),
		},
	}
}

// Validate rejects configurations the application cannot start with.
func (c Config) Validate() error {
	var errs []error

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}

	switch strings.ToLower(c.Directory.Kind) {
	case backend.KindLocal:
		if c.Directory.Local.UsersJSON == "" && c.Directory.Local.UsersFile == "" {
			errs = append(errs, errors.New("local directory requires USERS or USERS_FILE"))
		}
	case backend.KindRemote:
		if c.Directory.Remote.URL == "" {
			errs = append(errs, errors.New("remote directory requires REMOTE_DIRECTORY_URL"))
		}
	case backend.KindRelational:
		if c.DatabaseFile == "" {
			errs = append(errs, errors.New("relational directory requires a database file"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown directory backend %q", c.Directory.Kind))
	}

	switch c.Admin.SessionStore {
	case SessionStoreMemory:
	case SessionStoreRedis:
		if c.Admin.Redis.Addr == "" {
			errs = append(errs, errors.New("redis session store requires REDIS_ADDR"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown admin session store %q", c.Admin.SessionStore))
	}

	return errors.Join(errs...)
}

// Relational reports whether the relational backend, and with it the
// schema seeder and admin console, is in use.
func (c Config) Relational() bool {
	return strings.EqualFold(c.Directory.Kind, backend.KindRelational)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

// getEnvBoolPtr returns nil when the variable is unset or unparsable.
func getEnvBoolPtr(key string) *bool {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil
	}
	return &b
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

// getEnvListOrDefault splits a comma separated variable, dropping blanks.
func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := getEnvOrDefault(key, "")
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
