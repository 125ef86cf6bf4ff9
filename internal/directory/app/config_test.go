package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/directory/internal/directory/backend"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	require.True(t, cfg.Relational())
	require.Equal(t, 100*time.Millisecond, cfg.LoginMinDuration)
	require.Equal(t, SessionStoreMemory, cfg.Admin.SessionStore)
}

func TestMergeConfig(t *testing.T) {
	t.Run("later non-zero values win", func(t *testing.T) {
		cfg, err := MergeConfig(
			DefaultConfig(),
			Config{Port: 9000, Directory: backend.Config{Kind: backend.KindLocal}},
			Config{LogLevel: "debug"},
		)
		require.NoError(t, err)
		require.Equal(t, 9000, cfg.Port)
		require.Equal(t, "debug", cfg.LogLevel)
		require.Equal(t, backend.KindLocal, cfg.Directory.Kind)
		require.Equal(t, "json", cfg.LogFormat)
		require.Equal(t, 10*time.Second, cfg.Directory.Remote.Timeout)
	})

	t.Run("slices are replaced not appended", func(t *testing.T) {
		cfg, err := MergeConfig(
			Config{API: APIConfig{CORSOrigins: []string{"https://a.example", "https://b.example"}}},
			Config{API: APIConfig{CORSOrigins: []string{"https://c.example"}}},
		)
		require.NoError(t, err)
		require.Equal(t, []string{"https://c.example"}, cfg.API.CORSOrigins)
	})

	t.Run("explicit false overrides true", func(t *testing.T) {
		on, off := true, false
		cfg, err := MergeConfig(
			DefaultConfig(),
			Config{Admin: AdminConfig{SecureCookie: &on}},
			Config{Admin: AdminConfig{SecureCookie: &off}},
		)
		require.NoError(t, err)
		require.False(t, cfg.Admin.SecureCookies())

		cfg, err = MergeConfig(
			Config{Admin: AdminConfig{SecureCookie: &on}},
			Config{},
		)
		require.NoError(t, err)
		require.True(t, cfg.Admin.SecureCookies(), "unset layer keeps the lower value")
	})

	t.Run("empty slices keep the lower layer", func(t *testing.T) {
		cfg, err := MergeConfig(
			Config{API: APIConfig{CORSOrigins: []string{"https://a.example"}}},
			Config{},
		)
		require.NoError(t, err)
		require.Equal(t, []string{"https://a.example"}, cfg.API.CORSOrigins)
	})
}

func TestParseYAMLConfig(t *testing.T) {
	cfg, err := ParseYAMLConfig([]byte(`
port: 9090
login_min_duration: 250ms
directory:
  kind: remote
  remote:
    url: https://idp.example.com
    timeout: 5s
    endpoints:
      validate: auth/check
api:
  cors_origins: [https://app.example.com]
`))
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, 250*time.Millisecond, cfg.LoginMinDuration)
	require.Equal(t, backend.KindRemote, cfg.Directory.Kind)
	require.Equal(t, 5*time.Second, cfg.Directory.Remote.Timeout)
	require.Equal(t, "auth/check", cfg.Directory.Remote.Endpoints.Validate)
	require.Equal(t, []string{"https://app.example.com"}, cfg.API.CORSOrigins)

	_, err = ParseYAMLConfig([]byte("port: [nope"))
	require.Error(t, err)
}

func TestParseJSONConfig(t *testing.T) {
	cfg, err := ParseJSONConfig([]byte(`{
		"port": "7070",
		"housekeeping_interval": "15m",
		"admin": {"session_store": "redis", "redis": {"addr": "localhost:6379"}},
		"api": {"cors_origins": "https://a.example,https://b.example"}
	}`))
	require.NoError(t, err)
	require.Equal(t, 7070, cfg.Port)
	require.Equal(t, 15*time.Minute, cfg.HousekeepingInterval)
	require.Equal(t, SessionStoreRedis, cfg.Admin.SessionStore)
	require.Equal(t, "localhost:6379", cfg.Admin.Redis.Addr)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.API.CORSOrigins)

	_, err = ParseJSONConfig([]byte(`{"port":`))
	require.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadConfig()
		require.NoError(t, err)
		require.Equal(t, DefaultConfig().Port, cfg.Port)
	})

	t.Run("env beats bulk json beats file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "directory.yaml")
		require.NoError(t, os.WriteFile(path, []byte("port: 1111\nlog_level: warn\nenv: staging\n"), 0o600))

		t.Setenv("DIRECTORY_CONFIG_FILE", path)
		t.Setenv("DIRECTORY_CONFIG_JSON", `{"port": 2222, "log_level": "error"}`)
		t.Setenv("PORT", "3333")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		require.Equal(t, 3333, cfg.Port)
		require.Equal(t, "error", cfg.LogLevel)
		require.Equal(t, "staging", cfg.Env)
	})

	t.Run("discrete env vars", func(t *testing.T) {
		t.Setenv("DIRECTORY_BACKEND", "local")
		t.Setenv("USERS", `[{"id":"a","email":"a@example.com","password":"x"}]`)
		t.Setenv("ADMIN_SECURE_COOKIE", "true")
		t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
		t.Setenv("HOUSEKEEPING_INTERVAL", "30")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		require.False(t, cfg.Relational())
		require.True(t, cfg.Admin.SecureCookies())
		require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.API.CORSOrigins)
		require.Equal(t, 30*time.Minute, cfg.HousekeepingInterval)
	})

	t.Run("env turns off a file setting", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "directory.yaml")
		require.NoError(t, os.WriteFile(path, []byte("admin:\n  secure_cookie: true\n"), 0o600))
		t.Setenv("DIRECTORY_CONFIG_FILE", path)

		cfg, err := LoadConfig()
		require.NoError(t, err)
		require.True(t, cfg.Admin.SecureCookies())

		t.Setenv("DIRECTORY_CONFIG_JSON", `{"admin": {"secure_cookie": "false"}}`)
		cfg, err = LoadConfig()
		require.NoError(t, err)
		require.False(t, cfg.Admin.SecureCookies())

		t.Setenv("DIRECTORY_CONFIG_JSON", "")
		t.Setenv("ADMIN_SECURE_COOKIE", "false")
		cfg, err = LoadConfig()
		require.NoError(t, err)
		require.False(t, cfg.Admin.SecureCookies())
	})

	t.Run("missing file", func(t *testing.T) {
		t.Setenv("DIRECTORY_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
		_, err := LoadConfig()
		require.Error(t, err)
	})
}

func TestConfigValidate(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"bad port":           func(c *Config) { c.Port = 0 },
		"unknown backend":    func(c *Config) { c.Directory.Kind = "ldap" },
		"local without data": func(c *Config) { c.Directory.Kind = backend.KindLocal },
		"remote without url": func(c *Config) { c.Directory.Kind = backend.KindRemote },
		"redis without addr": func(c *Config) { c.Admin.SessionStore = SessionStoreRedis },
		"unknown store":      func(c *Config) { c.Admin.SessionStore = "disk" },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
