package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "empty file uses sqlite defaults",
			yaml: "",
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, DriverSQLite, cfg.Database.Driver)
				assert.Equal(t, "part-price-tracker.db", cfg.Database.Path)
			},
		},
		{
			name: "defaults applied for optional fields",
			yaml: `
database:
  driver: sqlite
  path: /var/lib/ppt/ppt.db
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 5*time.Minute, cfg.Server.WriteTimeout)
				assert.Equal(t, "/var/lib/ppt/ppt.db", cfg.Database.Path)
				assert.Equal(t, 6*time.Hour, cfg.Refresh.Interval)
				assert.Equal(t, 10, cfg.Refresh.Concurrency)
				assert.False(t, cfg.Refresh.RunOnStart)
				assert.Equal(t, 10*time.Second, cfg.Fetcher.Timeout)
				assert.Equal(t, 3, cfg.Fetcher.MaxAttempts)
				assert.Equal(t, 500*time.Millisecond, cfg.Fetcher.BackoffBase)
				assert.Equal(t, 8*time.Second, cfg.Fetcher.BackoffMax)
				assert.Equal(t, 2*time.Second, cfg.Fetcher.MinInterval)
				assert.Equal(t, int64(4<<20), cfg.Fetcher.MaxBodyBytes)
				assert.Equal(t, TransportPushbullet, cfg.Notifications.Transport)
				assert.Equal(t, 24*time.Hour, cfg.Notifications.ThrottleWindow)
				assert.Equal(t, "https://api.pushbullet.com/v2", cfg.Notifications.Pushbullet.URL)
				assert.Equal(t, FXSourceBankOfCanada, cfg.FX.Source)
				assert.Equal(t, 24*time.Hour, cfg.FX.CacheTTL)
				assert.Equal(t, "1.35", cfg.FX.Fallback().String())
				assert.Equal(t, "part-price-tracker", cfg.Observability.Tracing.ServiceName)
				assert.InDelta(t, 1.0, cfg.Observability.Tracing.SamplingRatio, 0.0001)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
			},
		},
		{
			name: "valid postgres config",
			yaml: `
database:
  driver: postgres
  host: localhost
  name: ppt
  user: ppt
  pool_size: 4
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, DriverPostgres, cfg.Database.Driver)
				assert.Empty(t, cfg.Database.Path)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, 4, cfg.Database.PoolSize)
			},
		},
		{
			name: "env var substitution",
			yaml: `
database:
  driver: postgres
  host: ${TEST_PPT_DB_HOST}
  name: ppt
  user: ppt
  password: ${TEST_PPT_DB_PASSWORD}
notifications:
  transport: discord
  discord:
    webhook_url: ${TEST_PPT_DISCORD_WEBHOOK}
`,
			envVars: map[string]string{
				"TEST_PPT_DB_HOST":         "db.internal",
				"TEST_PPT_DB_PASSWORD":     "hunter2",
				"TEST_PPT_DISCORD_WEBHOOK": "https://discord.com/api/webhooks/1/abc",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "db.internal", cfg.Database.Host)
				assert.Equal(t, "hunter2", cfg.Database.Password)
				assert.Equal(t, TransportDiscord, cfg.Notifications.Transport)
				assert.Equal(t, "https://discord.com/api/webhooks/1/abc", cfg.Notifications.Discord.WebhookURL)
			},
		},
		{
			name: "refresh and fetcher overrides",
			yaml: `
refresh:
  interval: 30m
  concurrency: 4
  run_on_start: true
fetcher:
  timeout: 5s
  max_attempts: 5
  backoff_base: 1s
  backoff_max: 30s
  min_interval: 500ms
  user_agent: ppt-test/1.0
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, 30*time.Minute, cfg.Refresh.Interval)
				assert.Equal(t, 4, cfg.Refresh.Concurrency)
				assert.True(t, cfg.Refresh.RunOnStart)
				assert.Equal(t, 5*time.Second, cfg.Fetcher.Timeout)
				assert.Equal(t, 5, cfg.Fetcher.MaxAttempts)
				assert.Equal(t, time.Second, cfg.Fetcher.BackoffBase)
				assert.Equal(t, 30*time.Second, cfg.Fetcher.BackoffMax)
				assert.Equal(t, 500*time.Millisecond, cfg.Fetcher.MinInterval)
				assert.Equal(t, "ppt-test/1.0", cfg.Fetcher.UserAgent)
			},
		},
		{
			name: "fixed fx rate",
			yaml: `
fx:
  source: fixed
  fixed_rate: "1.3725"
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, FXSourceFixed, cfg.FX.Source)
				assert.Equal(t, "1.3725", cfg.FX.Fixed().String())
			},
		},
		{
			name: "tracing enabled",
			yaml: `
observability:
  tracing:
    enabled: true
    endpoint: otel-collector:4317
    insecure: true
    sampling_ratio: 0.25
logging:
  level: debug
  format: json
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.True(t, cfg.Observability.Tracing.Enabled)
				assert.Equal(t, "otel-collector:4317", cfg.Observability.Tracing.Endpoint)
				assert.True(t, cfg.Observability.Tracing.Insecure)
				assert.InDelta(t, 0.25, cfg.Observability.Tracing.SamplingRatio, 0.0001)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
			},
		},
		{
			name: "postgres missing host",
			yaml: `
database:
  driver: postgres
  name: ppt
  user: ppt
`,
			wantErr: "database.host is required",
		},
		{
			name: "postgres missing name and user",
			yaml: `
database:
  driver: postgres
  host: localhost
`,
			wantErr: "database.name is required",
		},
		{
			name: "unknown driver",
			yaml: `
database:
  driver: mysql
`,
			wantErr: "database.driver must be one of",
		},
		{
			name: "unknown transport",
			yaml: `
notifications:
  transport: email
`,
			wantErr: "notifications.transport must be one of",
		},
		{
			name: "fixed fx without rate",
			yaml: `
fx:
  source: fixed
`,
			wantErr: "fx.fixed_rate is required",
		},
		{
			name: "non-numeric fallback rate",
			yaml: `
fx:
  fallback_rate: lots
`,
			wantErr: "fx.fallback_rate must be a decimal number",
		},
		{
			name: "negative fixed rate",
			yaml: `
fx:
  source: fixed
  fixed_rate: "-1"
`,
			wantErr: "fx.fixed_rate must be positive",
		},
		{
			name: "unknown fx source",
			yaml: `
fx:
  source: ecb
`,
			wantErr: "fx.source must be one of",
		},
		{
			name: "backoff ceiling below base",
			yaml: `
fetcher:
  backoff_base: 10s
  backoff_max: 1s
`,
			wantErr: "fetcher.backoff_max must not be less than",
		},
		{
			name: "negative interval",
			yaml: `
refresh:
  interval: -1m
`,
			wantErr: "refresh.interval must be positive",
		},
		{
			name: "sampling ratio out of range",
			yaml: `
observability:
  tracing:
    sampling_ratio: 2
`,
			wantErr: "sampling_ratio must be between 0 and 1",
		},
		{
			name:    "invalid yaml",
			yaml:    "database: [unclosed",
			wantErr: "parsing config YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Only parallelize tests that don't modify env vars.
			if len(tt.envVars) == 0 {
				t.Parallel()
			}

			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			cfg, err := Load(path)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_ExampleConfig(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join("..", "..", "configs", "config.example.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, TransportPushbullet, cfg.Notifications.Transport)
	assert.Equal(t, FXSourceBankOfCanada, cfg.FX.Source)
	assert.Equal(t, 6*time.Hour, cfg.Refresh.Interval)
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestLoad_ReportsEveryInvalidField(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  driver: postgres
notifications:
  transport: carrier-pigeon
`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	for _, want := range []string{
		"database.host is required",
		"database.name is required",
		"database.user is required",
		"notifications.transport must be one of",
	} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestLoadEnvFile(t *testing.T) {
	const (
		fromFile = "TEST_PPT_ENVFILE_ONLY"
		preset   = "TEST_PPT_ENVFILE_PRESET"
	)
	t.Cleanup(func() { _ = os.Unsetenv(fromFile) })
	t.Setenv(preset, "from-process")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path,
		[]byte(fromFile+"=from-file\n"+preset+"=from-file\n"), 0o600))

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv(fromFile))
	assert.Equal(t, "from-process", os.Getenv(preset))
}

func TestLoadEnvFile_Missing(t *testing.T) {
	t.Parallel()

	require.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "absent.env")))
	require.NoError(t, LoadEnvFile(""))
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  DatabaseConfig
		want string
	}{
		{
			name: "basic DSN",
			cfg: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				Name:     "ppt",
				User:     "ppt",
				Password: "testpass",
				SSLMode:  "disable",
				PoolSize: 10,
			},
			want: "host=localhost port=5432 dbname=ppt user=ppt password=testpass sslmode=disable pool_max_conns=10",
		},
		{
			name: "production DSN",
			cfg: DatabaseConfig{
				Host:     "db.example.com",
				Port:     5433,
				Name:     "tracker",
				User:     "admin",
				Password: "s3cret",
				SSLMode:  "require",
				PoolSize: 4,
			},
			want: "host=db.example.com port=5433 dbname=tracker user=admin password=s3cret sslmode=require pool_max_conns=4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.cfg.DSN())
		})
	}
}
