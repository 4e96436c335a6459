package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withCleanEnv unsets keys for the duration of the test and restores them afterwards
func withCleanEnv(t *testing.T, keys ...string) func() {
	t.Helper()
	original := make(map[string]string, len(keys))
	for _, k := range keys {
		original[k] = os.Getenv(k)
	}
	clearAll := func() {
		for _, k := range keys {
			os.Unsetenv(k)
		}
	}
	t.Cleanup(func() {
		for k, v := range original {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	})
	return clearAll
}

var configEnvKeys = []string{
	"ECOM_APP_NAME",
	"ECOM_APP_ENV",
	"ECOM_APP_PORT",
	"ECOM_DATABASE_DRIVER",
	"ECOM_DATABASE_HOST",
	"ECOM_DATABASE_PORT",
	"ECOM_DATABASE_USER",
	"ECOM_DATABASE_PASSWORD",
	"ECOM_DATABASE_DBNAME",
	"ECOM_DATABASE_SSLMODE",
	"ECOM_DATABASE_MAX_OPEN_CONNS",
	"ECOM_DATABASE_MAX_IDLE_CONNS",
	"ECOM_EVENT_IDEMPOTENCY_ENABLED",
	"ECOM_EVENT_IDEMPOTENCY_STORE",
	"ECOM_EVENT_IDEMPOTENCY_TTL",
	"ECOM_HTTP_MAX_UPLOAD_SIZE",
	"ECOM_HTTP_CORS_ALLOW_ORIGINS",
	"ECOM_STORAGE_DRIVER",
	"ECOM_STORAGE_BUCKET",
	"ECOM_STORAGE_LOCAL_DIR",
	"ECOM_TELEMETRY_SAMPLING_RATIO",
	"ECOM_TELEMETRY_METRICS_ENABLED",
	"ECOM_TELEMETRY_METRICS_EXPORT_INTERVAL",
}

func TestLoad(t *testing.T) {
	clearEnv := withCleanEnv(t, configEnvKeys...)

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "ecommerce-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "ecommerce", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.True(t, cfg.Event.IdempotencyEnabled)
		assert.Equal(t, "memory", cfg.Event.IdempotencyStore)
		assert.Equal(t, 24*time.Hour, cfg.Event.IdempotencyTTL)
		assert.Equal(t, int64(10<<20), cfg.HTTP.MaxUploadSize)
		assert.Equal(t, 30*time.Second, cfg.HTTP.ShutdownTimeout)
		assert.Equal(t, "local", cfg.Storage.Driver)
		assert.Equal(t, "/tmp/uploads", cfg.Storage.LocalDir)
		assert.Equal(t, "/uploads", cfg.Storage.PublicPath)
		assert.True(t, cfg.Storage.UseSSL)
		assert.False(t, cfg.Telemetry.MetricsEnabled)
		assert.Equal(t, 60*time.Second, cfg.Telemetry.MetricsInterval)
	})

	t.Run("loads values from environment variables with ECOM prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("ECOM_APP_NAME", "test-app")
		os.Setenv("ECOM_APP_PORT", "9000")
		os.Setenv("ECOM_DATABASE_DRIVER", "sqlite")
		os.Setenv("ECOM_DATABASE_HOST", "testdb.local")
		os.Setenv("ECOM_DATABASE_PORT", "5433")
		os.Setenv("ECOM_DATABASE_MAX_OPEN_CONNS", "50")
		os.Setenv("ECOM_DATABASE_MAX_IDLE_CONNS", "10")
		os.Setenv("ECOM_EVENT_IDEMPOTENCY_ENABLED", "false")
		os.Setenv("ECOM_EVENT_IDEMPOTENCY_STORE", "redis")
		os.Setenv("ECOM_EVENT_IDEMPOTENCY_TTL", "2h")
		os.Setenv("ECOM_STORAGE_DRIVER", "s3")
		os.Setenv("ECOM_STORAGE_BUCKET", "invoices")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
		assert.False(t, cfg.Event.IdempotencyEnabled)
		assert.Equal(t, "redis", cfg.Event.IdempotencyStore)
		assert.Equal(t, 2*time.Hour, cfg.Event.IdempotencyTTL)
		assert.Equal(t, "s3", cfg.Storage.Driver)
		assert.Equal(t, "invoices", cfg.Storage.Bucket)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("ECOM_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("ECOM_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("validates MaxIdleConns cannot be negative", func(t *testing.T) {
		clearEnv()
		os.Setenv("ECOM_DATABASE_MAX_IDLE_CONNS", "-1")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns cannot be negative")
	})

	t.Run("rejects unknown database driver", func(t *testing.T) {
		clearEnv()
		os.Setenv("ECOM_DATABASE_DRIVER", "mysql")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.driver")
	})

	t.Run("s3 storage requires bucket", func(t *testing.T) {
		clearEnv()
		os.Setenv("ECOM_STORAGE_DRIVER", "s3")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.bucket is required")
	})

	t.Run("rejects unknown idempotency store", func(t *testing.T) {
		clearEnv()
		os.Setenv("ECOM_EVENT_IDEMPOTENCY_STORE", "memcached")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "event.idempotency_store")
	})

	t.Run("rejects sampling ratio above one", func(t *testing.T) {
		clearEnv()
		os.Setenv("ECOM_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "telemetry.sampling_ratio")
	})

	t.Run("enabled metrics need a positive export interval", func(t *testing.T) {
		clearEnv()
		os.Setenv("ECOM_TELEMETRY_METRICS_ENABLED", "true")
		os.Setenv("ECOM_TELEMETRY_METRICS_EXPORT_INTERVAL", "0s")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "telemetry.metrics_export_interval")
	})
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv := withCleanEnv(t, configEnvKeys...)
	clearEnv()

	dir := t.TempDir()
	toml := `
[app]
port = "7070"

[database]
driver = "sqlite"
sqlite_path = "shop.db"

[http]
max_upload_size = 2048
cors_allow_origins = ["http://shop.local"]
read_timeout = "5s"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0o600))
	t.Chdir(dir)
	os.Setenv("ECOM_APP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port, "environment wins over the file")
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "shop.db", cfg.Database.SQLitePath)
	assert.Equal(t, int64(2048), cfg.HTTP.MaxUploadSize)
	assert.Equal(t, []string{"http://shop.local"}, cfg.HTTP.CORSAllowOrigins)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns, "unset keys keep their defaults")
}

func TestLoad_ProductionValidation(t *testing.T) {
	clearEnv := withCleanEnv(t, configEnvKeys...)

	setValidProductionBase := func() {
		os.Setenv("ECOM_APP_ENV", "production")
		os.Setenv("ECOM_DATABASE_PASSWORD", "secure-password")
		os.Setenv("ECOM_DATABASE_SSLMODE", "require")
	}

	t.Run("requires database.password in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("ECOM_APP_ENV", "production")
		os.Setenv("ECOM_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Setenv("ECOM_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("rejects sqlite in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Setenv("ECOM_DATABASE_DRIVER", "sqlite")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be 'sqlite' in production")
	})

	t.Run("rejects wildcard CORS in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Setenv("ECOM_HTTP_CORS_ALLOW_ORIGINS", "*")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cors_allow_origins")
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.App.IsProduction())
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost:5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		assert.Contains(t, cfg.DSN(), "pass%40word%23123")
	})
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.local", Port: 6380}
	assert.Equal(t, "cache.local:6380", cfg.Addr())
}
