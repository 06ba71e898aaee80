package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"STOREFRONT_APP_NAME":             os.Getenv("STOREFRONT_APP_NAME"),
		"STOREFRONT_APP_ENV":              os.Getenv("STOREFRONT_APP_ENV"),
		"STOREFRONT_LOG_LEVEL":            os.Getenv("STOREFRONT_LOG_LEVEL"),
		"STOREFRONT_UPLOAD_MAX_FILES":     os.Getenv("STOREFRONT_UPLOAD_MAX_FILES"),
		"STOREFRONT_UPLOAD_MAX_FILE_SIZE": os.Getenv("STOREFRONT_UPLOAD_MAX_FILE_SIZE"),
		"STOREFRONT_DATABASE_DRIVER":      os.Getenv("STOREFRONT_DATABASE_DRIVER"),
		"STOREFRONT_DATABASE_PASSWORD":    os.Getenv("STOREFRONT_DATABASE_PASSWORD"),
		"STOREFRONT_DATABASE_SSLMODE":     os.Getenv("STOREFRONT_DATABASE_SSLMODE"),
		"STOREFRONT_STORAGE_ACCESS_KEY":   os.Getenv("STOREFRONT_STORAGE_ACCESS_KEY"),
		"STOREFRONT_STORAGE_SECRET_KEY":   os.Getenv("STOREFRONT_STORAGE_SECRET_KEY"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "storefront-seller", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, 5, cfg.Upload.MaxFiles)
		assert.Equal(t, int64(10*1024*1024), cfg.Upload.MaxFileSize)
		assert.Equal(t, "product", cfg.Upload.NamePrefix)
		assert.Equal(t, 200, cfg.Renditions.Thumbnail.MaxEdge)
		assert.Equal(t, 70, cfg.Renditions.Thumbnail.Quality)
		assert.Equal(t, 800, cfg.Renditions.Preview.MaxEdge)
		assert.Equal(t, 80, cfg.Renditions.Preview.Quality)
		assert.Equal(t, 1200, cfg.Renditions.Full.MaxEdge)
		assert.Equal(t, 85, cfg.Renditions.Full.Quality)
		assert.Equal(t, 2*time.Second, cfg.QuickEdit.AutoSaveDelay)
		assert.Equal(t, 3*time.Second, cfg.QuickEdit.HighlightDuration)
		assert.Equal(t, 50, cfg.QuickEdit.MaxUndoHistory)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.True(t, cfg.IsDevelopment())
		assert.False(t, cfg.IsProduction())
	})

	t.Run("environment variables override defaults", func(t *testing.T) {
		clearEnv()
		os.Setenv("STOREFRONT_APP_NAME", "custom-seller")
		os.Setenv("STOREFRONT_UPLOAD_MAX_FILES", "8")
		os.Setenv("STOREFRONT_DATABASE_DRIVER", "sqlite")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "custom-seller", cfg.App.Name)
		assert.Equal(t, 8, cfg.Upload.MaxFiles)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
	})

	t.Run("production requires storage credentials", func(t *testing.T) {
		clearEnv()
		os.Setenv("STOREFRONT_APP_ENV", "production")
		os.Setenv("STOREFRONT_DATABASE_DRIVER", "sqlite")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage credentials")
	})

	t.Run("production postgres requires password and ssl", func(t *testing.T) {
		clearEnv()
		os.Setenv("STOREFRONT_APP_ENV", "production")
		os.Setenv("STOREFRONT_STORAGE_ACCESS_KEY", "key")
		os.Setenv("STOREFRONT_STORAGE_SECRET_KEY", "secret")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password")

		os.Setenv("STOREFRONT_DATABASE_PASSWORD", "hunter2")
		_, err = Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")

		os.Setenv("STOREFRONT_DATABASE_SSLMODE", "require")
		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.IsProduction())
	})
}

func TestDatabaseDSN(t *testing.T) {
	t.Run("postgres dsn", func(t *testing.T) {
		d := DatabaseConfig{
			Driver: "postgres", Host: "db.internal", Port: 5432,
			User: "seller", Password: "p@ss", DBName: "storefront", SSLMode: "require",
		}
		dsn := d.DSN()
		assert.Contains(t, dsn, "postgres://")
		assert.Contains(t, dsn, "db.internal:5432")
		assert.Contains(t, dsn, "sslmode=require")
	})

	t.Run("sqlite dsn is the file path", func(t *testing.T) {
		d := DatabaseConfig{Driver: "sqlite", Path: "data/store.db"}
		assert.Equal(t, "data/store.db", d.DSN())
	})
}
