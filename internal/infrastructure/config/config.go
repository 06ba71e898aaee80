package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App        AppConfig
	Log        LogConfig
	Upload     UploadConfig
	Renditions RenditionsConfig
	QuickEdit  QuickEditConfig
	Database   DatabaseConfig
	Storage    StorageConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// UploadConfig holds image upload limits
type UploadConfig struct {
	MaxFiles    int
	MaxFileSize int64 // in bytes
	NamePrefix  string
}

// RenditionConfig is one rendition tier: max edge in pixels and JPEG
// quality 1-100.
type RenditionConfig struct {
	MaxEdge int
	Quality int
}

// RenditionsConfig holds the three rendition tiers
type RenditionsConfig struct {
	Thumbnail RenditionConfig
	Preview   RenditionConfig
	Full      RenditionConfig
}

// QuickEditConfig holds bulk edit grid settings
type QuickEditConfig struct {
	AutoSaveDelay     time.Duration
	HighlightDuration time.Duration
	MaxUndoHistory    int
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver          string // postgres or sqlite
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	Path            string // sqlite file path
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// StorageConfig holds object storage settings
type StorageConfig struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with STOREFRONT_ prefix (e.g., STOREFRONT_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Upload: UploadConfig{
			MaxFiles:    v.GetInt("upload.max_files"),
			MaxFileSize: v.GetInt64("upload.max_file_size"),
			NamePrefix:  v.GetString("upload.name_prefix"),
		},
		Renditions: RenditionsConfig{
			Thumbnail: RenditionConfig{
				MaxEdge: v.GetInt("renditions.thumbnail_max_edge"),
				Quality: v.GetInt("renditions.thumbnail_quality"),
			},
			Preview: RenditionConfig{
				MaxEdge: v.GetInt("renditions.preview_max_edge"),
				Quality: v.GetInt("renditions.preview_quality"),
			},
			Full: RenditionConfig{
				MaxEdge: v.GetInt("renditions.full_max_edge"),
				Quality: v.GetInt("renditions.full_quality"),
			},
		},
		QuickEdit: QuickEditConfig{
			AutoSaveDelay:     v.GetDuration("quickedit.auto_save_delay"),
			HighlightDuration: v.GetDuration("quickedit.highlight_duration"),
			MaxUndoHistory:    v.GetInt("quickedit.max_undo_history"),
		},
		Database: DatabaseConfig{
			Driver:          v.GetString("database.driver"),
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			Path:            v.GetString("database.path"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Storage: StorageConfig{
			Endpoint:  v.GetString("storage.endpoint"),
			Region:    v.GetString("storage.region"),
			Bucket:    v.GetString("storage.bucket"),
			AccessKey: v.GetString("storage.access_key"),
			SecretKey: v.GetString("storage.secret_key"),
			UseSSL:    v.GetBool("storage.use_ssl"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "storefront-seller"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.Upload.MaxFiles == 0 {
		cfg.Upload.MaxFiles = 5
	}
	if cfg.Upload.MaxFileSize == 0 {
		cfg.Upload.MaxFileSize = 10 * 1024 * 1024
	}
	if cfg.Upload.NamePrefix == "" {
		cfg.Upload.NamePrefix = "product"
	}
	if cfg.Renditions.Thumbnail.MaxEdge == 0 {
		cfg.Renditions.Thumbnail.MaxEdge = 200
	}
	if cfg.Renditions.Thumbnail.Quality == 0 {
		cfg.Renditions.Thumbnail.Quality = 70
	}
	if cfg.Renditions.Preview.MaxEdge == 0 {
		cfg.Renditions.Preview.MaxEdge = 800
	}
	if cfg.Renditions.Preview.Quality == 0 {
		cfg.Renditions.Preview.Quality = 80
	}
	if cfg.Renditions.Full.MaxEdge == 0 {
		cfg.Renditions.Full.MaxEdge = 1200
	}
	if cfg.Renditions.Full.Quality == 0 {
		cfg.Renditions.Full.Quality = 85
	}
	if cfg.QuickEdit.AutoSaveDelay == 0 {
		cfg.QuickEdit.AutoSaveDelay = 2 * time.Second
	}
	if cfg.QuickEdit.HighlightDuration == 0 {
		cfg.QuickEdit.HighlightDuration = 3 * time.Second
	}
	if cfg.QuickEdit.MaxUndoHistory == 0 {
		cfg.QuickEdit.MaxUndoHistory = 50
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "storefront"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "storefront.db"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Storage.Region == "" {
		cfg.Storage.Region = "us-east-1"
	}
	if cfg.Storage.Bucket == "" {
		cfg.Storage.Bucket = "storefront-images"
	}
}

// validate checks configuration consistency
func (c *Config) validate() error {
	if c.Upload.MaxFiles <= 0 {
		return fmt.Errorf("upload.max_files must be positive")
	}
	if c.Upload.MaxFileSize <= 0 {
		return fmt.Errorf("upload.max_file_size must be positive")
	}
	for name, r := range map[string]RenditionConfig{
		"thumbnail": c.Renditions.Thumbnail,
		"preview":   c.Renditions.Preview,
		"full":      c.Renditions.Full,
	} {
		if r.MaxEdge <= 0 {
			return fmt.Errorf("renditions.%s_max_edge must be positive", name)
		}
		if r.Quality < 1 || r.Quality > 100 {
			return fmt.Errorf("renditions.%s_quality must be between 1 and 100", name)
		}
	}
	if c.QuickEdit.MaxUndoHistory <= 0 {
		return fmt.Errorf("quickedit.max_undo_history must be positive")
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	if c.App.Env == "production" {
		if c.Database.Driver == "postgres" {
			if c.Database.Password == "" {
				return fmt.Errorf("database.password is required in production")
			}
			if c.Database.SSLMode == "disable" {
				return fmt.Errorf("database.sslmode cannot be 'disable' in production")
			}
		}
		if c.Storage.AccessKey == "" || c.Storage.SecretKey == "" {
			return fmt.Errorf("storage credentials are required in production")
		}
	}

	return nil
}

// IsProduction reports whether the app runs in production mode
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// IsDevelopment reports whether the app runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// DSN returns the connection string for the configured driver
func (d *DatabaseConfig) DSN() string {
	if d.Driver == "sqlite" {
		return d.Path
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
