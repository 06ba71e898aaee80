package main

import (
	"fmt"

	"go.uber.org/zap"

	listingapp "github.com/erp/storefront/internal/application/listing"
	"github.com/erp/storefront/internal/application/quickedit"
	"github.com/erp/storefront/internal/application/uploader"
	"github.com/erp/storefront/internal/domain/catalog"
	"github.com/erp/storefront/internal/infrastructure/config"
	"github.com/erp/storefront/internal/infrastructure/imageproc"
	"github.com/erp/storefront/internal/infrastructure/logger"
	"github.com/erp/storefront/internal/infrastructure/persistence"
	"github.com/erp/storefront/internal/infrastructure/storage"
)

// App wires the seller tooling together and is passed around explicitly
// instead of living in package-level state.
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	DB        *persistence.Database
	Store     listingapp.ObjectStorage
	Processor *imageproc.Processor
	Listings  *listingapp.Service
}

// NewApp builds the full dependency graph from configuration.
func NewApp(cfg *config.Config, log *zap.Logger) (*App, error) {
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	store, err := buildStorage(cfg, log)
	if err != nil {
		db.Close()
		return nil, err
	}

	processor := imageproc.NewProcessor(
		imageproc.WithLogger(log.Named("imageproc")),
		imageproc.WithTiers(imageproc.Tiers{
			Thumbnail: imageproc.Tier{MaxEdge: cfg.Renditions.Thumbnail.MaxEdge, Quality: cfg.Renditions.Thumbnail.Quality},
			Preview:   imageproc.Tier{MaxEdge: cfg.Renditions.Preview.MaxEdge, Quality: cfg.Renditions.Preview.Quality},
			Full:      imageproc.Tier{MaxEdge: cfg.Renditions.Full.MaxEdge, Quality: cfg.Renditions.Full.Quality},
		}),
	)

	repo := persistence.NewGormListingRepository(db.DB)
	listings := listingapp.NewService(repo, store,
		listingapp.WithServiceLogger(log.Named("listing")))

	return &App{
		Config:    cfg,
		Logger:    log,
		DB:        db,
		Store:     store,
		Processor: processor,
		Listings:  listings,
	}, nil
}

// buildStorage picks S3 when credentials are configured and falls back
// to the in-memory store for credential-less development runs.
func buildStorage(cfg *config.Config, log *zap.Logger) (listingapp.ObjectStorage, error) {
	if cfg.Storage.AccessKey == "" || cfg.Storage.SecretKey == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("storage credentials are required in production")
		}
		log.Warn("no storage credentials configured, using in-memory object storage")
		return storage.NewMemoryObjectStorage(), nil
	}
	return storage.NewS3ObjectStorage(&cfg.Storage,
		storage.WithLogger(log.Named("storage")))
}

// NewUploadSession creates an upload session with the configured limits.
func (a *App) NewUploadSession(opts ...uploader.SessionOption) *uploader.Session {
	base := []uploader.SessionOption{
		uploader.WithCapacity(a.Config.Upload.MaxFiles),
		uploader.WithMaxFileSize(a.Config.Upload.MaxFileSize),
		uploader.WithNamePrefix(a.Config.Upload.NamePrefix),
		uploader.WithSessionLogger(a.Logger.Named("uploader")),
	}
	return uploader.NewSession(a.Processor, append(base, opts...)...)
}

// NewGrid creates a bulk edit grid with the configured undo bound.
func (a *App) NewGrid(rows []catalog.VariationRow) *quickedit.Grid {
	return quickedit.NewGrid(rows,
		quickedit.WithMaxUndo(a.Config.QuickEdit.MaxUndoHistory),
		quickedit.WithGridLogger(a.Logger.Named("quickedit")))
}

// Close releases held resources.
func (a *App) Close() {
	if err := a.DB.Close(); err != nil {
		a.Logger.Warn("closing database failed", zap.Error(err))
	}
}
