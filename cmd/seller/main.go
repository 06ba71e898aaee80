package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/erp/storefront/internal/application/uploader"
	"github.com/erp/storefront/internal/domain/catalog"
	"github.com/erp/storefront/internal/domain/imaging"
	"github.com/erp/storefront/internal/infrastructure/config"
	"github.com/erp/storefront/internal/infrastructure/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.FromAppConfig(cfg.Log))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting seller tools",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
	)

	app, err := NewApp(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer app.Close()

	if err := run(app, os.Args[1:]); err != nil {
		log.Fatal("Command failed", zap.Error(err))
	}
}

func run(app *App, args []string) error {
	if len(args) == 0 {
		return status(app)
	}

	switch args[0] {
	case "status":
		return status(app)
	case "import":
		if len(args) < 4 {
			return fmt.Errorf("usage: seller import <name> <category> <image>...")
		}
		return importListing(app, args[1], args[2], args[3:])
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

// status reports how many listings are stored.
func status(app *App) error {
	ctx := logger.WithContext(context.Background(), app.Logger)
	listings, err := app.Listings.LoadAll(ctx)
	if err != nil {
		return err
	}
	app.Logger.Info("storefront status", zap.Int("listings", len(listings)))
	for _, l := range listings {
		app.Logger.Info("listing",
			zap.String("id", l.ID.String()),
			zap.String("name", l.Name),
			zap.Int("images", len(l.Images)),
			zap.Int("variations", len(l.Variations)))
	}
	return nil
}

// importListing runs the full pipeline: image files through the upload
// session, then a stored listing draft referencing the renditions.
func importListing(app *App, name, category string, paths []string) error {
	ctx := logger.WithContext(context.Background(), app.Logger)

	session := app.NewUploadSession(
		uploader.OnError(func(err error) {
			app.Logger.Warn("image rejected", zap.Error(err))
		}),
	)

	files := make([]imaging.File, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("reading %s: %w", p, err)
		}
		files = append(files, imaging.File{
			Name: filepath.Base(p),
			Data: data,
		})
	}

	added, err := session.Intake(ctx, files)
	if err != nil {
		return err
	}
	if len(added) == 0 {
		return fmt.Errorf("no usable images among %d files", len(paths))
	}

	draft, err := catalog.NewListing(name, category)
	if err != nil {
		return err
	}
	if err := app.Listings.SaveListing(ctx, draft, session.GetAll()); err != nil {
		return err
	}

	app.Logger.Info("listing imported",
		zap.String("id", draft.ID.String()),
		zap.String("name", draft.Name),
		zap.Int("images", session.Count()))
	return nil
}
