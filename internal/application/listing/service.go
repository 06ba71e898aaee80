package listing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/erp/storefront/internal/application/quickedit"
	"github.com/erp/storefront/internal/application/uploader"
	"github.com/erp/storefront/internal/domain/catalog"
	"github.com/erp/storefront/internal/domain/shared"
	"github.com/erp/storefront/internal/infrastructure/logger"
)

// ObjectStorage is the blob store the listing service persists image
// renditions to. Implemented by storage.S3ObjectStorage and
// storage.MemoryObjectStorage.
type ObjectStorage interface {
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	Download(ctx context.Context, storageKey string) ([]byte, error)
	DeleteObject(ctx context.Context, storageKey string) error
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
}

// Service persists listing drafts: image blobs go to object storage,
// the listing document to the repository.
type Service struct {
	repo   catalog.ListingRepository
	store  ObjectStorage
	logger *zap.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the logger.
func WithServiceLogger(logger *zap.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a listing service.
func NewService(repo catalog.ListingRepository, store ObjectStorage, opts ...ServiceOption) *Service {
	s := &Service{repo: repo, store: store, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// imageKey builds the storage key of one listing photo rendition.
func imageKey(listingID uuid.UUID, name string) string {
	return fmt.Sprintf("listings/%s/%s", listingID, name)
}

func thumbKey(listingID uuid.UUID, name string) string {
	return fmt.Sprintf("listings/%s/thumbs/%s", listingID, name)
}

// SaveListing uploads the session's images and stores the listing
// document referencing them. Images keep the order the session holds
// them in; the first image is the listing cover.
func (s *Service) SaveListing(ctx context.Context, listing *catalog.Listing, images []uploader.Image) error {
	ctx, log := logger.WithListingID(ctx, s.logger, listing.ID.String())

	refs := make([]catalog.ImageRef, 0, len(images))
	for _, img := range images {
		key := imageKey(listing.ID, img.Name)
		if err := s.store.Upload(ctx, key, img.Blob, "image/jpeg"); err != nil {
			log.Error("image upload failed",
				zap.String("key", key), zap.Error(err))
			return shared.NewPersistenceError("IMAGE_UPLOAD_FAILED",
				"Uploading "+img.Name+" failed", "Check your connection and try again.")
		}
		tkey := thumbKey(listing.ID, img.Name)
		if err := s.store.Upload(ctx, tkey, img.Thumbnail, "image/jpeg"); err != nil {
			log.Error("thumbnail upload failed",
				zap.String("key", tkey), zap.Error(err))
			return shared.NewPersistenceError("IMAGE_UPLOAD_FAILED",
				"Uploading "+img.Name+" failed", "Check your connection and try again.")
		}
		refs = append(refs, catalog.ImageRef{Key: key, ThumbnailKey: tkey, Name: img.Name})
	}

	if err := listing.SetImages(refs); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, listing); err != nil {
		log.Error("listing save failed", zap.Error(err))
		return shared.ErrPersistenceFailed
	}

	log.Info("listing saved", zap.Int("images", len(refs)))
	return nil
}

// LoadListing fetches one stored listing.
func (s *Service) LoadListing(ctx context.Context, id uuid.UUID) (*catalog.Listing, error) {
	return s.repo.FindByID(ctx, id)
}

// LoadAll fetches every stored listing, newest first.
func (s *Service) LoadAll(ctx context.Context) ([]*catalog.Listing, error) {
	return s.repo.FindAll(ctx)
}

// LoadSessionImages downloads a listing's stored image blobs in display
// order, ready to hydrate an upload session.
func (s *Service) LoadSessionImages(ctx context.Context, listing *catalog.Listing) ([]uploader.Image, error) {
	images := make([]uploader.Image, 0, len(listing.Images))
	for _, ref := range listing.Images {
		blob, err := s.store.Download(ctx, ref.Key)
		if err != nil {
			s.logger.Error("image download failed",
				zap.String("key", ref.Key), zap.Error(err))
			return nil, shared.NewPersistenceError("IMAGE_DOWNLOAD_FAILED",
				"Loading "+ref.Name+" failed", "Please refresh and try again.")
		}
		images = append(images, uploader.Image{Name: ref.Name, Blob: blob})
	}
	return images, nil
}

// SaveVariations replaces a listing's variation rows and persists it.
func (s *Service) SaveVariations(ctx context.Context, listingID uuid.UUID, rows []catalog.VariationRow) error {
	ctx, log := logger.WithListingID(ctx, s.logger, listingID.String())

	listing, err := s.repo.FindByID(ctx, listingID)
	if err != nil {
		return err
	}
	if err := listing.SetVariations(rows); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, listing); err != nil {
		log.Error("variation save failed", zap.Error(err))
		return shared.ErrPersistenceFailed
	}
	log.Info("variations saved", zap.Int("rows", len(rows)))
	return nil
}

// GridSaveFunc binds a listing to a save function the bulk edit grid
// can call.
func (s *Service) GridSaveFunc(listingID uuid.UUID) quickedit.SaveFunc {
	return func(ctx context.Context, changes []quickedit.PendingChange, rows []catalog.VariationRow) error {
		s.logger.Info("saving grid edits",
			zap.String("listing_id", listingID.String()),
			zap.Int("changed_cells", len(changes)))
		return s.SaveVariations(ctx, listingID, rows)
	}
}

// DeleteListing removes a listing and its stored images. Image deletes
// are best effort; a missing blob does not keep the listing alive.
func (s *Service) DeleteListing(ctx context.Context, id uuid.UUID) error {
	ctx, log := logger.WithListingID(ctx, s.logger, id.String())

	listing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	for _, ref := range listing.Images {
		if err := s.store.DeleteObject(ctx, ref.Key); err != nil {
			log.Warn("image delete failed", zap.String("key", ref.Key), zap.Error(err))
		}
		if err := s.store.DeleteObject(ctx, ref.ThumbnailKey); err != nil {
			log.Warn("thumbnail delete failed", zap.String("key", ref.ThumbnailKey), zap.Error(err))
		}
	}
	return s.repo.Delete(ctx, id)
}

// ImageURL generates a time-limited download URL for one stored image.
func (s *Service) ImageURL(ctx context.Context, ref catalog.ImageRef, expiresIn time.Duration) (string, error) {
	url, _, err := s.store.GenerateDownloadURL(ctx, ref.Key, expiresIn)
	if err != nil {
		return "", shared.NewPersistenceError("URL_GENERATION_FAILED",
			"Could not create an image link", "Please try again.")
	}
	return url, nil
}
