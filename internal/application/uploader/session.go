package uploader

import (
	"context"
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/erp/storefront/internal/domain/imaging"
	"github.com/erp/storefront/internal/domain/shared"
)

// DefaultCapacity is the number of images one session holds at most.
const DefaultCapacity = 5

// Processor converts and resizes images for the session. Implemented by
// imageproc.Processor.
type Processor interface {
	ToJPEG(data []byte, kind imaging.SourceKind) ([]byte, error)
	GenerateRenditions(data []byte) (imaging.RenditionSet, error)
	Rotate(data []byte, quarterTurns int) ([]byte, error)
	Crop(data []byte, rect image.Rectangle) ([]byte, error)
}

// Image is the read-only projection of one session image handed to
// callers and change listeners.
type Image struct {
	ID           string
	Name         string
	OriginalName string
	Blob         []byte
	DataURI      string
	Thumbnail    []byte
	ThumbnailURI string
	Edited       bool
}

// ChangeFunc receives the full image list after every mutation.
type ChangeFunc func(images []Image)

// ErrorFunc receives per-file and batch errors during intake.
type ErrorFunc func(err error)

// Session manages the images attached to one listing draft: intake with
// validation and conversion, ordering, removal and restoration. It is
// not safe for concurrent use; callers drive it from a single goroutine.
type Session struct {
	processor   Processor
	assets      []*imaging.Asset
	capacity    int
	maxFileSize int64
	namePrefix  string
	clock       func() time.Time
	logger      *zap.Logger
	onChange    ChangeFunc
	onError     ErrorFunc
	processing  bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithCapacity overrides the maximum number of images.
func WithCapacity(n int) SessionOption {
	return func(s *Session) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithMaxFileSize overrides the per-file size limit.
func WithMaxFileSize(n int64) SessionOption {
	return func(s *Session) {
		if n > 0 {
			s.maxFileSize = n
		}
	}
}

// WithNamePrefix sets the fallback prefix for sanitized filenames.
func WithNamePrefix(prefix string) SessionOption {
	return func(s *Session) {
		s.namePrefix = prefix
	}
}

// WithSessionLogger sets the logger.
func WithSessionLogger(logger *zap.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithClock injects the clock used for filename timestamps.
func WithClock(clock func() time.Time) SessionOption {
	return func(s *Session) {
		s.clock = clock
	}
}

// OnImagesChange registers the listener notified after every mutation.
func OnImagesChange(fn ChangeFunc) SessionOption {
	return func(s *Session) {
		s.onChange = fn
	}
}

// OnError registers the listener notified of intake errors.
func OnError(fn ErrorFunc) SessionOption {
	return func(s *Session) {
		s.onError = fn
	}
}

// NewSession creates an upload session backed by the given processor.
func NewSession(processor Processor, opts ...SessionOption) *Session {
	s := &Session{
		processor:   processor,
		capacity:    DefaultCapacity,
		maxFileSize: imaging.MaxFileSize,
		namePrefix:  imaging.DefaultFilenamePrefix,
		clock:       time.Now,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Intake validates, converts and adds a batch of files. A batch larger
// than the remaining capacity is clamped: the first Remaining() files
// are processed and the overflow is reported through OnError. Within
// the accepted prefix each file fails independently, reported through
// OnError, and the rest continue. Returns the assets that were added.
func (s *Session) Intake(ctx context.Context, files []imaging.File) ([]*imaging.Asset, error) {
	if s.processing {
		return nil, shared.NewValidationError("INTAKE_IN_PROGRESS",
			"An upload is already being processed", "Please wait for it to finish.")
	}
	if len(files) == 0 {
		return nil, nil
	}
	if remaining := s.Remaining(); len(files) > remaining {
		s.logger.Warn("intake clamped to remaining capacity",
			zap.Int("accepted", remaining),
			zap.Int("rejected", len(files)-remaining))
		s.emitError(shared.ErrSessionFull)
		files = files[:remaining]
	}

	s.processing = true
	defer func() { s.processing = false }()

	var added []*imaging.Asset
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			break
		}
		asset, err := s.processFile(f)
		if err != nil {
			s.logger.Warn("file rejected at intake",
				zap.String("file", f.Name), zap.Error(err))
			s.emitError(err)
			continue
		}
		s.assets = append(s.assets, asset)
		added = append(added, asset)
	}

	if len(added) > 0 {
		s.emitChange()
	}
	return added, nil
}

func (s *Session) processFile(f imaging.File) (*imaging.Asset, error) {
	if err := imaging.ValidateFile(f, s.maxFileSize); err != nil {
		return nil, err
	}

	kind := imaging.DetectSourceKind(f.ContentType, f.Name)
	normalized, err := s.processor.ToJPEG(f.Data, kind)
	if err != nil {
		return nil, err
	}

	renditions, err := s.processor.GenerateRenditions(normalized)
	if err != nil {
		return nil, err
	}

	name := imaging.SanitizeFilename(f.Name, s.namePrefix, s.clock)
	return imaging.NewAsset(f, name, renditions, s.clock)
}

// Reorder rearranges the session to match the given ID order. The IDs
// must be an exact permutation of the current images; anything else is
// rejected without changing the session.
func (s *Session) Reorder(ids []string) error {
	if len(ids) != len(s.assets) {
		return shared.NewValidationError("INVALID_ORDER",
			"Image order does not match the session", "Please refresh and try again.")
	}
	byID := make(map[string]*imaging.Asset, len(s.assets))
	for _, a := range s.assets {
		byID[a.ID] = a
	}
	next := make([]*imaging.Asset, 0, len(ids))
	for _, id := range ids {
		a, ok := byID[id]
		if !ok {
			return shared.NewValidationError("INVALID_ORDER",
				"Image order does not match the session", "Please refresh and try again.")
		}
		next = append(next, a)
		delete(byID, id)
	}
	s.assets = next
	s.emitChange()
	return nil
}

// Remove deletes one image by ID.
func (s *Session) Remove(id string) error {
	for i, a := range s.assets {
		if a.ID == id {
			s.assets = append(s.assets[:i], s.assets[i+1:]...)
			s.emitChange()
			return nil
		}
	}
	return shared.ErrNotFound
}

// Hydrate replaces the session contents with previously saved images,
// regenerating renditions so restored images behave exactly like fresh
// uploads. Items that fail to restore are skipped and reported.
func (s *Session) Hydrate(items []Image) error {
	if len(items) > s.capacity {
		return shared.ErrSessionFull
	}

	next := make([]*imaging.Asset, 0, len(items))
	for _, item := range items {
		data := item.Blob
		if len(data) == 0 && item.DataURI != "" {
			decoded, err := imaging.DecodeDataURI(item.DataURI)
			if err != nil {
				s.emitError(err)
				continue
			}
			data = decoded
		}
		renditions, err := s.processor.GenerateRenditions(data)
		if err != nil {
			s.logger.Warn("stored image could not be restored",
				zap.String("name", item.Name), zap.Error(err))
			s.emitError(err)
			continue
		}
		f := imaging.File{Name: item.Name, ContentType: "image/jpeg", Data: data}
		name := item.Name
		if name == "" {
			name = imaging.SanitizeFilename("", s.namePrefix, s.clock)
		}
		asset, err := imaging.NewAsset(f, name, renditions, s.clock)
		if err != nil {
			s.emitError(err)
			continue
		}
		next = append(next, asset)
	}

	s.assets = next
	s.emitChange()
	return nil
}

// Clear removes every image from the session.
func (s *Session) Clear() {
	s.assets = nil
	s.emitChange()
}

// GetAll returns a snapshot of the session's images in display order.
func (s *Session) GetAll() []Image {
	out := make([]Image, len(s.assets))
	for i, a := range s.assets {
		out[i] = projectAsset(a)
	}
	return out
}

// Count returns the number of images in the session.
func (s *Session) Count() int { return len(s.assets) }

// HasImages reports whether the session holds any image.
func (s *Session) HasImages() bool { return len(s.assets) > 0 }

// Remaining returns how many more images the session accepts.
func (s *Session) Remaining() int { return s.capacity - len(s.assets) }

// Processing reports whether an intake batch is currently running.
func (s *Session) Processing() bool { return s.processing }

func (s *Session) asset(index int) (*imaging.Asset, error) {
	if index < 0 || index >= len(s.assets) {
		return nil, shared.ErrNotFound
	}
	return s.assets[index], nil
}

func projectAsset(a *imaging.Asset) Image {
	blob := make([]byte, len(a.Renditions.Full))
	copy(blob, a.Renditions.Full)
	thumb := make([]byte, len(a.Renditions.Thumbnail))
	copy(thumb, a.Renditions.Thumbnail)
	return Image{
		ID:           a.ID,
		Name:         a.SanitizedName,
		OriginalName: a.OriginalName,
		Blob:         blob,
		DataURI:      a.PreviewDataURI,
		Thumbnail:    thumb,
		ThumbnailURI: a.ThumbnailDataURI,
		Edited:       a.Edited,
	}
}

// emitChange notifies the change listener. A panicking listener must not
// take the session down with it.
func (s *Session) emitChange() {
	if s.onChange == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("images change listener panicked", zap.Any("panic", r))
		}
	}()
	s.onChange(s.GetAll())
}

func (s *Session) emitError(err error) {
	if s.onError == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("error listener panicked", zap.Any("panic", r))
		}
	}()
	s.onError(err)
}
