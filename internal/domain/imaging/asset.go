package imaging

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/erp/storefront/internal/domain/shared"
	"github.com/google/uuid"
)

// MaxFileSize is the maximum accepted source file size (10MB).
const MaxFileSize = 10 * 1024 * 1024

// acceptedTypes lists the MIME subtypes accepted at intake.
var acceptedTypes = []string{"jpeg", "jpg", "png", "webp", "heic", "heif"}

// SourceKind identifies the decode path a source file needs.
type SourceKind string

const (
	SourceHEIC  SourceKind = "heic"
	SourceWebP  SourceKind = "webp"
	SourceOther SourceKind = "other"
)

// File is a user-supplied source file entering the pipeline.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// DetectSourceKind classifies a file by declared MIME type or extension.
func DetectSourceKind(contentType, filename string) SourceKind {
	ct := strings.ToLower(contentType)
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case strings.Contains(ct, "heic"), strings.Contains(ct, "heif"),
		ext == ".heic", ext == ".heif":
		return SourceHEIC
	case strings.Contains(ct, "webp"), ext == ".webp":
		return SourceWebP
	default:
		return SourceOther
	}
}

// ValidateFile checks a source file's size and declared type before any
// decoding work happens. maxSize <= 0 falls back to MaxFileSize.
func ValidateFile(f File, maxSize int64) error {
	if maxSize <= 0 {
		maxSize = MaxFileSize
	}
	if len(f.Data) == 0 {
		return shared.NewValidationError("EMPTY_FILE",
			f.Name+" is empty", "Please choose a different file.")
	}
	if int64(len(f.Data)) > maxSize {
		return shared.NewValidationError("FILE_TOO_LARGE",
			f.Name+" is too large", "Please use an image smaller than 10MB.")
	}

	ct := strings.ToLower(f.ContentType)
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(f.Name)), ".")
	for _, t := range acceptedTypes {
		if strings.Contains(ct, t) || ext == t {
			return nil
		}
	}
	return shared.NewValidationError("UNSUPPORTED_FORMAT",
		f.Name+" is not a supported image format",
		"Please use JPEG, PNG, WebP, or HEIC images.")
}

// RenditionSet holds the three JPEG renditions derived from one source.
// A set is complete or it does not exist; partial sets never leave the
// generator.
type RenditionSet struct {
	Thumbnail []byte
	Preview   []byte
	Full      []byte
}

// Complete reports whether all three renditions are present.
func (r RenditionSet) Complete() bool {
	return len(r.Thumbnail) > 0 && len(r.Preview) > 0 && len(r.Full) > 0
}

// Asset is one user-supplied photo with its derived renditions and
// metadata. Position within the owning session is the only ranking; the
// asset itself carries no order.
type Asset struct {
	ID               string
	OriginalName     string
	ContentType      string
	SanitizedName    string
	Renditions       RenditionSet
	PreviewDataURI   string
	ThumbnailDataURI string
	SizeBytes        int64
	CreatedAt        time.Time
	Edited           bool
}

// NewAsset creates an asset from a validated source file and a complete
// rendition set. The asset only exists once every rendition succeeded.
func NewAsset(f File, sanitizedName string, r RenditionSet, now func() time.Time) (*Asset, error) {
	if !r.Complete() {
		return nil, shared.NewConversionError("INCOMPLETE_RENDITIONS",
			"Image processing did not complete", "Please try uploading the image again.")
	}
	if now == nil {
		now = time.Now
	}
	return &Asset{
		ID:               uuid.NewString(),
		OriginalName:     f.Name,
		ContentType:      f.ContentType,
		SanitizedName:    sanitizedName,
		Renditions:       r,
		PreviewDataURI:   EncodeDataURI(r.Preview),
		ThumbnailDataURI: EncodeDataURI(r.Thumbnail),
		SizeBytes:        int64(len(r.Full)),
		CreatedAt:        now(),
	}, nil
}

// ApplyEdit replaces the asset's renditions with a freshly generated set
// after a crop/rotate commit. All three renditions change together so the
// set stays internally consistent.
func (a *Asset) ApplyEdit(r RenditionSet) error {
	if !r.Complete() {
		return shared.NewConversionError("INCOMPLETE_RENDITIONS",
			"Edited image processing did not complete", "Please try applying the edit again.")
	}
	a.Renditions = r
	a.PreviewDataURI = EncodeDataURI(r.Preview)
	a.ThumbnailDataURI = EncodeDataURI(r.Thumbnail)
	a.SizeBytes = int64(len(r.Full))
	a.Edited = true
	return nil
}
