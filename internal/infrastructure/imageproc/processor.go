package imageproc

import (
	"bytes"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/heic"
	"go.uber.org/zap"
	"golang.org/x/image/webp"

	domain "github.com/erp/storefront/internal/domain/imaging"
	"github.com/erp/storefront/internal/domain/shared"
)

// Tier describes one rendition: the longest allowed edge in pixels and
// the JPEG quality (1-100) it is encoded at.
type Tier struct {
	MaxEdge int
	Quality int
}

// Tiers holds the three rendition tiers produced for every image.
type Tiers struct {
	Thumbnail Tier
	Preview   Tier
	Full      Tier
}

// DefaultTiers matches the storefront display sizes: grid thumbnails,
// in-page previews and the zoomable full view.
func DefaultTiers() Tiers {
	return Tiers{
		Thumbnail: Tier{MaxEdge: 200, Quality: 70},
		Preview:   Tier{MaxEdge: 800, Quality: 80},
		Full:      Tier{MaxEdge: 1200, Quality: 85},
	}
}

// editQuality is used when re-encoding intermediate images during
// crop/rotate editing, before final renditions are regenerated.
const editQuality = 92

// Processor converts source images to JPEG and derives sized renditions.
type Processor struct {
	tiers  Tiers
	logger *zap.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// WithTiers overrides the default rendition tiers.
func WithTiers(t Tiers) Option {
	return func(p *Processor) {
		p.tiers = t
	}
}

// NewProcessor creates a processor with the given options.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		tiers:  DefaultTiers(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ToJPEG normalizes a source file to JPEG bytes. HEIC sources that fail
// to decode are a hard error since browsers cannot display them; WebP
// sources that fail to decode pass through unchanged, as most render
// targets handle WebP natively.
func (p *Processor) ToJPEG(data []byte, kind domain.SourceKind) ([]byte, error) {
	switch kind {
	case domain.SourceHEIC:
		img, err := heic.Decode(bytes.NewReader(data))
		if err != nil {
			p.logger.Warn("heic decode failed", zap.Error(err))
			return nil, shared.NewConversionError("CONVERSION_FAILED",
				"HEIC image could not be converted",
				"Please try uploading a JPEG or PNG image instead.")
		}
		return encodeJPEG(img, editQuality)
	case domain.SourceWebP:
		img, err := webp.Decode(bytes.NewReader(data))
		if err != nil {
			p.logger.Warn("webp decode failed, keeping original bytes", zap.Error(err))
			return data, nil
		}
		return encodeJPEG(flattenOnWhite(img), editQuality)
	default:
		return data, nil
	}
}

// GenerateRenditions decodes normalized JPEG/PNG bytes once and derives
// all three renditions. Either every rendition succeeds or none is
// returned; a partial set is never produced.
func (p *Processor) GenerateRenditions(data []byte) (domain.RenditionSet, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		p.logger.Warn("rendition source decode failed", zap.Error(err))
		return domain.RenditionSet{}, shared.NewConversionError("CONVERSION_FAILED",
			"Image could not be processed",
			"Please try uploading a JPEG or PNG image instead.")
	}

	thumb, err := renderTier(img, p.tiers.Thumbnail)
	if err != nil {
		return domain.RenditionSet{}, err
	}
	preview, err := renderTier(img, p.tiers.Preview)
	if err != nil {
		return domain.RenditionSet{}, err
	}
	full, err := renderTier(img, p.tiers.Full)
	if err != nil {
		return domain.RenditionSet{}, err
	}

	return domain.RenditionSet{Thumbnail: thumb, Preview: preview, Full: full}, nil
}

// Rotate turns a JPEG image by the given number of quarter turns.
// Positive turns rotate clockwise, negative counter-clockwise.
func (p *Processor) Rotate(data []byte, quarterTurns int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, shared.NewConversionError("CONVERSION_FAILED",
			"Image could not be rotated", "Please try again.")
	}

	turns := ((quarterTurns % 4) + 4) % 4
	switch turns {
	case 1:
		// imaging rotates counter-clockwise, so clockwise is 270.
		img = imaging.Rotate270(img)
	case 2:
		img = imaging.Rotate180(img)
	case 3:
		img = imaging.Rotate90(img)
	}
	return encodeJPEG(img, editQuality)
}

// Crop cuts a rectangle out of a JPEG image. The rectangle must lie
// fully inside the image bounds and must not be empty.
func (p *Processor) Crop(data []byte, rect image.Rectangle) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, shared.NewConversionError("CONVERSION_FAILED",
			"Image could not be cropped", "Please try again.")
	}
	if rect.Empty() || !rect.In(img.Bounds()) {
		return nil, shared.NewValidationError("INVALID_CROP",
			"Crop selection is outside the image", "Please adjust the selection and try again.")
	}
	return encodeJPEG(imaging.Crop(img, rect), editQuality)
}

// renderTier scales an image down to fit within the tier's max edge and
// encodes it. Images already smaller than the tier are never upscaled.
func renderTier(img image.Image, tier Tier) ([]byte, error) {
	b := img.Bounds()
	if b.Dx() > tier.MaxEdge || b.Dy() > tier.MaxEdge {
		img = imaging.Fit(img, tier.MaxEdge, tier.MaxEdge, imaging.Lanczos)
	}
	return encodeJPEG(img, tier.Quality)
}

// flattenOnWhite composites an image onto a white background so that
// transparent regions come out white instead of black after JPEG
// encoding drops the alpha channel.
func flattenOnWhite(img image.Image) image.Image {
	b := img.Bounds()
	flat := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(flat, img, image.Pt(0, 0), 1.0)
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, shared.NewConversionError("CONVERSION_FAILED",
			"Image encoding failed", "Please try again.")
	}
	return buf.Bytes(), nil
}
