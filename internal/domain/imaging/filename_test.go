package imaging

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func frozenClock() func() time.Time {
	at := time.UnixMilli(1700000000000)
	return func() time.Time { return at }
}

func TestSanitizeFilename(t *testing.T) {
	clock := frozenClock()

	tests := []struct {
		name     string
		original string
		want     string
	}{
		{"simple", "Photo.png", "photo_1700000000000.jpg"},
		{"spaces collapse to hyphens", "My  Summer Photo.jpeg", "my-summer-photo_1700000000000.jpg"},
		{"special characters stripped", `photo (1) [edited].png`, "photo-1-edited_1700000000000.jpg"},
		{"hyphen runs collapse", "a---b.png", "a-b_1700000000000.jpg"},
		{"leading trailing hyphens trimmed", "--edge--.png", "edge_1700000000000.jpg"},
		{"extension normalized", "scan.HEIC", "scan_1700000000000.jpg"},
		{"all stripped falls back to prefix", "@#$%.png", "product_1700000000000.jpg"},
		{"empty name falls back to prefix", "", "product_1700000000000.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.original, "", clock))
		})
	}

	t.Run("long names truncated", func(t *testing.T) {
		long := strings.Repeat("a", 80) + ".png"
		got := SanitizeFilename(long, "", clock)
		base := strings.TrimSuffix(got, "_1700000000000.jpg")
		assert.Len(t, base, FilenameMaxLength)
	})

	t.Run("control characters stripped", func(t *testing.T) {
		got := SanitizeFilename("bad\x01name\x7f.png", "", clock)
		assert.Equal(t, "badname_1700000000000.jpg", got)
	})

	t.Run("custom prefix", func(t *testing.T) {
		got := SanitizeFilename("", "item", clock)
		assert.Equal(t, "item_1700000000000.jpg", got)
	})

	t.Run("nil clock uses wall time", func(t *testing.T) {
		got := SanitizeFilename("x.png", "", nil)
		assert.True(t, strings.HasPrefix(got, "x_"))
		assert.True(t, strings.HasSuffix(got, ".jpg"))
	})
}
