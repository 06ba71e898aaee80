package imaging

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// FilenameMaxLength is the maximum length of the cleaned portion of a
// sanitized filename, before the timestamp suffix is appended.
const FilenameMaxLength = 50

// DefaultFilenamePrefix is used when a cleaned filename comes out empty.
const DefaultFilenamePrefix = "product"

// filenameBlacklist matches punctuation and control characters that must
// never reach a storage key.
var filenameBlacklist = regexp.MustCompile("[()\\[\\]{}<>:\"/\\\\|?*@#$%^&!~`+\\x00-\\x1f\\x7f-\\x9f]")

var (
	whitespaceRuns = regexp.MustCompile(`\s+`)
	hyphenRuns     = regexp.MustCompile(`-+`)
)

// SanitizeFilename normalizes an arbitrary user-supplied filename into a
// safe, collision-resistant storage key: lowercased, blacklisted characters
// removed, whitespace collapsed to single hyphens, truncated, and suffixed
// with a millisecond timestamp plus a normalized .jpg extension.
//
// The clock is injected so callers can freeze time in tests; a nil clock
// falls back to time.Now.
func SanitizeFilename(originalName, prefix string, now func() time.Time) string {
	if prefix == "" {
		prefix = DefaultFilenamePrefix
	}
	if now == nil {
		now = time.Now
	}
	stamp := now().UnixMilli()

	if originalName == "" {
		return fmt.Sprintf("%s_%d.jpg", prefix, stamp)
	}

	name := originalName
	if dot := strings.LastIndex(name, "."); dot > 0 {
		name = name[:dot]
	}

	clean := strings.ToLower(name)
	clean = filenameBlacklist.ReplaceAllString(clean, "")
	clean = whitespaceRuns.ReplaceAllString(clean, "-")
	clean = hyphenRuns.ReplaceAllString(clean, "-")
	clean = strings.Trim(clean, "-")
	if len(clean) > FilenameMaxLength {
		clean = clean[:FilenameMaxLength]
	}
	if clean == "" {
		clean = prefix
	}

	return fmt.Sprintf("%s_%d.jpg", clean, stamp)
}
