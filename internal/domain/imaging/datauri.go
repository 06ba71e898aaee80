package imaging

import (
	"encoding/base64"
	"strings"

	"github.com/erp/storefront/internal/domain/shared"
)

// EncodeDataURI encodes JPEG bytes as a data URI for display without a
// network round-trip.
func EncodeDataURI(data []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI decodes a base64 data URI back into raw bytes. Used when
// hydrating a session from externally supplied image descriptors.
func DecodeDataURI(uri string) ([]byte, error) {
	idx := strings.Index(uri, ",")
	if !strings.HasPrefix(uri, "data:") || idx < 0 {
		return nil, shared.NewValidationError("INVALID_DATA_URI",
			"Image data is not a valid data URI", "Please re-upload the image.")
	}
	data, err := base64.StdEncoding.DecodeString(uri[idx+1:])
	if err != nil {
		return nil, shared.NewValidationError("INVALID_DATA_URI",
			"Image data could not be decoded", "Please re-upload the image.")
	}
	return data, nil
}
