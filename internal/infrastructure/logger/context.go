package logger

import (
	"context"

	"go.uber.org/zap"
)

// contextKey is a type for context keys used by the logger package
type contextKey string

const (
	// LoggerKey is the context key for the logger
	LoggerKey contextKey = "logger"
	// ListingIDKey is the context key for the listing being worked on
	ListingIDKey contextKey = "listing_id"
)

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext retrieves the logger from context, returns a no-op logger
// if not found
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithListingID adds listing ID to context and returns enriched logger
func WithListingID(ctx context.Context, logger *zap.Logger, listingID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, ListingIDKey, listingID)
	enriched := logger.With(zap.String("listing_id", listingID))
	return WithContext(ctx, enriched), enriched
}

// GetListingID retrieves listing ID from context
func GetListingID(ctx context.Context) string {
	if listingID, ok := ctx.Value(ListingIDKey).(string); ok {
		return listingID
	}
	return ""
}
