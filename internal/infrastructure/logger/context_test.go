package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestWithContextFromContext(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		logger := zap.NewNop()
		ctx := WithContext(context.Background(), logger)
		assert.Same(t, logger, FromContext(ctx))
	})

	t.Run("missing logger yields no-op", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
	})
}

func TestContextIDs(t *testing.T) {
	logger := zap.NewNop()

	ctx, enriched := WithListingID(context.Background(), logger, "listing-7")
	assert.NotNil(t, enriched)
	assert.Equal(t, "listing-7", GetListingID(ctx))
	assert.Same(t, enriched, FromContext(ctx))

	assert.Empty(t, GetListingID(context.Background()))
}
