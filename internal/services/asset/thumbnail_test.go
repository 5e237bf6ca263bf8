package asset

import (
	"context"
	"errors"
	"testing"

	"github.com/3Eeeecho/go-mediavault/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThumbnailResolver(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	file := &models.File{ID: "img-1", ProjectID: "p1", MimeType: "image/jpeg", Status: models.StatusReady}
	generated := GeneratedThumbnailKey("acc-1", file, "medium")
	assert.Equal(t, "accounts/acc-1/projects/p1/assets/img-1/thumbnails/medium/thumbnail.jpg", generated)

	// 还没有生成缩略图
	assert.Nil(t, env.resolver.Resolve(ctx, "acc-1", file))

	env.gateway.put(generated, 10)
	url := env.resolver.Resolve(ctx, "acc-1", file)
	require.NotNil(t, url)
	assert.Equal(t, "https://download.test/"+generated, *url)

	processing := *file
	processing.Status = models.StatusProcessing
	assert.Nil(t, env.resolver.Resolve(ctx, "acc-1", &processing))

	doc := *file
	doc.MimeType = "application/pdf"
	assert.Nil(t, env.resolver.Resolve(ctx, "acc-1", &doc))
}

func TestThumbnailResolverPrefersCustomKey(t *testing.T) {
	env := newTestEnv(t)
	custom := "accounts/acc-1/projects/p1/assets/vid-1/custom-thumbnail/cover.png"
	env.gateway.put(custom, 1)

	file := &models.File{ID: "vid-1", ProjectID: "p1", MimeType: "video/mp4", Status: models.StatusReady, CustomThumbnailKey: &custom}
	url := env.resolver.Resolve(context.Background(), "acc-1", file)
	require.NotNil(t, url)
	assert.Equal(t, "https://download.test/"+custom, *url)
}

func TestThumbnailResolverSwallowsGatewayErrors(t *testing.T) {
	env := newTestEnv(t)
	env.gateway.signErr = errors.New("connection reset")

	file := &models.File{ID: "img-1", ProjectID: "p1", MimeType: "image/png", Status: models.StatusReady}
	assert.Nil(t, env.resolver.Resolve(context.Background(), "acc-1", file))
}

func TestThumbnailResolverCachesURL(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	file := &models.File{ID: "img-1", ProjectID: "p1", MimeType: "image/png", Status: models.StatusReady}
	env.gateway.put(GeneratedThumbnailKey("acc-1", file, "medium"), 1)

	first := env.resolver.Resolve(ctx, "acc-1", file)
	second := env.resolver.Resolve(ctx, "acc-1", file)
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, *first, *second)
	assert.Equal(t, 1, env.gateway.signCalls)
}
