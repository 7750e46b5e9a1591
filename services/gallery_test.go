package services

import (
	"context"
	"errors"
	"testing"

	"hostelhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGallery(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	img, err := f.svc.AddGalleryImage(ctx, f.admin, models.GalleryImageRequest{
		PublicURL: "gallery/front.jpg",
		SecureURL: "https://cdn.example.com/gallery/front.jpg",
	})
	require.NoError(t, err)

	_, err = f.svc.AddGalleryImage(ctx, f.admin, models.GalleryImageRequest{PublicURL: "x", SecureURL: "not a url"})
	assert.True(t, IsKind(err, KindValidation))

	images, err := f.svc.ListGallery(ctx)
	require.NoError(t, err)
	require.Len(t, images, 1)

	f.store.err = errors.New("bucket unavailable")
	deleted, err := f.svc.DeleteGalleryImage(ctx, f.admin, img.ID)
	require.NoError(t, err)
	assert.Equal(t, img.ID, deleted.ID)
	assert.Equal(t, []string{"gallery/front.jpg"}, f.store.deleted)

	images, err = f.svc.ListGallery(ctx)
	require.NoError(t, err)
	assert.Empty(t, images)

	_, err = f.svc.DeleteGalleryImage(ctx, f.admin, img.ID)
	assert.True(t, IsKind(err, KindNotFound))
	assert.Equal(t, "Image not found", Message(err))

	student := f.signUp(t, "Asha")
	_, err = f.svc.AddGalleryImage(ctx, student, models.GalleryImageRequest{PublicURL: "a", SecureURL: "https://a.example.com"})
	assert.True(t, IsKind(err, KindUnauthorized))
}
