package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testRef = AssetRef{AccountID: "acc-1", ProjectID: "proj-1", AssetID: "asset-1"}

func TestObjectKeyLayout(t *testing.T) {
	tests := []struct {
		name    string
		variant Variant
		file    string
		want    string
	}{
		{"original", VariantOriginal, "clip.mp4", "accounts/acc-1/projects/proj-1/assets/asset-1/original/clip.mp4"},
		{"thumbnail", ThumbnailVariant("medium"), GeneratedThumbnailName, "accounts/acc-1/projects/proj-1/assets/asset-1/thumbnails/medium/thumbnail.jpg"},
		{"custom thumbnail", VariantCustomThumbnail, "cover.png", "accounts/acc-1/projects/proj-1/assets/asset-1/custom-thumbnail/cover.png"},
		{"slashes in name", VariantOriginal, "../etc/passwd", "accounts/acc-1/projects/proj-1/assets/asset-1/original/.._etc_passwd"},
		{"control characters", VariantOriginal, "a\x00b\nc.txt", "accounts/acc-1/projects/proj-1/assets/asset-1/original/abc.txt"},
		{"empty name", VariantOriginal, "   ", "accounts/acc-1/projects/proj-1/assets/asset-1/original/file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ObjectKey(testRef, tt.variant, tt.file))
		})
	}
}

func TestObjectKeyDeterministic(t *testing.T) {
	a := ObjectKey(testRef, VariantOriginal, "photo.jpg")
	b := ObjectKey(testRef, VariantOriginal, "photo.jpg")
	assert.Equal(t, a, b)
}

func TestObjectKeyDistinctAcrossAssets(t *testing.T) {
	other := testRef
	other.AssetID = "asset-2"

	variants := []Variant{VariantOriginal, ThumbnailVariant("small"), VariantCustomThumbnail}
	for _, v := range variants {
		assert.NotEqual(t, ObjectKey(testRef, v, "x.jpg"), ObjectKey(other, v, "x.jpg"), "variant %s", v)
	}
	assert.NotEqual(t,
		ObjectKey(testRef, ThumbnailVariant("small"), GeneratedThumbnailName),
		ObjectKey(testRef, ThumbnailVariant("large"), GeneratedThumbnailName))
}

func TestObjectKeyPanicsOnMalformedInput(t *testing.T) {
	tests := []struct {
		name    string
		ref     AssetRef
		variant Variant
	}{
		{"empty asset", AssetRef{AccountID: "a", ProjectID: "p"}, VariantOriginal},
		{"slash in asset", AssetRef{AccountID: "a", ProjectID: "p", AssetID: "x/y"}, VariantOriginal},
		{"dot dot project", AssetRef{AccountID: "a", ProjectID: "..", AssetID: "x"}, VariantOriginal},
		{"unknown variant", testRef, Variant("poster")},
		{"thumbnail without size", testRef, ThumbnailVariant("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, func() { ObjectKey(tt.ref, tt.variant, "f.jpg") })
		})
	}
}
