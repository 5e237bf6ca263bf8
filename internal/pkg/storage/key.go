package storage

import (
	"fmt"
	"strings"
	"unicode"
)

// Variant 对象的变体标签: original / thumbnail:<size> / custom-thumbnail
type Variant string

const (
	VariantOriginal        Variant = "original"
	VariantCustomThumbnail Variant = "custom-thumbnail"

	thumbnailPrefix = "thumbnail:"

	// GeneratedThumbnailName 处理流水线生成的缩略图统一使用的文件名
	GeneratedThumbnailName = "thumbnail.jpg"
)

// ThumbnailVariant 返回指定尺寸的缩略图变体, 例如 thumbnail:medium
func ThumbnailVariant(size string) Variant {
	return Variant(thumbnailPrefix + size)
}

// AssetRef 定位一个资源所需的三元组
type AssetRef struct {
	AccountID string
	ProjectID string
	AssetID   string
}

// ObjectKey 根据资源、变体和展示名推导出确定的对象存储 key:
//
//	accounts/<account>/projects/<project>/assets/<asset>/original/<name>
//	accounts/<account>/projects/<project>/assets/<asset>/thumbnails/<size>/<name>
//	accounts/<account>/projects/<project>/assets/<asset>/custom-thumbnail/<name>
//
// assetID 独占一个路径段, 所以不同资源的同一变体永远不会得到相同的 key.
// 输入不合法属于调用方的编程错误, 直接 panic.
func ObjectKey(ref AssetRef, variant Variant, name string) string {
	mustSegment("account id", ref.AccountID)
	mustSegment("project id", ref.ProjectID)
	mustSegment("asset id", ref.AssetID)

	var segment string
	switch {
	case variant == VariantOriginal:
		segment = "original"
	case variant == VariantCustomThumbnail:
		segment = "custom-thumbnail"
	case strings.HasPrefix(string(variant), thumbnailPrefix):
		size := strings.TrimPrefix(string(variant), thumbnailPrefix)
		mustSegment("thumbnail size", size)
		segment = "thumbnails/" + size
	default:
		panic(fmt.Sprintf("storage key: unknown variant %q", variant))
	}

	return fmt.Sprintf("accounts/%s/projects/%s/assets/%s/%s/%s",
		ref.AccountID, ref.ProjectID, ref.AssetID, segment, sanitizeName(name))
}

func mustSegment(what, v string) {
	if v == "" || v == "." || v == ".." || strings.ContainsAny(v, `/\`) {
		panic(fmt.Sprintf("storage key: invalid %s %q", what, v))
	}
}

// sanitizeName 把展示名变成单个安全的路径段
func sanitizeName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\':
			return '_'
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	if cleaned == "" || cleaned == "." || cleaned == ".." {
		return "file"
	}
	return cleaned
}
