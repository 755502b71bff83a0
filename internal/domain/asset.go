package domain

import (
	"path"
	"strings"
)

// Category identifies one of the fixed upload categories. Each category is
// bound to its own directory under the site root and its own file-extension
// allow-list.
type Category string

// Upload categories.
const (
	CategoryBrandImage   Category = "brand-image"
	CategoryProductImage Category = "product-image"
	CategoryDocument     Category = "document"
	CategoryPoster       Category = "poster"
)

// CategorySpec describes where a category stores its files and which
// extensions it accepts.
type CategorySpec struct {
	// Dir is the storage directory relative to the site root.
	Dir string

	// URLPrefix is the exact public URL prefix for assets of this
	// category. Delete requests must present URLs under this prefix.
	URLPrefix string

	// Extensions is the lowercase extension allow-list (with leading dot).
	Extensions []string

	// TimestampNames selects timestamp-based destination names instead of
	// keeping the original filename.
	TimestampNames bool
}

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg"}

var categorySpecs = map[Category]CategorySpec{
	CategoryBrandImage: {
		Dir:            "images/brands",
		URLPrefix:      "/images/brands/",
		Extensions:     imageExtensions,
		TimestampNames: true,
	},
	CategoryProductImage: {
		Dir:            "images/products",
		URLPrefix:      "/images/products/",
		Extensions:     imageExtensions,
		TimestampNames: true,
	},
	CategoryDocument: {
		Dir:        "documents",
		URLPrefix:  "/documents/",
		Extensions: []string{".pdf"},
	},
	CategoryPoster: {
		Dir:        "posters",
		URLPrefix:  "/posters/",
		Extensions: []string{".pdf"},
	},
}

// Spec returns the storage specification for the category.
// The second return value is false for unknown categories.
func (c Category) Spec() (CategorySpec, bool) {
	spec, ok := categorySpecs[c]
	return spec, ok
}

// AllowsExtension reports whether the filename's extension is in the
// category's allow-list. The comparison is case-insensitive.
func (s CategorySpec) AllowsExtension(filename string) bool {
	ext := strings.ToLower(path.Ext(filename))
	for _, allowed := range s.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// UploadedAsset describes a stored file and the public URL it is served
// under. Catalog entries reference assets by URL only; deleting an asset
// does not cascade into the catalog.
type UploadedAsset struct {
	Category Category
	Filename string
	URL      string
}
