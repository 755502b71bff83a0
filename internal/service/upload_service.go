package service

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bimax-pro/bimax-admin/internal/domain"
)

// UploadService stores, lists and deletes uploaded assets. Each category
// maps to its own directory under the site root and its own extension
// allow-list (see domain.Category).
type UploadService struct {
	siteRoot string
	now      func() time.Time
	logger   zerolog.Logger
}

// NewUploadService creates a new UploadService rooted at siteRoot.
func NewUploadService(siteRoot string, logger zerolog.Logger) *UploadService {
	return &UploadService{
		siteRoot: siteRoot,
		now:      time.Now,
		logger:   logger.With().Str("service", "upload").Logger(),
	}
}

// UploadInput contains one extracted file part and its target category.
type UploadInput struct {
	Category domain.Category
	Filename string
	Content  []byte
}

// UploadOutput contains the stored asset.
type UploadOutput struct {
	Asset domain.UploadedAsset
}

// Upload validates the file against the category's allow-list, picks a
// collision-safe destination name and writes the bytes. The write is the
// last step, so a rejected upload leaves no partial file behind.
func (s *UploadService) Upload(ctx context.Context, input UploadInput) (*UploadOutput, error) {
	spec, ok := input.Category.Spec()
	if !ok {
		return nil, domain.ErrUnknownCategory
	}

	if input.Filename == "" {
		return nil, domain.ErrNoFileData
	}
	if !spec.AllowsExtension(input.Filename) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidFileType, path.Ext(input.Filename))
	}

	dir := filepath.Join(s.siteRoot, filepath.FromSlash(spec.Dir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create category directory: %w", err)
	}

	name := s.destinationName(spec, dir, input.Filename)
	if err := os.WriteFile(filepath.Join(dir, name), input.Content, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	asset := domain.UploadedAsset{
		Category: input.Category,
		Filename: name,
		URL:      spec.URLPrefix + name,
	}

	s.logger.Info().
		Str("category", string(input.Category)).
		Str("file", name).
		Int("size", len(input.Content)).
		Msg("asset stored")

	return &UploadOutput{Asset: asset}, nil
}

// destinationName picks the stored filename. Image categories get a fresh
// timestamp-based name; document categories keep the original basename and
// disambiguate collisions with a numeric suffix.
func (s *UploadService) destinationName(spec domain.CategorySpec, dir, original string) string {
	ext := strings.ToLower(path.Ext(original))
	if spec.TimestampNames {
		return strconv.FormatInt(s.now().UnixMilli(), 10) + ext
	}

	base := strings.TrimSuffix(filepath.Base(original), path.Ext(original))
	return CollisionSafeName(base, ext, func(candidate string) bool {
		_, err := os.Stat(filepath.Join(dir, candidate))
		return err == nil
	})
}

// CollisionSafeName returns "base+ext", or "base_<n>+ext" for the first
// n >= 1 whose candidate the exists probe rejects. The probe is injected
// so the policy stays a pure, testable function.
func CollisionSafeName(base, ext string, exists func(string) bool) string {
	candidate := base + ext
	for n := 1; exists(candidate); n++ {
		candidate = fmt.Sprintf("%s_%d%s", base, n, ext)
	}
	return candidate
}

// List returns the public URLs of every asset in the category, sorted by
// filename. A category whose directory does not exist yet lists as empty.
func (s *UploadService) List(ctx context.Context, category domain.Category) ([]string, error) {
	spec, ok := category.Spec()
	if !ok {
		return nil, domain.ErrUnknownCategory
	}

	entries, err := os.ReadDir(filepath.Join(s.siteRoot, filepath.FromSlash(spec.Dir)))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read category directory: %w", err)
	}

	urls := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		urls = append(urls, spec.URLPrefix+entry.Name())
	}
	sort.Strings(urls)
	return urls, nil
}

// DeleteInput identifies the asset to remove by its public URL.
type DeleteInput struct {
	Category domain.Category
	URL      string
}

// Delete removes an asset. The URL must begin with the category's exact
// public prefix, and the filesystem path is derived from the URL's
// basename only, so a crafted URL can never escape the category directory.
func (s *UploadService) Delete(ctx context.Context, input DeleteInput) error {
	spec, ok := input.Category.Spec()
	if !ok {
		return domain.ErrUnknownCategory
	}

	target, err := url.Parse(input.URL)
	if err != nil || !strings.HasPrefix(target.Path, spec.URLPrefix) {
		return domain.ErrInvalidAssetPath
	}

	name := path.Base(target.Path)
	if name == "." || name == ".." || name == "/" {
		return domain.ErrInvalidAssetPath
	}

	filePath := filepath.Join(s.siteRoot, filepath.FromSlash(spec.Dir), name)
	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return domain.ErrAssetNotFound
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	s.logger.Info().
		Str("category", string(input.Category)).
		Str("file", name).
		Msg("asset deleted")

	return nil
}
