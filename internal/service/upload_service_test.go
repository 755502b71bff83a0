package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/bimax-pro/bimax-admin/internal/domain"
)

func newUploadService(t *testing.T) (*UploadService, string) {
	t.Helper()
	root := t.TempDir()
	return NewUploadService(root, zerolog.Nop()), root
}

func TestUploadService_ImageUpload(t *testing.T) {
	svc, root := newUploadService(t)
	content := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 1, 2, 3}

	output, err := svc.Upload(context.Background(), UploadInput{
		Category: domain.CategoryBrandImage,
		Filename: "foo.png",
		Content:  content,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	url := output.Asset.URL
	if !strings.HasPrefix(url, "/images/brands/") {
		t.Errorf("expected /images/brands/ prefix, got %s", url)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Errorf("expected .png extension, got %s", url)
	}

	stored, err := os.ReadFile(filepath.Join(root, "images", "brands", output.Asset.Filename))
	if err != nil {
		t.Fatalf("expected stored file: %v", err)
	}
	if !bytes.Equal(stored, content) {
		t.Error("stored content differs from uploaded content")
	}
}

func TestUploadService_ExtensionCaseInsensitive(t *testing.T) {
	svc, _ := newUploadService(t)

	output, err := svc.Upload(context.Background(), UploadInput{
		Category: domain.CategoryProductImage,
		Filename: "PHOTO.JPG",
		Content:  []byte("jpg"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(output.Asset.URL, ".jpg") {
		t.Errorf("expected lowercased .jpg extension, got %s", output.Asset.URL)
	}
}

func TestUploadService_RejectsDisallowedExtension(t *testing.T) {
	svc, root := newUploadService(t)

	_, err := svc.Upload(context.Background(), UploadInput{
		Category: domain.CategoryBrandImage,
		Filename: "malware.exe",
		Content:  []byte("MZ"),
	})
	if !errors.Is(err, domain.ErrInvalidFileType) {
		t.Fatalf("expected ErrInvalidFileType, got %v", err)
	}

	// Nothing may be written for a rejected upload.
	entries, err := os.ReadDir(filepath.Join(root, "images", "brands"))
	if err == nil && len(entries) > 0 {
		t.Errorf("expected no files written, found %d", len(entries))
	}
}

func TestUploadService_RejectsEmptyFilename(t *testing.T) {
	svc, _ := newUploadService(t)

	_, err := svc.Upload(context.Background(), UploadInput{
		Category: domain.CategoryDocument,
		Filename: "",
		Content:  []byte("%PDF-1.4"),
	})
	if !errors.Is(err, domain.ErrNoFileData) {
		t.Errorf("expected ErrNoFileData, got %v", err)
	}
}

func TestUploadService_DocumentCollisionSuffix(t *testing.T) {
	svc, root := newUploadService(t)
	ctx := context.Background()

	first, err := svc.Upload(ctx, UploadInput{
		Category: domain.CategoryDocument,
		Filename: "price-list.pdf",
		Content:  []byte("first"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Upload(ctx, UploadInput{
		Category: domain.CategoryDocument,
		Filename: "price-list.pdf",
		Content:  []byte("second"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Asset.URL != "/documents/price-list.pdf" {
		t.Errorf("unexpected first URL: %s", first.Asset.URL)
	}
	if second.Asset.URL != "/documents/price-list_1.pdf" {
		t.Errorf("expected _1 suffix on collision, got %s", second.Asset.URL)
	}

	// Both files retrievable independently.
	a, err := os.ReadFile(filepath.Join(root, "documents", "price-list.pdf"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(filepath.Join(root, "documents", "price-list_1.pdf"))
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != "first" || string(b) != "second" {
		t.Error("collision upload overwrote an existing file")
	}
}

func TestCollisionSafeName(t *testing.T) {
	tests := []struct {
		name  string
		taken []string
		want  string
	}{
		{"no collision", nil, "report.pdf"},
		{"one collision", []string{"report.pdf"}, "report_1.pdf"},
		{"two collisions", []string{"report.pdf", "report_1.pdf"}, "report_2.pdf"},
		{"gap is not reused", []string{"report.pdf", "report_2.pdf"}, "report_1.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			taken := make(map[string]bool, len(tt.taken))
			for _, name := range tt.taken {
				taken[name] = true
			}

			got := CollisionSafeName("report", ".pdf", func(candidate string) bool {
				return taken[candidate]
			})
			if got != tt.want {
				t.Errorf("CollisionSafeName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUploadService_List(t *testing.T) {
	svc, _ := newUploadService(t)
	ctx := context.Background()

	// Absent directory lists as empty, not as an error.
	urls, err := svc.List(ctx, domain.CategoryPoster)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(urls) != 0 {
		t.Fatalf("expected empty list, got %v", urls)
	}

	for _, name := range []string{"b.pdf", "a.pdf"} {
		if _, err := svc.Upload(ctx, UploadInput{
			Category: domain.CategoryPoster,
			Filename: name,
			Content:  []byte("%PDF"),
		}); err != nil {
			t.Fatal(err)
		}
	}

	urls, err = svc.List(ctx, domain.CategoryPoster)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"/posters/a.pdf", "/posters/b.pdf"}
	if len(urls) != 2 || urls[0] != want[0] || urls[1] != want[1] {
		t.Errorf("expected %v, got %v", want, urls)
	}
}

func TestUploadService_Delete(t *testing.T) {
	svc, root := newUploadService(t)
	ctx := context.Background()

	if _, err := svc.Upload(ctx, UploadInput{
		Category: domain.CategoryDocument,
		Filename: "doomed.pdf",
		Content:  []byte("%PDF"),
	}); err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(ctx, DeleteInput{
		Category: domain.CategoryDocument,
		URL:      "/documents/doomed.pdf",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "documents", "doomed.pdf")); !os.IsNotExist(err) {
		t.Error("expected file to be removed")
	}

	// Deleting again reports the asset as missing.
	err := svc.Delete(ctx, DeleteInput{
		Category: domain.CategoryDocument,
		URL:      "/documents/doomed.pdf",
	})
	if !errors.Is(err, domain.ErrAssetNotFound) {
		t.Errorf("expected ErrAssetNotFound, got %v", err)
	}
}

func TestUploadService_DeleteTraversalGuard(t *testing.T) {
	svc, root := newUploadService(t)
	ctx := context.Background()

	// A file outside the category directory that an attacker might target.
	if err := os.WriteFile(filepath.Join(root, "users.json"), []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		url  string
	}{
		{"wrong prefix", "/users.json"},
		{"other category prefix", "/images/brands/users.json"},
		{"relative path", "documents/users.json"},
		{"parent reference as basename", "/documents/.."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Delete(ctx, DeleteInput{
				Category: domain.CategoryDocument,
				URL:      tt.url,
			})
			if !errors.Is(err, domain.ErrInvalidAssetPath) && !errors.Is(err, domain.ErrAssetNotFound) {
				t.Fatalf("expected guard to reject %q, got %v", tt.url, err)
			}
			// Whatever the rejection, the outside file must survive.
			if _, err := os.Stat(filepath.Join(root, "users.json")); err != nil {
				t.Fatalf("outside file was deleted via %q", tt.url)
			}
		})
	}
}

func TestUploadService_DeleteBasenameOnly(t *testing.T) {
	// A URL that sneaks traversal into the middle of the path must resolve
	// by basename only, never by the full path.
	svc, root := newUploadService(t)
	ctx := context.Background()

	if err := os.WriteFile(filepath.Join(root, "secret.pdf"), []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := svc.Delete(ctx, DeleteInput{
		Category: domain.CategoryDocument,
		URL:      "/documents/../secret.pdf",
	})
	// Basename resolution looks for documents/secret.pdf, which is absent.
	if !errors.Is(err, domain.ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "secret.pdf")); err != nil {
		t.Fatal("file outside the category directory was deleted")
	}
}
