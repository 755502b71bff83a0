package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/bimax-pro/bimax-admin/internal/domain"
)

func newCatalogStore(t *testing.T) *CatalogStore {
	t.Helper()
	return NewCatalogStore(filepath.Join(t.TempDir(), "catalog-data.json"), zerolog.Nop())
}

func TestCatalogStore_FirstBootCreatesEmptyDocument(t *testing.T) {
	store := newCatalogStore(t)

	doc := store.Load(context.Background())
	if string(doc.Brands) != "[]" || string(doc.Products) != "[]" || string(doc.Settings) != "{}" {
		t.Errorf("expected empty default document, got %+v", doc)
	}

	if _, err := os.Stat(store.path); err != nil {
		t.Fatalf("expected catalog file to exist: %v", err)
	}
}

func TestCatalogStore_SaveLoadRoundTrip(t *testing.T) {
	store := newCatalogStore(t)
	ctx := context.Background()

	doc := &domain.CatalogDocument{
		Brands:   json.RawMessage(`[{"id":"b1","name":"Alneo","logo":"/images/brands/1.png"}]`),
		Products: json.RawMessage(`[{"id":"p1","brandId":"b1","profiles":[72,80]}]`),
		Settings: json.RawMessage(`{"phone":"+7 900 000-00-00"}`),
	}
	if err := store.Save(ctx, doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded := store.Load(ctx)

	// Compare parsed forms: pretty-print whitespace is not significant.
	var want, got interface{}
	if err := json.Unmarshal(mustMarshal(t, doc), &want); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(mustMarshal(t, loaded), &got); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Errorf("round trip lost data:\nwant %v\ngot  %v", want, got)
	}
}

func TestCatalogStore_SaveOfLoadIsIdempotent(t *testing.T) {
	store := newCatalogStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, &domain.CatalogDocument{
		Brands:   json.RawMessage(`[{"id":"b1"}]`),
		Products: json.RawMessage(`[]`),
		Settings: json.RawMessage(`{"title":"Bimax Pro"}`),
	}); err != nil {
		t.Fatal(err)
	}

	first := store.Load(ctx)
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second := store.Load(ctx)

	var a, b interface{}
	if err := json.Unmarshal(mustMarshal(t, first), &a); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(mustMarshal(t, second), &b); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("expected save(load()) to be idempotent")
	}
}

func TestCatalogStore_CorruptFileFailsOpen(t *testing.T) {
	store := newCatalogStore(t)
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(store.path, []byte("{{{"), 0o644); err != nil {
		t.Fatal(err)
	}

	doc := store.Load(context.Background())
	if string(doc.Brands) != "[]" || string(doc.Products) != "[]" || string(doc.Settings) != "{}" {
		t.Errorf("expected empty default document for corrupt file, got %+v", doc)
	}
}

func mustMarshal(t *testing.T, doc *domain.CatalogDocument) []byte {
	t.Helper()
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	return data
}
