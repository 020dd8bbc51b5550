package backup

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/Jepennn/Lexa/internal/adapter/store"
	"github.com/Jepennn/Lexa/internal/infrastructure/kv"
)

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	source := store.New(kv.NewMemory())

	spanish, err := source.CreateDictionary(ctx, "Spanish", "Travel words", "globe", "bg-brand-blue")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, pair := range [][2]string{{"hola", "hello"}, {"adios", "goodbye"}} {
		if _, err := source.AddEntry(ctx, spanish.ID, pair[0], pair[1]); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, err := source.CreateDictionary(ctx, "French", "", "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := NewService(source).Export(ctx, &buf); err != nil {
		t.Fatalf("export: %v", err)
	}
	lines := strings.Count(strings.TrimSpace(buf.String()), "\n") + 1
	if lines != 3 {
		t.Fatalf("expected header plus 2 dictionaries, got %d lines", lines)
	}

	target := store.New(kv.NewMemory())
	result, err := NewService(target).Import(ctx, &buf)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Dictionaries != 2 || result.Entries != 2 {
		t.Fatalf("unexpected result %+v", result)
	}

	dictionaries, _ := target.ListDictionaries(ctx)
	if len(dictionaries) != 2 {
		t.Fatalf("expected 2 restored dictionaries, got %d", len(dictionaries))
	}
	var restoredID string
	for _, d := range dictionaries {
		if d.Name == "Spanish" {
			restoredID = d.ID
			if d.Description != "Travel words" || string(d.Icon) != "globe" || string(d.Color) != "bg-brand-blue" {
				t.Fatalf("dictionary metadata lost: %+v", d)
			}
			if d.ID == spanish.ID {
				t.Fatal("expected a fresh id on restore")
			}
		}
	}
	if restoredID == "" {
		t.Fatal("Spanish dictionary missing after import")
	}

	entries, _ := target.ListEntries(ctx, restoredID)
	if len(entries) != 2 {
		t.Fatalf("expected 2 restored entries, got %d", len(entries))
	}
	if entries[0].Text != "adios" || entries[1].Text != "hola" {
		t.Fatalf("entry order lost: %+v", entries)
	}
}

func TestImportRejectsMissingHeader(t *testing.T) {
	target := store.New(kv.NewMemory())
	stream := strings.NewReader(`{"dictionary":{"id":"d1","name":"X","entries":[]}}` + "\n")

	if _, err := NewService(target).Import(context.Background(), stream); err == nil {
		t.Fatal("expected error for headerless stream")
	}
}

func TestImportRejectsUnknownVersion(t *testing.T) {
	target := store.New(kv.NewMemory())
	stream := strings.NewReader(`{"header":{"version":99,"exportedAt":0}}` + "\n")

	if _, err := NewService(target).Import(context.Background(), stream); err == nil {
		t.Fatal("expected error for unknown version")
	}
}

func TestImportEmptyStream(t *testing.T) {
	target := store.New(kv.NewMemory())

	if _, err := NewService(target).Import(context.Background(), strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty stream")
	}
}
