package store

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Jepennn/Lexa/internal/entity"
	"github.com/Jepennn/Lexa/internal/infrastructure/kv"
)

func newTestStore(mem *kv.Memory) *entryStore {
	var tick int64
	return &entryStore{
		kv: mem,
		clock: func() time.Time {
			tick++
			return time.UnixMilli(1700000000000 + tick*1000)
		},
		newID: func() func() string {
			var n int
			return func() string {
				n++
				return "id-" + strconv.Itoa(n)
			}
		}(),
		locks: make(map[string]*sync.Mutex),
	}
}

func TestCreateDictionaryValidation(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name     string
		dictName string
		icon     entity.DictionaryIcon
		color    entity.DictionaryColor
		wantErr  error
	}{
		{name: "empty name", dictName: "", wantErr: entity.ErrEmptyDictionaryName},
		{name: "blank name", dictName: "   ", wantErr: entity.ErrEmptyDictionaryName},
		{name: "unknown icon", dictName: "Travel", icon: "swords", wantErr: entity.ErrInvalidDictionaryIcon},
		{name: "unknown color", dictName: "Travel", color: "bg-brand-teal", wantErr: entity.ErrInvalidDictionaryColor},
		{name: "defaults applied", dictName: "Travel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(kv.NewMemory())
			created, err := s.CreateDictionary(ctx, tt.dictName, "", tt.icon, tt.color)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if created.ID == "" {
				t.Fatal("expected a generated id")
			}
			if created.Icon != entity.IconBook || created.Color != entity.ColorOrange {
				t.Fatalf("expected defaults, got icon=%s color=%s", created.Icon, created.Color)
			}
			if !created.CreatedAt.Equal(created.UpdatedAt) {
				t.Fatal("expected createdAt == updatedAt on creation")
			}
		})
	}
}

func TestListDictionariesSortedAndUnique(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(kv.NewMemory())

	first, _ := s.CreateDictionary(ctx, "First", "", "", "")
	second, _ := s.CreateDictionary(ctx, "Second", "", "", "")
	third, _ := s.CreateDictionary(ctx, "Third", "", "", "")

	dictionaries, err := s.ListDictionaries(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dictionaries) != 3 {
		t.Fatalf("expected 3 dictionaries, got %d", len(dictionaries))
	}
	// Most recently updated first.
	if dictionaries[0].ID != third.ID || dictionaries[2].ID != first.ID {
		t.Fatalf("expected [%s %s %s], got [%s %s %s]",
			third.ID, second.ID, first.ID,
			dictionaries[0].ID, dictionaries[1].ID, dictionaries[2].ID)
	}
	seen := make(map[string]bool)
	for _, d := range dictionaries {
		if seen[d.ID] {
			t.Fatalf("duplicate dictionary id %s", d.ID)
		}
		seen[d.ID] = true
	}
}

func TestAddEntryMovesDictionaryToFront(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(kv.NewMemory())

	older, _ := s.CreateDictionary(ctx, "Older", "", "", "")
	if _, err := s.CreateDictionary(ctx, "Newer", "", "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := s.AddEntry(ctx, older.ID, "hola", "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dictionaries, _ := s.ListDictionaries(ctx)
	if dictionaries[0].ID != older.ID {
		t.Fatalf("expected %s first after AddEntry, got %s", older.ID, dictionaries[0].ID)
	}
}

func TestAddEntryRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(kv.NewMemory())

	dictionary, _ := s.CreateDictionary(ctx, "Spanish", "", "", "")
	if _, err := s.AddEntry(ctx, dictionary.ID, "hola", "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := s.ListEntries(ctx, dictionary.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Text != "hola" || entry.Translation != "hello" {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if entry.ID == "" || entry.DictionaryID != dictionary.ID {
		t.Fatalf("expected fresh id and dictionaryId=%s, got %+v", dictionary.ID, entry)
	}
}

func TestListEntriesNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(kv.NewMemory())

	dictionary, _ := s.CreateDictionary(ctx, "Spanish", "", "", "")
	for _, word := range []string{"uno", "dos", "tres"} {
		if _, err := s.AddEntry(ctx, dictionary.ID, word, word); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	entries, _ := s.ListEntries(ctx, dictionary.ID)
	got := make([]string, 0, len(entries))
	for _, e := range entries {
		got = append(got, e.Text)
	}
	if strings.Join(got, ",") != "tres,dos,uno" {
		t.Fatalf("expected newest first, got %v", got)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].CreatedAt.Before(entries[i].CreatedAt) {
			t.Fatal("entries not sorted by descending createdAt")
		}
	}
}

func TestListEntriesUnknownDictionary(t *testing.T) {
	s := newTestStore(kv.NewMemory())
	entries, err := s.ListEntries(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", entries)
	}
}

func TestDeleteDictionaryRemovesEntriesList(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	s := newTestStore(mem)

	dictionary, _ := s.CreateDictionary(ctx, "Spanish", "", "", "")
	if _, err := s.AddEntry(ctx, dictionary.ID, "hola", "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.DeleteDictionary(ctx, dictionary.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dictionaries, _ := s.ListDictionaries(ctx)
	for _, d := range dictionaries {
		if d.ID == dictionary.ID {
			t.Fatal("deleted dictionary still listed")
		}
	}
	entries, _ := s.ListEntries(ctx, dictionary.ID)
	if len(entries) != 0 {
		t.Fatalf("expected no entries after delete, got %d", len(entries))
	}
	for _, key := range mem.Keys() {
		if key == "entries_"+dictionary.ID {
			t.Fatal("orphaned entries list left behind")
		}
	}

	// Idempotent.
	if err := s.DeleteDictionary(ctx, dictionary.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestDeleteEntryIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(kv.NewMemory())

	dictionary, _ := s.CreateDictionary(ctx, "Spanish", "", "", "")
	kept, _ := s.AddEntry(ctx, dictionary.ID, "uno", "one")
	dropped, _ := s.AddEntry(ctx, dictionary.ID, "dos", "two")

	if err := s.DeleteEntry(ctx, dictionary.ID, dropped.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.DeleteEntry(ctx, dictionary.ID, dropped.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}

	entries, _ := s.ListEntries(ctx, dictionary.ID)
	if len(entries) != 1 || entries[0].ID != kept.ID {
		t.Fatalf("expected only %s to remain, got %v", kept.ID, entries)
	}
}

func TestAddEntryUnknownDictionaryStillStores(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(kv.NewMemory())

	if _, err := s.AddEntry(ctx, "ghost", "hola", "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entries, _ := s.ListEntries(ctx, "ghost")
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
}

// Two contexts saving into the same dictionary at once must both land;
// without per-key write serialization the second read-modify-write
// overwrites the first.
func TestConcurrentAddEntryKeepsBothInsertions(t *testing.T) {
	ctx := context.Background()
	s := New(kv.NewMemory()).(*entryStore)

	dictionary, err := s.CreateDictionary(ctx, "Spanish", "", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	const writers = 16
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			word := "palabra-" + strconv.Itoa(i)
			if _, err := s.AddEntry(ctx, dictionary.ID, word, word); err != nil {
				t.Errorf("AddEntry: %v", err)
			}
		}(i)
	}
	wg.Wait()

	entries, err := s.ListEntries(ctx, dictionary.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != writers {
		t.Fatalf("lost updates: expected %d entries, got %d", writers, len(entries))
	}
}
