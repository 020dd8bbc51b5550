// Package store implements the dictionary/entry store on top of the
// whole-key kv contract. The underlying medium has no multi-key
// transactions, so every read-modify-write against one key runs under a
// per-key lock; without it two concurrent AddEntry calls for the same
// dictionary are last-writer-wins and one insertion is silently lost.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/Jepennn/Lexa/internal/entity"
	"github.com/Jepennn/Lexa/internal/infrastructure/kv"
	"github.com/Jepennn/Lexa/internal/repository"
)

const dictionariesKey = "dictionaries"

func entriesKey(dictionaryID string) string {
	return "entries_" + dictionaryID
}

// dictionaryDoc is the stored shape of a dictionary. Timestamps are epoch
// milliseconds, the format the store has always used.
type dictionaryDoc struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Icon        entity.DictionaryIcon  `json:"icon"`
	Color       entity.DictionaryColor `json:"color"`
	CreatedAt   int64                  `json:"createdAt"`
	UpdatedAt   int64                  `json:"updatedAt"`
}

type entryDoc struct {
	ID           string `json:"id"`
	DictionaryID string `json:"dictionaryId"`
	Text         string `json:"text"`
	Translation  string `json:"translation"`
	CreatedAt    int64  `json:"createdAt"`
}

type entryStore struct {
	kv    kv.Store
	clock func() time.Time
	newID func() string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New wires an EntryStore over the given key-value store.
func New(store kv.Store) repository.EntryStore {
	return &entryStore{
		kv:    store,
		clock: time.Now,
		newID: uuid.NewString,
		locks: make(map[string]*sync.Mutex),
	}
}

// keyLock returns the mutex serializing writers of one kv key.
func (s *entryStore) keyLock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

func (s *entryStore) ListDictionaries(ctx context.Context) ([]entity.Dictionary, error) {
	docs, err := s.readDictionaries(ctx)
	if err != nil {
		return nil, err
	}
	dictionaries := lo.Map(lo.Values(docs), func(doc dictionaryDoc, _ int) entity.Dictionary {
		return toDictionary(doc)
	})
	sort.Slice(dictionaries, func(i, j int) bool {
		return dictionaries[i].UpdatedAt.After(dictionaries[j].UpdatedAt)
	})
	return dictionaries, nil
}

func (s *entryStore) CreateDictionary(ctx context.Context, name, description string, icon entity.DictionaryIcon, color entity.DictionaryColor) (*entity.Dictionary, error) {
	if strings.TrimSpace(name) == "" {
		return nil, entity.ErrEmptyDictionaryName
	}
	if icon == "" {
		icon = entity.IconBook
	}
	if color == "" {
		color = entity.ColorOrange
	}
	if !icon.Valid() {
		return nil, entity.ErrInvalidDictionaryIcon
	}
	if !color.Valid() {
		return nil, entity.ErrInvalidDictionaryColor
	}

	lock := s.keyLock(dictionariesKey)
	lock.Lock()
	defer lock.Unlock()

	docs, err := s.readDictionaries(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock().UnixMilli()
	doc := dictionaryDoc{
		ID:          s.newID(),
		Name:        name,
		Description: description,
		Icon:        icon,
		Color:       color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	docs[doc.ID] = doc
	if err := s.writeDictionaries(ctx, docs); err != nil {
		return nil, err
	}
	created := toDictionary(doc)
	return &created, nil
}

func (s *entryStore) DeleteDictionary(ctx context.Context, id string) error {
	lock := s.keyLock(dictionariesKey)
	lock.Lock()
	defer lock.Unlock()

	docs, err := s.readDictionaries(ctx)
	if err != nil {
		return err
	}
	if _, ok := docs[id]; !ok {
		return nil
	}
	delete(docs, id)
	if err := s.writeDictionaries(ctx, docs); err != nil {
		return err
	}

	// The entries list goes with the dictionary; an orphaned
	// entries_<id> key would be a correctness bug.
	entriesLock := s.keyLock(entriesKey(id))
	entriesLock.Lock()
	defer entriesLock.Unlock()
	return s.kv.Delete(ctx, entriesKey(id))
}

func (s *entryStore) ListEntries(ctx context.Context, dictionaryID string) ([]entity.Entry, error) {
	docs, err := s.readEntries(ctx, dictionaryID)
	if err != nil {
		return nil, err
	}
	entries := lo.Map(docs, func(doc entryDoc, _ int) entity.Entry {
		return toEntry(doc)
	})
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

func (s *entryStore) AddEntry(ctx context.Context, dictionaryID, text, translation string) (*entity.Entry, error) {
	now := s.clock().UnixMilli()

	// Bump the dictionary's UpdatedAt when the record exists. This is a
	// separate key from the entries list; the timestamp write is
	// idempotent, so it does not need to be atomic with the insert.
	dictLock := s.keyLock(dictionariesKey)
	dictLock.Lock()
	docs, err := s.readDictionaries(ctx)
	if err != nil {
		dictLock.Unlock()
		return nil, err
	}
	if doc, ok := docs[dictionaryID]; ok {
		doc.UpdatedAt = now
		docs[dictionaryID] = doc
		if err := s.writeDictionaries(ctx, docs); err != nil {
			dictLock.Unlock()
			return nil, err
		}
	}
	dictLock.Unlock()

	lock := s.keyLock(entriesKey(dictionaryID))
	lock.Lock()
	defer lock.Unlock()

	entries, err := s.readEntries(ctx, dictionaryID)
	if err != nil {
		return nil, err
	}
	doc := entryDoc{
		ID:           s.newID(),
		DictionaryID: dictionaryID,
		Text:         text,
		Translation:  translation,
		CreatedAt:    now,
	}
	if err := s.writeEntries(ctx, dictionaryID, append([]entryDoc{doc}, entries...)); err != nil {
		return nil, err
	}
	created := toEntry(doc)
	return &created, nil
}

func (s *entryStore) DeleteEntry(ctx context.Context, dictionaryID, entryID string) error {
	lock := s.keyLock(entriesKey(dictionaryID))
	lock.Lock()
	defer lock.Unlock()

	entries, err := s.readEntries(ctx, dictionaryID)
	if err != nil {
		return err
	}
	kept := lo.Filter(entries, func(doc entryDoc, _ int) bool {
		return doc.ID != entryID
	})
	if len(kept) == len(entries) {
		return nil
	}
	return s.writeEntries(ctx, dictionaryID, kept)
}

func (s *entryStore) readDictionaries(ctx context.Context) (map[string]dictionaryDoc, error) {
	raw, ok, err := s.kv.Get(ctx, dictionariesKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return make(map[string]dictionaryDoc), nil
	}
	var docs map[string]dictionaryDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", dictionariesKey, err)
	}
	if docs == nil {
		docs = make(map[string]dictionaryDoc)
	}
	return docs, nil
}

func (s *entryStore) writeDictionaries(ctx context.Context, docs map[string]dictionaryDoc) error {
	raw, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("encode %s: %w", dictionariesKey, err)
	}
	return s.kv.Set(ctx, dictionariesKey, raw)
}

func (s *entryStore) readEntries(ctx context.Context, dictionaryID string) ([]entryDoc, error) {
	key := entriesKey(dictionaryID)
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var docs []entryDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return docs, nil
}

func (s *entryStore) writeEntries(ctx context.Context, dictionaryID string, docs []entryDoc) error {
	key := entriesKey(dictionaryID)
	raw, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.kv.Set(ctx, key, raw)
}

func toDictionary(doc dictionaryDoc) entity.Dictionary {
	return entity.Dictionary{
		ID:          doc.ID,
		Name:        doc.Name,
		Description: doc.Description,
		Icon:        doc.Icon,
		Color:       doc.Color,
		CreatedAt:   time.UnixMilli(doc.CreatedAt),
		UpdatedAt:   time.UnixMilli(doc.UpdatedAt),
	}
}

func toEntry(doc entryDoc) entity.Entry {
	return entity.Entry{
		ID:           doc.ID,
		DictionaryID: doc.DictionaryID,
		Text:         doc.Text,
		Translation:  doc.Translation,
		CreatedAt:    time.UnixMilli(doc.CreatedAt),
	}
}
