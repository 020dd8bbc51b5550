// Package backup snapshots dictionaries and their entries as NDJSON and
// restores them, so a user can move their collection between machines.
package backup

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Jepennn/Lexa/internal/entity"
	"github.com/Jepennn/Lexa/internal/repository"
)

const formatVersion = 1

// ProgressReporter receives progress callbacks during export.
type ProgressReporter interface {
	StartDictionary(name string, entries int)
	FinishDictionary(name string)
}

type noopProgress struct{}

func (noopProgress) StartDictionary(string, int) {}
func (noopProgress) FinishDictionary(string)     {}

// Service reads and writes backup streams against the entry store.
type Service struct {
	store    repository.EntryStore
	reporter ProgressReporter
}

// Option customizes a Service.
type Option func(*Service)

// WithProgressReporter registers a reporter for export progress.
func WithProgressReporter(reporter ProgressReporter) Option {
	return func(s *Service) {
		if reporter != nil {
			s.reporter = reporter
		}
	}
}

// NewService constructs a backup service over the given store.
func NewService(store repository.EntryStore, opts ...Option) *Service {
	s := &Service{store: store, reporter: noopProgress{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// One NDJSON line. Exactly one of Header or Dictionary is set.
type record struct {
	Header     *headerRecord     `json:"header,omitempty"`
	Dictionary *dictionaryRecord `json:"dictionary,omitempty"`
}

type headerRecord struct {
	Version    int   `json:"version"`
	ExportedAt int64 `json:"exportedAt"`
}

type dictionaryRecord struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Icon        string        `json:"icon"`
	Color       string        `json:"color"`
	Entries     []entryRecord `json:"entries"`
}

type entryRecord struct {
	Text        string `json:"text"`
	Translation string `json:"translation"`
}

// Export writes every dictionary with its entries to w, one NDJSON line
// per dictionary after a header line.
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	encoder := json.NewEncoder(w)
	header := record{Header: &headerRecord{
		Version:    formatVersion,
		ExportedAt: time.Now().UnixMilli(),
	}}
	if err := encoder.Encode(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	dictionaries, err := s.store.ListDictionaries(ctx)
	if err != nil {
		return fmt.Errorf("list dictionaries: %w", err)
	}
	for _, dictionary := range dictionaries {
		entries, err := s.store.ListEntries(ctx, dictionary.ID)
		if err != nil {
			return fmt.Errorf("list entries of %s: %w", dictionary.ID, err)
		}
		s.reporter.StartDictionary(dictionary.Name, len(entries))

		rec := record{Dictionary: &dictionaryRecord{
			ID:          dictionary.ID,
			Name:        dictionary.Name,
			Description: dictionary.Description,
			Icon:        string(dictionary.Icon),
			Color:       string(dictionary.Color),
			Entries:     make([]entryRecord, 0, len(entries)),
		}}
		// Entries list newest first; reverse so import replays them in
		// original order and the listing comes back identical.
		for i := len(entries) - 1; i >= 0; i-- {
			rec.Dictionary.Entries = append(rec.Dictionary.Entries, entryRecord{
				Text:        entries[i].Text,
				Translation: entries[i].Translation,
			})
		}
		if err := encoder.Encode(rec); err != nil {
			return fmt.Errorf("write dictionary %s: %w", dictionary.ID, err)
		}
		s.reporter.FinishDictionary(dictionary.Name)
	}
	return nil
}

// ImportResult summarizes one restore run.
type ImportResult struct {
	Dictionaries int
	Entries      int
}

// Import replays a backup stream into the store. Dictionaries are
// recreated with fresh ids; the backup's ids only group entries.
func (s *Service) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	result := &ImportResult{}
	sawHeader := false
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("parse backup line: %w", err)
		}
		switch {
		case rec.Header != nil:
			if rec.Header.Version != formatVersion {
				return nil, fmt.Errorf("unsupported backup version %d", rec.Header.Version)
			}
			sawHeader = true
		case rec.Dictionary != nil:
			if !sawHeader {
				return nil, errors.New("backup stream has no header")
			}
			if err := s.importDictionary(ctx, rec.Dictionary, result); err != nil {
				return nil, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}
	if !sawHeader {
		return nil, errors.New("backup stream has no header")
	}
	return result, nil
}

func (s *Service) importDictionary(ctx context.Context, rec *dictionaryRecord, result *ImportResult) error {
	created, err := s.store.CreateDictionary(ctx, rec.Name, rec.Description,
		entity.DictionaryIcon(rec.Icon), entity.DictionaryColor(rec.Color))
	if err != nil {
		return fmt.Errorf("restore dictionary %q: %w", rec.Name, err)
	}
	result.Dictionaries++
	for _, entry := range rec.Entries {
		if _, err := s.store.AddEntry(ctx, created.ID, entry.Text, entry.Translation); err != nil {
			return fmt.Errorf("restore entry %q: %w", entry.Text, err)
		}
		result.Entries++
	}
	return nil
}
