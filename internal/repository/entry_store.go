package repository

import (
	"context"

	"github.com/Jepennn/Lexa/internal/entity"
)

// EntryStore abstracts persistence of dictionaries and their entries so
// the session controller and surfaces stay storage agnostic.
//
// Any operation may fail with entity.ErrStoreUnavailable when the
// persistent medium is unreachable. Deletes are idempotent: absence of
// the target is not an error.
type EntryStore interface {
	// ListDictionaries returns all dictionaries sorted by descending
	// UpdatedAt. Never nil.
	ListDictionaries(ctx context.Context) ([]entity.Dictionary, error)

	// CreateDictionary generates the id and timestamps. Name must be
	// non-empty; empty icon or color fall back to defaults, anything
	// else outside the enums is rejected.
	CreateDictionary(ctx context.Context, name, description string, icon entity.DictionaryIcon, color entity.DictionaryColor) (*entity.Dictionary, error)

	// DeleteDictionary removes the dictionary record and its entries
	// list as one logical operation. No-op for an unknown id.
	DeleteDictionary(ctx context.Context, id string) error

	// ListEntries returns the entries of a dictionary sorted by
	// descending CreatedAt. Empty for an unknown dictionary; the
	// dictionary's existence is deliberately not validated.
	ListEntries(ctx context.Context, dictionaryID string) ([]entity.Entry, error)

	// AddEntry prepends a new entry and bumps the dictionary's
	// UpdatedAt when the dictionary record exists.
	AddEntry(ctx context.Context, dictionaryID, text, translation string) (*entity.Entry, error)

	// DeleteEntry filters the entry out of the dictionary's list.
	DeleteEntry(ctx context.Context, dictionaryID, entryID string) error
}
