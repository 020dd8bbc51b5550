package usecase

import (
	"context"
	"math/rand"
	"time"

	"github.com/Jepennn/Lexa/internal/entity"
	"github.com/Jepennn/Lexa/internal/repository"
)

// PracticeOptions configure one flashcard run.
type PracticeOptions struct {
	// DictionaryID limits the deck to one dictionary; empty means every
	// dictionary the user has.
	DictionaryID  string
	Shuffle       bool
	ShowWordFirst bool
}

// Flashcard is one card of a deck.
type Flashcard struct {
	EntryID string
	Front   string
	Back    string
}

// Deck is a navigable sequence of flashcards.
type Deck struct {
	cards   []Flashcard
	pos     int
	flipped bool
}

// Len returns the number of cards.
func (d *Deck) Len() int { return len(d.cards) }

// Current returns the card under the cursor. ok is false for an empty
// deck.
func (d *Deck) Current() (card Flashcard, ok bool) {
	if len(d.cards) == 0 {
		return Flashcard{}, false
	}
	return d.cards[d.pos], true
}

// Shown returns the side currently facing the user.
func (d *Deck) Shown() string {
	card, ok := d.Current()
	if !ok {
		return ""
	}
	if d.flipped {
		return card.Back
	}
	return card.Front
}

// Flip turns the current card over.
func (d *Deck) Flip() { d.flipped = !d.flipped }

// Next advances the cursor, unflipped. It stops at the last card and
// reports whether it moved.
func (d *Deck) Next() bool {
	if d.pos >= len(d.cards)-1 {
		return false
	}
	d.pos++
	d.flipped = false
	return true
}

// Prev moves the cursor back, unflipped, and reports whether it moved.
func (d *Deck) Prev() bool {
	if d.pos <= 0 {
		return false
	}
	d.pos--
	d.flipped = false
	return true
}

// Progress returns the 1-based cursor position and the deck size.
func (d *Deck) Progress() (position, total int) {
	if len(d.cards) == 0 {
		return 0, 0
	}
	return d.pos + 1, len(d.cards)
}

// PracticeUsecase builds flashcard decks from saved entries.
type PracticeUsecase interface {
	BuildDeck(ctx context.Context, opts PracticeOptions) (*Deck, error)
}

// NewPracticeUsecase wires the store with a time-seeded shuffle source.
func NewPracticeUsecase(store repository.EntryStore) PracticeUsecase {
	return &practiceUsecase{
		store: store,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

type practiceUsecase struct {
	store repository.EntryStore
	rng   *rand.Rand
}

func (u *practiceUsecase) BuildDeck(ctx context.Context, opts PracticeOptions) (*Deck, error) {
	entries, err := u.collect(ctx, opts.DictionaryID)
	if err != nil {
		return nil, err
	}

	cards := make([]Flashcard, 0, len(entries))
	for _, entry := range entries {
		card := Flashcard{EntryID: entry.ID, Front: entry.Text, Back: entry.Translation}
		if !opts.ShowWordFirst {
			card.Front, card.Back = card.Back, card.Front
		}
		cards = append(cards, card)
	}

	if opts.Shuffle {
		u.rng.Shuffle(len(cards), func(i, j int) {
			cards[i], cards[j] = cards[j], cards[i]
		})
	}
	return &Deck{cards: cards}, nil
}

func (u *practiceUsecase) collect(ctx context.Context, dictionaryID string) ([]entity.Entry, error) {
	if dictionaryID != "" {
		return u.store.ListEntries(ctx, dictionaryID)
	}

	dictionaries, err := u.store.ListDictionaries(ctx)
	if err != nil {
		return nil, err
	}
	var all []entity.Entry
	for _, dictionary := range dictionaries {
		entries, err := u.store.ListEntries(ctx, dictionary.ID)
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
	}
	return all, nil
}
