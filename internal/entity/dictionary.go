package entity

import "time"

// DictionaryIcon identifies the pictogram shown for a dictionary.
type DictionaryIcon string

const (
	IconBook       DictionaryIcon = "book"
	IconGlobe      DictionaryIcon = "globe"
	IconStar       DictionaryIcon = "star"
	IconGraduation DictionaryIcon = "graduation"
	IconZap        DictionaryIcon = "zap"
	IconHeart      DictionaryIcon = "heart"
	IconFlag       DictionaryIcon = "flag"
	IconBookmark   DictionaryIcon = "bookmark"
)

// Valid reports whether the icon is one of the known pictograms.
func (i DictionaryIcon) Valid() bool {
	switch i {
	case IconBook, IconGlobe, IconStar, IconGraduation, IconZap, IconHeart, IconFlag, IconBookmark:
		return true
	}
	return false
}

// DictionaryColor is one of the fixed brand palette tokens.
type DictionaryColor string

const (
	ColorOrange DictionaryColor = "bg-brand-orange"
	ColorBlue   DictionaryColor = "bg-brand-blue"
	ColorPink   DictionaryColor = "bg-brand-pink"
	ColorPurple DictionaryColor = "bg-brand-purple"
	ColorGreen  DictionaryColor = "bg-brand-green"
	ColorYellow DictionaryColor = "bg-brand-yellow"
)

// Valid reports whether the color belongs to the palette.
func (c DictionaryColor) Valid() bool {
	switch c {
	case ColorOrange, ColorBlue, ColorPink, ColorPurple, ColorGreen, ColorYellow:
		return true
	}
	return false
}

// Dictionary is a named, user-created collection of translated entries.
// UpdatedAt is bumped only when an entry is added, so the most recently
// used dictionary sorts first.
type Dictionary struct {
	ID          string
	Name        string
	Description string
	Icon        DictionaryIcon
	Color       DictionaryColor
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Entry is one saved (text, translation) pair belonging to exactly one
// dictionary. Entries are immutable once created.
type Entry struct {
	ID           string
	DictionaryID string
	Text         string
	Translation  string
	CreatedAt    time.Time
}
