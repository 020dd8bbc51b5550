package entity

import "errors"

// Domain errors for dictionaries, entries and translation sessions.
var (
	ErrStoreUnavailable        = errors.New("storage unavailable")
	ErrEmptyDictionaryName     = errors.New("dictionary name is empty")
	ErrInvalidDictionaryIcon   = errors.New("invalid dictionary icon")
	ErrInvalidDictionaryColor  = errors.New("invalid dictionary color")
	ErrEmptyEntryText          = errors.New("entry text is empty")
	ErrNoActiveTranslation     = errors.New("no completed translation to save")
	ErrLanguagePairUnavailable = errors.New("language pair unavailable")
)
