package entity

// Message actions understood by the bus. Each action has exactly one
// message shape; listeners match on the concrete type, not the string.
const (
	ActionShowTranslation         = "SHOW_TRANSLATION"
	ActionShowTranslationShortcut = "SHOW_TRANSLATION_SHORTCUT"
)

// Message is the tagged union delivered across contexts.
type Message interface {
	Action() string
}

// ShowTranslation starts a translation session for text the sender
// already captured (context-menu path). Language pair and feature flags
// are snapshots from the sender's settings; receivers re-resolve settings
// when the session starts, so these fields are informational.
type ShowTranslation struct {
	Text           string
	Length         int
	SourceLang     string
	TargetLang     string
	VoiceMode      bool
	DictionaryMode bool
}

// Action implements Message.
func (ShowTranslation) Action() string { return ActionShowTranslation }

// ShowTranslationShortcut asks the receiving context to read its own
// current selection and start a session (keyboard-shortcut path).
type ShowTranslationShortcut struct{}

// Action implements Message.
func (ShowTranslationShortcut) Action() string { return ActionShowTranslationShortcut }
