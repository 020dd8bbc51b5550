package entity

// UserSettings is the small persistent settings bag shared by every
// execution context: the language pair plus feature toggles.
type UserSettings struct {
	SourceLang        string
	TargetLang        string
	VoiceMode         bool
	DictionaryMode    bool
	HasSeenOnboarding bool
}

// DefaultSettings returns the values written on first run.
func DefaultSettings() UserSettings {
	return UserSettings{
		SourceLang:        "en",
		TargetLang:        "sv",
		VoiceMode:         true,
		DictionaryMode:    true,
		HasSeenOnboarding: false,
	}
}
