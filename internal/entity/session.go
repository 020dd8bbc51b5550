package entity

// SessionState is the lifecycle of one translation session.
type SessionState string

const (
	SessionIdle            SessionState = "idle"
	SessionPositioning     SessionState = "positioning"
	SessionCapabilityCheck SessionState = "capability_check"
	SessionDownloading     SessionState = "downloading"
	SessionTranslating     SessionState = "translating"
	SessionReady           SessionState = "ready"
	SessionFailed          SessionState = "failed"
)

// User-visible notices surfaced by a failed session.
const (
	NoticePairUnavailable   = "Translation unavailable for this language"
	NoticeTranslationFailed = "Translation failed. Please try again."
)

// Anchor is the screen position a session is pinned to, taken from the
// bounding rectangle of the live selection. Nil when the selection is gone
// by the time the message arrives.
type Anchor struct {
	X float64
	Y float64
}

// SessionView is the renderable snapshot a session exposes to its UI.
type SessionView struct {
	State          SessionState
	OriginalText   string
	TranslatedText string
	Notice         string
	Downloading    bool
	AddedTo        string
	Anchor         *Anchor
	Settings       UserSettings
}
