// Package speech is the playback port used to read a captured selection
// aloud when voice mode is on.
package speech

import "context"

// Speaker plays back text in a given language. Speak replaces any
// playback already in progress.
type Speaker interface {
	Speak(ctx context.Context, text, lang string) error
	// Cancel stops in-progress playback. No-op when nothing plays.
	Cancel()
	Speaking() bool
}

// Noop is the silent Speaker used when no synthesizer is installed and
// in tests that only care about session state.
type Noop struct{}

func (Noop) Speak(ctx context.Context, text, lang string) error { return nil }
func (Noop) Cancel()                                            {}
func (Noop) Speaking() bool                                     { return false }
