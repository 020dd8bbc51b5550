// Package engine defines the contract of the external translation
// capability: an availability check per language pair, translator
// creation with optional model download, and text translation.
package engine

import "context"

// Availability is the engine's verdict for one language pair.
type Availability string

const (
	AvailabilityAvailable    Availability = "available"
	AvailabilityDownloadable Availability = "downloadable"
	AvailabilityUnavailable  Availability = "unavailable"
)

// Engine materializes translators for language pairs. All calls are
// blocking and honor ctx cancellation; the engine itself is a black box
// that can hang, so callers bound these calls with a timeout.
type Engine interface {
	// Availability reports whether the (source, target) pair can be
	// served, possibly after a model download.
	Availability(ctx context.Context, sourceLang, targetLang string) (Availability, error)

	// Create materializes a translator for the pair. onProgress, when
	// non-nil, is invoked as model download progresses; it is never
	// called when no download is needed.
	Create(ctx context.Context, sourceLang, targetLang string, onProgress func(fraction float64)) (Translator, error)
}

// Translator translates text for one fixed language pair.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}
