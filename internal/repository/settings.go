package repository

import (
	"context"

	"github.com/Jepennn/Lexa/internal/entity"
)

// Settings is the read/subscribe port over the persistent settings bag.
type Settings interface {
	// Load returns the current settings, filling unset keys with
	// defaults.
	Load(ctx context.Context) (entity.UserSettings, error)

	// Save persists the full settings snapshot and notifies watchers.
	Save(ctx context.Context, settings entity.UserSettings) error

	// EnsureDefaults writes defaults for any key not present yet,
	// without touching keys the user already changed.
	EnsureDefaults(ctx context.Context) error

	// MarkOnboardingSeen flips the onboarding flag once.
	MarkOnboardingSeen(ctx context.Context) error

	// Watch registers fn for settings-change snapshots and returns a
	// release function that is safe to call more than once.
	Watch(fn func(entity.UserSettings)) (release func())
}
