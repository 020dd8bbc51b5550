package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/Jepennn/Lexa/internal/bus"
	"github.com/Jepennn/Lexa/internal/entity"
	"github.com/Jepennn/Lexa/internal/repository"
)

// SelectionBroadcaster is the background-context half of the protocol:
// it turns selection events into bus messages for the page contexts.
type SelectionBroadcaster struct {
	bus      *bus.Bus
	settings repository.Settings
}

// NewSelectionBroadcaster wires the broadcaster.
func NewSelectionBroadcaster(b *bus.Bus, settings repository.Settings) *SelectionBroadcaster {
	return &SelectionBroadcaster{bus: b, settings: settings}
}

// MenuSelection publishes the context-menu message for text the sender
// captured. The settings snapshot rides along for schema compatibility;
// receivers re-resolve settings when the session starts.
func (s *SelectionBroadcaster) MenuSelection(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	cfg, err := s.settings.Load(ctx)
	if err != nil {
		return err
	}
	s.bus.Publish(entity.ShowTranslation{
		Text:           text,
		Length:         utf8.RuneCountInString(text),
		SourceLang:     cfg.SourceLang,
		TargetLang:     cfg.TargetLang,
		VoiceMode:      cfg.VoiceMode,
		DictionaryMode: cfg.DictionaryMode,
	})
	return nil
}

// ShortcutPressed publishes the keyboard-shortcut message; the receiving
// context reads its own selection.
func (s *SelectionBroadcaster) ShortcutPressed() {
	s.bus.Publish(entity.ShowTranslationShortcut{})
}
