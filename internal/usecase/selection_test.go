package usecase

import (
	"context"
	"testing"

	"github.com/Jepennn/Lexa/internal/bus"
	"github.com/Jepennn/Lexa/internal/entity"
)

func TestMenuSelectionPublishesSettingsSnapshot(t *testing.T) {
	b := bus.New(quietLogger())
	var received []entity.ShowTranslation
	b.Subscribe(entity.ActionShowTranslation, func(msg entity.Message) {
		received = append(received, msg.(entity.ShowTranslation))
	})

	broadcaster := NewSelectionBroadcaster(b, frenchToEnglish())
	if err := broadcaster.MenuSelection(context.Background(), "  déjà vu  "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(received) != 1 {
		t.Fatalf("expected 1 message, got %d", len(received))
	}
	msg := received[0]
	if msg.Text != "déjà vu" {
		t.Fatalf("expected trimmed text, got %q", msg.Text)
	}
	if msg.Length != 7 {
		t.Fatalf("expected rune count 7, got %d", msg.Length)
	}
	if msg.SourceLang != "fr" || msg.TargetLang != "en" {
		t.Fatalf("expected fr->en snapshot, got %s->%s", msg.SourceLang, msg.TargetLang)
	}
}

func TestMenuSelectionIgnoresBlankText(t *testing.T) {
	b := bus.New(quietLogger())
	var count int
	b.Subscribe(entity.ActionShowTranslation, func(entity.Message) { count++ })

	broadcaster := NewSelectionBroadcaster(b, frenchToEnglish())
	if err := broadcaster.MenuSelection(context.Background(), "   "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no message for blank selection, got %d", count)
	}
}

func TestShortcutPressedPublishes(t *testing.T) {
	b := bus.New(quietLogger())
	var count int
	b.Subscribe(entity.ActionShowTranslationShortcut, func(entity.Message) { count++ })

	NewSelectionBroadcaster(b, frenchToEnglish()).ShortcutPressed()

	if count != 1 {
		t.Fatalf("expected shortcut message, got %d", count)
	}
}
