package bus

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/Jepennn/Lexa/internal/entity"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestPublishReachesOnlyMatchingAction(t *testing.T) {
	b := New(quietLogger())

	var translations, shortcuts int
	b.Subscribe(entity.ActionShowTranslation, func(entity.Message) { translations++ })
	b.Subscribe(entity.ActionShowTranslationShortcut, func(entity.Message) { shortcuts++ })

	b.Publish(entity.ShowTranslation{Text: "hola"})

	if translations != 1 {
		t.Fatalf("expected 1 translation delivery, got %d", translations)
	}
	if shortcuts != 0 {
		t.Fatalf("expected no shortcut delivery, got %d", shortcuts)
	}
}

func TestPublishDeliversAtMostOncePerListener(t *testing.T) {
	b := New(quietLogger())

	var count int
	b.Subscribe(entity.ActionShowTranslationShortcut, func(entity.Message) { count++ })

	b.Publish(entity.ShowTranslationShortcut{})
	b.Publish(entity.ShowTranslationShortcut{})

	if count != 2 {
		t.Fatalf("expected exactly one delivery per publish, got %d", count)
	}
}

func TestPanickingListenerDoesNotBlockOthers(t *testing.T) {
	b := New(quietLogger())

	var delivered int
	b.Subscribe(entity.ActionShowTranslation, func(entity.Message) { panic("boom") })
	b.Subscribe(entity.ActionShowTranslation, func(entity.Message) { delivered++ })
	b.Subscribe(entity.ActionShowTranslation, func(entity.Message) { delivered++ })

	b.Publish(entity.ShowTranslation{Text: "hola"})

	if delivered != 2 {
		t.Fatalf("expected 2 healthy listeners to run, got %d", delivered)
	}
}

func TestCloseStopsDeliveryAndIsIdempotent(t *testing.T) {
	b := New(quietLogger())

	var count int
	sub := b.Subscribe(entity.ActionShowTranslation, func(entity.Message) { count++ })

	b.Publish(entity.ShowTranslation{Text: "uno"})
	sub.Close()
	sub.Close()
	b.Publish(entity.ShowTranslation{Text: "dos"})

	if count != 1 {
		t.Fatalf("expected 1 delivery before close, got %d", count)
	}
}

func TestCloseDoesNotAffectOtherSubscriptions(t *testing.T) {
	b := New(quietLogger())

	var kept int
	closed := b.Subscribe(entity.ActionShowTranslation, func(entity.Message) {})
	b.Subscribe(entity.ActionShowTranslation, func(entity.Message) { kept++ })

	closed.Close()
	b.Publish(entity.ShowTranslation{Text: "hola"})

	if kept != 1 {
		t.Fatalf("expected surviving listener to fire, got %d", kept)
	}
}
