package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Jepennn/Lexa/internal/bus"
	"github.com/Jepennn/Lexa/internal/engine"
	"github.com/Jepennn/Lexa/internal/entity"
	"github.com/Jepennn/Lexa/internal/repository"
	"github.com/Jepennn/Lexa/internal/speech"
)

// SelectionReader reads the live text selection of the owning context.
type SelectionReader interface {
	// Selection returns the selected text and its screen anchor. ok is
	// false when no live selection exists.
	Selection() (text string, anchor *entity.Anchor, ok bool)
}

// Notifier surfaces non-blocking notifications to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type noopNotifier struct{}

func (noopNotifier) Success(string) {}
func (noopNotifier) Error(string)   {}

// SessionController runs the translation sessions of one context. There
// is exactly one active session per context at a time; a new selection
// event supersedes the session in flight.
type SessionController struct {
	store     repository.EntryStore
	settings  repository.Settings
	engine    engine.Engine
	speaker   speech.Speaker
	selection SelectionReader
	notifier  Notifier
	logger    *logrus.Logger

	engineTimeout time.Duration
	markerTTL     time.Duration

	mu   sync.Mutex
	seq  uint64
	view entity.SessionView
}

// SessionOption customizes a SessionController.
type SessionOption func(*SessionController)

// WithEngineTimeout bounds every engine call; the engine is a black box
// that can hang.
func WithEngineTimeout(d time.Duration) SessionOption {
	return func(c *SessionController) {
		if d > 0 {
			c.engineTimeout = d
		}
	}
}

// WithMarkerTTL sets how long the added-to-dictionary marker lingers.
func WithMarkerTTL(d time.Duration) SessionOption {
	return func(c *SessionController) {
		if d > 0 {
			c.markerTTL = d
		}
	}
}

// WithNotifier routes user notifications.
func WithNotifier(n Notifier) SessionOption {
	return func(c *SessionController) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithLogger sets the controller's logger.
func WithLogger(logger *logrus.Logger) SessionOption {
	return func(c *SessionController) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewSessionController wires the controller with its collaborator ports.
func NewSessionController(
	store repository.EntryStore,
	settings repository.Settings,
	eng engine.Engine,
	speaker speech.Speaker,
	selection SelectionReader,
	opts ...SessionOption,
) *SessionController {
	c := &SessionController{
		store:         store,
		settings:      settings,
		engine:        eng,
		speaker:       speaker,
		selection:     selection,
		notifier:      noopNotifier{},
		logger:        logrus.New(),
		engineTimeout: 30 * time.Second,
		markerTTL:     2 * time.Second,
		view:          entity.SessionView{State: entity.SessionIdle},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Bind subscribes the controller to both selection actions and returns
// one release function covering every exit path. Messages are handled off
// the publisher's goroutine.
func (c *SessionController) Bind(b *bus.Bus) (release func()) {
	handler := func(msg entity.Message) {
		go c.Handle(context.Background(), msg)
	}
	menu := b.Subscribe(entity.ActionShowTranslation, handler)
	shortcut := b.Subscribe(entity.ActionShowTranslationShortcut, handler)
	return func() {
		menu.Close()
		shortcut.Close()
	}
}

// Handle starts a session from an inbound message and drives it to Ready
// or Failed. Both message shapes converge on the same entry transition;
// settings are always resolved here, at receive time, so a change made
// between menu click and delivery is honored on every path.
func (c *SessionController) Handle(ctx context.Context, msg entity.Message) {
	switch m := msg.(type) {
	case entity.ShowTranslation:
		var anchor *entity.Anchor
		if c.selection != nil {
			// Anchor to the live selection when it is still around;
			// otherwise the message's text shows without one.
			if _, a, ok := c.selection.Selection(); ok {
				anchor = a
			}
		}
		c.start(ctx, m.Text, anchor)
	case entity.ShowTranslationShortcut:
		if c.selection == nil {
			return
		}
		text, anchor, ok := c.selection.Selection()
		text = strings.TrimSpace(text)
		if !ok || text == "" {
			return
		}
		c.start(ctx, text, anchor)
	}
}

func (c *SessionController) start(ctx context.Context, text string, anchor *entity.Anchor) {
	cfg, err := c.settings.Load(ctx)
	if err != nil {
		c.logger.Warnf("load settings: %v, falling back to defaults", err)
		cfg = entity.DefaultSettings()
	}

	c.mu.Lock()
	c.speaker.Cancel()
	c.seq++
	id := c.seq
	c.view = entity.SessionView{
		State:        entity.SessionPositioning,
		OriginalText: text,
		Anchor:       anchor,
		Settings:     cfg,
	}
	c.mu.Unlock()

	c.run(ctx, id, text, cfg)
}

func (c *SessionController) run(ctx context.Context, id uint64, text string, cfg entity.UserSettings) {
	// Positioning -> CapabilityCheck is always immediate.
	if !c.advance(id, entity.SessionCapabilityCheck, nil) {
		return
	}

	callCtx, cancel := context.WithTimeout(ctx, c.engineTimeout)
	defer cancel()

	availability, err := c.engine.Availability(callCtx, cfg.SourceLang, cfg.TargetLang)
	if err != nil {
		c.fail(id, entity.NoticeTranslationFailed, true)
		return
	}
	if availability == engine.AvailabilityUnavailable {
		// Terminal for this session: no translator is created and
		// there is no retry.
		c.fail(id, entity.NoticePairUnavailable, false)
		return
	}

	translator, err := c.engine.Create(callCtx, cfg.SourceLang, cfg.TargetLang, func(float64) {
		// A download-progress signal flips the state without
		// resetting the text shown.
		c.advance(id, entity.SessionDownloading, func(v *entity.SessionView) {
			v.Downloading = true
		})
	})
	if err != nil {
		c.fail(id, entity.NoticeTranslationFailed, true)
		return
	}

	if !c.advance(id, entity.SessionTranslating, func(v *entity.SessionView) {
		v.Downloading = false
	}) {
		return
	}

	translated, err := translator.Translate(callCtx, text)
	if err != nil {
		c.fail(id, entity.NoticeTranslationFailed, true)
		return
	}
	c.advance(id, entity.SessionReady, func(v *entity.SessionView) {
		v.TranslatedText = translated
	})
}

// advance applies a transition when id is still the active session. A
// superseded or closed session swallows its late results silently.
func (c *SessionController) advance(id uint64, state entity.SessionState, mutate func(*entity.SessionView)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq != id {
		return false
	}
	c.view.State = state
	if mutate != nil {
		mutate(&c.view)
	}
	return true
}

func (c *SessionController) fail(id uint64, notice string, notify bool) {
	changed := c.advance(id, entity.SessionFailed, func(v *entity.SessionView) {
		v.Notice = notice
		v.Downloading = false
	})
	if changed && notify {
		c.notifier.Error(notice)
	}
}

// Save records the session's translation into the given dictionary.
// Valid while Ready only. It never transitions the session state and may
// be called repeatedly; each call creates an independent entry.
func (c *SessionController) Save(ctx context.Context, dictionaryID string) (*entity.Entry, error) {
	c.mu.Lock()
	if c.view.State != entity.SessionReady || c.view.TranslatedText == "" {
		c.mu.Unlock()
		return nil, entity.ErrNoActiveTranslation
	}
	id := c.seq
	text := c.view.OriginalText
	translated := c.view.TranslatedText
	c.mu.Unlock()

	created, err := c.store.AddEntry(ctx, dictionaryID, text, translated)
	if err != nil {
		c.notifier.Error("Failed to add to dictionary")
		return nil, err
	}

	c.mu.Lock()
	if c.seq == id {
		c.view.AddedTo = dictionaryID
	}
	c.mu.Unlock()
	c.notifier.Success("Added to dictionary")

	// Cosmetic marker, cleared shortly after a successful save.
	time.AfterFunc(c.markerTTL, func() {
		c.mu.Lock()
		if c.seq == id && c.view.AddedTo == dictionaryID {
			c.view.AddedTo = ""
		}
		c.mu.Unlock()
	})
	return created, nil
}

// Speak reads the captured text aloud when voice mode is on.
func (c *SessionController) Speak(ctx context.Context) error {
	c.mu.Lock()
	text := c.view.OriginalText
	cfg := c.view.Settings
	c.mu.Unlock()
	if text == "" || !cfg.VoiceMode {
		return nil
	}
	return c.speaker.Speak(ctx, text, cfg.SourceLang)
}

// Close dismisses the session: playback stops, captured state clears and
// the controller returns to Idle. The in-flight engine call is not
// cancelled; its eventual result is discarded instead.
func (c *SessionController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.speaker.Cancel()
	c.seq++
	c.view = entity.SessionView{State: entity.SessionIdle}
}

// View returns the renderable snapshot of the current session.
func (c *SessionController) View() entity.SessionView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}
