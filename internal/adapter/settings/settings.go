// Package settings implements the read/subscribe settings port over the
// kv store. Each setting lives under its own scalar key, mirroring the
// flat settings bag of the host platform.
package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Jepennn/Lexa/internal/entity"
	"github.com/Jepennn/Lexa/internal/infrastructure/kv"
	"github.com/Jepennn/Lexa/internal/repository"
)

// Settings keys. Values are JSON scalars, no nesting.
const (
	keySourceLang        = "sourceLang"
	keyTargetLang        = "targetLang"
	keyVoiceMode         = "voiceMode"
	keyDictionaryMode    = "dictionaryMode"
	keyHasSeenOnboarding = "hasSeenOnboarding"
)

type settingsPort struct {
	kv kv.Store

	mu       sync.Mutex
	watchers map[int]func(entity.UserSettings)
	nextID   int
}

// New wires the settings port over the given key-value store.
func New(store kv.Store) repository.Settings {
	return &settingsPort{
		kv:       store,
		watchers: make(map[int]func(entity.UserSettings)),
	}
}

func (p *settingsPort) Load(ctx context.Context) (entity.UserSettings, error) {
	s := entity.DefaultSettings()
	if err := p.getString(ctx, keySourceLang, &s.SourceLang); err != nil {
		return entity.UserSettings{}, err
	}
	if err := p.getString(ctx, keyTargetLang, &s.TargetLang); err != nil {
		return entity.UserSettings{}, err
	}
	if err := p.getBool(ctx, keyVoiceMode, &s.VoiceMode); err != nil {
		return entity.UserSettings{}, err
	}
	if err := p.getBool(ctx, keyDictionaryMode, &s.DictionaryMode); err != nil {
		return entity.UserSettings{}, err
	}
	if err := p.getBool(ctx, keyHasSeenOnboarding, &s.HasSeenOnboarding); err != nil {
		return entity.UserSettings{}, err
	}
	return s, nil
}

func (p *settingsPort) Save(ctx context.Context, s entity.UserSettings) error {
	pairs := map[string]any{
		keySourceLang:        s.SourceLang,
		keyTargetLang:        s.TargetLang,
		keyVoiceMode:         s.VoiceMode,
		keyDictionaryMode:    s.DictionaryMode,
		keyHasSeenOnboarding: s.HasSeenOnboarding,
	}
	for key, value := range pairs {
		if err := p.set(ctx, key, value); err != nil {
			return err
		}
	}
	p.notify(s)
	return nil
}

func (p *settingsPort) EnsureDefaults(ctx context.Context) error {
	defaults := entity.DefaultSettings()
	pairs := map[string]any{
		keySourceLang:        defaults.SourceLang,
		keyTargetLang:        defaults.TargetLang,
		keyVoiceMode:         defaults.VoiceMode,
		keyDictionaryMode:    defaults.DictionaryMode,
		keyHasSeenOnboarding: defaults.HasSeenOnboarding,
	}
	for key, value := range pairs {
		_, ok, err := p.kv.Get(ctx, key)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		if err := p.set(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}

func (p *settingsPort) MarkOnboardingSeen(ctx context.Context) error {
	if err := p.set(ctx, keyHasSeenOnboarding, true); err != nil {
		return err
	}
	s, err := p.Load(ctx)
	if err != nil {
		return err
	}
	p.notify(s)
	return nil
}

func (p *settingsPort) Watch(fn func(entity.UserSettings)) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.watchers[id] = fn
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.watchers, id)
			p.mu.Unlock()
		})
	}
}

func (p *settingsPort) notify(s entity.UserSettings) {
	p.mu.Lock()
	watchers := make([]func(entity.UserSettings), 0, len(p.watchers))
	for _, fn := range p.watchers {
		watchers = append(watchers, fn)
	}
	p.mu.Unlock()
	for _, fn := range watchers {
		fn(s)
	}
}

func (p *settingsPort) set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode setting %s: %w", key, err)
	}
	return p.kv.Set(ctx, key, raw)
}

func (p *settingsPort) getString(ctx context.Context, key string, dst *string) error {
	raw, ok, err := p.kv.Get(ctx, key)
	if err != nil || !ok {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode setting %s: %w", key, err)
	}
	return nil
}

func (p *settingsPort) getBool(ctx context.Context, key string, dst *bool) error {
	raw, ok, err := p.kv.Get(ctx, key)
	if err != nil || !ok {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode setting %s: %w", key, err)
	}
	return nil
}
