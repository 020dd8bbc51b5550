// Package bus delivers typed messages between execution contexts.
//
// Delivery is at-most-once per registered listener per message, with no
// acknowledgment, retry, or ordering guarantee relative to other message
// types. A panicking listener does not crash the bus; the message counts
// as handled for that listener.
package bus

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Jepennn/Lexa/internal/entity"
)

// Handler consumes one message.
type Handler func(entity.Message)

// Bus fans messages out to listeners registered per action.
type Bus struct {
	logger *logrus.Logger

	mu     sync.RWMutex
	subs   map[string]map[int]Handler
	nextID int
}

// New creates an empty bus. logger may be nil.
func New(logger *logrus.Logger) *Bus {
	if logger == nil {
		logger = logrus.New()
	}
	return &Bus{
		logger: logger,
		subs:   make(map[string]map[int]Handler),
	}
}

// Subscribe registers h for messages with the given action and returns
// the handle releasing it. Close is idempotent, so every session exit
// path can release the same handle safely.
func (b *Bus) Subscribe(action string, h Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	if b.subs[action] == nil {
		b.subs[action] = make(map[int]Handler)
	}
	b.subs[action][id] = h

	return &Subscription{bus: b, action: action, id: id}
}

// Publish delivers msg to every listener currently registered for its
// action.
func (b *Bus) Publish(msg entity.Message) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs[msg.Action()]))
	for _, h := range b.subs[msg.Action()] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		b.deliver(msg, h)
	}
}

func (b *Bus) deliver(msg entity.Message, h Handler) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.WithField("action", msg.Action()).
				Errorf("message listener panicked: %v", r)
		}
	}()
	h(msg)
}

// Subscription is a scoped registration on the bus.
type Subscription struct {
	bus    *Bus
	action string
	id     int
	once   sync.Once
}

// Close removes the listener. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.bus.mu.Lock()
		defer s.bus.mu.Unlock()
		delete(s.bus.subs[s.action], s.id)
	})
}
