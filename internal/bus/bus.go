// Package bus carries suggestion-prefill events between components. A chip
// clicked on one surface pre-fills (never submits) the guest's next
// utterance on another; the typed publish/subscribe keeps that hand-off
// explicit instead of relying on ambient broadcast.
package bus

import "sync"

// SuggestionEvent asks the chat surface of one session to pre-fill the
// input box with the given text.
type SuggestionEvent struct {
	SessionID string `json:"sessionId"`
	Text      string `json:"text"`
}

// SuggestionBus fans events out to per-session subscribers. Publishing
// never blocks; a subscriber that cannot keep up drops events.
type SuggestionBus struct {
	mu   sync.RWMutex
	subs map[string]map[chan SuggestionEvent]struct{}
}

// New returns an empty bus.
func New() *SuggestionBus {
	return &SuggestionBus{subs: make(map[string]map[chan SuggestionEvent]struct{})}
}

// Subscribe registers for one session's prefill events. The returned
// cancel func releases the subscription; the channel is not closed.
func (b *SuggestionBus) Subscribe(sessionID string) (<-chan SuggestionEvent, func()) {
	ch := make(chan SuggestionEvent, 8)

	b.mu.Lock()
	set := b.subs[sessionID]
	if set == nil {
		set = make(map[chan SuggestionEvent]struct{})
		b.subs[sessionID] = set
	}
	set[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if set, ok := b.subs[sessionID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(b.subs, sessionID)
			}
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber of its session.
func (b *SuggestionBus) Publish(evt SuggestionEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs[evt.SessionID] {
		select {
		case ch <- evt:
		default:
		}
	}
}
