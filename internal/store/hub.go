package store

import "sync"

// hub fans a changed key out to its subscribers. It is the in-process
// replacement for the browser's cross-tab storage event: writers publish
// synchronously on every Set and consumers re-derive whatever they cache.
//
// Channels are buffered and notifications to a full channel are dropped; a
// consumer that misses one wakeup catches up on the next poll tick.
type hub struct {
	mu   sync.RWMutex
	subs map[string][]chan string
}

func newHub() *hub {
	return &hub{subs: make(map[string][]chan string)}
}

func (h *hub) subscribe(key string) (<-chan string, func()) {
	ch := make(chan string, 16)

	h.mu.Lock()
	h.subs[key] = append(h.subs[key], ch)
	h.mu.Unlock()

	unsub := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		subs := h.subs[key]
		for i, c := range subs {
			if c == ch {
				h.subs[key] = append(subs[:i], subs[i+1:]...)
				close(ch)
				break
			}
		}
		if len(h.subs[key]) == 0 {
			delete(h.subs, key)
		}
	}
	return ch, unsub
}

func (h *hub) publish(key string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subs[key] {
		select {
		case ch <- key:
		default:
			// drop if full
		}
	}
}
