package snapshot

import (
	"sync"
)

// Change describes one snapshot swap, as delivered to stream subscribers.
type Change struct {
	ETag  string
	Rules int // size of the new rule set
}

var (
	subMu sync.Mutex
	subs  = make(map[chan Change]struct{})
)

// Subscribe registers a listener for snapshot swaps and returns its channel
// with an unsubscribe func. The channel buffers one Change; a subscriber
// that falls behind misses intermediate swaps, which is fine because every
// Change carries the latest ETag.
func Subscribe() (<-chan Change, func()) {
	ch := make(chan Change, 1)
	subMu.Lock()
	subs[ch] = struct{}{}
	subMu.Unlock()

	unsub := func() {
		subMu.Lock()
		delete(subs, ch)
		close(ch)
		subMu.Unlock()
	}
	return ch, unsub
}

// publishChange notifies all listeners without ever blocking a save.
func publishChange(c Change) {
	subMu.Lock()
	for ch := range subs {
		select {
		case ch <- c:
		default: // slow subscriber, skip
		}
	}
	subMu.Unlock()
}
