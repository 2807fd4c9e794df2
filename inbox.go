package marquee

import "sync"

// inbox is a single-slot mailbox for committed text. A newer post replaces
// an untaken one; the tick loop takes at most one value per tick.
type inbox struct {
	mu      sync.Mutex
	text    string
	pending bool
}

// post stores text and reports whether it displaced an untaken value.
func (b *inbox) post(text string) (replaced bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	replaced = b.pending
	b.text = text
	b.pending = true
	return replaced
}

// take returns the pending text, if any, and empties the slot.
func (b *inbox) take() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.pending {
		return "", false
	}
	text := b.text
	b.text = ""
	b.pending = false
	return text, true
}
