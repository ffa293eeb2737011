package console

import "sync"

// History records submitted lines and walks them with up and down keys.
type History struct {
	mu      sync.Mutex
	entries []string
	index   int
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{index: -1}
}

// Add appends line and resets navigation.
func (h *History) Add(line string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, line)
	h.index = -1
}

// Entries returns a copy of the recorded lines, oldest first.
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.entries...)
}

// Prev moves one entry back in time. ok is false at the oldest entry.
func (h *History) Prev() (line string, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index >= len(h.entries)-1 {
		return "", false
	}
	h.index++
	return h.entries[len(h.entries)-1-h.index], true
}

// Next moves one entry forward. Stepping past the newest entry returns an
// empty line.
func (h *History) Next() (line string, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch {
	case h.index > 0:
		h.index--
		return h.entries[len(h.entries)-1-h.index], true
	case h.index == 0:
		h.index = -1
		return "", true
	}
	return "", false
}
