package history

import "strings"

// Linear is a linear undo/redo history of text snapshots. The live value can
// drift from the snapshot at the cursor until it is committed.
type Linear struct {
	entries []string
	cursor  int
	value   string
}

// NewLinear creates a history whose only entry is initial.
func NewLinear(initial string) *Linear {
	return &Linear{
		entries: []string{initial},
		value:   initial,
	}
}

// Value returns the live value.
func (h *Linear) Value() string {
	return h.value
}

// SetValue updates the live value without recording it.
func (h *Linear) SetValue(v string) {
	h.value = v
}

// Commit records the live value when it differs from the snapshot at the
// cursor and is not blank. Entries after the cursor are discarded.
func (h *Linear) Commit() bool {
	if h.entries[h.cursor] == h.value || strings.TrimSpace(h.value) == "" {
		return false
	}
	h.push(h.value)
	return true
}

// SetAndSave replaces the live value and records it unconditionally, empty
// strings included.
func (h *Linear) SetAndSave(v string) {
	h.value = v
	h.push(v)
}

func (h *Linear) push(v string) {
	h.entries = append(h.entries[:h.cursor+1:h.cursor+1], v)
	h.cursor = len(h.entries) - 1
}

// Undo steps back one snapshot and republishes it as the live value.
func (h *Linear) Undo() bool {
	if !h.CanUndo() {
		return false
	}
	h.cursor--
	h.value = h.entries[h.cursor]
	return true
}

// Redo steps forward one snapshot.
func (h *Linear) Redo() bool {
	if !h.CanRedo() {
		return false
	}
	h.cursor++
	h.value = h.entries[h.cursor]
	return true
}

func (h *Linear) CanUndo() bool {
	return h.cursor > 0
}

func (h *Linear) CanRedo() bool {
	return h.cursor < len(h.entries)-1
}

// Cursor returns the index of the current snapshot.
func (h *Linear) Cursor() int {
	return h.cursor
}

// Len returns the number of recorded snapshots.
func (h *Linear) Len() int {
	return len(h.entries)
}

// Entries returns a copy of the recorded snapshots.
func (h *Linear) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}
