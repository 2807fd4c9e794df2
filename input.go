package marquee

import (
	"unicode"
	"unicode/utf8"
)

// TextInput is a single-line edit buffer shared by the front ends. Keys
// are decoded by the front end; TextInput only edits runes.
type TextInput struct {
	buf    []rune
	maxLen int
}

// NewTextInput creates a buffer holding at most maxLen runes (0 = unlimited).
func NewTextInput(maxLen int) *TextInput {
	return &TextInput{maxLen: maxLen}
}

// Insert appends r. Control characters and runes beyond the length cap are
// ignored. Insert reports whether r was accepted.
func (t *TextInput) Insert(r rune) bool {
	if r == utf8.RuneError || unicode.IsControl(r) {
		return false
	}
	if t.maxLen > 0 && len(t.buf) >= t.maxLen {
		return false
	}
	t.buf = append(t.buf, r)
	return true
}

// InsertString inserts each rune of s.
func (t *TextInput) InsertString(s string) {
	for _, r := range s {
		t.Insert(r)
	}
}

// Backspace removes the last rune, if any.
func (t *TextInput) Backspace() {
	if len(t.buf) > 0 {
		t.buf = t.buf[:len(t.buf)-1]
	}
}

// Commit returns the buffered text and clears the buffer.
func (t *TextInput) Commit() string {
	s := string(t.buf)
	t.buf = t.buf[:0]
	return s
}

// String returns the buffered text without clearing it.
func (t *TextInput) String() string {
	return string(t.buf)
}

// Len returns the number of buffered runes.
func (t *TextInput) Len() int {
	return len(t.buf)
}
