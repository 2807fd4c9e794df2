package marquee

import "testing"

func TestTextInputEditing(t *testing.T) {
	in := NewTextInput(0)
	in.InsertString("HELO")
	in.Backspace()
	in.InsertString("LO")
	if got := in.String(); got != "HELLO" {
		t.Errorf("String = %q, want HELLO", got)
	}
	if in.Len() != 5 {
		t.Errorf("Len = %d", in.Len())
	}
	if got := in.Commit(); got != "HELLO" {
		t.Errorf("Commit = %q", got)
	}
	if in.Len() != 0 || in.String() != "" {
		t.Error("Commit should clear the buffer")
	}
}

func TestTextInputBackspaceEmpty(t *testing.T) {
	in := NewTextInput(0)
	in.Backspace()
	if in.Len() != 0 {
		t.Error("backspace on empty buffer should be a no-op")
	}
}

func TestTextInputRejectsControl(t *testing.T) {
	in := NewTextInput(0)
	for _, r := range []rune{'\n', '\r', '\b', 0x7f, '\t'} {
		if in.Insert(r) {
			t.Errorf("Insert(%q) accepted", r)
		}
	}
	if !in.Insert('é') {
		t.Error("non-ASCII letters should be accepted")
	}
}

func TestTextInputMaxLen(t *testing.T) {
	in := NewTextInput(3)
	in.InsertString("ABCDE")
	if got := in.String(); got != "ABC" {
		t.Errorf("String = %q, want ABC", got)
	}
	if in.Insert('Z') {
		t.Error("insert past cap should fail")
	}
	in.Backspace()
	if !in.Insert('Z') || in.String() != "ABZ" {
		t.Errorf("String = %q, want ABZ", in.String())
	}
}

func TestTextInputMultibyteBackspace(t *testing.T) {
	in := NewTextInput(0)
	in.InsertString("Aé")
	in.Backspace()
	if got := in.String(); got != "A" {
		t.Errorf("String = %q, want A", got)
	}
}
