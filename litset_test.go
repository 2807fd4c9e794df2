package marquee

import "testing"

func TestLitSetAddContains(t *testing.T) {
	s := NewLitSet(101, 25)
	s.Add(Cell{55, 10})
	s.Add(Cell{55, 10})
	s.Add(Cell{100, 24})

	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
	if !s.Contains(Cell{55, 10}) || !s.Contains(Cell{100, 24}) {
		t.Error("added cells missing")
	}
	if s.Contains(Cell{54, 10}) {
		t.Error("unexpected cell")
	}
	if s.Contains(Cell{-1, 0}) || s.Contains(Cell{101, 0}) {
		t.Error("out-of-range cells are never lit")
	}
}

func TestLitSetAddOutOfRangePanics(t *testing.T) {
	s := NewLitSet(4, 4)
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	s.Add(Cell{4, 0})
}

func TestLitSetCellsRowMajor(t *testing.T) {
	s := NewLitSet(70, 3)
	s.Add(Cell{1, 2})
	s.Add(Cell{69, 0})
	s.Add(Cell{0, 1})
	got := s.Cells()
	want := []Cell{{69, 0}, {0, 1}, {1, 2}}
	if len(got) != len(want) {
		t.Fatalf("Cells = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Cells[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLitSetResetEqualCopy(t *testing.T) {
	a := NewLitSet(8, 2)
	b := NewLitSet(8, 2)
	a.Add(Cell{3, 1})
	if a.Equal(b) {
		t.Error("sets differ")
	}
	b.CopyFrom(a)
	if !a.Equal(b) {
		t.Error("copy should be equal")
	}
	a.Reset()
	if a.Len() != 0 || a.Contains(Cell{3, 1}) {
		t.Error("Reset should empty the set")
	}
	if !b.Contains(Cell{3, 1}) {
		t.Error("copy must not alias")
	}
}

func TestLitSetString(t *testing.T) {
	s := NewLitSet(3, 2)
	s.Add(Cell{0, 0})
	s.Add(Cell{2, 1})
	if got, want := s.String(), "#..\n..#\n"; got != want {
		t.Errorf("String = %q, want %q", got, want)
	}
}
