package core

import (
	"strings"
	"testing"
)

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 5)

	s.Set(3, 2, 'X')
	if got := s.Get(3, 2); got != 'X' {
		t.Errorf("Get(3,2) = %q, want 'X'", got)
	}

	// Out of bounds writes are dropped, reads return space
	s.Set(-1, 0, 'A')
	s.Set(10, 0, 'B')
	s.Set(0, 5, 'C')
	if got := s.Get(-1, 0); got != ' ' {
		t.Errorf("Out-of-bounds Get = %q, want space", got)
	}
}

func TestScreenSetCellColor(t *testing.T) {
	s := NewScreen(4, 4)

	s.SetCell(1, 1, '#', ColorRed)
	cell := s.GetCell(1, 1)
	if cell.Rune != '#' || cell.Color != ColorRed {
		t.Errorf("GetCell = %+v, want {'#', ColorRed}", cell)
	}

	s.Clear()
	cell = s.GetCell(1, 1)
	if cell.Rune != ' ' || cell.Color != ColorDefault {
		t.Errorf("Clear did not reset cell: %+v", cell)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 3)

	s.DrawText(2, 1, "hello")
	if got := s.Row(1); !strings.Contains(got, "hello") {
		t.Errorf("Row(1) = %q, want containing 'hello'", got)
	}

	// Text running off the right edge is clipped, not wrapped
	s.DrawText(17, 0, "abcdef")
	if got := s.Row(0); !strings.HasSuffix(got, "abc") {
		t.Errorf("Row(0) = %q, want ending with 'abc'", got)
	}
	if got := s.Row(1); strings.Contains(got, "def") {
		t.Errorf("Text wrapped onto next row: %q", got)
	}
}

func TestScreenResizePreservesContent(t *testing.T) {
	s := NewScreen(10, 5)
	s.Set(2, 2, 'Z')

	s.Resize(20, 10)
	if got := s.Get(2, 2); got != 'Z' {
		t.Errorf("Resize lost content: Get(2,2) = %q", got)
	}

	s.Resize(3, 3)
	if got := s.Get(2, 2); got != 'Z' {
		t.Errorf("Shrink lost in-bounds content: Get(2,2) = %q", got)
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.Set(0, 0, 'a')
	s.Set(2, 1, 'b')

	want := "a  \n  b"
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
