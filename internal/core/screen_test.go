package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	// Check that it's initialized with spaces
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Errorf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, '●', ColorCyan)
	if got := s.GetCell(5, 5); got.Rune != '●' || got.Color != ColorCyan {
		t.Errorf("GetCell(5, 5) = %+v, expected cyan '●'", got)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')  // Should not panic
	s.Set(100, 0, 'A') // Should not panic
	s.Set(0, -1, 'A')  // Should not panic
	s.Set(0, 100, 'A') // Should not panic

	// Out of bounds get should return space
	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawRect(s.Bounds(), 'X', ColorRed)
	s.Clear()

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if c := s.GetCell(x, y); c != blankCell {
				t.Fatalf("Clear() left %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 3)
	s.DrawText(2, 1, "SCORE ▲", ColorYellow)

	if got := s.Row(1); !strings.HasPrefix(got, "  SCORE ▲") {
		t.Errorf("Row(1) = %q", got)
	}
	// Multi-byte runes occupy one cell each
	if s.Get(8, 1) != '▲' {
		t.Errorf("Get(8, 1) = %q, expected '▲'", s.Get(8, 1))
	}
	if s.GetCell(2, 1).Color != ColorYellow {
		t.Error("DrawText should apply the color")
	}

	// Clipped at the right edge
	s.DrawText(18, 0, "ABCD", ColorDefault)
	if s.Get(19, 0) != 'B' {
		t.Errorf("Get(19, 0) = %q, expected 'B'", s.Get(19, 0))
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(s.Bounds(), 0, "ABC", ColorDefault)

	if got := s.Row(0); got != "    ABC    " {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawBox(NewRect(1, 1, 5, 3), ColorPurple)

	tests := []struct {
		x, y int
		want rune
	}{
		{1, 1, '╭'},
		{5, 1, '╮'},
		{1, 3, '╰'},
		{5, 3, '╯'},
		{3, 1, '─'},
		{1, 2, '│'},
		{3, 2, ' '},
	}
	for _, tc := range tests {
		if got := s.Get(tc.x, tc.y); got != tc.want {
			t.Errorf("Get(%d, %d) = %q, expected %q", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestScreenDrawVLine(t *testing.T) {
	s := NewScreen(5, 5)
	s.DrawVLine(2, 1, 3, '█', ColorMagenta)

	for y := 1; y < 4; y++ {
		if c := s.GetCell(2, y); c.Rune != '█' || c.Color != ColorMagenta {
			t.Errorf("GetCell(2, %d) = %+v", y, c)
		}
	}
	if s.Get(2, 0) != ' ' || s.Get(2, 4) != ' ' {
		t.Error("DrawVLine drew outside its range")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.Set(0, 0, 'A')
	s.Set(2, 1, 'B')

	if got := s.String(); got != "A  \n  B" {
		t.Errorf("String() = %q", got)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.Set(1, 1, 'X')
	s.Resize(20, 5)

	if s.Width() != 20 || s.Height() != 5 {
		t.Errorf("Resize() gave %dx%d", s.Width(), s.Height())
	}
	if s.Get(1, 1) != ' ' {
		t.Error("Resize() should clear the buffer")
	}
	if s.Row(10) != strings.Repeat(" ", 20) {
		t.Error("Row() out of range should be blank")
	}
}
