package viz

import (
	"strings"
	"testing"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)

	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)

	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected dot 1 in first cell, got %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != 0x2880 {
		t.Errorf("expected dot 8 in second cell, got %U", c.Grid[0][1])
	}

	c.Clear()
	if c.String() != "⠀⠀" {
		t.Errorf("expected blank canvas, got %q", c.String())
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 0, 7, 0)

	for col := 0; col < 4; col++ {
		if c.Grid[0][col] != 0x2809 {
			t.Errorf("cell %d: expected top row lit, got %U", col, c.Grid[0][col])
		}
	}
}

func TestCanvasFillDisc(t *testing.T) {
	c := NewCanvas(4, 2)
	c.FillDisc(4, 4, 1)

	lit := 0
	for _, row := range c.Grid {
		for _, r := range row {
			for bits := r - 0x2800; bits > 0; bits &= bits - 1 {
				lit++
			}
		}
	}
	if lit != 5 {
		t.Errorf("expected 5 lit dots for r=1, got %d", lit)
	}

	if w, h := c.PixelSize(); w != 8 || h != 8 {
		t.Errorf("PixelSize() = %d, %d", w, h)
	}
	if n := strings.Count(c.String(), "\n"); n != 1 {
		t.Errorf("expected 2 rows, got %d newlines", n)
	}
}
