package dungeon

import (
	"testing"

	"github.com/rogue-core/roguecore/pkg/tile"
	"pgregory.net/rapid"
)

func TestRectWidthHeightArea(t *testing.T) {
	r := NewRect(tile.Coord{X: 2, Y: 3}, 5, 4)
	if r.Width() != 5 || r.Height() != 4 || r.Area() != 20 {
		t.Fatalf("got width=%d height=%d area=%d", r.Width(), r.Height(), r.Area())
	}
}

func TestRectContainsExclusiveMax(t *testing.T) {
	r := NewRect(tile.Coord{X: 0, Y: 0}, 3, 3)
	if !r.Contains(tile.Coord{X: 2, Y: 2}) {
		t.Fatal("expected (2,2) to be contained")
	}
	if r.Contains(tile.Coord{X: 3, Y: 0}) {
		t.Fatal("Max is exclusive, (3,0) should not be contained")
	}
}

func TestRectInterior(t *testing.T) {
	r := NewRect(tile.Coord{X: 0, Y: 0}, 5, 5)
	in := r.Interior()
	if in.Width() != 3 || in.Height() != 3 {
		t.Fatalf("interior of 5x5 should be 3x3, got %dx%d", in.Width(), in.Height())
	}
}

func TestRectNthIndexRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w := rapid.IntRange(1, 10).Draw(rt, "w")
		h := rapid.IntRange(1, 10).Draw(rt, "h")
		r := NewRect(tile.Coord{X: 0, Y: 0}, w, h)
		k := rapid.IntRange(0, w*h-1).Draw(rt, "k")
		c := r.Nth(k)
		if !r.Contains(c) {
			rt.Fatalf("Nth(%d) = %v not contained in rect", k, c)
		}
		if r.Index(c) != k {
			rt.Fatalf("Index(Nth(%d)) = %d, want %d", k, r.Index(c), k)
		}
	})
}

func TestRectCellsCoversArea(t *testing.T) {
	r := NewRect(tile.Coord{X: 0, Y: 0}, 4, 3)
	cells := r.Cells()
	if len(cells) != r.Area() {
		t.Fatalf("Cells() len = %d, want %d", len(cells), r.Area())
	}
}

func TestEdgeCellsExcludesCorners(t *testing.T) {
	r := NewRect(tile.Coord{X: 0, Y: 0}, 5, 5)
	for _, d := range []tile.Direction{tile.Up, tile.Down, tile.Left, tile.Right} {
		edges := r.EdgeCells(d)
		if len(edges) != 3 {
			t.Fatalf("direction %v: got %d edge cells, want 3", d, len(edges))
		}
		for _, c := range edges {
			if c == r.UpperLeft() || c == r.UpperRight() || c == r.LowerLeft() || c == r.LowerRight() {
				t.Fatalf("direction %v: edge cell %v is a corner", d, c)
			}
		}
	}
}

func TestEdgeCellsPanicsOnDiagonal(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for diagonal direction")
		}
	}()
	r := NewRect(tile.Coord{X: 0, Y: 0}, 5, 5)
	r.EdgeCells(tile.UpLeft)
}
