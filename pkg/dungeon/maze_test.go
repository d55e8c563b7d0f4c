package dungeon

import (
	"testing"

	"github.com/rogue-core/roguecore/pkg/rng"
	"github.com/rogue-core/roguecore/pkg/tile"
	"pgregory.net/rapid"
)

func TestCarveMazeStaysInRect(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w := rapid.IntRange(3, 15).Draw(rt, "w")
		h := rapid.IntRange(3, 15).Draw(rt, "h")
		rect := NewRect(tile.Coord{X: 0, Y: 0}, w, h)
		r := rng.NewRNG(rapid.Uint64().Draw(rt, "seed"), "maze", nil)

		passages := carveMaze(rect, r)
		if len(passages) == 0 {
			rt.Fatal("carveMaze produced no passages")
		}
		seen := make(map[tile.Coord]bool)
		for _, c := range passages {
			if !rect.Contains(c) {
				rt.Fatalf("passage %v escaped rect %v", c, rect)
			}
			if seen[c] {
				rt.Fatalf("passage %v duplicated", c)
			}
			seen[c] = true
		}
	})
}

func TestCarveMazeIsDeterministic(t *testing.T) {
	rect := NewRect(tile.Coord{X: 0, Y: 0}, 9, 9)
	r1 := rng.NewRNG(42, "maze", nil)
	r2 := rng.NewRNG(42, "maze", nil)

	p1 := carveMaze(rect, r1)
	p2 := carveMaze(rect, r2)
	if len(p1) != len(p2) {
		t.Fatalf("lengths differ: %d vs %d", len(p1), len(p2))
	}
	for i := range p1 {
		if p1[i] != p2[i] {
			t.Fatalf("passage %d differs: %v vs %v", i, p1[i], p2[i])
		}
	}
}

func TestCarveMazeIncludesStartCell(t *testing.T) {
	rect := NewRect(tile.Coord{X: 2, Y: 2}, 5, 5)
	r := rng.NewRNG(7, "maze", nil)
	passages := carveMaze(rect, r)
	if passages[0] != rect.UpperLeft() {
		t.Fatalf("first passage cell should be the rect's upper-left corner, got %v", passages[0])
	}
}
