package dungeon

import (
	"github.com/rogue-core/roguecore/pkg/rng"
	"github.com/rogue-core/roguecore/pkg/tile"
)

// carveMaze runs an iterative DFS over the 2-cell-stride lattice inside
// rect, returning every passage cell it carved (including the starting
// cell). At each step it enumerates the four directions whose +2
// neighbor lies in rect and hasn't been visited, picks one via
// reservoir-style selection (rng.Happens(i+1) over the i-th surviving
// candidate), and on success writes both the +1 and +2 neighbor before
// recursing from +2; on failure it backtracks to the previous cell.
func carveMaze(rect Rect, r *rng.RNG) []tile.Coord {
	used := make(map[tile.Coord]bool)
	var passages []tile.Coord
	mark := func(c tile.Coord) {
		if !used[c] {
			used[c] = true
			passages = append(passages, c)
		}
	}

	start := rect.UpperLeft()
	stack := []tile.Coord{start}
	mark(start)

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		dir, ok := pickMazeDirection(current, rect, used, r)
		if !ok {
			stack = stack[:len(stack)-1]
			continue
		}
		step := dir.Step()
		mid := current.Add(step)
		next := mid.Add(step)
		mark(mid)
		mark(next)
		stack = append(stack, next)
	}
	return passages
}

func pickMazeDirection(current tile.Coord, rect Rect, used map[tile.Coord]bool, r *rng.RNG) (tile.Direction, bool) {
	candidates := make([]tile.Direction, 0, 4)
	for _, d := range tile.OrthogonalDirections {
		step := d.Step()
		next := current.Add(tile.Coord{X: step.X * 2, Y: step.Y * 2})
		if rect.Contains(next) && !used[next] {
			candidates = append(candidates, d)
		}
	}
	var picked tile.Direction
	found := false
	for i, d := range candidates {
		if r.Happens(i + 1) {
			picked, found = d, true
		}
	}
	return picked, found
}
