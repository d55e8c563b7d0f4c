package dungeon

import "github.com/rogue-core/roguecore/pkg/tile"

// Rect is an axis-aligned rectangle of cells, upper-left inclusive and
// lower-right exclusive: it covers X in [Min.X, Max.X) and Y in
// [Min.Y, Max.Y).
type Rect struct {
	Min tile.Coord
	Max tile.Coord
}

// NewRect builds a Rect from an upper-left corner and a size.
func NewRect(upperLeft tile.Coord, width, height int) Rect {
	return Rect{Min: upperLeft, Max: tile.Coord{X: upperLeft.X + width, Y: upperLeft.Y + height}}
}

// Width returns the rectangle's horizontal extent.
func (r Rect) Width() int { return r.Max.X - r.Min.X }

// Height returns the rectangle's vertical extent.
func (r Rect) Height() int { return r.Max.Y - r.Min.Y }

// Area returns Width*Height.
func (r Rect) Area() int { return r.Width() * r.Height() }

// Contains reports whether c falls within the rectangle.
func (r Rect) Contains(c tile.Coord) bool {
	return c.X >= r.Min.X && c.X < r.Max.X && c.Y >= r.Min.Y && c.Y < r.Max.Y
}

// Interior returns the rectangle shrunk by one cell on every side (the
// floor area inside a room's surrounding wall).
func (r Rect) Interior() Rect {
	return Rect{Min: tile.Coord{X: r.Min.X + 1, Y: r.Min.Y + 1}, Max: tile.Coord{X: r.Max.X - 1, Y: r.Max.Y - 1}}
}

// Cells returns every coordinate in the rectangle in row-major order.
func (r Rect) Cells() []tile.Coord {
	out := make([]tile.Coord, 0, r.Area())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			out = append(out, tile.Coord{X: x, Y: y})
		}
	}
	return out
}

// Nth returns the k-th cell in row-major order, mirroring the Fenwick
// set's Nth so a selected index can be mapped back to a coordinate in
// O(1).
func (r Rect) Nth(k int) tile.Coord {
	w := r.Width()
	return tile.Coord{X: r.Min.X + k%w, Y: r.Min.Y + k/w}
}

// Index returns c's row-major offset within the rectangle. Callers must
// ensure Contains(c).
func (r Rect) Index(c tile.Coord) int {
	return (c.Y-r.Min.Y)*r.Width() + (c.X - r.Min.X)
}

// UpperLeft returns the Min corner.
func (r Rect) UpperLeft() tile.Coord { return r.Min }

// UpperRight returns the top-right corner cell (X is Max.X-1, Y is Min.Y).
func (r Rect) UpperRight() tile.Coord { return tile.Coord{X: r.Max.X - 1, Y: r.Min.Y} }

// LowerLeft returns the bottom-left corner cell (X is Min.X, Y is Max.Y-1).
func (r Rect) LowerLeft() tile.Coord { return tile.Coord{X: r.Min.X, Y: r.Max.Y - 1} }

// LowerRight returns the bottom-right corner.
func (r Rect) LowerRight() tile.Coord { return tile.Coord{X: r.Max.X - 1, Y: r.Max.Y - 1} }

// EdgeCells enumerates the boundary cells one step inside the rectangle
// facing direction d, used to pick a passage's endpoint on a room's
// perimeter. Mirrors inclusive_edges: Down/Up scan the bottom/top row
// excluding the corners, Left/Right scan the left/right column
// excluding the corners.
func (r Rect) EdgeCells(d tile.Direction) []tile.Coord {
	boundX := r.Max.X - 1
	boundY := r.Max.Y - 1
	var out []tile.Coord
	switch d {
	case tile.Down:
		start := r.LowerLeft()
		for x := start.X + 1; x < boundX; x++ {
			out = append(out, tile.Coord{X: x, Y: start.Y})
		}
	case tile.Up:
		start := r.UpperLeft()
		for x := start.X + 1; x < boundX; x++ {
			out = append(out, tile.Coord{X: x, Y: start.Y})
		}
	case tile.Left:
		start := r.UpperLeft()
		for y := start.Y + 1; y < boundY; y++ {
			out = append(out, tile.Coord{X: start.X, Y: y})
		}
	case tile.Right:
		start := r.UpperRight()
		for y := start.Y + 1; y < boundY; y++ {
			out = append(out, tile.Coord{X: start.X, Y: y})
		}
	default:
		panic("dungeon: EdgeCells requires an orthogonal direction")
	}
	return out
}
