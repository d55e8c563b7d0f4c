// Package field implements the 2-D grid of cells that backs one dungeon
// floor: surfaces, the attribute bitflags layered on top of them, and
// the approach/leave/search transitions a floor drives as the player
// moves through it.
package field

import (
	"github.com/rogue-core/roguecore/pkg/rerr"
	"github.com/rogue-core/roguecore/pkg/tile"
)

// Cell is one grid position: a drawable surface plus its attribute bits.
type Cell struct {
	Surface tile.Surface
	Attr    tile.CellAttr
}

// Approached marks the cell as drawn and visible, unless it is hidden.
// Mirrors the teacher's Cell::approached semantics: a hidden passage or
// locked door stays dark until revealed by search, even when the player
// walks adjacent to it.
func (c *Cell) Approached() {
	if c.Attr.Has(tile.AttrHidden) {
		return
	}
	c.Attr = c.Attr.Set(tile.AttrHasDrawn)
	c.SetVisible(true)
}

// Left clears visibility if the cell belongs to a dark room; cells
// outside dark rooms keep whatever visibility they already have.
func (c *Cell) Left() {
	if c.Attr.Has(tile.AttrDark) {
		c.SetVisible(false)
	}
}

// SetVisible sets or clears AttrVisible.
func (c *Cell) SetVisible(on bool) {
	if on {
		c.Attr = c.Attr.Set(tile.AttrVisible)
	} else {
		c.Attr = c.Attr.Clear(tile.AttrVisible)
	}
}

// IsVisible reports whether AttrVisible is currently set.
func (c *Cell) IsVisible() bool { return c.Attr.Has(tile.AttrVisible) }

// IsObjVisible reports whether an object on this cell would be seen,
// which is true both while the cell is lit and once it has ever been
// drawn (the sticky has_drawn memory).
func (c *Cell) IsObjVisible() bool {
	return c.Attr.Has(tile.AttrVisible) || c.Attr.Has(tile.AttrHasDrawn)
}

// Visit marks the cell visited.
func (c *Cell) Visit() { c.Attr = c.Attr.Set(tile.AttrVisited) }

// IsVisited reports whether the cell has ever been visited.
func (c *Cell) IsVisited() bool { return c.Attr.Has(tile.AttrVisited) }

// IsHidden reports whether the cell is still concealed.
func (c *Cell) IsHidden() bool { return c.Attr.Has(tile.AttrHidden) }

// IsLocked reports whether the cell is a still-locked door.
func (c *Cell) IsLocked() bool { return c.Attr.Has(tile.AttrLocked) }

// Unlock clears both AttrLocked and AttrHidden and makes the cell
// visible, used when search succeeds against a locked door.
func (c *Cell) Unlock() {
	c.Attr = c.Attr.Clear(tile.AttrLocked | tile.AttrHidden)
	c.SetVisible(true)
}

// Glyph returns the drawable byte for this cell: its surface's glyph if
// visible, a blank space otherwise.
func (c *Cell) Glyph() byte {
	if c.IsVisible() {
		return c.Surface.Glyph()
	}
	return ' '
}

// Field is a width*height grid of Cells, row-major, indexed by
// tile.Coord{X, Y}.
type Field struct {
	cells  []Cell
	width  int
	height int
}

// New creates a width*height field where every cell has the given
// initial surface and zero attributes.
func New(width, height int, initial tile.Surface) *Field {
	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i] = Cell{Surface: initial}
	}
	return &Field{cells: cells, width: width, height: height}
}

// Width returns the field's column count.
func (f *Field) Width() int { return f.width }

// Height returns the field's row count.
func (f *Field) Height() int { return f.height }

// InBounds reports whether c falls within the field.
func (f *Field) InBounds(c tile.Coord) bool {
	return c.X >= 0 && c.X < f.width && c.Y >= 0 && c.Y < f.height
}

func (f *Field) index(c tile.Coord) int { return c.Y*f.width + c.X }

// At returns a pointer to the cell at c, or an Index error if c is out
// of bounds.
func (f *Field) At(c tile.Coord) (*Cell, error) {
	if !f.InBounds(c) {
		return nil, rerr.Newf(rerr.CodeIndex, "coord %v out of bounds (%dx%d)", c, f.width, f.height)
	}
	return &f.cells[f.index(c)], nil
}

// MustAt is At but panics on out-of-bounds access; intended for callers
// that have already validated c via InBounds (the hot generation paths).
func (f *Field) MustAt(c tile.Coord) *Cell {
	cell, err := f.At(c)
	if err != nil {
		panic(err)
	}
	return cell
}

// Set overwrites the surface at c, leaving its attributes untouched.
func (f *Field) Set(c tile.Coord, s tile.Surface) error {
	cell, err := f.At(c)
	if err != nil {
		return err
	}
	cell.Surface = s
	return nil
}

// SurfaceAt returns the surface at c, or SurfaceNone if out of bounds.
func (f *Field) SurfaceAt(c tile.Coord) tile.Surface {
	cell, err := f.At(c)
	if err != nil {
		return tile.SurfaceNone
	}
	return cell.Surface
}

// Neighbors8 returns the eight compass-adjacent coordinates of c that
// lie within the field, in tile.AllDirections order.
func (f *Field) Neighbors8(c tile.Coord) []tile.Coord {
	out := make([]tile.Coord, 0, 8)
	for _, d := range tile.AllDirections {
		n := tile.Move(c, d)
		if f.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// RevealAll marks every cell visible and has-drawn; used for the debug
// "hide_dungeon=false" visibility override.
func (f *Field) RevealAll() {
	for i := range f.cells {
		f.cells[i].Attr = f.cells[i].Attr.Set(tile.AttrVisible | tile.AttrHasDrawn)
	}
}
