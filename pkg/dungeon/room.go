package dungeon

import (
	"github.com/rogue-core/roguecore/pkg/indexedset"
	"github.com/rogue-core/roguecore/pkg/rng"
	"github.com/rogue-core/roguecore/pkg/tile"
)

// RoomKind distinguishes a normal walled room, a maze room carved from
// the same rectangle, or an empty (passage-only) placeholder that
// contributes no floor of its own.
type RoomKind int

const (
	RoomNormal RoomKind = iota
	RoomMaze
	RoomEmpty
)

// Room is one cell of the room_num_x * room_num_y grid a floor is built
// from. Normal and Maze rooms carry the rectangle they were assigned;
// Maze rooms additionally carry the list of interior passage cells the
// maze carver produced. Empty rooms carry only the anchor point used as
// their passage-routing endpoint.
type Room struct {
	Kind     RoomKind
	ID       int
	IsDark   bool
	Visited  bool
	Rect     Rect          // valid for Normal and Maze
	Passages []tile.Coord  // valid for Maze only
	Anchor   tile.Coord    // valid for Empty only

	// empty tracks interior cells with no object on them (items excluded);
	// charFree tracks interior cells free of any character. Both are
	// Fenwick-indexed over the room's interior cell ordering so a random
	// empty or character-free cell can be drawn in O(log n). Per the
	// spec's fix to the source's ambiguous fill_cell/unfill_cell
	// semantics, charFree always held a superset of empty: a cell
	// holding an item is not "empty" but is still "character-free" until
	// a character actually stands there.
	empty    *indexedset.Set
	charFree *indexedset.Set
}

// InteriorRect returns the room's floor area (its Rect minus the
// surrounding wall ring). Only meaningful for Normal rooms.
func (r *Room) InteriorRect() Rect { return r.Rect.Interior() }

// initFreeSets populates the empty/charFree Fenwick sets from the room's
// interior, called once after a Normal or Maze room's layout is fixed.
func (r *Room) initFreeSets() {
	switch r.Kind {
	case RoomNormal:
		n := r.InteriorRect().Area()
		r.empty = indexedset.FromRange(n)
		r.charFree = indexedset.FromRange(n)
	case RoomMaze:
		n := len(r.Passages)
		r.empty = indexedset.FromRange(n)
		r.charFree = indexedset.FromRange(n)
	default:
		r.empty = indexedset.New(0)
		r.charFree = indexedset.New(0)
	}
}

// cellAt maps an interior index back to a world coordinate.
func (r *Room) cellAt(idx int) tile.Coord {
	switch r.Kind {
	case RoomMaze:
		return r.Passages[idx]
	default:
		return r.InteriorRect().Nth(idx)
	}
}

// indexOf maps a world coordinate back to its interior index, or -1 if
// c does not belong to this room's selectable interior.
func (r *Room) indexOf(c tile.Coord) int {
	switch r.Kind {
	case RoomMaze:
		for i, p := range r.Passages {
			if p == c {
				return i
			}
		}
		return -1
	case RoomNormal:
		ir := r.InteriorRect()
		if !ir.Contains(c) {
			return -1
		}
		return ir.Index(c)
	default:
		return -1
	}
}

// FillCell marks c as holding an object: it is removed from the empty
// set (an item now sits there) but stays in the charFree set (a
// character may still step onto the same cell as an item).
func (r *Room) FillCell(c tile.Coord) {
	if idx := r.indexOf(c); idx >= 0 {
		r.empty.Remove(idx)
	}
}

// UnfillCell reverses FillCell.
func (r *Room) UnfillCell(c tile.Coord) {
	if idx := r.indexOf(c); idx >= 0 {
		r.empty.Insert(idx)
	}
}

// OccupyCell marks c as holding a character: removed from charFree only.
func (r *Room) OccupyCell(c tile.Coord) {
	if idx := r.indexOf(c); idx >= 0 {
		r.charFree.Remove(idx)
	}
}

// VacateCell reverses OccupyCell.
func (r *Room) VacateCell(c tile.Coord) {
	if idx := r.indexOf(c); idx >= 0 {
		r.charFree.Insert(idx)
	}
}

// SelectCell uniformly draws a cell matching the charFree/empty
// predicate. Returns ok=false if no such cell remains.
func (r *Room) SelectCell(rng *rng.RNG, characterFree bool) (tile.Coord, bool) {
	set := r.empty
	if characterFree {
		set = r.charFree
	}
	idx, ok := set.Select(rng)
	if !ok {
		return tile.Coord{}, false
	}
	return r.cellAt(idx), true
}

// HasEmptyCell reports whether the room still has at least one empty
// (itemless) cell.
func (r *Room) HasEmptyCell() bool { return r.empty != nil && r.empty.Len() > 0 }

// HasCharacterFreeCell reports whether the room still has at least one
// character-free cell.
func (r *Room) HasCharacterFreeCell() bool { return r.charFree != nil && r.charFree.Len() > 0 }
