package dungeon

import (
	"github.com/rogue-core/roguecore/pkg/dungeoncfg"
	"github.com/rogue-core/roguecore/pkg/field"
	"github.com/rogue-core/roguecore/pkg/indexedset"
	"github.com/rogue-core/roguecore/pkg/rerr"
	"github.com/rogue-core/roguecore/pkg/rng"
	"github.com/rogue-core/roguecore/pkg/tile"
)

// ItemPlacer is called once per Normal room during floor generation so
// the item subsystem can populate that room's floor without this
// package importing pkg/item. SetupRoom is handed the floor level and
// the room's interior rectangle, and calls occupy for every coordinate
// it wants to occupy.
type ItemPlacer interface {
	SetupRoom(level int, interior Rect, occupy func(tile.Coord))
}

// Floor is one level's generated room grid, field, and per-room free-
// cell bookkeeping.
type Floor struct {
	Rooms []*Room
	Field *field.Field

	roomNumX, roomNumY int
	nonEmptyRooms      *indexedset.Set // room IDs with Kind != RoomEmpty, indexed for select_cell
	doors              map[tile.Coord]bool
	stair              tile.Coord
	hasStair           bool
}

// GenFloor builds a new floor for the given level using the dungeon
// generator's seeded RNG, per §4.3: room grid partition, per-room
// maze/normal/empty decision, cell-attribute generation, and spanning-
// tree passage routing. placer may be nil to skip item placement.
func GenFloor(level int, cfg dungeoncfg.RogueDungeonCfg, width, height int, r *rng.RNG, placer ItemPlacer) (*Floor, error) {
	roomNumX, roomNumY := cfg.RoomNumX, cfg.RoomNumY
	numRooms := roomNumX * roomNumY
	roomW, roomH := width/roomNumX, height/roomNumY

	emptyCount := r.Range(0, cfg.MaxEmptyRooms+1)
	emptyIDs := make(map[int]bool, emptyCount)
	for _, idx := range r.Select(0, numRooms).Take(emptyCount) {
		emptyIDs[idx] = true
	}

	fld := field.New(width, height, tile.SurfaceNone)
	rooms := make([]*Room, 0, numRooms)
	nonEmpty := indexedset.New(numRooms)

	for gy := 0; gy < roomNumY; gy++ {
		for gx := 0; gx < roomNumX; gx++ {
			id := gy*roomNumX + gx
			size := tile.Coord{X: roomW, Y: roomH}
			top := tile.Coord{X: gx * roomW, Y: gy * roomH}
			if gy == 0 {
				top.Y++
				size.Y--
			}
			if top.Y+size.Y == height {
				size.Y--
			}

			var room *Room
			if emptyIDs[id] {
				anchor := tile.Coord{
					X: top.X + r.Range(1, size.X-1),
					Y: top.Y + r.Range(1, size.Y-1),
				}
				room = &Room{Kind: RoomEmpty, ID: id, IsDark: true, Anchor: anchor}
				room.initFreeSets()
			} else {
				isDark := r.Range(0, cfg.DarkLevel) < level
				if isDark && r.Happens(cfg.MazeRateInv) {
					rect := NewRect(top, size.X, size.Y)
					passages := carveMaze(rect, r)
					room = &Room{Kind: RoomMaze, ID: id, IsDark: isDark, Rect: rect, Passages: passages}
				} else {
					xsize := r.Range(cfg.MinRoomSize.X, size.X)
					ysize := r.Range(cfg.MinRoomSize.Y, size.Y)
					rect := NewRect(top, xsize, ysize)
					room = &Room{Kind: RoomNormal, ID: id, IsDark: isDark, Rect: rect}
				}
				room.initFreeSets()
				nonEmpty.Insert(id)
			}
			rooms = append(rooms, room)
		}
	}

	if err := drawRooms(fld, rooms, cfg, level, r); err != nil {
		return nil, rerr.Wrap(rerr.CodeMaybeBug, "GenFloor: drawRooms", err)
	}

	doors := make(map[tile.Coord]bool)
	register := func(kind PassageKind, c tile.Coord) error {
		cell, err := fld.At(c)
		if err != nil {
			return err
		}
		if kind == PassageDoor {
			cell.Surface = tile.SurfaceDoor
			doors[c] = true
			if genLocked(cfg, level, r) {
				cell.Attr = cell.Attr.Set(tile.AttrLocked)
			}
		} else {
			cell.Surface = tile.SurfacePassage
			if genHidden(cfg, level, r) {
				cell.Attr = cell.Attr.Set(tile.AttrHidden)
			}
		}
		return nil
	}
	if err := digPassages(rooms, roomNumX, roomNumY, r, register); err != nil {
		return nil, rerr.Wrap(rerr.CodeMaybeBug, "GenFloor: digPassages", err)
	}

	floor := &Floor{
		Rooms:         rooms,
		Field:         fld,
		roomNumX:      roomNumX,
		roomNumY:      roomNumY,
		nonEmptyRooms: nonEmpty,
		doors:         doors,
	}

	if placer != nil {
		for _, room := range rooms {
			if room.Kind != RoomNormal {
				continue
			}
			interior := room.InteriorRect()
			placer.SetupRoom(level, interior, func(c tile.Coord) {
				room.FillCell(c)
			})
		}
	}

	floor.placeStair(r)
	return floor, nil
}

// drawRooms writes each room's surfaces and generates per-cell
// attributes per §4.3 step 3: passages may be hidden, doors may be
// locked, and floor cells in a dark room carry AttrDark.
func drawRooms(fld *field.Field, rooms []*Room, cfg dungeoncfg.RogueDungeonCfg, level int, r *rng.RNG) error {
	for _, room := range rooms {
		switch room.Kind {
		case RoomNormal:
			if err := drawNormalRoom(fld, room); err != nil {
				return err
			}
		case RoomMaze:
			for _, c := range room.Passages {
				if err := fld.Set(c, tile.SurfacePassage); err != nil {
					return err
				}
				if genHidden(cfg, level, r) {
					markAttr(fld, c, tile.AttrHidden)
				}
			}
		}
	}
	return nil
}

func drawNormalRoom(fld *field.Field, room *Room) error {
	rect := room.Rect
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			c := tile.Coord{X: x, Y: y}
			surf := wallSurface(rect, c)
			if err := fld.Set(c, surf); err != nil {
				return err
			}
			if surf == tile.SurfaceFloor && room.IsDark {
				markAttr(fld, c, tile.AttrDark)
			}
		}
	}
	return nil
}

// wallSurface reports whether c, known to be inside rect, is on the
// perimeter (wall) or in the interior (floor). Corners use WallX; the
// top/bottom edges use WallX, the left/right edges use WallY.
func wallSurface(rect Rect, c tile.Coord) tile.Surface {
	onTopOrBottom := c.Y == rect.Min.Y || c.Y == rect.Max.Y-1
	onLeftOrRight := c.X == rect.Min.X || c.X == rect.Max.X-1
	switch {
	case onTopOrBottom:
		return tile.SurfaceWallX
	case onLeftOrRight:
		return tile.SurfaceWallY
	default:
		return tile.SurfaceFloor
	}
}

func genHidden(cfg dungeoncfg.RogueDungeonCfg, level int, r *rng.RNG) bool {
	return r.Range(0, cfg.DarkLevel) < level && r.Happens(cfg.HiddenPassageRateInv)
}

func genLocked(cfg dungeoncfg.RogueDungeonCfg, level int, r *rng.RNG) bool {
	return r.Range(0, cfg.DarkLevel) < level && r.Happens(cfg.LockedDoorRateInv)
}

func markAttr(fld *field.Field, c tile.Coord, attr tile.CellAttr) {
	cell, err := fld.At(c)
	if err != nil {
		return
	}
	cell.Attr = cell.Attr.Set(attr)
}

// placeStair picks any non-empty room and any of its character-free
// cells, writes the stair surface there, and marks the cell occupied.
func (f *Floor) placeStair(r *rng.RNG) {
	for f.nonEmptyRooms.Len() > 0 {
		idx, ok := f.nonEmptyRooms.Select(r)
		if !ok {
			return
		}
		room := f.Rooms[idx]
		c, ok := room.SelectCell(r, true)
		if !ok {
			f.nonEmptyRooms.Remove(idx)
			continue
		}
		f.Field.Set(c, tile.SurfaceStair)
		room.OccupyCell(c)
		f.stair = c
		f.hasStair = true
		return
	}
}

// Stair returns the floor's stair location, if one was placed.
func (f *Floor) Stair() (tile.Coord, bool) { return f.stair, f.hasStair }

// CanMove reports whether a character standing at from may step to
// the cell in direction dir, per §4.4: the destination must be
// walkable, not hidden, not locked, and diagonal moves through a
// passage or door are forbidden for the player (enemies may cut
// through passages).
func (f *Floor) CanMove(from tile.Coord, dir tile.Direction, isPlayer bool) bool {
	to := tile.Move(from, dir)
	cell, err := f.Field.At(to)
	if err != nil {
		return false
	}
	if !cell.Surface.Walkable() {
		return false
	}
	if cell.Attr.Has(tile.AttrHidden) || cell.Attr.Has(tile.AttrLocked) {
		return false
	}
	if dir.IsDiagonal() {
		fromCell, err := f.Field.At(from)
		if err != nil {
			return false
		}
		blocksDiagonal := func(s tile.Surface) bool { return s == tile.SurfacePassage || s == tile.SurfaceDoor }
		if isPlayer && (blocksDiagonal(cell.Surface) || blocksDiagonal(fromCell.Surface)) {
			return false
		}
	}
	return true
}

// RoomAt returns the room containing c, or nil if c belongs to no
// room's rectangle (a passage cell between rooms), for callers outside
// this package that need to test room membership (the enemy-phase
// activation area, per §4.5: "mean enemies whose rooms the player just
// entered").
func (f *Floor) RoomAt(c tile.Coord) *Room { return f.roomAt(c) }

// roomAt returns the room containing c, or nil if c belongs to no
// room's rectangle (a passage cell between rooms).
func (f *Floor) roomAt(c tile.Coord) *Room {
	for _, room := range f.Rooms {
		switch room.Kind {
		case RoomNormal, RoomMaze:
			if room.Rect.Contains(c) {
				return room
			}
		case RoomEmpty:
			if room.Anchor == c {
				return room
			}
		}
	}
	return nil
}

// PlayerIn runs the approach side-effects of a player entering cell c,
// per §4.4: if c is a door (room entry) or this is the player's
// initial placement, enter the room; then mark the eight neighbors
// approached and c itself visited.
func (f *Floor) PlayerIn(c tile.Coord, initial bool) {
	cell, err := f.Field.At(c)
	if err == nil && (cell.Surface == tile.SurfaceDoor || initial) {
		f.enterRoom(c)
	}
	for _, d := range tile.AllDirections {
		f.approach(c, d)
	}
	if err == nil {
		cell.Visit()
	}
}

func (f *Floor) enterRoom(c tile.Coord) {
	room := f.roomAt(c)
	if room == nil || room.Kind != RoomNormal {
		return
	}
	room.Visited = true
	if room.IsDark {
		return
	}
	for _, cd := range room.Rect.Cells() {
		cell, err := f.Field.At(cd)
		if err != nil {
			continue
		}
		cell.Attr = cell.Attr.Set(tile.AttrVisible | tile.AttrHasDrawn)
	}
}

// approach marks the neighbor of c in direction d approached, unless
// the neighbor is hidden or the move is a diagonal step into a
// passage (which the player cannot see around).
func (f *Floor) approach(c tile.Coord, d tile.Direction) {
	n := tile.Move(c, d)
	cell, err := f.Field.At(n)
	if err != nil || cell.Attr.Has(tile.AttrHidden) {
		return
	}
	if d.IsDiagonal() && cell.Surface == tile.SurfacePassage {
		return
	}
	cell.Approached()
}

// PlayerOut runs the departure side-effects of a player leaving cell
// c: if c is a door, leave_room hides a dark room's interior (not its
// walls), then every neighbor's Left() clears visibility for dark
// cells only.
func (f *Floor) PlayerOut(c tile.Coord) {
	cell, err := f.Field.At(c)
	if err == nil && cell.Surface == tile.SurfaceDoor {
		f.leaveRoom(c)
	}
	for _, d := range tile.AllDirections {
		n := tile.Move(c, d)
		if nc, err := f.Field.At(n); err == nil {
			nc.Left()
		}
	}
}

func (f *Floor) leaveRoom(c tile.Coord) {
	room := f.roomAt(c)
	if room == nil || room.Kind != RoomNormal || !room.IsDark || !room.Visited {
		return
	}
	for _, cd := range room.InteriorRect().Cells() {
		cell, err := f.Field.At(cd)
		if err != nil {
			continue
		}
		if cell.Surface == tile.SurfaceFloor {
			cell.Attr = cell.Attr.Clear(tile.AttrVisible)
		}
	}
}

// SecretDoorFound is emitted by Search for every locked door or
// hidden passage a search call newly reveals.
type SecretDoorFound struct {
	Coord tile.Coord
	Door  bool
}

// Search attempts, for each of c's eight neighbors, to reveal a
// hidden passage (probability 1/passageUnlockRateInv) or unlock a
// locked door (probability 1/doorUnlockRateInv), returning one event
// per newly revealed cell.
func (f *Floor) Search(c tile.Coord, cfg dungeoncfg.RogueDungeonCfg, r *rng.RNG) []SecretDoorFound {
	var found []SecretDoorFound
	for _, d := range tile.AllDirections {
		n := tile.Move(c, d)
		cell, err := f.Field.At(n)
		if err != nil {
			continue
		}
		if cell.Attr.Has(tile.AttrHidden) && r.Happens(cfg.PassageUnlockRateInv) {
			cell.Attr = cell.Attr.Clear(tile.AttrHidden)
			found = append(found, SecretDoorFound{Coord: n, Door: false})
		}
		if cell.Attr.Has(tile.AttrLocked) && r.Happens(cfg.DoorUnlockRateInv) {
			cell.Unlock()
			found = append(found, SecretDoorFound{Coord: n, Door: true})
		}
	}
	return found
}

// SelectCell uniformly draws a non-empty room, then a cell inside it
// matching the empty/character-free predicate, retrying against a
// different room whenever one turns out to have none left.
func (f *Floor) SelectCell(r *rng.RNG, characterFree bool) (tile.Coord, bool) {
	candidates := f.nonEmptyRooms.Clone()
	for candidates.Len() > 0 {
		idx, ok := candidates.Select(r)
		if !ok {
			return tile.Coord{}, false
		}
		room := f.Rooms[idx]
		c, ok := room.SelectCell(r, characterFree)
		if ok {
			return c, true
		}
		candidates.Remove(idx)
	}
	return tile.Coord{}, false
}
