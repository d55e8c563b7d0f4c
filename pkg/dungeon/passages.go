package dungeon

import (
	"github.com/rogue-core/roguecore/pkg/indexedset"
	"github.com/rogue-core/roguecore/pkg/rerr"
	"github.com/rogue-core/roguecore/pkg/rng"
	"github.com/rogue-core/roguecore/pkg/tile"
)

// PassageKind distinguishes the two things a passage endpoint can draw
// as: a proper door when it lands on a Normal room's wall, or a bare
// passage cell when it lands on a Maze or Empty room.
type PassageKind int

const (
	PassagePlain PassageKind = iota
	PassageDoor
)

// roomGraphNode is one cell of the room_num_x * room_num_y adjacency
// grid used to route the spanning tree: candidates maps a neighboring
// room index to the direction that reaches it.
type roomGraphNode struct {
	candidates map[int]tile.Direction
}

func buildRoomGraph(roomNumX, roomNumY int) []roomGraphNode {
	nodes := make([]roomGraphNode, roomNumX*roomNumY)
	for y := 0; y < roomNumY; y++ {
		for x := 0; x < roomNumX; x++ {
			id := y*roomNumX + x
			cand := make(map[int]tile.Direction, 4)
			for _, d := range tile.OrthogonalDirections {
				step := d.Step()
				nx, ny := x+step.X, y+step.Y
				if nx < 0 || nx >= roomNumX || ny < 0 || ny >= roomNumY {
					continue
				}
				cand[ny*roomNumX+nx] = d
			}
			nodes[id] = roomGraphNode{candidates: cand}
		}
	}
	return nodes
}

// digPassages builds a spanning tree over the room grid and digs one
// L-shaped passage per tree edge, calling register once per passage or
// door cell it produces. It mirrors the reservoir-style edge selection
// of the original passage carver: starting from a random room, it
// repeatedly extends from the current room to an unselected neighbor
// (reservoir-sampled among the surviving candidates), or, once a room's
// neighbors are exhausted, jumps to any already-connected room and
// keeps trying.
func digPassages(rooms []*Room, roomNumX, roomNumY int, r *rng.RNG, register func(PassageKind, tile.Coord) error) error {
	graph := buildRoomGraph(roomNumX, roomNumY)
	numRooms := len(rooms)
	if numRooms == 0 {
		return nil
	}
	selected := indexedset.New(numRooms)
	curRoom := r.Range(0, numRooms)
	selected.Insert(curRoom)

	for selected.Len() < numRooms {
		type candidate struct {
			room int
			dir  tile.Direction
		}
		var candidates []candidate
		for i := 0; i < numRooms; i++ {
			if selected.Contains(i) {
				continue
			}
			if d, ok := graph[curRoom].candidates[i]; ok {
				candidates = append(candidates, candidate{room: i, dir: d})
			}
		}
		var picked *candidate
		for i := range candidates {
			if r.Happens(i + 1) {
				picked = &candidates[i]
			}
		}
		if picked != nil {
			selected.Insert(picked.room)
			if err := connectRooms(rooms[curRoom], rooms[picked.room], picked.dir, r, register); err != nil {
				return rerr.Wrap(rerr.CodeMaybeBug, "digPassages", err)
			}
			continue
		}
		next, ok := selected.Select(r)
		if !ok {
			return rerr.New(rerr.CodeMaybeBug, "digPassages: selected room set unexpectedly empty")
		}
		curRoom = next
	}
	return nil
}

func connectRooms(room1, room2 *Room, direction tile.Direction, r *rng.RNG, register func(PassageKind, tile.Coord) error) error {
	if direction == tile.Up || direction == tile.Left {
		room1, room2 = room2, room1
		direction = direction.Reverse()
	}
	start := selectEndpoint(room1, direction, r)
	end := selectEndpoint(room2, direction.Reverse(), r)

	if err := register(doorKind(room1), start); err != nil {
		return err
	}
	if err := register(doorKind(room2), end); err != nil {
		return err
	}

	var turnPos tile.Coord
	var turnDir tile.Direction
	var turnDist int
	switch direction {
	case tile.Down:
		y := start.Y + 1
		if y < end.Y {
			y = r.Range(y, end.Y)
		}
		turnDir = tile.Left
		if start.X < end.X {
			turnDir = tile.Right
		}
		turnPos = tile.Coord{X: start.X, Y: y}
		turnDist = abs(start.X - end.X)
	case tile.Right:
		x := start.X + 1
		if x < end.X {
			x = r.Range(x, end.X)
		}
		turnDir = tile.Up
		if start.Y < end.Y {
			turnDir = tile.Down
		}
		turnPos = tile.Coord{X: x, Y: start.Y}
		turnDist = abs(start.Y - end.Y)
	default:
		return rerr.Newf(rerr.CodeMaybeBug, "connectRooms: invalid normalized direction %v", direction)
	}

	// leg 1: start -> turnPos (exclusive of start)
	for _, c := range walk(start, direction, turnPos) {
		if err := register(PassagePlain, c); err != nil {
			return err
		}
	}
	if turnPos != end {
		if err := register(PassagePlain, turnPos); err != nil {
			return err
		}
	}
	// leg 2: the turn itself, turnDist cells long
	cur := turnPos
	for i := 0; i < turnDist; i++ {
		cur = tile.Move(cur, turnDir)
		if err := register(PassagePlain, cur); err != nil {
			return err
		}
	}
	// leg 3: cur -> end (exclusive of cur, inclusive up to but not past end)
	for _, c := range walk(cur, direction, end) {
		if err := register(PassagePlain, c); err != nil {
			return err
		}
	}
	return nil
}

// walk enumerates the cells strictly between from and to (exclusive of
// from, inclusive of any cell short of to) while stepping in direction
// d, stopping once it would reach or pass to.
func walk(from tile.Coord, d tile.Direction, to tile.Coord) []tile.Coord {
	var out []tile.Coord
	cur := from
	step := d.Step()
	for {
		cur = tile.Move(cur, d)
		if cur == to || (cur.X-to.X)*step.X > 0 || (cur.Y-to.Y)*step.Y > 0 {
			return out
		}
		out = append(out, cur)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func doorKind(room *Room) PassageKind {
	if room.Kind == RoomNormal {
		return PassageDoor
	}
	return PassagePlain
}

func selectEndpoint(room *Room, direction tile.Direction, r *rng.RNG) tile.Coord {
	switch room.Kind {
	case RoomNormal:
		edges := room.Rect.EdgeCells(direction)
		return rng.Choose(r, edges)
	case RoomMaze:
		return rng.Choose(r, room.Passages)
	default:
		return room.Anchor
	}
}
