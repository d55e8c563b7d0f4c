package dungeon

import (
	"testing"

	"github.com/rogue-core/roguecore/pkg/dungeoncfg"
	"github.com/rogue-core/roguecore/pkg/rng"
	"github.com/rogue-core/roguecore/pkg/tile"
	"pgregory.net/rapid"
)

func testDungeonCfg() dungeoncfg.RogueDungeonCfg {
	cfg := dungeoncfg.Default()
	return cfg.Dungeon
}

func TestGenFloorProducesAllRooms(t *testing.T) {
	cfg := testDungeonCfg()
	r := rng.NewRNG(1, "dungeon", nil)
	floor, err := GenFloor(1, cfg, 80, 24, r, nil)
	if err != nil {
		t.Fatalf("GenFloor: %v", err)
	}
	want := cfg.RoomNumX * cfg.RoomNumY
	if len(floor.Rooms) != want {
		t.Fatalf("got %d rooms, want %d", len(floor.Rooms), want)
	}
}

func TestGenFloorDeterministic(t *testing.T) {
	cfg := testDungeonCfg()
	run := func() []byte {
		r := rng.NewRNG(77, "dungeon", nil)
		floor, err := GenFloor(3, cfg, 80, 24, r, nil)
		if err != nil {
			t.Fatalf("GenFloor: %v", err)
		}
		out := make([]byte, 0, cfg.RoomNumX*cfg.RoomNumY)
		for _, room := range floor.Rooms {
			out = append(out, byte(room.Kind))
		}
		return out
	}
	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("room kind sequences differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("room %d kind differs across identical seeds: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestGenFloorPlacesStairOnWalkableSurface(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cfg := testDungeonCfg()
		seed := rapid.Uint64().Draw(rt, "seed")
		r := rng.NewRNG(seed, "dungeon", nil)
		level := rapid.IntRange(1, 30).Draw(rt, "level")
		floor, err := GenFloor(level, cfg, 80, 24, r, nil)
		if err != nil {
			rt.Fatalf("GenFloor: %v", err)
		}
		stair, ok := floor.Stair()
		if !ok {
			return
		}
		if floor.Field.SurfaceAt(stair) != tile.SurfaceStair {
			rt.Fatalf("stair cell %v does not carry SurfaceStair", stair)
		}
	})
}

func TestCanMoveRejectsHiddenAndLocked(t *testing.T) {
	cfg := testDungeonCfg()
	r := rng.NewRNG(2, "dungeon", nil)
	floor, err := GenFloor(1, cfg, 80, 24, r, nil)
	if err != nil {
		t.Fatalf("GenFloor: %v", err)
	}
	for _, room := range floor.Rooms {
		if room.Kind != RoomNormal {
			continue
		}
		for _, c := range room.Rect.Cells() {
			cell, err := floor.Field.At(c)
			if err != nil {
				continue
			}
			if cell.Attr.Has(tile.AttrHidden) || cell.Attr.Has(tile.AttrLocked) {
				for _, d := range tile.OrthogonalDirections {
					from := tile.Move(c, d.Reverse())
					if floor.CanMove(from, d, true) {
						t.Fatalf("CanMove allowed a step onto a hidden/locked cell at %v", c)
					}
				}
			}
		}
	}
}

func TestPlayerInMarksVisitedAndApproached(t *testing.T) {
	cfg := testDungeonCfg()
	r := rng.NewRNG(9, "dungeon", nil)
	floor, err := GenFloor(1, cfg, 80, 24, r, nil)
	if err != nil {
		t.Fatalf("GenFloor: %v", err)
	}
	var normal *Room
	for _, room := range floor.Rooms {
		if room.Kind == RoomNormal {
			normal = room
			break
		}
	}
	if normal == nil {
		t.Skip("no normal room generated for this seed")
	}
	c := normal.InteriorRect().Nth(0)
	floor.PlayerIn(c, true)
	cell, err := floor.Field.At(c)
	if err != nil {
		t.Fatalf("At: %v", err)
	}
	if !cell.IsVisited() {
		t.Fatal("PlayerIn should mark the entered cell visited")
	}
}

func TestSearchRevealsHiddenOrLockedEventually(t *testing.T) {
	cfg := testDungeonCfg()
	cfg.PassageUnlockRateInv = 1
	cfg.DoorUnlockRateInv = 1
	r := rng.NewRNG(123, "dungeon", nil)
	floor, err := GenFloor(25, cfg, 80, 24, r, nil)
	if err != nil {
		t.Fatalf("GenFloor: %v", err)
	}
	var hiddenCoord tile.Coord
	foundHidden := false
	for _, room := range floor.Rooms {
		for _, c := range room.Rect.Cells() {
			cell, err := floor.Field.At(c)
			if err != nil {
				continue
			}
			if cell.Attr.Has(tile.AttrHidden) {
				hiddenCoord = c
				foundHidden = true
			}
		}
	}
	if !foundHidden {
		t.Skip("no hidden cell generated for this seed/config")
	}
	revealed := false
	for _, d := range tile.AllDirections {
		from := tile.Move(hiddenCoord, d.Reverse())
		if !floor.Field.InBounds(from) {
			continue
		}
		if events := floor.Search(from, cfg, r); len(events) > 0 {
			revealed = true
		}
	}
	if !revealed {
		t.Fatal("Search with unlock rate 1/1 should always reveal an adjacent hidden cell")
	}
}
