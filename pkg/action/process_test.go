package action

import (
	"testing"

	"github.com/rogue-core/roguecore/pkg/character"
	"github.com/rogue-core/roguecore/pkg/dungeon"
	"github.com/rogue-core/roguecore/pkg/dungeoncfg"
	"github.com/rogue-core/roguecore/pkg/item"
	"github.com/rogue-core/roguecore/pkg/tile"
)

func newTestState(t *testing.T) *State {
	t.Helper()
	cfg := dungeoncfg.Default()
	const seed = 42

	items, err := item.NewHandler(cfg, seed, nil)
	if err != nil {
		t.Fatalf("item.NewHandler: %v", err)
	}
	enemies, err := character.NewEnemyHandler(cfg.Enemies, seed, nil)
	if err != nil {
		t.Fatalf("character.NewEnemyHandler: %v", err)
	}
	player := character.NewPlayer(cfg.Player)
	if err := player.InitItems(items); err != nil {
		t.Fatalf("player.InitItems: %v", err)
	}

	placer := &RoomPlacer{Items: items, Enemies: enemies}
	dg, err := dungeon.New(cfg, seed, nil, placer)
	if err != nil {
		t.Fatalf("dungeon.New: %v", err)
	}

	st := &State{Dungeon: dg, Items: items, Player: player, Enemies: enemies}
	if err := EnterNewLevel(st, true); err != nil {
		t.Fatalf("EnterNewLevel: %v", err)
	}
	return st
}

func TestEnterNewLevelPlacesPlayerOnWalkableCell(t *testing.T) {
	st := newTestState(t)
	cell, err := st.Dungeon.Current().Field.At(st.Player.Pos)
	if err != nil {
		t.Fatalf("Field.At(player.Pos): %v", err)
	}
	if !cell.Surface.Walkable() {
		t.Errorf("player starts on unwalkable surface %v", cell.Surface)
	}
}

func TestProcessNoOpReturnsNoReactions(t *testing.T) {
	st := newTestState(t)
	out, err := Process(NoOp, st)
	if err != nil {
		t.Fatalf("Process(NoOp): %v", err)
	}
	if len(out) != 0 {
		t.Errorf("NoOp produced %d reactions, want 0", len(out))
	}
}

func TestProcessSearchAlwaysEmitsRedraw(t *testing.T) {
	st := newTestState(t)
	out, err := Process(Search, st)
	if err != nil {
		t.Fatalf("Process(Search): %v", err)
	}
	found := false
	for _, r := range out {
		if r.Kind == ReactRedraw {
			found = true
		}
	}
	if !found {
		t.Error("Search should always emit a Redraw reaction")
	}
}

func TestProcessUpStairIsUnimplemented(t *testing.T) {
	st := newTestState(t)
	if _, err := Process(UpStair, st); err == nil {
		t.Fatal("expected UpStair to report an error")
	}
}

func TestMovePlayerIntoWallCostsNoTurn(t *testing.T) {
	st := newTestState(t)
	floor := st.Dungeon.Current()
	var blocked bool
	for _, direction := range tile.AllDirections {
		if !floor.CanMove(st.Player.Pos, direction, true) {
			blocked = true
			_, _, turnEnds, err := movePlayer(direction, st)
			if err != nil {
				t.Fatalf("movePlayer: %v", err)
			}
			if turnEnds {
				t.Error("a blocked step should not end the turn")
			}
			break
		}
	}
	if !blocked {
		t.Skip("player's starting cell happened to have no blocked neighbor to exercise")
	}
}
