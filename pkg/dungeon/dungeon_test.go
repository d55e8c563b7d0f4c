package dungeon

import (
	"testing"

	"github.com/rogue-core/roguecore/pkg/dungeoncfg"
	"github.com/rogue-core/roguecore/pkg/tile"
)

func TestNewDungeonStartsAtLevel1(t *testing.T) {
	cfg := dungeoncfg.Default()
	d, err := New(cfg, 1, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if d.Level() != 1 {
		t.Fatalf("Level() = %d, want 1", d.Level())
	}
	if d.Current() == nil {
		t.Fatal("Current() should not be nil after New")
	}
}

func TestDescendIncrementsLevel(t *testing.T) {
	cfg := dungeoncfg.Default()
	d, err := New(cfg, 2, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	first := d.Current()
	if err := d.Descend(); err != nil {
		t.Fatalf("Descend: %v", err)
	}
	if d.Level() != 2 {
		t.Fatalf("Level() = %d, want 2", d.Level())
	}
	if d.Current() == first {
		t.Fatal("Descend should replace the current floor")
	}
}

func TestAscendRestoresPriorFloor(t *testing.T) {
	cfg := dungeoncfg.Default()
	d, err := New(cfg, 3, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	firstFloor := d.Current()
	if err := d.Descend(); err != nil {
		t.Fatalf("Descend: %v", err)
	}
	restored, ok := d.Ascend()
	if !ok {
		t.Fatal("Ascend should succeed after a Descend")
	}
	if restored != firstFloor {
		t.Fatal("Ascend should return the exact floor previously generated at level 1")
	}
	if d.Level() != 1 {
		t.Fatalf("Level() = %d after Ascend, want 1", d.Level())
	}
}

func TestAscendFromGroundFails(t *testing.T) {
	cfg := dungeoncfg.Default()
	d, err := New(cfg, 4, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := d.Ascend(); ok {
		t.Fatal("Ascend from level 1 should fail, there is nothing above it")
	}
}

func TestHideDungeonFalseRevealsEverything(t *testing.T) {
	cfg := dungeoncfg.Default()
	cfg.HideDungeon = false
	d, err := New(cfg, 5, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	fld := d.Current().Field
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			cell, err := fld.At(tile.Coord{X: x, Y: y})
			if err != nil {
				t.Fatalf("At(%d,%d): %v", x, y, err)
			}
			if !cell.IsVisible() {
				t.Fatalf("cell (%d,%d) not visible with hide_dungeon=false", x, y)
			}
		}
	}
}
