// Package dungeon builds and drives one Rogue-style floor at a time:
// the room grid, maze carving, spanning-tree passage routing, and the
// field of cells a floor's visibility state machine operates on.
package dungeon

import (
	"github.com/rogue-core/roguecore/pkg/dungeoncfg"
	"github.com/rogue-core/roguecore/pkg/rerr"
	"github.com/rogue-core/roguecore/pkg/rng"
)

// Dungeon is the façade a runtime drives: it owns the seeded RNG
// stream dedicated to floor generation, the current floor, and the
// floors left behind as the player descends (kept so a staircase back
// up restores exactly what was there before).
type Dungeon struct {
	cfg        dungeoncfg.Config
	rng        *rng.RNG
	level      int
	current    *Floor
	pastFloors map[int]*Floor
	placer     ItemPlacer
}

// New creates a Dungeon bound to cfg and generates its first floor.
// masterSeed and configHash are folded the same way every other
// subsystem derives its RNG, so identical configs reproduce identical
// dungeons regardless of what order subsystems are constructed in.
func New(cfg dungeoncfg.Config, masterSeed uint64, configHash []byte, placer ItemPlacer) (*Dungeon, error) {
	d := &Dungeon{
		cfg:        cfg,
		rng:        rng.NewRNG(masterSeed, "dungeon", configHash),
		pastFloors: make(map[int]*Floor),
		placer:     placer,
	}
	if err := d.descend(); err != nil {
		return nil, err
	}
	return d, nil
}

// Level returns the current 1-indexed dungeon level.
func (d *Dungeon) Level() int { return d.level }

// Current returns the floor the player currently occupies.
func (d *Dungeon) Current() *Floor { return d.current }

// RNG returns the dungeon's own seeded stream, shared by every caller
// that needs to draw a cell from the current floor the same way floor
// generation itself does (Floor.SelectCell, Floor.Search).
func (d *Dungeon) RNG() *rng.RNG { return d.rng }

// Config returns the rogue-style dungeon generation settings this
// Dungeon was built with, needed by Floor.Search's reveal-rate rolls.
func (d *Dungeon) Config() dungeoncfg.RogueDungeonCfg { return d.cfg.Dungeon }

// Descend generates the next floor down, stashing the current one in
// case the player later climbs back to it via a staircase.
func (d *Dungeon) Descend() error {
	if d.current != nil {
		d.pastFloors[d.level] = d.current
	}
	return d.descend()
}

// Ascend restores the floor at level-1 if it was previously visited,
// or reports false if there is nothing above (the surface).
func (d *Dungeon) Ascend() (*Floor, bool) {
	if d.level <= 1 {
		return nil, false
	}
	prev, ok := d.pastFloors[d.level-1]
	if !ok {
		return nil, false
	}
	d.pastFloors[d.level] = d.current
	d.level--
	d.current = prev
	delete(d.pastFloors, d.level)
	return prev, true
}

// PastFloor returns the floor left behind at level, or nil if that
// level was never generated or is the current one (use Current for
// that), needed by a runtime's history lookup for a level the player
// has since left.
func (d *Dungeon) PastFloor(level int) *Floor {
	return d.pastFloors[level]
}

func (d *Dungeon) descend() error {
	d.level++
	floor, err := GenFloor(d.level, d.cfg.Dungeon, d.cfg.Width, d.cfg.Height, d.rng, d.placer)
	if err != nil {
		return rerr.Wrap(rerr.CodeMaybeBug, "Dungeon.descend", err)
	}
	if !d.cfg.HideDungeon {
		floor.Field.RevealAll()
	}
	d.current = floor
	return nil
}
