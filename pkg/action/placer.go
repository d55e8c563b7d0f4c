package action

import (
	"github.com/rogue-core/roguecore/pkg/character"
	"github.com/rogue-core/roguecore/pkg/dungeon"
	"github.com/rogue-core/roguecore/pkg/item"
	"github.com/rogue-core/roguecore/pkg/tile"
)

// RoomPlacer implements dungeon.ItemPlacer, fanning a floor generator's
// once-per-room callback out to both the item subsystem (gold) and the
// enemy subsystem (one rolled spawn per Normal room), mirroring the
// source's per-room population pass. The retrieved original_source pack
// does not show how rogue::Dungeon wires the rooms it just generated to
// EnemyHandler::gen_enemy/place, so this generalizes the item package's
// own SetupRoom hook (handler.go) to enemies instead of inventing a new
// mechanism.
type RoomPlacer struct {
	Items   *item.Handler
	Enemies *character.EnemyHandler
}

// SetupRoom places gold first (so GenEnemy's hasGold gate can see it),
// then rolls whether this room also gets a dormant enemy.
func (p *RoomPlacer) SetupRoom(level int, interior dungeon.Rect, occupy func(tile.Coord)) {
	var occupied []tile.Coord
	p.Items.SetupRoom(level, interior, func(c tile.Coord) {
		occupied = append(occupied, c)
		occupy(c)
	})
	hasGold := false
	for _, c := range occupied {
		if tok, ok := p.Items.GroundAt(c); ok && tok.Get().Kind == item.KindGold {
			hasGold = true
			break
		}
	}
	enemy, ok := p.Enemies.GenEnemy(level, hasGold)
	if !ok {
		return
	}
	area := interior.Area()
	if area <= 0 {
		return
	}
	c := interior.Nth(p.Enemies.RNG().Intn(area))
	occupy(c)
	p.Enemies.Place(c, enemy)
}
