package character

import (
	"sort"

	"github.com/rogue-core/roguecore/pkg/dungeon"
	"github.com/rogue-core/roguecore/pkg/dungeoncfg"
	"github.com/rogue-core/roguecore/pkg/rerr"
	"github.com/rogue-core/roguecore/pkg/rng"
	"github.com/rogue-core/roguecore/pkg/tile"
)

// EnemyAttr is a bitflag over the behavioral traits an enemy can carry,
// ported from enemies.rs's EnemyAttr.
type EnemyAttr uint16

const (
	AttrMean EnemyAttr = 1 << iota
	AttrFlying
	AttrRegenerate
	AttrGreedy
	AttrInvisible
	AttrRustsArmor
	AttrStealsGold
	AttrReducesStr
	AttrFreezes
	AttrRandomMove
)

func (a EnemyAttr) Has(flag EnemyAttr) bool { return a&flag == flag }

var attrNames = map[string]EnemyAttr{
	"mean": AttrMean, "flying": AttrFlying, "regenerate": AttrRegenerate,
	"greedy": AttrGreedy, "invisible": AttrInvisible, "rusts_armor": AttrRustsArmor,
	"steals_gold": AttrStealsGold, "reduces_str": AttrReducesStr,
	"freezes": AttrFreezes, "random_move": AttrRandomMove,
}

func parseAttr(name string) (EnemyAttr, bool) {
	a, ok := attrNames[name]
	return a, ok
}

// EnemyID is the per-run sequence number assigned to each generated
// enemy, distinct from its builtin catalog index.
type EnemyID uint32

// Status is one catalog entry: the stats a generated Enemy starts
// from, scaled by dungeon level at generation time. Ported from
// enemies.rs's Status/StaticStatus (collapsed into one type since Go
// has no 'static slice literal distinct from an owned one).
type Status struct {
	Name     string
	Tile     byte
	Attack   []dungeoncfg.Dice
	Attr     EnemyAttr
	Defense  Defense
	Exp      Exp
	Gold     int
	Level    Level
	Rarity   int
}

// rogueEnemies is the builtin 26-entry roster, ported verbatim
// (attack dice, attributes, defense, exp, gold, level, rarity) from
// enemies.rs's ROGUE_ENEMIES. Tile is assigned 'A'+index at catalog
// build time, matching StaticStatus::get_owned.
var rogueEnemies = [26]Status{
	{Name: "aquator", Attack: []dungeoncfg.Dice{{N: 0, Sides: 0}}, Attr: AttrMean | AttrRustsArmor, Defense: 10, Exp: 20, Gold: 0, Level: 5, Rarity: 12},
	{Name: "bat", Attack: []dungeoncfg.Dice{{N: 1, Sides: 2}}, Attr: AttrFlying | AttrRandomMove, Defense: 3, Exp: 1, Gold: 0, Level: 1, Rarity: 2},
	{Name: "centaur", Attack: []dungeoncfg.Dice{{N: 1, Sides: 2}, {N: 1, Sides: 5}, {N: 1, Sides: 5}}, Attr: 0, Defense: 4, Exp: 17, Gold: 15, Level: 4, Rarity: 10},
	{Name: "dragon", Attack: []dungeoncfg.Dice{{N: 1, Sides: 8}, {N: 1, Sides: 8}, {N: 3, Sides: 10}}, Attr: AttrMean, Defense: 3, Exp: 5000, Gold: 100, Level: 10, Rarity: 25},
	{Name: "emu", Attack: []dungeoncfg.Dice{{N: 1, Sides: 2}}, Attr: AttrMean, Defense: 7, Exp: 2, Gold: 0, Level: 1, Rarity: 1},
	{Name: "venus flytrap", Attack: nil, Attr: AttrMean, Defense: 3, Exp: 80, Gold: 0, Level: 8, Rarity: 15},
	{Name: "griffin", Attack: []dungeoncfg.Dice{{N: 4, Sides: 3}, {N: 3, Sides: 5}}, Attr: AttrFlying | AttrMean | AttrRegenerate, Defense: 2, Exp: 2000, Gold: 20, Level: 13, Rarity: 23},
	{Name: "hobgoblin", Attack: []dungeoncfg.Dice{{N: 1, Sides: 8}}, Attr: AttrMean, Defense: 5, Exp: 3, Gold: 0, Level: 1, Rarity: 4},
	{Name: "icemonster", Attack: []dungeoncfg.Dice{{N: 0, Sides: 0}}, Attr: AttrFreezes, Defense: 9, Exp: 5, Gold: 0, Level: 1, Rarity: 5},
	{Name: "jabberwock", Attack: []dungeoncfg.Dice{{N: 2, Sides: 12}, {N: 2, Sides: 4}}, Attr: 0, Defense: 6, Exp: 3000, Gold: 70, Level: 15, Rarity: 24},
	{Name: "kestrel", Attack: []dungeoncfg.Dice{{N: 1, Sides: 4}}, Attr: AttrMean, Defense: 7, Exp: 1, Gold: 0, Level: 1, Rarity: 0},
	{Name: "leperachaun", Attack: []dungeoncfg.Dice{{N: 1, Sides: 1}}, Attr: AttrStealsGold, Defense: 8, Exp: 10, Gold: 0, Level: 3, Rarity: 9},
	{Name: "medusa", Attack: []dungeoncfg.Dice{{N: 3, Sides: 4}, {N: 3, Sides: 4}, {N: 2, Sides: 5}}, Attr: AttrMean, Defense: 2, Exp: 200, Gold: 40, Level: 8, Rarity: 21},
	{Name: "nymph", Attack: []dungeoncfg.Dice{{N: 0, Sides: 0}}, Attr: 0, Defense: 9, Exp: 37, Gold: 100, Level: 3, Rarity: 13},
	{Name: "orc", Attack: []dungeoncfg.Dice{{N: 1, Sides: 8}}, Attr: AttrGreedy, Defense: 6, Exp: 5, Gold: 15, Level: 1, Rarity: 7},
	{Name: "phantom", Attack: []dungeoncfg.Dice{{N: 4, Sides: 4}}, Attr: AttrInvisible, Defense: 3, Exp: 120, Gold: 0, Level: 8, Rarity: 18},
	{Name: "quagga", Attack: []dungeoncfg.Dice{{N: 1, Sides: 5}, {N: 1, Sides: 5}}, Attr: AttrMean, Defense: 3, Exp: 15, Gold: 0, Level: 3, Rarity: 11},
	{Name: "rattlesnake", Attack: []dungeoncfg.Dice{{N: 1, Sides: 6}}, Attr: AttrReducesStr | AttrMean, Defense: 3, Exp: 9, Gold: 0, Level: 2, Rarity: 6},
	{Name: "snake", Attack: []dungeoncfg.Dice{{N: 1, Sides: 3}}, Attr: AttrMean, Defense: 5, Exp: 2, Gold: 0, Level: 1, Rarity: 3},
	{Name: "troll", Attack: []dungeoncfg.Dice{{N: 1, Sides: 8}, {N: 1, Sides: 8}, {N: 2, Sides: 6}}, Attr: AttrMean | AttrRegenerate, Defense: 4, Exp: 120, Gold: 50, Level: 6, Rarity: 16},
	{Name: "urvile", Attack: []dungeoncfg.Dice{{N: 1, Sides: 9}, {N: 1, Sides: 9}, {N: 2, Sides: 9}}, Attr: AttrMean, Defense: -2, Exp: 190, Gold: 0, Level: 7, Rarity: 20},
	{Name: "vampire", Attack: []dungeoncfg.Dice{{N: 1, Sides: 19}}, Attr: AttrMean | AttrRegenerate, Defense: 1, Exp: 350, Gold: 20, Level: 8, Rarity: 22},
	{Name: "wraith", Attack: []dungeoncfg.Dice{{N: 1, Sides: 6}}, Attr: 0, Defense: 4, Exp: 55, Gold: 0, Level: 5, Rarity: 17},
	{Name: "xeroc", Attack: []dungeoncfg.Dice{{N: 4, Sides: 4}}, Attr: 0, Defense: 7, Exp: 100, Gold: 30, Level: 7, Rarity: 19},
	{Name: "yeti", Attack: []dungeoncfg.Dice{{N: 1, Sides: 6}, {N: 1, Sides: 6}}, Attr: 0, Defense: 6, Exp: 50, Gold: 30, Level: 4, Rarity: 14},
	{Name: "zombie", Attack: []dungeoncfg.Dice{{N: 1, Sides: 8}}, Attr: AttrMean, Defense: 8, Exp: 6, Gold: 0, Level: 2, Rarity: 8},
}

// Enemy is one live, generated instance of a Status entry: its own hp
// pool, id, and running flag (whether it still treats the player as a
// stalking threat, used by the hit-chance mean_bonus term).
type Enemy struct {
	ID      EnemyID
	Name    string
	Tile    byte
	Level   Level
	MaxHP   HitPoint
	HP      HitPoint
	defense Defense
	Exp     Exp
	attack  []dungeoncfg.Dice
	Attr    EnemyAttr
	running bool
}

func (e *Enemy) Defense() Defense { return e.defense }
func (e *Enemy) IsMean() bool     { return e.Attr.Has(AttrMean) }
func (e *Enemy) IsGreedy() bool   { return e.Attr.Has(AttrGreedy) }
func (e *Enemy) IsRunning() bool  { return e.running }
func (e *Enemy) run()             { e.running = true }

// Glyph returns the map symbol this enemy draws as, satisfying
// tile.Drawable.
func (e *Enemy) Glyph() byte { return e.Tile }

// Dead reports whether the enemy's hit points have been exhausted.
func (e *Enemy) Dead() bool { return e.HP <= 0 }

// GetDamage applies damage to the enemy's hit points, clamped at zero,
// reporting whether the blow was lethal. Mirrors Player.GetDamage; the
// retrieved source calls enemy.get_damage(hp) from actions.rs's
// player_attack but the method itself isn't present in enemies.rs, so
// this follows player.rs's get_damage pattern for the same quantity.
func (e *Enemy) GetDamage(damage HitPoint) DamageReaction {
	next := e.HP - damage
	if next < 0 {
		next = 0
	}
	e.HP = next
	if e.HP == 0 {
		return ReactionDeath
	}
	return ReactionNone
}

// EnemyHandler owns the catalog, the live roster, and the placed/active
// split the source tracks as two BTreeMap<DungeonPath, Rc<Enemy>>.
// Iteration over placed/active enemies is always done in coordinate
// order (sorted by Y then X) so activation and pursuit are
// deterministic given the same seed, mirroring the source's BTreeMap
// ordering without needing an ordered-map type in Go.
type EnemyHandler struct {
	catalog          []Status
	placed           map[tile.Coord]*Enemy
	active           map[tile.Coord]*Enemy
	rng              *rng.RNG
	appearRateGold   int
	appearRateNogold int
	nextID           EnemyID
}

func sortedCoords(m map[tile.Coord]*Enemy) []tile.Coord {
	out := make([]tile.Coord, 0, len(m))
	for c := range m {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// NewEnemyHandler builds the catalog from cfg (the builtin rogue
// roster filtered by Include, or a fully custom roster) and sorts it
// by rarity ascending, per enemies.rs's EnemyHandler::new.
func NewEnemyHandler(cfg dungeoncfg.EnemiesCfg, masterSeed uint64, configHash []byte) (*EnemyHandler, error) {
	var catalog []Status
	switch cfg.Typ {
	case "rogue":
		for _, idx := range cfg.Include {
			if idx < 0 || idx >= len(rogueEnemies) {
				return nil, rerr.Newf(rerr.CodeInvalidSetting, "enemies.include index %d out of range", idx)
			}
			stat := rogueEnemies[idx]
			stat.Tile = 'A' + byte(idx)
			catalog = append(catalog, stat)
		}
	case "custom":
		for _, c := range cfg.Custom {
			attr := EnemyAttr(0)
			for _, name := range c.Attributes {
				a, ok := parseAttr(name)
				if !ok {
					return nil, rerr.Newf(rerr.CodeInvalidSetting, "unknown enemy attribute %q", name)
				}
				attr |= a
			}
			tile0 := byte('A')
			if len(c.Tile) > 0 {
				tile0 = c.Tile[0]
			}
			catalog = append(catalog, Status{
				Name: c.Name, Tile: tile0, Attack: c.Attack, Attr: attr,
				Defense: Defense(c.Defense), Exp: Exp(c.Exp), Gold: c.Gold,
				Level: Level(c.Level), Rarity: c.Rarity,
			})
		}
	default:
		return nil, rerr.Newf(rerr.CodeInvalidSetting, "enemies.typ %q must be \"rogue\" or \"custom\"", cfg.Typ)
	}
	sort.SliceStable(catalog, func(i, j int) bool { return catalog[i].Rarity < catalog[j].Rarity })
	return &EnemyHandler{
		catalog:          catalog,
		placed:           make(map[tile.Coord]*Enemy),
		active:           make(map[tile.Coord]*Enemy),
		rng:              rng.NewRNG(masterSeed, "enemies", configHash),
		appearRateGold:   cfg.AppearRateGold,
		appearRateNogold: cfg.AppearRateNogold,
	}, nil
}

// IsNoEnemy reports whether the catalog is empty, the boundary case
// spec.md calls out explicitly.
func (h *EnemyHandler) IsNoEnemy() bool { return len(h.catalog) == 0 }

// TileMax returns the highest glyph byte any catalog entry draws as,
// used to size an observation's symbol dimension the same way
// GameConfig::symbol_max picks enemies.tile_max() when the catalog is
// non-empty.
func (h *EnemyHandler) TileMax() (byte, bool) {
	if len(h.catalog) == 0 {
		return 0, false
	}
	max := h.catalog[0].Tile
	for _, s := range h.catalog[1:] {
		if s.Tile > max {
			max = s.Tile
		}
	}
	return max, true
}

// RNG returns the handler's seeded stream, shared by every subsystem
// call that must draw from the same "enemies" stage per turn
// (player.turn_passed, fight resolution, and level_up all take the
// same *rng.RNG in actions.rs's after_turn/player_attack).
func (h *EnemyHandler) RNG() *rng.RNG { return h.rng }

// selectIdx picks a catalog index via rng.Range(0,upper), falling back
// to a skewed "pick from the top min(len,5)" draw whenever that lands
// outside the catalog, per enemies.rs's select. The source's off-by-
// one compares `id > len` (never out of bounds by construction given
// how its own call sites build `range`); this implementation compares
// `id >= len` instead so any upper bound a caller supplies stays
// memory-safe.
func (h *EnemyHandler) selectIdx(upper int) int {
	n := len(h.catalog)
	if upper <= 0 {
		upper = n
	}
	id := h.rng.Range(0, upper)
	if id >= n {
		skew := n
		if skew > 5 {
			skew = 5
		}
		return h.rng.Range(n-skew, n)
	}
	return id
}

// levelUpperBound approximates the depth-scaled range enemies.rs's
// gen_enemy call site passes into select: the catalog is sorted
// ascending by Rarity (enemy.go's NewEnemyHandler), so a bound under
// the catalog length restricts the draw to the commoner entries at the
// front, and a bound that outgrows the catalog as lev climbs reaches
// selectIdx's top-skew fallback, biasing toward the rarest entries at
// the back. The exact call site wasn't retrievable from the pack, so
// this widens linearly with level rather than always passing the full
// catalog length, which left that fallback dead code.
func levelUpperBound(lev, n int) int {
	bound := lev*3 + 2
	if bound < 1 {
		bound = 1
	}
	return bound
}

func expAdd(level Level, maxhp HitPoint) Exp {
	var base int
	if level == 1 {
		base = int(maxhp) / 8
	} else {
		base = int(maxhp) / 6
	}
	if level >= 10 {
		return Exp(base * 20)
	}
	return Exp(base * 4)
}

// GenEnemy rolls whether an enemy appears at all (gated by
// appear_rate_gold/appear_rate_nogold on whether this floor still has
// unclaimed gold), then generates one scaled to dungeon level lev,
// per enemies.rs's gen_enemy.
func (h *EnemyHandler) GenEnemy(lev int, hasGold bool) (*Enemy, bool) {
	if len(h.catalog) == 0 {
		return nil, false
	}
	appearPercent := h.appearRateNogold
	if hasGold {
		appearPercent = h.appearRateGold
	}
	if !h.rng.Parcent(appearPercent) {
		return nil, false
	}
	idx := h.selectIdx(levelUpperBound(lev, len(h.catalog)))
	stat := h.catalog[idx]
	level := stat.Level + Level(lev)
	hp := Roll(dungeoncfg.Dice{N: 8, Sides: int(level)}, h.rng)
	id := h.nextID
	h.nextID++
	return &Enemy{
		ID: id, Name: stat.Name, Tile: stat.Tile, Level: level,
		MaxHP: hp, HP: hp, defense: stat.Defense - Defense(lev),
		Exp: stat.Exp + Exp(lev*10) + expAdd(level, hp),
		attack: stat.Attack, Attr: stat.Attr,
	}, true
}

// Place registers a freshly generated enemy at c, awaiting activation.
func (h *EnemyHandler) Place(c tile.Coord, e *Enemy) { h.placed[c] = e }

// GetEnemy returns the enemy at c, whether placed (dormant) or active.
func (h *EnemyHandler) GetEnemy(c tile.Coord) (*Enemy, bool) {
	if e, ok := h.placed[c]; ok {
		return e, true
	}
	e, ok := h.active[c]
	return e, ok
}

// Activate promotes every placed mean enemy for which inArea returns
// true into the active roster, per enemies.rs's activate.
func (h *EnemyHandler) Activate(inArea func(tile.Coord) bool) {
	var toMove []tile.Coord
	for _, c := range sortedCoords(h.placed) {
		if inArea(c) && h.placed[c].IsMean() {
			toMove = append(toMove, c)
		}
	}
	for _, c := range toMove {
		e := h.placed[c]
		delete(h.placed, c)
		e.run()
		h.active[c] = e
	}
}

// ActivateOne activates a single enemy directly, used when the player
// attacks a still-dormant enemy (the other activation trigger besides
// room proximity).
func (h *EnemyHandler) ActivateOne(c tile.Coord) {
	e, ok := h.placed[c]
	if !ok {
		return
	}
	delete(h.placed, c)
	e.run()
	h.active[c] = e
}

// stepToward returns the single orthogonal/diagonal step from pos that
// most reduces the Chebyshev distance to target while staying legal
// per floor.CanMove and not landing on a cell blocked reports true
// for. Ties break toward tile.AllDirections' fixed order, keeping
// movement deterministic for a given seed.
func stepToward(floor *dungeon.Floor, pos, target tile.Coord, blocked func(tile.Coord) bool) (tile.Coord, bool) {
	bestDist := chebyshev(pos, target)
	best := pos
	found := false
	for _, d := range tile.AllDirections {
		if !floor.CanMove(pos, d, false) {
			continue
		}
		next := tile.Move(pos, d)
		if blocked(next) {
			continue
		}
		if dist := chebyshev(next, target); dist < bestDist {
			bestDist, best, found = dist, next, true
		}
	}
	return best, found
}

func chebyshev(a, b tile.Coord) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// MoveOutcome reports what happened to one active enemy's turn.
type MoveOutcome int

const (
	MoveCantMove MoveOutcome = iota
	MoveStepped
	MoveReachedPlayer
)

// Pursuit is one active enemy's resolved turn: its (possibly
// unchanged) new position and what happened.
type Pursuit struct {
	Enemy   *Enemy
	From    tile.Coord
	To      tile.Coord
	Outcome MoveOutcome
}

// MoveActives advances every active enemy one step, greedy enemies
// preferring an unclaimed gold pile over the player, per enemies.rs's
// move_actives. An enemy already adjacent to its target (Chebyshev
// distance 1) reaches it instead of stepping, which the caller resolves
// into a combat attack against the player for MoveReachedPlayer results
// (a greedy enemy reaching gold just stops there, unlike the player
// case, since gold has no defense to fight through).
func (h *EnemyHandler) MoveActives(floor *dungeon.Floor, playerPos tile.Coord, goldPos *tile.Coord) []Pursuit {
	current := h.active
	h.active = make(map[tile.Coord]*Enemy, len(current))
	blocked := func(c tile.Coord) bool {
		_, inActive := current[c]
		_, inPlaced := h.placed[c]
		return inActive || inPlaced
	}
	var out []Pursuit
	for _, from := range sortedCoords(current) {
		enemy := current[from]
		target := playerPos
		reachIsAttack := true
		if goldPos != nil && enemy.IsGreedy() {
			target = *goldPos
			reachIsAttack = false
		}
		if chebyshev(from, target) <= 1 {
			outcome := MoveStepped
			if reachIsAttack {
				outcome = MoveReachedPlayer
			}
			out = append(out, Pursuit{Enemy: enemy, From: from, To: from, Outcome: outcome})
			h.active[from] = enemy
			continue
		}
		next, moved := stepToward(floor, from, target, blocked)
		if !moved {
			out = append(out, Pursuit{Enemy: enemy, From: from, To: from, Outcome: MoveCantMove})
			h.active[from] = enemy
			continue
		}
		out = append(out, Pursuit{Enemy: enemy, From: from, To: next, Outcome: MoveStepped})
		h.active[next] = enemy
	}
	return out
}

// Kill removes a dead active enemy from the roster at c.
func (h *EnemyHandler) Kill(c tile.Coord) {
	delete(h.active, c)
	delete(h.placed, c)
}
