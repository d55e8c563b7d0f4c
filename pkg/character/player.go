package character

import (
	"fmt"

	"github.com/rogue-core/roguecore/pkg/dungeoncfg"
	"github.com/rogue-core/roguecore/pkg/item"
	"github.com/rogue-core/roguecore/pkg/rng"
	"github.com/rogue-core/roguecore/pkg/tile"
)

// PlayerEvent is a notable thing that happened to the player during
// the after-turn upkeep pass, ported from player.rs's PlayerEvent.
type PlayerEvent int

const (
	EventDead PlayerEvent = iota
	EventHealed
	EventHungry
)

// DamageReaction reports whether a hit killed the player.
type DamageReaction int

const (
	ReactionNone DamageReaction = iota
	ReactionDeath
)

// Leveling is the exp-threshold-per-level table. LevelUp compares the
// player's accumulated exp against Exps[level-1:] to see how many
// levels were just crossed, per player.rs's Leveling::check_level.
type Leveling struct {
	Exps []Exp
}

// NewLeveling builds a Leveling table from a config's raw int
// thresholds.
func NewLeveling(thresholds []int) Leveling {
	exps := make([]Exp, len(thresholds))
	for i, t := range thresholds {
		exps[i] = Exp(t)
	}
	return Leveling{Exps: exps}
}

// checkLevel returns how many levels cur should advance given exp, 0
// if none.
func (lv Leveling) checkLevel(cur Level, exp Exp) int {
	idx := int(cur) - 1
	if idx < 0 || idx >= len(lv.Exps) {
		return 0
	}
	for i, threshold := range lv.Exps[idx:] {
		if exp < threshold {
			return i
		}
	}
	return len(lv.Exps) - idx
}

// Hunger is the player's hunger band, derived from remaining food
// turns against the config's hunger_time.
type Hunger int

const (
	HungerNormal Hunger = iota
	HungerHungry
	HungerWeak
)

func (h Hunger) String() string {
	switch h {
	case HungerHungry:
		return "hungry"
	case HungerWeak:
		return "weak"
	default:
		return ""
	}
}

// Status is the player's externally visible stat snapshot, ported
// from player.rs's Status (used to build observation vectors and the
// status line).
type Status struct {
	DungeonLevel int
	Gold         int
	HP           Maxed[HitPoint]
	Strength     Maxed[Strength]
	Defense      Defense
	PlayerLevel  int
	Exp          Exp
	HungerLevel  Hunger
}

// ToVec flattens Status into the fixed-order numeric vector an
// observation tensor embeds, per player.rs's Status::to_vec.
func (s Status) ToVec() []int {
	return []int{
		s.DungeonLevel, s.Gold,
		int(s.HP.Current), int(s.HP.Max),
		int(s.Strength.Current), int(s.Strength.Max),
		int(s.Defense), s.PlayerLevel, int(s.Exp), int(s.HungerLevel),
	}
}

// ToDictVec pairs each Status field with its name, for JSON/dict-style
// observation export.
func (s Status) ToDictVec() [][2]any {
	v := s.ToVec()
	names := []string{"dungeon_level", "gold", "hp_current", "hp_max", "str_current", "str_max", "defense", "player_level", "exp", "hunger"}
	out := make([][2]any, len(names))
	for i, n := range names {
		out[i] = [2]any{n, v[i]}
	}
	return out
}

func (s Status) String() string {
	return fmt.Sprintf("Level: %2d Gold: %5d Hp: %2d(%2d) Str: %2d(%2d) Arm: %2d Exp: %2d/%d %s",
		s.DungeonLevel, s.Gold, s.HP.Current, s.HP.Max, s.Strength.Current, s.Strength.Max,
		s.Defense, s.PlayerLevel, s.Exp, s.HungerLevel)
}

// playerStatus is the internal, mutable half of the player's stats
// (StatusInner in the source): everything Status snapshots plus the
// hunger countdown and healing-cadence bookkeeping that never leaves
// the player struct directly.
type playerStatus struct {
	HP       Maxed[HitPoint]
	Strength Maxed[Strength]
	Exp      Exp
	Level    Level
	FoodLeft int
	Running  bool
	Quiet    int
}

// Player is one runtime's player character: position, inventory,
// equipped gear, and internal stats, grounded on player.rs's Player.
type Player struct {
	Pos     tile.Coord
	ItemBox *item.ItemBox

	armor  *item.Token
	weapon *item.Token
	status playerStatus
	cfg    dungeoncfg.PlayerCfg
	level  Leveling
}

// NewPlayer builds a fresh Player from the player section of a
// runtime's configuration, per player.rs's Config::build.
func NewPlayer(cfg dungeoncfg.PlayerCfg) *Player {
	return &Player{
		ItemBox: item.NewItemBox(cfg.MaxItems),
		cfg:     cfg,
		level:   NewLeveling(cfg.LevelExps),
		status: playerStatus{
			HP:       NewMaxed(HitPoint(cfg.InitHP)),
			Strength: NewMaxed(Strength(cfg.InitStr)),
			Exp:      0,
			Level:    1,
			FoodLeft: cfg.HungerTime,
		},
	}
}

// Glyph returns the map symbol the player draws as, satisfying
// tile.Drawable. '@' matches the fixed id tile.rs's Symbol table
// reserves for the player.
func (p *Player) Glyph() byte { return '@' }

// FillStatus copies the player's current stats into status for
// display or observation export, per player.rs's Player::fill_status.
func (p *Player) FillStatus(status *Status) {
	status.HP = p.status.HP
	status.Strength = p.status.Strength
	status.Exp = p.status.Exp
	status.PlayerLevel = int(p.status.Level)
	status.Defense = p.Arm()
	hunger := p.cfg.HungerTime / 10
	switch {
	case p.status.FoodLeft <= hunger:
		status.HungerLevel = HungerWeak
	case p.status.FoodLeft <= hunger*2:
		status.HungerLevel = HungerHungry
	default:
		status.HungerLevel = HungerNormal
	}
}

// Run sets whether the player is currently running (affects the
// enemy-side mean_bonus hit-chance term).
func (p *Player) Run(b bool) { p.status.Running = b }

// IsRunning reports the player's current running flag.
func (p *Player) IsRunning() bool { return p.status.Running }

// Armor returns the currently equipped armor token, if any.
func (p *Player) Armor() *item.Token { return p.armor }

// Weapon returns the currently equipped weapon token, if any.
func (p *Player) Weapon() *item.Token { return p.weapon }

// Arm returns the player's total defense contribution from equipped
// armor, 0 if unarmored.
func (p *Player) Arm() Defense {
	if p.armor == nil {
		return 0
	}
	a := p.armor.Get().Armor
	if a == nil {
		return 0
	}
	return Defense(a.Def + a.DefPlus)
}

// WeaponDice returns the equipped weapon's wield damage, or a
// bare-handed 1d2 fallback when unarmed.
func (p *Player) WeaponDice() []dungeoncfg.Dice {
	if p.weapon == nil || p.weapon.Get().Weapon == nil {
		return []dungeoncfg.Dice{{N: 1, Sides: 2}}
	}
	return []dungeoncfg.Dice{p.weapon.Get().Weapon.AtWield}
}

// InitItems populates the item box from the configured starting
// loadout and equips the configured initial weapon/armor, per
// player.rs's Player::init_items.
func (p *Player) InitItems(h *item.Handler) error {
	if err := h.InitPlayerItems(p.ItemBox, p.cfg.InitItems); err != nil {
		return err
	}
	if name, ok := p.initialWeaponName(); ok {
		p.weapon = p.equipFromBox(func(it *item.Item) bool {
			return it.Kind == item.KindWeapon && it.Weapon != nil && it.Weapon.Name == name
		})
	}
	if name, ok := p.initialArmorName(); ok {
		p.armor = p.equipFromBox(func(it *item.Item) bool {
			return it.Kind == item.KindArmor && it.Armor != nil && it.Armor.Name == name
		})
	}
	return nil
}

func (p *Player) initialWeaponName() (string, bool) {
	for _, spec := range p.cfg.InitItems {
		if spec.Kind == "weapon" {
			return spec.Name, true
		}
	}
	return "", false
}

func (p *Player) initialArmorName() (string, bool) {
	for _, spec := range p.cfg.InitItems {
		if spec.Kind == "armor" {
			return spec.Name, true
		}
	}
	return "", false
}

// equipFromBox finds the first box item matching query, flags it
// equipped, and returns the token. The returned token shares the
// same underlying Item as the box slot, so marking it equipped is
// immediately visible to anyone else holding a token for that item.
func (p *Player) equipFromBox(query func(*item.Item) bool) *item.Token {
	tok, ok := p.ItemBox.FindBy(query)
	if !ok {
		return nil
	}
	it := tok.Get()
	it.Attr = it.Attr.Set(item.AttrEquipped)
	return tok
}

// Strength returns the player's current/max strength.
func (p *Player) Strength() Maxed[Strength] { return p.status.Strength }

// Level returns the player's current level.
func (p *Player) Level() Level { return p.status.Level }

// Buttle resets the healing quiet-turn counter, called whenever the
// player enters combat (player.rs's Player::buttle).
func (p *Player) Buttle() { p.status.Quiet = 0 }

// TurnPassed runs the after-turn upkeep: food decrements toward
// starvation, hunger-threshold notifications, and the passive
// regeneration check, per player.rs's Player::turn_passed.
func (p *Player) TurnPassed(r *rng.RNG) []PlayerEvent {
	var events []PlayerEvent
	p.status.FoodLeft--
	if p.status.FoodLeft == 0 {
		return []PlayerEvent{EventDead}
	}
	if p.notifyHungry() {
		events = append(events, EventHungry)
	}
	if p.heal(r) {
		events = append(events, EventHealed)
	}
	return events
}

func (p *Player) notifyHungry() bool {
	hunger := p.cfg.HungerTime / 10
	return p.status.FoodLeft == hunger || p.status.FoodLeft == hunger*2
}

// heal runs the passive regeneration check: below level 8 it is a
// flat 0-or-1 gate on the quiet counter, at or above level 8 it rolls
// a dice once three quiet turns accumulate, per player.rs's heal.
func (p *Player) heal(r *rng.RNG) bool {
	p.status.Quiet++
	level := int(p.status.Level)
	var healAmt int
	switch {
	case level < 8:
		healAmt = int(clamp(int64(p.status.Quiet+level*2-20), 0, 1))
	case p.status.Quiet >= 3:
		healAmt = r.Range(1, level-6)
	}
	if healAmt <= 0 {
		return false
	}
	p.status.HP.Current += HitPoint(healAmt)
	if p.status.HP.Current > p.status.HP.Max {
		p.status.HP.Current = p.status.HP.Max
	}
	p.status.Quiet = 0
	return true
}

// GetDamage applies damage to the player's hit points, clamped at
// zero, reporting whether the blow was lethal.
func (p *Player) GetDamage(damage HitPoint) DamageReaction {
	next := p.status.HP.Current - damage
	if next < 0 {
		next = 0
	}
	p.status.HP.Current = next
	if p.status.HP.Current == 0 {
		return ReactionDeath
	}
	return ReactionNone
}

// LevelUp adds exp and advances the player's level for every
// threshold crossed, rolling 1d10 hit points per level gained and
// raising both current and max hp by the roll, per player.rs's
// Player::level_up. Reports whether a level was gained.
func (p *Player) LevelUp(exp Exp, r *rng.RNG) bool {
	p.status.Exp += exp
	diff := p.level.checkLevel(p.status.Level, p.status.Exp)
	if diff <= 0 {
		return false
	}
	p.status.Level += Level(diff)
	gained := Roll(dungeoncfg.Dice{N: diff, Sides: 10}, r)
	p.status.HP.Max += gained
	p.status.HP.Current += gained
	return true
}
