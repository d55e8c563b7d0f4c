package item

import (
	"github.com/rogue-core/roguecore/pkg/dungeoncfg"
	"github.com/rogue-core/roguecore/pkg/rerr"
	"github.com/rogue-core/roguecore/pkg/rng"
)

// Weapon is a wielded or thrown weapon's stats: the dice rolled for
// each use and its display name.
type Weapon struct {
	Name    string
	AtWield dungeoncfg.Dice
	AtThrow dungeoncfg.Dice
}

func (w *Weapon) String() string { return w.Name }

type weaponStat struct {
	name    string
	atWield dungeoncfg.Dice
	atThrow dungeoncfg.Dice
	attr    Attr
}

// builtinWeapons is the fixed roster the source calls ROGUE_WEAPONS:
// nine weapons with hand-tuned wield/throw dice lifted verbatim from
// the original table.
var builtinWeapons = []weaponStat{
	{name: "mace", atWield: dungeoncfg.Dice{N: 2, Sides: 4}, atThrow: dungeoncfg.Dice{N: 1, Sides: 3}},
	{name: "long_sword", atWield: dungeoncfg.Dice{N: 3, Sides: 4}, atThrow: dungeoncfg.Dice{N: 1, Sides: 2}},
	{name: "bow", atWield: dungeoncfg.Dice{N: 1, Sides: 1}, atThrow: dungeoncfg.Dice{N: 1, Sides: 1}},
	{name: "arrow", atWield: dungeoncfg.Dice{N: 1, Sides: 1}, atThrow: dungeoncfg.Dice{N: 2, Sides: 3}, attr: AttrStackable | AttrThrowable},
	{name: "dagger", atWield: dungeoncfg.Dice{N: 1, Sides: 6}, atThrow: dungeoncfg.Dice{N: 1, Sides: 4}, attr: AttrThrowable},
	{name: "two_handed_sword", atWield: dungeoncfg.Dice{N: 4, Sides: 4}, atThrow: dungeoncfg.Dice{N: 1, Sides: 2}},
	{name: "dart", atWield: dungeoncfg.Dice{N: 1, Sides: 1}, atThrow: dungeoncfg.Dice{N: 1, Sides: 3}, attr: AttrStackable | AttrThrowable},
	{name: "shuriken", atWield: dungeoncfg.Dice{N: 1, Sides: 2}, atThrow: dungeoncfg.Dice{N: 2, Sides: 4}, attr: AttrStackable | AttrThrowable},
	{name: "spear", atWield: dungeoncfg.Dice{N: 2, Sides: 3}, atThrow: dungeoncfg.Dice{N: 1, Sides: 6}, attr: AttrStackable},
}

func findWeaponStat(name string) (weaponStat, bool) {
	for _, w := range builtinWeapons {
		if w.name == name {
			return w, true
		}
	}
	return weaponStat{}, false
}

// WeaponHandler draws weapons from the catalog a config selected,
// weighted by each entry's configured rarity, and rolls the cursed
// check every generated weapon is subject to. The configured powerup
// percent is stored but never rolled.
type WeaponHandler struct {
	catalog        []weaponStat
	weights        []float64
	cursedPercent  int
	powerupPercent int
}

// NewWeaponHandler resolves cfg's catalog entries against the builtin
// weapon table by name.
func NewWeaponHandler(cfg dungeoncfg.GearCfg) (*WeaponHandler, error) {
	h := &WeaponHandler{cursedPercent: cfg.CursedPercent, powerupPercent: cfg.PowerupPercent}
	for _, entry := range cfg.Catalog {
		stat, ok := findWeaponStat(entry.Name)
		if !ok {
			return nil, rerr.Newf(rerr.CodeInvalidSetting, "item.weapon.catalog: unknown weapon %q", entry.Name)
		}
		h.catalog = append(h.catalog, stat)
		h.weights = append(h.weights, float64(entry.Rarity))
	}
	if len(h.catalog) == 0 {
		return nil, rerr.New(rerr.CodeInvalidSetting, "item.weapon.catalog must not be empty")
	}
	return h, nil
}

// Gen draws a weighted-random weapon and rolls it for the cursed
// attribute. A cursed roll only sets the flag: Weapon has no numeric
// plus modifier, and no powerup roll is made.
func (h *WeaponHandler) Gen(r *rng.RNG) Item {
	idx := r.WeightedChoice(h.weights)
	if idx < 0 {
		idx = 0
	}
	stat := h.catalog[idx]
	attr := stat.attr
	if r.Parcent(h.cursedPercent) {
		attr = attr.Set(AttrCursed)
	}
	return h.build(stat, attr)
}

// Named builds the exact weapon the catalog lists under name, with no
// cursed/powerup roll — used for guaranteed starting-inventory entries.
func (h *WeaponHandler) Named(name string) (Item, bool) {
	stat, ok := findWeaponStat(name)
	if !ok {
		return Item{}, false
	}
	return h.build(stat, stat.attr), true
}

func (h *WeaponHandler) build(stat weaponStat, attr Attr) Item {
	return Item{
		Kind: KindWeapon,
		Weapon: &Weapon{
			Name:    stat.name,
			AtWield: stat.atWield,
			AtThrow: stat.atThrow,
		},
		Count: 1,
		Attr:  attr,
	}
}
