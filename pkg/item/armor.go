package item

import (
	"fmt"

	"github.com/rogue-core/roguecore/pkg/dungeoncfg"
	"github.com/rogue-core/roguecore/pkg/rerr"
	"github.com/rogue-core/roguecore/pkg/rng"
)

// Armor is a suit of armor's stats: its base defense plus whatever
// cursed/powerup roll adjusted it by.
type Armor struct {
	Name    string
	Worth   Num
	Def     int
	DefPlus int
}

func (a *Armor) String() string {
	switch {
	case a.DefPlus > 0:
		return fmt.Sprintf("+%d %s", a.DefPlus, a.Name)
	case a.DefPlus < 0:
		return fmt.Sprintf("%d %s", a.DefPlus, a.Name)
	default:
		return a.Name
	}
}

type armorStat struct {
	name   string
	rarity int
	worth  Num
	def    int
}

// builtinArmors is the fixed roster the source calls BUILTIN_ARMORS.
var builtinArmors = []armorStat{
	{name: "leather", rarity: 20, worth: 20, def: 2},
	{name: "ring_mail", rarity: 15, worth: 25, def: 3},
	{name: "studded_leather", rarity: 15, worth: 20, def: 3},
	{name: "scale_mail", rarity: 13, worth: 30, def: 4},
	{name: "chain_mail", rarity: 12, worth: 75, def: 5},
	{name: "splint_mail", rarity: 10, worth: 80, def: 6},
	{name: "banded_mail", rarity: 10, worth: 90, def: 6},
	{name: "plate_mail", rarity: 5, worth: 150, def: 7},
}

func findArmorStat(name string) (armorStat, bool) {
	for _, a := range builtinArmors {
		if a.name == name {
			return a, true
		}
	}
	return armorStat{}, false
}

// ArmorHandler draws armor from the catalog a config selected,
// weighted by each entry's configured rarity, and rolls the cursed
// (def_plus -= 1..4) and powerup (def_plus += 1..4) checks every
// generated armor is subject to.
type ArmorHandler struct {
	catalog        []armorStat
	weights        []float64
	cursedPercent  int
	powerupPercent int
}

// NewArmorHandler resolves cfg's catalog entries against the builtin
// armor table by name.
func NewArmorHandler(cfg dungeoncfg.GearCfg) (*ArmorHandler, error) {
	h := &ArmorHandler{cursedPercent: cfg.CursedPercent, powerupPercent: cfg.PowerupPercent}
	for _, entry := range cfg.Catalog {
		stat, ok := findArmorStat(entry.Name)
		if !ok {
			return nil, rerr.Newf(rerr.CodeInvalidSetting, "item.armor.catalog: unknown armor %q", entry.Name)
		}
		stat.rarity = entry.Rarity
		h.catalog = append(h.catalog, stat)
		h.weights = append(h.weights, float64(entry.Rarity))
	}
	if len(h.catalog) == 0 {
		return nil, rerr.New(rerr.CodeInvalidSetting, "item.armor.catalog must not be empty")
	}
	return h, nil
}

// Gen draws a weighted-random suit of armor and rolls it for
// cursed/powerup adjustments.
func (h *ArmorHandler) Gen(r *rng.RNG) Item {
	idx := r.WeightedChoice(h.weights)
	if idx < 0 {
		idx = 0
	}
	stat := h.catalog[idx]
	attr := Attr(0)
	defPlus := 0
	switch {
	case r.Parcent(h.cursedPercent):
		attr = attr.Set(AttrCursed)
		defPlus = -r.Range(1, 5)
	case r.Parcent(h.powerupPercent):
		defPlus = r.Range(1, 5)
	}
	return h.build(stat, attr, defPlus)
}

// Named builds the exact armor the catalog lists under name with the
// given starting bonus and no further roll — used for guaranteed
// starting-inventory entries such as the player's default leather armor.
func (h *ArmorHandler) Named(name string, defPlus int) (Item, bool) {
	stat, ok := findArmorStat(name)
	if !ok {
		return Item{}, false
	}
	return h.build(stat, 0, defPlus), true
}

func (h *ArmorHandler) build(stat armorStat, attr Attr, defPlus int) Item {
	return Item{
		Kind: KindArmor,
		Armor: &Armor{
			Name:    stat.name,
			Worth:   stat.worth,
			Def:     stat.def,
			DefPlus: defPlus,
		},
		Count: 1,
		Attr:  attr,
	}
}
