package character

import (
	"github.com/rogue-core/roguecore/pkg/dungeoncfg"
	"github.com/rogue-core/roguecore/pkg/rng"
)

// Roll draws d.N independent values from [1, d.Sides] and sums them,
// grounded on original_source/core/src/character/mod.rs's
// Damage::random for a single Dice. A zero-sided dice (the stub
// hp_dice!(0, 0) entries in the builtin enemy table) always rolls 0.
func Roll(d dungeoncfg.Dice, r *rng.RNG) HitPoint {
	if d.Sides <= 0 {
		return 0
	}
	var total int
	for i := 0; i < d.N; i++ {
		total += r.Range(1, d.Sides+1)
	}
	return HitPoint(total)
}

// RollAll sums independent rolls of every dice in the set, grounded on
// mod.rs's blanket Damage impl for an iterable of Dice (a weapon's
// wield damage or an enemy's multi-dice attack).
func RollAll(dice []dungeoncfg.Dice, r *rng.RNG) HitPoint {
	var total HitPoint
	for _, d := range dice {
		total += Roll(d, r)
	}
	return total
}

// MinOf and MaxOf report a dice's possible extremes without rolling,
// used by status display and AI heuristics that need a bound rather
// than a sample.
func MinOf(d dungeoncfg.Dice) HitPoint { return HitPoint(d.N) }
func MaxOf(d dungeoncfg.Dice) HitPoint { return HitPoint(d.N * d.Sides) }
