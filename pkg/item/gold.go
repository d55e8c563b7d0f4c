package item

import (
	"github.com/rogue-core/roguecore/pkg/dungeoncfg"
	"github.com/rogue-core/roguecore/pkg/rng"
)

// GenGold rolls whether a room gets a gold pile this call (probability
// 1/RateInv) and, if so, how much: minimum + range(0, base+per_level*level).
func GenGold(cfg dungeoncfg.GoldCfg, r *rng.RNG, level int) (Num, bool) {
	if !r.Happens(cfg.RateInv) {
		return 0, false
	}
	span := cfg.Base + cfg.PerLevel*level
	amount := cfg.Minimum
	if span > 0 {
		amount += r.Intn(span)
	}
	return Num(amount), true
}
