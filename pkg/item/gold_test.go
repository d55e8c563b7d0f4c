package item

import (
	"testing"

	"github.com/rogue-core/roguecore/pkg/dungeoncfg"
	"github.com/rogue-core/roguecore/pkg/rng"
)

func TestGenGoldNeverBelowMinimum(t *testing.T) {
	cfg := dungeoncfg.GoldCfg{RateInv: 1, Base: 10, PerLevel: 2, Minimum: 7}
	r := rng.NewRNG(3, "item", nil)
	for i := 0; i < 100; i++ {
		num, ok := GenGold(cfg, r, 1)
		if !ok {
			t.Fatal("rate_inv=1 should always roll true")
		}
		if num < 7 {
			t.Errorf("gold %d below configured minimum 7", num)
		}
	}
}

func TestGenGoldRateInvGatesGeneration(t *testing.T) {
	cfg := dungeoncfg.GoldCfg{RateInv: 1_000_000, Base: 10, PerLevel: 0, Minimum: 1}
	r := rng.NewRNG(4, "item", nil)
	for i := 0; i < 50; i++ {
		if _, ok := GenGold(cfg, r, 1); ok {
			t.Fatal("an astronomically large rate_inv should essentially never roll true")
		}
	}
}
