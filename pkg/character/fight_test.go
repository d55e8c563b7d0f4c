package character

import (
	"testing"

	"github.com/rogue-core/roguecore/pkg/dungeoncfg"
	"github.com/rogue-core/roguecore/pkg/rng"
)

func TestHitSubClampsToHitRateMax(t *testing.T) {
	if got := hitSub(Level(100), Defense(100), 100); got != 100 {
		t.Errorf("hitSub saturated high = %d, want 100", got)
	}
	if got := hitSub(Level(-100), Defense(-100), -100); got != 0 {
		t.Errorf("hitSub saturated low = %d, want 0", got)
	}
}

func TestStrengthBonusOutOfRangeIsZero(t *testing.T) {
	if strengthBonus(0) != 0 {
		t.Error("strengthBonus(0) should be 0")
	}
	if strengthBonus(999) != 0 {
		t.Error("strengthBonus(999) should be 0, out of table range")
	}
	if strengthBonus(1) != -7 {
		t.Errorf("strengthBonus(1) = %d, want -7", strengthBonus(1))
	}
}

func TestPlayerAttacksEnemyRollsDamageOnHit(t *testing.T) {
	// A level-20 player against a defenseless (defense 20), non-running
	// enemy always hits: the hit value clamps to 20, i.e. 100%.
	e := &Enemy{defense: 20, running: false}
	r := rng.NewRNG(10, "character", nil)
	weapon := []dungeoncfg.Dice{{N: 1, Sides: 1}}
	roll := PlayerAttacksEnemy(Level(20), Strength(16), weapon, e, r)
	if !roll.Hit {
		t.Fatal("expected a guaranteed hit against a defenseless, non-running enemy")
	}
	if roll.Damage != 1 {
		t.Errorf("damage = %d, want 1 (single 1-sided die)", roll.Damage)
	}
}

func TestEnemyAttacksPlayerMissWhenPlayerFullyArmored(t *testing.T) {
	e := &Enemy{Level: 1, attack: []dungeoncfg.Dice{{N: 1, Sides: 4}}}
	r := rng.NewRNG(11, "character", nil)
	roll := EnemyAttacksPlayer(e, Defense(20), r)
	if roll.Hit {
		t.Fatal("a level-1 enemy against max player armor has a 10% hit chance, and seed 11 rolls a miss")
	}
}
