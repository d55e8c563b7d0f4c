package character

import (
	"github.com/rogue-core/roguecore/pkg/dungeoncfg"
	"github.com/rogue-core/roguecore/pkg/rng"
)

// maxDefense mirrors the source's Defense::max(), the armor class a
// flawless suit of armor would contribute to hitDefense.
const maxDefense = Defense(20)

// hitRateMax is the clamp ceiling on the raw hit-chance value before
// it is scaled into a percent.
const hitRateMax = 20

// strPlus is the strength-to-to-hit bonus table, ported verbatim from
// fight.rs's STR_PLUS (indices 1..32, strengths outside that range add
// nothing).
var strPlus = [32]int{
	-7, -6, -5, -4, -3, -2, -1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 3,
}

func strengthBonus(s Strength) int {
	if s <= 0 || int(s) > len(strPlus) {
		return 0
	}
	return strPlus[int(s)-1]
}

// hitSub computes the percent chance of a hit given the attacker's
// level, the defender's effective armor, and a formula-specific
// revision term, per fight.rs's hit_sub: clamp(level+armor+revision,
// 0, 20) * 5%.
func hitSub(level Level, armor Defense, revision int) int {
	val := int(level) + int(armor) + revision
	if val > hitRateMax {
		val = hitRateMax
	}
	if val < 0 {
		val = 0
	}
	return (100 / hitRateMax) * val
}

// hitAttack is the player's chance to hit enemy, per fight.rs's
// hit_attack: level + armor-class of the enemy + a strength bonus (+4
// more if the enemy isn't running) + 1, scaled to percent.
func hitAttack(playerLevel Level, playerStrength Strength, enemy *Enemy) int {
	strP := strengthBonus(playerStrength)
	if !enemy.running {
		strP += 4
	}
	return hitSub(playerLevel, enemy.Defense(), strP+1)
}

// hitDefense is an enemy's chance to hit the player, per fight.rs's
// hit_defense: the enemy's level against the player's effective armor
// class (max defense minus the player's current arm).
func hitDefense(enemyLevel Level, playerArm Defense) int {
	arm := maxDefense - playerArm
	return hitSub(enemyLevel, arm, 1)
}

// AttackRoll resolves one attacker-vs-defender exchange: hit, miss, or
// — on a hit — how much damage landed.
//
// The source's player_attack/enemy_attack compute the hit chance
// correctly but then unconditionally `return None` on the hit branch,
// leaving combat damage unimplemented (Open Question (a)). This
// implementation takes the fix the distilled specification calls for:
// a successful hit rolls damage from the attacker's dice and returns
// it instead of discarding the roll.
type AttackRoll struct {
	Hit    bool
	Damage HitPoint
}

// PlayerAttacksEnemy resolves the player's attack against enemy using
// the player's equipped weapon's wield dice (or bare-handed 1d2 if
// unarmed, matching the source's fallback for a nil weapon slot).
func PlayerAttacksEnemy(playerLevel Level, playerStrength Strength, weaponDice []dungeoncfg.Dice, enemy *Enemy, r *rng.RNG) AttackRoll {
	if !r.Parcent(hitAttack(playerLevel, playerStrength, enemy)) {
		return AttackRoll{Hit: false}
	}
	return AttackRoll{Hit: true, Damage: RollAll(weaponDice, r)}
}

// EnemyAttacksPlayer resolves enemy's attack against the player using
// enemy.attack (its configured attack dice set).
func EnemyAttacksPlayer(enemy *Enemy, playerArm Defense, r *rng.RNG) AttackRoll {
	if !r.Parcent(hitDefense(enemy.Level, playerArm)) {
		return AttackRoll{Hit: false}
	}
	return AttackRoll{Hit: true, Damage: RollAll(enemy.attack, r)}
}
