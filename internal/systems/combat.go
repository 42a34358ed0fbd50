package systems

import (
	"github.com/abramin/norse-dungeon-crawler/pkg/logger"
	"github.com/abramin/norse-dungeon-crawler/pkg/utils"

	"github.com/sirupsen/logrus"
)

// StrikeResult - исход одного удара
type StrikeResult struct {
	Roll   int
	Damage int
}

// AttackDamage считает урон удара: atk + бросок d6 - def цели.
// Промахов не существует: финальный урон не опускается ниже единицы.
func AttackDamage(atk, roll, def int) int {
	damage := atk + roll - def
	if damage < 1 {
		damage = 1
	}
	return damage
}

// RollStrike бросает d6 и возвращает урон удара с учётом брони цели.
func RollStrike(rng utils.Rand, atk, def int) StrikeResult {
	roll := utils.RollD6(rng)
	return StrikeResult{Roll: roll, Damage: AttackDamage(atk, roll, def)}
}

// LogStrike пишет структурированную запись об ударе.
func LogStrike(attacker, target string, res StrikeResult, hpBefore, hpAfter int) {
	logger.Log.WithFields(logrus.Fields{
		"component":    "combat_system",
		"attacker":     attacker,
		"target":       target,
		"roll":         res.Roll,
		"final_damage": res.Damage,
		"hp_before":    hpBefore,
		"hp_after":     hpAfter,
		"target_died":  hpAfter <= 0,
	}).Info("Strike resolved.")
}
