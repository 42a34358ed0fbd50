package actions

import (
	"github.com/abramin/norse-dungeon-crawler/internal/engine/handlers"
)

// HandleAttack разыгрывает один обмен ударами в активном бою.
func HandleAttack(ctx handlers.Context) error {
	ctx.Log.Debug("Attack command accepted.")
	ctx.Game.Attack()
	return nil
}
