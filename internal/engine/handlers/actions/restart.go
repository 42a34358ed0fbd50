package actions

import (
	"github.com/abramin/norse-dungeon-crawler/internal/engine/handlers"
)

// HandleRestart пересоздаёт подземелье сессии с нуля.
func HandleRestart(ctx handlers.Context) error {
	ctx.Log.Debug("Restart command accepted.")
	ctx.Game.Restart()
	return nil
}
