package actions

import (
	"github.com/abramin/norse-dungeon-crawler/internal/engine/handlers"
)

// HandleSearch запускает обыск окрестностей героя.
func HandleSearch(ctx handlers.Context) error {
	ctx.Log.Debug("Search command accepted.")
	ctx.Game.Search()
	return nil
}
