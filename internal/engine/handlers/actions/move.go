package actions

import (
	"github.com/abramin/norse-dungeon-crawler/internal/engine/handlers"
	"github.com/abramin/norse-dungeon-crawler/pkg/api"

	"github.com/sirupsen/logrus"
)

// HandleMove доносит до симуляции провалидированное направление шага.
// Проверки проходимости и эффекты клетки целиком внутри Move.
func HandleMove(ctx handlers.Context, p api.DirectionPayload) error {
	ctx.Log.WithFields(logrus.Fields{"dx": p.Dx, "dy": p.Dy}).Debug("Move command accepted.")
	ctx.Game.Move(p.Dx, p.Dy)
	return nil
}
