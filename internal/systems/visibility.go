package systems

import (
	"github.com/abramin/norse-dungeon-crawler/internal/domain"
	"github.com/abramin/norse-dungeon-crawler/pkg/logger"

	"github.com/sirupsen/logrus"
)

// ComputeVisibility пересчитывает зону обзора наблюдателя.
// Флаг visible сбрасывается у всей карты и выставляется заново: клетка
// видима, если она в радиусе (евклидово расстояние) И луч Брезенхэма
// до неё не пересекает непрозрачных клеток. Каждая клетка-кандидат в
// рамке radius+1 проверяется независимо. Explored накапливается
// монотонно и назад не сбрасывается.
func ComputeVisibility(g *domain.Grid, observer domain.Position, radius int) {
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			g.Tiles[y][x].Visible = false
		}
	}

	visibleCount := 0
	radiusSq := radius * radius

	for y := observer.Y - radius - 1; y <= observer.Y+radius+1; y++ {
		for x := observer.X - radius - 1; x <= observer.X+radius+1; x++ {
			if !g.InBounds(x, y) {
				continue
			}
			p := domain.Position{X: x, Y: y}
			if observer.DistanceSquaredTo(p) > radiusSq {
				continue
			}
			if !HasLineOfSight(g, observer, p) {
				continue
			}
			tile := g.At(x, y)
			tile.Visible = true
			tile.Explored = true
			visibleCount++
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "visibility_system",
		"observer":  observer,
		"radius":    radius,
		"visible":   visibleCount,
	}).Debug("Visibility recomputed.")
}
