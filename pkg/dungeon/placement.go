package dungeon

import (
	"github.com/sirupsen/logrus"

	"github.com/abramin/norse-dungeon-crawler/internal/domain"
	"github.com/abramin/norse-dungeon-crawler/internal/systems"
	"github.com/abramin/norse-dungeon-crawler/pkg/logger"
	"github.com/abramin/norse-dungeon-crawler/pkg/utils"
)

// floorCandidates собирает клетки пола комнат и коридоров в порядке
// обхода карты. Старт и босс в выборку не попадают: у них свои типы.
func floorCandidates(g *domain.Grid) []domain.Position {
	var out []domain.Position
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			switch g.Tiles[y][x].Type {
			case domain.TileRoom, domain.TileCorridor:
				out = append(out, domain.Position{X: x, Y: y})
			}
		}
	}
	return out
}

// PlaceTraps превращает случайные клетки пола в скрытые ловушки
// (выбор без возврата). Класс пола под ловушкой сохраняет разметка
// регионов, так что до обнаружения она выглядит как обычный пол.
func PlaceTraps(g *domain.Grid, rng utils.Rand) int {
	candidates := floorCandidates(g)
	count := utils.RollRange(rng, domain.TrapMinCount, domain.TrapMaxCount)

	placed := 0
	for placed < count && len(candidates) > 0 {
		p := utils.DrawFrom(rng, &candidates)
		tile := g.At(p.X, p.Y)
		tile.Type = domain.TileTrap
		tile.Revealed = false
		tile.Triggered = false
		placed++
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "dungeon",
		"traps":     placed,
	}).Debug("Traps placed.")

	return placed
}

// PlaceTreasure превращает случайные клетки пола в сокровища.
// Кандидаты собираются заново после ловушек, поэтому наборы не
// пересекаются по построению.
func PlaceTreasure(g *domain.Grid, rng utils.Rand) int {
	candidates := floorCandidates(g)
	count := utils.RollRange(rng, domain.TreasureMinCount, domain.TreasureMaxCount)

	placed := 0
	for placed < count && len(candidates) > 0 {
		p := utils.DrawFrom(rng, &candidates)
		g.At(p.X, p.Y).Type = domain.TileTreasure
		placed++
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "dungeon",
		"treasure":  placed,
	}).Debug("Treasure placed.")

	return placed
}

// PlaceSecretDoors превращает подходящие стены в скрытые двери.
// Стена подходит, если среди её четырёх соседей есть проходимые
// клетки как минимум двух разных регионов: локальная эвристика
// перегородки, глобальная связность не проверяется. Дверь запоминает
// пару соединяемых регионов. После размещения разметку регионов
// нужно перезапустить.
func PlaceSecretDoors(g *domain.Grid, rng utils.Rand) int {
	type wallCut struct {
		pos   domain.Position
		links [2]int
	}

	var candidates []wallCut
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			if g.Tiles[y][x].Type != domain.TileWall {
				continue
			}
			ids := systems.NeighborRegions(g, x, y)
			if len(ids) < 2 {
				continue
			}
			candidates = append(candidates, wallCut{
				pos:   domain.Position{X: x, Y: y},
				links: [2]int{ids[0], ids[1]},
			})
		}
	}

	count := utils.RollRange(rng, domain.SecretDoorMinCount, domain.SecretDoorMaxCount)

	placed := 0
	for placed < count && len(candidates) > 0 {
		c := utils.DrawFrom(rng, &candidates)
		tile := g.At(c.pos.X, c.pos.Y)
		tile.Type = domain.TileSecretDoor
		tile.Revealed = false
		tile.DoorLinks = c.links
		placed++
	}

	logger.Log.WithFields(logrus.Fields{
		"component":  "dungeon",
		"doors":      placed,
		"candidates": len(candidates) + placed,
	}).Debug("Secret doors placed.")

	return placed
}
