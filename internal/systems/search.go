package systems

import (
	"github.com/abramin/norse-dungeon-crawler/internal/domain"
	"github.com/abramin/norse-dungeon-crawler/pkg/logger"
	"github.com/abramin/norse-dungeon-crawler/pkg/utils"

	"github.com/sirupsen/logrus"
)

// SearchResult - итог обыска окрестностей
type SearchResult struct {
	TrapsRevealed []domain.Position
	DoorsRevealed []domain.Position
}

// DoorRevealed сообщает, раскрыта ли хотя бы одна потайная дверь.
// После этого вызывающий обязан перезапустить разметку регионов.
func (r SearchResult) DoorRevealed() bool { return len(r.DoorsRevealed) > 0 }

// SearchArea обыскивает клетки в радиусе вокруг героя, ограничиваясь его
// текущим регионом: обыск одной комнаты никогда не раскрывает секреты в
// недостижимой части карты, даже если по сетке они рядом. Ловушка
// принадлежит региону своей клетки; нераскрытая потайная дверь региона
// не имеет и сопоставляется по записанным DoorLinks. Каждый найденный
// секрет раскрывается с вероятностью chance, бросок на каждый секрет свой.
func SearchArea(g *domain.Grid, from domain.Position, radius int, chance float64, rng utils.Rand) SearchResult {
	var res SearchResult

	playerRegion := g.At(from.X, from.Y).RegionID
	radiusSq := radius * radius

	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			p := domain.Position{X: x, Y: y}
			if from.DistanceSquaredTo(p) > radiusSq {
				continue
			}
			tile := g.At(x, y)
			if tile.Revealed {
				continue
			}

			switch tile.Type {
			case domain.TileTrap:
				if tile.RegionID != playerRegion {
					continue
				}
				if rng.Float64() < chance {
					tile.Revealed = true
					res.TrapsRevealed = append(res.TrapsRevealed, p)
				}
			case domain.TileSecretDoor:
				if tile.DoorLinks[0] != playerRegion && tile.DoorLinks[1] != playerRegion {
					continue
				}
				if rng.Float64() < chance {
					tile.Revealed = true
					res.DoorsRevealed = append(res.DoorsRevealed, p)
				}
			}
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "search_system",
		"region":    playerRegion,
		"traps":     len(res.TrapsRevealed),
		"doors":     len(res.DoorsRevealed),
	}).Debug("Search complete.")

	return res
}
