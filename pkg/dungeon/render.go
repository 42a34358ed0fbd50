package dungeon

import (
	"strings"

	"github.com/abramin/norse-dungeon-crawler/internal/domain"
)

// Символы отладочной отрисовки. В отличие от клиентского снапшота здесь
// ничего не маскируется: дамп показывает карту глазами сервера.
var debugSymbols = map[domain.TileType]byte{
	domain.TileWall:       '#',
	domain.TileRoom:       '.',
	domain.TileCorridor:   ',',
	domain.TileDoor:       '+',
	domain.TileSecretDoor: 's',
	domain.TileTrap:       '^',
	domain.TileTreasure:   '$',
	domain.TileStart:      '<',
	domain.TileBoss:       '>',
}

// RenderASCII рисует карту в текстовом виде: по строке на ряд клеток.
// Монстры отображаются первой буквой id поверх пола, герой - символом @.
// Используется отладочной ручкой сервера и генератором карт из tools.
func RenderASCII(g *domain.Grid, player *domain.Position) string {
	var sb strings.Builder
	sb.Grow((g.Size + 1) * g.Size)

	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			if player != nil && player.X == x && player.Y == y {
				sb.WriteByte('@')
				continue
			}
			tile := g.At(x, y)
			if tile.MonsterID != "" {
				sb.WriteByte(tile.MonsterID[0])
				continue
			}
			sb.WriteByte(debugSymbols[tile.Type])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
