package systems

import (
	"github.com/abramin/norse-dungeon-crawler/internal/domain"
)

// BlockReason - причина отказа в движении
type BlockReason uint8

const (
	BlockNone BlockReason = iota
	BlockBounds
	BlockWall
	BlockHiddenDoor
)

var blockNames = map[BlockReason]string{
	BlockNone:       "",
	BlockBounds:     "bounds",
	BlockWall:       "wall",
	BlockHiddenDoor: "hiddenDoor",
}

func (b BlockReason) String() string { return blockNames[b] }

// MovementResult - результат вычисления движения
type MovementResult struct {
	NewX, NewY int
	HasMoved   bool
	Blocked    BlockReason
}

// CalculateMove вычисляет новую позицию героя. Не меняет состояние мира!
// Порядок проверок фиксированный: граница карты, стена, нераскрытая
// потайная дверь (для игрока она неотличима от тупика).
func CalculateMove(g *domain.Grid, from domain.Position, dx, dy int) MovementResult {
	targetPos := from.Shift(dx, dy)
	res := MovementResult{NewX: targetPos.X, NewY: targetPos.Y}

	// 1. Проверка границ
	if !g.InBounds(targetPos.X, targetPos.Y) {
		res.Blocked = BlockBounds
		return res
	}

	tile := g.At(targetPos.X, targetPos.Y)

	// 2. Проверка стен
	if tile.Type == domain.TileWall {
		res.Blocked = BlockWall
		return res
	}

	// 3. Нераскрытая потайная дверь
	if tile.Type == domain.TileSecretDoor && !tile.Revealed {
		res.Blocked = BlockHiddenDoor
		return res
	}

	res.HasMoved = true
	return res
}
