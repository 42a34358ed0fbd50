package domain

// Grid - квадратная карта подземелья. Индексация [y][x].
type Grid struct {
	Size  int
	Tiles [][]Tile
}

// NewGrid создаёт карту, целиком заполненную стенами
// (TileWall — нулевое значение типа).
func NewGrid(size int) *Grid {
	tiles := make([][]Tile, size)
	for y := range tiles {
		tiles[y] = make([]Tile, size)
	}
	return &Grid{Size: size, Tiles: tiles}
}

// InBounds проверяет, что координаты внутри карты.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Size && y < g.Size
}

// At возвращает указатель на клетку. Координаты обязаны быть внутри карты.
func (g *Grid) At(x, y int) *Tile {
	return &g.Tiles[y][x]
}
