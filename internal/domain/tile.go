package domain

// TileType — закрытый набор типов клеток подземелья.
type TileType uint8

const (
	TileWall TileType = iota
	TileRoom
	TileCorridor
	TileDoor
	TileSecretDoor
	TileTrap
	TileTreasure
	TileStart
	TileBoss
)

var tileNames = map[TileType]string{
	TileWall:       "wall",
	TileRoom:       "room",
	TileCorridor:   "corridor",
	TileDoor:       "door",
	TileSecretDoor: "secretDoor",
	TileTrap:       "trap",
	TileTreasure:   "treasure",
	TileStart:      "start",
	TileBoss:       "boss",
}

// String реализует интерфейс Stringer (для снапшотов и логов).
func (t TileType) String() string {
	if name, ok := tileNames[t]; ok {
		return name
	}
	return "unknown"
}

// RegionType — топологический класс проходимой клетки. Определяет,
// как выглядит скрытая ловушка, пока она не раскрыта.
type RegionType uint8

const (
	RegionNone RegionType = iota
	RegionRoom
	RegionCorridor
)

var regionTypeNames = map[RegionType]string{
	RegionNone:     "",
	RegionRoom:     "room",
	RegionCorridor: "corridor",
}

func (rt RegionType) String() string { return regionTypeNames[rt] }

// Tile — атомарная единица карты. Создаётся генератором один раз и
// дальше мутирует на месте: меняются только тип и флаги.
type Tile struct {
	Type     TileType
	Explored bool // игрок когда-либо видел клетку; назад не сбрасывается
	Visible  bool // клетка в текущей зоне обзора; пересчитывается каждый ход

	RegionType RegionType
	RegionID   int // id компоненты связности; 0 — не размечена (стены)

	Revealed  bool // скрытая ловушка или потайная дверь раскрыта игроку
	Triggered bool // ловушка уже сработала; ловушки срабатывают один раз

	// DoorLinks — два региона, которые потайная дверь соединит после
	// раскрытия. Переразметка регионов переписывает их заново: старые
	// id после слияния ничего не значат.
	DoorLinks [2]int

	MonsterID string // id монстра на клетке; пустая строка — клетка свободна
}

// Passable — можно ли пройти через клетку. Нераскрытая потайная дверь
// непроходима: для игрока она выглядит как тупик.
func (t *Tile) Passable() bool {
	switch t.Type {
	case TileWall:
		return false
	case TileSecretDoor:
		return t.Revealed
	default:
		return true
	}
}

// Opaque — блокирует ли клетка линию обзора.
func (t *Tile) Opaque() bool {
	if t.Type == TileWall {
		return true
	}
	return t.Type == TileSecretDoor && !t.Revealed
}
