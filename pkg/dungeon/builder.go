package dungeon

import (
	"github.com/abramin/norse-dungeon-crawler/internal/domain"
	"github.com/abramin/norse-dungeon-crawler/internal/systems"
	"github.com/abramin/norse-dungeon-crawler/pkg/utils"
)

// Dungeon - готовое подземелье со всем населением
type Dungeon struct {
	Grid     *domain.Grid
	Rooms    []Rect
	Start    domain.Position
	Boss     domain.Position
	Monsters *domain.Registry
	Regions  int
}

// DungeonBuilder предоставляет fluent API для сборки подземелья.
// Шаги вызываются по порядку: комнаты, скрытые объекты, монстры.
type DungeonBuilder struct {
	size     int
	rng      utils.Rand
	ids      utils.IDGenerator
	bestiary *domain.Bestiary
	layout   *Layout
	monsters *domain.Registry
	regions  int
}

// NewDungeon создает новый builder
func NewDungeon(size int, rng utils.Rand) *DungeonBuilder {
	return &DungeonBuilder{
		size:     size,
		rng:      rng,
		ids:      utils.NewUUIDGenerator(),
		bestiary: DefaultBestiary(),
	}
}

// WithBestiary подменяет справочник архетипов
func (b *DungeonBuilder) WithBestiary(bestiary *domain.Bestiary) *DungeonBuilder {
	b.bestiary = bestiary
	return b
}

// WithIDGenerator подменяет генератор id (тестам нужны предсказуемые)
func (b *DungeonBuilder) WithIDGenerator(ids utils.IDGenerator) *DungeonBuilder {
	b.ids = ids
	return b
}

// WithRooms генерирует комнаты, коридоры и ключевые клетки,
// после чего размечает регионы.
func (b *DungeonBuilder) WithRooms() *DungeonBuilder {
	b.layout = Generate(b.size, b.rng)
	b.regions = systems.LabelRegions(b.layout.Grid)
	return b
}

// WithHiddenFeatures размещает ловушки, сокровища и потайные двери.
// Дверям нужна готовая разметка регионов, поэтому шаг идёт строго
// после WithRooms; после дверей разметка перезапускается.
func (b *DungeonBuilder) WithHiddenFeatures() *DungeonBuilder {
	g := b.layout.Grid
	PlaceTraps(g, b.rng)
	PlaceTreasure(g, b.rng)
	PlaceSecretDoors(g, b.rng)
	b.regions = systems.LabelRegions(g)
	return b
}

// WithMonsters заселяет подземелье
func (b *DungeonBuilder) WithMonsters() *DungeonBuilder {
	b.monsters = SpawnMonsters(b.layout.Grid, b.layout.Boss, b.bestiary, b.ids, b.rng)
	return b
}

// Build собирает и возвращает готовое подземелье
func (b *DungeonBuilder) Build() *Dungeon {
	if b.monsters == nil {
		b.monsters = domain.NewRegistry()
	}

	return &Dungeon{
		Grid:     b.layout.Grid,
		Rooms:    b.layout.Rooms,
		Start:    b.layout.Start,
		Boss:     b.layout.Boss,
		Monsters: b.monsters,
		Regions:  b.regions,
	}
}
