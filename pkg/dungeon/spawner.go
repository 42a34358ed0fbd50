package dungeon

import (
	"github.com/sirupsen/logrus"

	"github.com/abramin/norse-dungeon-crawler/internal/domain"
	"github.com/abramin/norse-dungeon-crawler/pkg/logger"
	"github.com/abramin/norse-dungeon-crawler/pkg/utils"
)

// SpawnMonsters заселяет подземелье: случайное число рядовых
// обитателей плюс гарантированный босс на клетке босса. Розыгрыш,
// выпавший на клетку босса, сгорает: она зарезервирована за боссом,
// который ставится отдельным финальным шагом. Повторные попадания в
// одну клетку исключены выбором без возврата.
func SpawnMonsters(g *domain.Grid, boss domain.Position, bestiary *domain.Bestiary, ids utils.IDGenerator, rng utils.Rand) *domain.Registry {
	registry := domain.NewRegistry()

	// Кандидаты: пол комнат и коридоров плюс клетка босса.
	// Старт, ловушки и сокровища сюда не попадают.
	var candidates []domain.Position
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			switch g.Tiles[y][x].Type {
			case domain.TileRoom, domain.TileCorridor, domain.TileBoss:
				candidates = append(candidates, domain.Position{X: x, Y: y})
			}
		}
	}

	count := utils.RollRange(rng, domain.MonsterMinCount, domain.MonsterMaxCount)
	pool := bestiary.NonBoss()

	for i := 0; i < count && len(candidates) > 0; i++ {
		p := utils.DrawFrom(rng, &candidates)
		if p == boss {
			continue
		}

		arch := pool[rng.Intn(len(pool))]
		domain.PlaceMonster(g, registry, &domain.Instance{
			ID:          ids.NextID(arch.ID),
			ArchetypeID: arch.ID,
			HP:          arch.MaxHP,
			Pos:         p,
		})
	}

	bossArch := bestiary.Boss()
	domain.PlaceMonster(g, registry, &domain.Instance{
		ID:          ids.NextID(bossArch.ID),
		ArchetypeID: bossArch.ID,
		HP:          bossArch.MaxHP,
		Pos:         boss,
	})

	logger.Log.WithFields(logrus.Fields{
		"component": "dungeon",
		"monsters":  registry.Len(),
		"boss":      bossArch.ID,
	}).Debug("Monsters spawned.")

	return registry
}
