package dungeon

import "github.com/abramin/norse-dungeon-crawler/internal/domain"

// DefaultArchetypes - базовый набор обитателей подземелья.
// Ровно один архетип босс-ранга: он резервируется за клеткой босса и
// в случайный заспавн не попадает.
var DefaultArchetypes = []domain.Archetype{
	{ID: "draugr", Name: "Драугр", Glyph: 'd', MaxHP: 8, Atk: 3, Def: 1, Gold: 10, Tier: domain.TierMinion},
	{ID: "myling", Name: "Мюлинг", Glyph: 'm', MaxHP: 6, Atk: 4, Def: 0, Gold: 8, Tier: domain.TierMinion},
	{ID: "troll", Name: "Горный тролль", Glyph: 'T', MaxHP: 14, Atk: 5, Def: 2, Gold: 25, Tier: domain.TierElite},
	{ID: "jotunn", Name: "Ётун", Glyph: 'J', MaxHP: 30, Atk: 7, Def: 3, Gold: 100, Tier: domain.TierBoss},
}

// DefaultBestiary собирает справочник из базового набора.
func DefaultBestiary() *domain.Bestiary {
	return domain.NewBestiary(DefaultArchetypes)
}
