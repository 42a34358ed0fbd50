package engine

import (
	"time"

	"github.com/abramin/norse-dungeon-crawler/internal/domain"
)

// Config хранит параметры запуска симуляции
type Config struct {
	// Seed - зерно генерации. Ноль означает "случайное": каждая сессия
	// берёт свежее зерно от часов.
	Seed int64

	// GridSize размер квадратной карты.
	GridSize int

	// VisionRadius радиус обзора героя.
	VisionRadius int

	// SearchRadius дистанция действия обыска.
	SearchRadius int

	// SearchChance вероятность раскрыть найденный секрет.
	SearchChance float64
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:         time.Now().UnixNano(),
		GridSize:     domain.DefaultGridSize,
		VisionRadius: domain.VisionRadius,
		SearchRadius: domain.SearchRadius,
		SearchChance: domain.SearchRevealChance,
	}
}

// withDefaults добивает нулевые поля значениями по умолчанию: конфиг,
// собранный руками в тестах или main, может задать только Seed.
// Слишком тесная карта поднимается до минимума, на котором генерация
// гарантированно завершается.
func (c Config) withDefaults() Config {
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	if c.GridSize == 0 {
		c.GridSize = domain.DefaultGridSize
	} else if c.GridSize < domain.GridMinSize {
		c.GridSize = domain.GridMinSize
	}
	if c.VisionRadius == 0 {
		c.VisionRadius = domain.VisionRadius
	}
	if c.SearchRadius == 0 {
		c.SearchRadius = domain.SearchRadius
	}
	if c.SearchChance == 0 {
		c.SearchChance = domain.SearchRevealChance
	}
	return c
}
