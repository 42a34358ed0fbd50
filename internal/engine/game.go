package engine

import (
	"fmt"

	"github.com/abramin/norse-dungeon-crawler/internal/domain"
	"github.com/abramin/norse-dungeon-crawler/internal/systems"
	"github.com/abramin/norse-dungeon-crawler/pkg/dungeon"
	"github.com/abramin/norse-dungeon-crawler/pkg/logger"
	"github.com/abramin/norse-dungeon-crawler/pkg/utils"

	"github.com/sirupsen/logrus"
)

// Game - один прогон симуляции: карта, герой, монстры и журнал.
// Не потокобезопасен: все команды сессии сериализуются снаружи.
type Game struct {
	Grid     *domain.Grid
	Player   *domain.Player
	Monsters *domain.Registry
	Combat   domain.CombatState
	Start    domain.Position
	Boss     domain.Position

	// Turn растёт только на действиях, которые что-то сделали:
	// отклонённая команда хода не тратит.
	Turn    int
	Regions int

	cfg      Config
	bestiary *domain.Bestiary
	rng      utils.Rand
	ids      utils.IDGenerator
	effects  EffectSink
	logs     []domain.LogEntry
}

// NewGame создаёт симуляцию со стандартным бестиарием и генератором id.
// Эффекты уходят в NopSink, пока сессия не подключит собственный буфер.
func NewGame(cfg Config) *Game {
	cfg = cfg.withDefaults()
	return NewGameWith(cfg, dungeon.DefaultBestiary(), utils.NewSeeded(cfg.Seed), utils.NewUUIDGenerator(), NopSink{})
}

// NewGameWith - полный конструктор с инъекцией зависимостей.
// Генератор случайных чисел живёт один на всю сессию: рестарты
// продолжают тот же поток, поэтому каждое подземелье новое.
func NewGameWith(cfg Config, bestiary *domain.Bestiary, rng utils.Rand, ids utils.IDGenerator, sink EffectSink) *Game {
	g := &Game{
		cfg:      cfg.withDefaults(),
		bestiary: bestiary,
		rng:      rng,
		ids:      ids,
		effects:  sink,
	}
	g.generate()
	return g
}

// generate собирает свежее подземелье и сбрасывает состояние прогона.
func (g *Game) generate() {
	d := dungeon.NewDungeon(g.cfg.GridSize, g.rng).
		WithBestiary(g.bestiary).
		WithIDGenerator(g.ids).
		WithRooms().
		WithHiddenFeatures().
		WithMonsters().
		Build()

	g.Grid = d.Grid
	g.Monsters = d.Monsters
	g.Start = d.Start
	g.Boss = d.Boss
	g.Regions = d.Regions
	g.Player = domain.NewPlayer(d.Start)
	g.Combat.Clear()
	g.Turn = 0
	g.logs = nil

	systems.ComputeVisibility(g.Grid, g.Player.Pos, g.cfg.VisionRadius)
	g.addLog(domain.LogSystem, "Вы спускаетесь в подземелье. Где-то внизу его страж.")

	logger.Log.WithFields(logrus.Fields{
		"component": "engine",
		"seed":      g.cfg.Seed,
		"grid_size": g.cfg.GridSize,
		"monsters":  g.Monsters.Len(),
		"regions":   g.Regions,
	}).Info("Game initialized.")
}

// Move выполняет шаг героя на соседнюю клетку. Порядок фиксированный:
// проверки (смерть, бой, проходимость), перенос героя, эффект клетки,
// пересчёт обзора, проверка гибели. Отклонённый шаг не меняет ничего,
// кроме журнала.
func (g *Game) Move(dx, dy int) {
	if !g.Player.Alive() {
		g.addLog(domain.LogSystem, "Вы мертвы. Начните заново.")
		return
	}
	if g.Combat.Active {
		g.addLog(domain.LogCombat, "Нельзя сбежать: бой не окончен!")
		return
	}

	res := systems.CalculateMove(g.Grid, g.Player.Pos, dx, dy)
	if !res.HasMoved {
		g.addLog(domain.LogInfo, "Путь прегражден.")
		logger.Log.WithFields(logrus.Fields{
			"component": "engine",
			"reason":    res.Blocked.String(),
			"x":         res.NewX,
			"y":         res.NewY,
		}).Debug("Move rejected.")
		return
	}

	g.Turn++
	g.Player.Pos = domain.Position{X: res.NewX, Y: res.NewY}
	g.Player.Facing = domain.FacingFromDelta(dx, dy, g.Player.Facing)

	g.applyTileEffect(g.Grid.At(res.NewX, res.NewY))

	// Обзор пересчитывается всегда, даже если шаг начал бой:
	// герой должен ясно видеть клетку противника.
	systems.ComputeVisibility(g.Grid, g.Player.Pos, g.cfg.VisionRadius)

	if !g.Player.Alive() {
		g.effects.ScreenShake(500, 6)
		g.addLog(domain.LogDanger, "Вы погибли. Подземелье забрало ещё одну душу.")
	}
}

// applyTileEffect применяет эффект клетки, на которую встал герой.
// На одной клетке не бывает двух эффектов сразу: ловушки и сокровища
// не кладутся на клетки с монстрами и друг на друга.
func (g *Game) applyTileEffect(tile *domain.Tile) {
	p := g.Player.Pos

	switch {
	case tile.Type == domain.TileTrap && !tile.Triggered:
		dmg := utils.RollRange(g.rng, domain.TrapDamageMin, domain.TrapDamageMax)
		tile.Revealed = true
		tile.Triggered = true
		g.Player.TakeDamage(dmg)
		g.effects.ParticlesAt(p.X, p.Y, "blood")
		g.effects.ScreenShake(250, 3)
		g.addLog(domain.LogDanger, fmt.Sprintf("Ловушка! Вы получаете %d урона.", dmg))
		logger.Log.WithFields(logrus.Fields{
			"component": "engine",
			"damage":    dmg,
			"hp":        g.Player.HP,
			"x":         p.X,
			"y":         p.Y,
		}).Info("Trap triggered.")

	case tile.Type == domain.TileTreasure:
		gold := utils.RollRange(g.rng, domain.TreasureGoldMin, domain.TreasureGoldMax)
		g.Player.Gold += gold
		// Клетка становится обычным полом; топологический класс
		// остаётся прежним, так что разметка регионов не нужна.
		tile.Type = domain.TileCorridor
		g.effects.ParticlesAt(p.X, p.Y, "gold")
		g.addLog(domain.LogLoot, fmt.Sprintf("Сундук! Вы забираете %d золота.", gold))
		logger.Log.WithFields(logrus.Fields{
			"component": "engine",
			"gold":      gold,
			"total":     g.Player.Gold,
		}).Info("Treasure looted.")

	case tile.MonsterID != "":
		m, ok := g.Monsters.Get(tile.MonsterID)
		if !ok {
			panic(fmt.Sprintf("engine: tile %d,%d references missing monster %s", p.X, p.Y, tile.MonsterID))
		}
		arch := g.bestiary.MustGet(m.ArchetypeID)
		g.Combat.Active = true
		g.Combat.MonsterID = m.ID
		if arch.Tier == domain.TierBoss {
			g.addLog(domain.LogCombat, fmt.Sprintf("Страж подземелья %s преграждает путь!", arch.Name))
		} else {
			g.addLog(domain.LogCombat, fmt.Sprintf("%s бросается на вас!", arch.Name))
		}
		logger.Log.WithFields(logrus.Fields{
			"component": "engine",
			"monster":   m.ID,
			"archetype": arch.ID,
		}).Info("Combat started.")
	}
}

// Attack разыгрывает один обмен ударами. Герой бьёт первым; убитый
// монстр не отвечает, выживший отвечает свежим броском в тот же ход.
// Гибель героя оставляет бой активным: снять его может только рестарт.
func (g *Game) Attack() {
	if !g.Player.Alive() {
		g.addLog(domain.LogSystem, "Вы мертвы. Начните заново.")
		return
	}
	if !g.Combat.Active {
		g.addLog(domain.LogInfo, "Некого атаковать.")
		return
	}

	m, ok := g.Monsters.Get(g.Combat.MonsterID)
	if !ok {
		panic(fmt.Sprintf("engine: combat references missing monster %s", g.Combat.MonsterID))
	}
	arch := g.bestiary.MustGet(m.ArchetypeID)

	g.Turn++

	strike := systems.RollStrike(g.rng, g.Player.Atk, arch.Def)
	hpBefore := m.HP
	m.HP -= strike.Damage
	systems.LogStrike("player", m.ID, strike, hpBefore, m.HP)
	g.effects.HitFlash(m.ID)
	g.addLog(domain.LogCombat, fmt.Sprintf("Вы наносите %d урона (%s).", strike.Damage, arch.Name))

	if m.HP <= 0 {
		pos := m.Pos
		g.Player.Gold += arch.Gold
		domain.RemoveMonster(g.Grid, g.Monsters, m.ID)
		g.Combat.Clear()
		g.effects.ParticlesAt(pos.X, pos.Y, "death")
		g.addLog(domain.LogCombat, fmt.Sprintf("%s повержен! Добыча: %d золота.", arch.Name, arch.Gold))
		if arch.Tier == domain.TierBoss {
			g.addLog(domain.LogSystem, "Страж пал. Подземелье покорено!")
		}
		return
	}

	back := systems.RollStrike(g.rng, arch.Atk, g.Player.Def)
	playerBefore := g.Player.HP
	died := g.Player.TakeDamage(back.Damage)
	systems.LogStrike(m.ID, "player", back, playerBefore, g.Player.HP)
	g.effects.HitFlash("player")
	g.addLog(domain.LogCombat, fmt.Sprintf("%s отвечает: %d урона.", arch.Name, back.Damage))

	if died {
		g.effects.ScreenShake(500, 6)
		g.addLog(domain.LogDanger, "Вы погибли. Подземелье забрало ещё одну душу.")
	}
}

// Search обыскивает окрестности героя в пределах его текущего региона.
// Раскрытая потайная дверь меняет проходимость, поэтому за ней сразу
// следует переразметка регионов.
func (g *Game) Search() {
	if !g.Player.Alive() {
		g.addLog(domain.LogSystem, "Вы мертвы. Начните заново.")
		return
	}

	g.Turn++

	res := systems.SearchArea(g.Grid, g.Player.Pos, g.cfg.SearchRadius, g.cfg.SearchChance, g.rng)
	for _, p := range res.TrapsRevealed {
		g.addLog(domain.LogInfo, fmt.Sprintf("Вы заметили ловушку: (%d, %d).", p.X, p.Y))
	}
	for _, p := range res.DoorsRevealed {
		g.addLog(domain.LogInfo, fmt.Sprintf("Потайная дверь: (%d, %d)!", p.X, p.Y))
	}
	if len(res.TrapsRevealed) == 0 && len(res.DoorsRevealed) == 0 {
		g.addLog(domain.LogInfo, "Вы ничего не нашли.")
	}

	if res.DoorRevealed() {
		g.Regions = systems.LabelRegions(g.Grid)
	}

	// Раскрытая дверь перестаёт заслонять обзор.
	systems.ComputeVisibility(g.Grid, g.Player.Pos, g.cfg.VisionRadius)
}

// Restart пересоздаёт подземелье с того же потока случайных чисел.
// Единственная команда, доступная погибшему герою; обнуляет счётчик
// ходов и журнал.
func (g *Game) Restart() {
	logger.Log.WithFields(logrus.Fields{
		"component": "engine",
		"turn":      g.Turn,
		"gold":      g.Player.Gold,
	}).Info("Game restarted.")
	g.generate()
}

// addLog пишет строку в игровой журнал. Журнал ограничен по длине:
// при переполнении старые записи вытесняются.
func (g *Game) addLog(kind, text string) {
	g.logs = append(g.logs, domain.LogEntry{Turn: g.Turn, Kind: kind, Text: text})
	if len(g.logs) > domain.LogCapacity {
		g.logs = g.logs[len(g.logs)-domain.LogCapacity:]
	}
}

// LogTail возвращает копию журнала для снапшота.
func (g *Game) LogTail() []domain.LogEntry {
	out := make([]domain.LogEntry, len(g.logs))
	copy(out, g.logs)
	return out
}
