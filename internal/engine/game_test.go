package engine

import (
	"fmt"
	"testing"

	"github.com/abramin/norse-dungeon-crawler/internal/domain"
	"github.com/abramin/norse-dungeon-crawler/internal/systems"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame_FreshRun(t *testing.T) {
	game := NewGame(Config{Seed: 7})

	// 1. Герой стоит на старте с полным запасом здоровья
	require.Equal(t, game.Start, game.Player.Pos)
	require.Equal(t, domain.PlayerMaxHP, game.Player.HP)

	// 2. Счетчик ходов обнулен, бой не идет
	assert.Equal(t, 0, game.Turn)
	assert.False(t, game.Combat.Active)

	// 3. Монстры заселены, регионы размечены
	assert.NotZero(t, game.Monsters.Len())
	assert.NotZero(t, game.Regions)

	// 4. Обзор уже посчитан: стартовая клетка видима
	start := game.Grid.At(game.Start.X, game.Start.Y)
	assert.True(t, start.Visible)
	assert.True(t, start.Explored)

	// 5. Журнал открыт вступительной записью
	logs := game.LogTail()
	require.Len(t, logs, 1)
	assert.Equal(t, domain.LogSystem, logs[0].Kind)
}

func TestNewGame_DeterministicBySeed(t *testing.T) {
	a := NewGame(Config{Seed: 42})
	b := NewGame(Config{Seed: 42})

	require.Equal(t, a.Start, b.Start)
	require.Equal(t, a.Boss, b.Boss)
	require.Equal(t, a.Monsters.Len(), b.Monsters.Len())
	for y := 0; y < a.Grid.Size; y++ {
		for x := 0; x < a.Grid.Size; x++ {
			require.Equal(t, a.Grid.At(x, y).Type, b.Grid.At(x, y).Type,
				"tile type mismatch at (%d,%d)", x, y)
		}
	}
}

func TestMove_Step(t *testing.T) {
	game := newTestGame(&scriptedRand{})

	game.Move(1, 0)

	assert.Equal(t, domain.Position{X: 3, Y: 2}, game.Player.Pos)
	assert.Equal(t, domain.FacingEast, game.Player.Facing)
	assert.Equal(t, 1, game.Turn)
}

func TestMove_RejectedStepCostsNothing(t *testing.T) {
	game := newTestGame(&scriptedRand{})

	// Шаг в стену: позиция и счетчик ходов не меняются
	game.Player.Pos = domain.Position{X: 1, Y: 2}
	game.Move(-1, 0)

	assert.Equal(t, domain.Position{X: 1, Y: 2}, game.Player.Pos)
	assert.Equal(t, 0, game.Turn)

	logs := game.LogTail()
	require.NotEmpty(t, logs)
	assert.Equal(t, "Путь прегражден.", logs[len(logs)-1].Text)
}

func TestMove_HiddenDoorLooksLikeDeadEnd(t *testing.T) {
	game := newTestGame(&scriptedRand{})

	// Нераскрытая потайная дверь непроходима
	game.Player.Pos = domain.Position{X: 3, Y: 2}
	game.Move(1, 0)
	assert.Equal(t, domain.Position{X: 3, Y: 2}, game.Player.Pos)
	assert.Equal(t, 0, game.Turn)

	// Раскрытая - обычный проход
	game.Grid.At(4, 2).Revealed = true
	game.Move(1, 0)
	assert.Equal(t, domain.Position{X: 4, Y: 2}, game.Player.Pos)
	assert.Equal(t, 1, game.Turn)
}

func TestMove_BlockedDuringCombat(t *testing.T) {
	game := newTestGame(&scriptedRand{})
	game.Combat.Active = true
	game.Combat.MonsterID = "wight-1"

	game.Move(1, 0)

	assert.Equal(t, domain.Position{X: 2, Y: 2}, game.Player.Pos)
	assert.Equal(t, 0, game.Turn)
}

func TestMove_TrapTriggers(t *testing.T) {
	// Бросок урона: 5 + 5 = 10
	game := newTestGame(&scriptedRand{ints: []int{5}})
	game.Grid.At(3, 2).Type = domain.TileTrap

	game.Move(1, 0)

	// 1. Урон списан, герой жив
	assert.Equal(t, domain.PlayerMaxHP-10, game.Player.HP)
	assert.True(t, game.Player.Alive())

	// 2. Ловушка раскрыта, сработала и осталась ловушкой
	trap := game.Grid.At(3, 2)
	assert.True(t, trap.Revealed)
	assert.True(t, trap.Triggered)
	assert.Equal(t, domain.TileTrap, trap.Type)

	// 3. Ход потрачен, запись в журнале со штампом хода
	require.Equal(t, 1, game.Turn)
	logs := game.LogTail()
	require.NotEmpty(t, logs)
	assert.Equal(t, domain.LogDanger, logs[len(logs)-1].Kind)
	assert.Equal(t, 1, logs[len(logs)-1].Turn)
}

func TestMove_TrapFiresOnce(t *testing.T) {
	game := newTestGame(&scriptedRand{ints: []int{5}})
	game.Grid.At(3, 2).Type = domain.TileTrap

	game.Move(1, 0)
	require.Equal(t, domain.PlayerMaxHP-10, game.Player.HP)

	// Повторный заход на сработавшую ловушку безвреден
	game.Move(-1, 0)
	game.Move(1, 0)
	assert.Equal(t, domain.PlayerMaxHP-10, game.Player.HP)
	assert.Equal(t, 3, game.Turn)
}

func TestMove_TreasurePickup(t *testing.T) {
	// Бросок золота: 10 + 5 = 15
	game := newTestGame(&scriptedRand{ints: []int{5}})
	tile := game.Grid.At(3, 2)
	tile.Type = domain.TileTreasure

	game.Move(1, 0)

	// 1. Золото зачислено
	assert.Equal(t, 15, game.Player.Gold)

	// 2. Клетка стала полом, топологический класс сохранен
	assert.Equal(t, domain.TileCorridor, tile.Type)
	assert.Equal(t, domain.RegionRoom, tile.RegionType)

	logs := game.LogTail()
	require.NotEmpty(t, logs)
	assert.Equal(t, domain.LogLoot, logs[len(logs)-1].Kind)
}

func TestMove_MonsterStartsCombat(t *testing.T) {
	game := newTestGame(&scriptedRand{})
	m := &domain.Instance{ID: "wight-1", ArchetypeID: "wight", HP: 20, Pos: domain.Position{X: 3, Y: 2}}
	domain.PlaceMonster(game.Grid, game.Monsters, m)

	game.Move(1, 0)

	// 1. Бой открыт, цель зафиксирована, авторазрешения нет
	require.True(t, game.Combat.Active)
	assert.Equal(t, "wight-1", game.Combat.MonsterID)
	assert.Equal(t, 20, m.HP)
	assert.Equal(t, domain.PlayerMaxHP, game.Player.HP)

	// 2. Герой встал на клетку монстра
	assert.Equal(t, domain.Position{X: 3, Y: 2}, game.Player.Pos)
	assert.Equal(t, 1, game.Turn)
}

func TestAttack_KillingBlow(t *testing.T) {
	// d6 = 4: урон = 6 + 4 - 1 = 9, ровно весь запас HP цели
	game := newTestGame(&scriptedRand{ints: []int{3}})
	game.Player.Atk = 6
	m := &domain.Instance{ID: "wight-1", ArchetypeID: "wight", HP: 9, Pos: domain.Position{X: 3, Y: 2}}
	domain.PlaceMonster(game.Grid, game.Monsters, m)
	game.Combat.Active = true
	game.Combat.MonsterID = "wight-1"

	game.Attack()

	// 1. Монстр убит и вычищен с карты и из реестра
	assert.Equal(t, 0, game.Monsters.Len())
	assert.Empty(t, game.Grid.At(3, 2).MonsterID)

	// 2. Добыча зачислена, бой закрыт
	assert.Equal(t, 12, game.Player.Gold)
	assert.False(t, game.Combat.Active)

	// 3. Добивающий удар без ответки: герой цел
	assert.Equal(t, domain.PlayerMaxHP, game.Player.HP)
	assert.Equal(t, 1, game.Turn)
}

func TestAttack_SurvivorRetaliates(t *testing.T) {
	// Герой: 6 + 4 - 1 = 9 урона. Ответ: 4 + 3 - 2 = 5 урона.
	game := newTestGame(&scriptedRand{ints: []int{3, 2}})
	game.Player.Atk = 6
	m := &domain.Instance{ID: "wight-1", ArchetypeID: "wight", HP: 20, Pos: domain.Position{X: 3, Y: 2}}
	domain.PlaceMonster(game.Grid, game.Monsters, m)
	game.Combat.Active = true
	game.Combat.MonsterID = "wight-1"

	game.Attack()

	// 1. Обе стороны ранены одним обменом
	assert.Equal(t, 11, m.HP)
	assert.Equal(t, domain.PlayerMaxHP-5, game.Player.HP)

	// 2. Бой продолжается, потрачен один ход
	assert.True(t, game.Combat.Active)
	assert.Equal(t, 1, game.Turn)
}

func TestAttack_RetaliationKillsPlayer(t *testing.T) {
	game := newTestGame(&scriptedRand{ints: []int{3, 2}})
	game.Player.Atk = 6
	game.Player.HP = 3
	m := &domain.Instance{ID: "wight-1", ArchetypeID: "wight", HP: 20, Pos: domain.Position{X: 3, Y: 2}}
	domain.PlaceMonster(game.Grid, game.Monsters, m)
	game.Combat.Active = true
	game.Combat.MonsterID = "wight-1"

	game.Attack()

	// 1. Герой мертв, HP не ушло в минус
	require.False(t, game.Player.Alive())
	assert.Equal(t, 0, game.Player.HP)

	// 2. Бой остается висеть активным: его снимает только рестарт
	assert.True(t, game.Combat.Active)

	// 3. Мертвому доступен только рестарт
	game.Move(0, 1)
	game.Attack()
	game.Search()
	assert.Equal(t, 1, game.Turn)
}

func TestAttack_WithoutCombat(t *testing.T) {
	game := newTestGame(&scriptedRand{})

	game.Attack()

	assert.Equal(t, 0, game.Turn)
	logs := game.LogTail()
	require.NotEmpty(t, logs)
	assert.Equal(t, "Некого атаковать.", logs[len(logs)-1].Text)
}

func TestSearch_RevealsOwnRegionOnly(t *testing.T) {
	game := newTestGame(&scriptedRand{floats: []float64{0.0, 0.0}})

	// Ловушка в комнате героя и ловушка в отрезанном коридоре
	game.Grid.At(1, 3).Type = domain.TileTrap
	game.Grid.At(5, 1).Type = domain.TileTrap

	// Дверь выводим из зоны поиска: интересуют только ловушки
	game.Grid.At(4, 2).Type = domain.TileWall
	game.Regions = systems.LabelRegions(game.Grid)

	game.Search()

	// 1. Ловушка своего региона раскрыта
	assert.True(t, game.Grid.At(1, 3).Revealed)

	// 2. Ловушка чужого региона не тронута, хотя она ближе радиуса
	assert.False(t, game.Grid.At(5, 1).Revealed)

	assert.Equal(t, 1, game.Turn)
}

func TestSearch_DoorRevealMergesRegions(t *testing.T) {
	game := newTestGame(&scriptedRand{floats: []float64{0.0}})
	require.Equal(t, 2, game.Regions)

	game.Search()

	// 1. Дверь раскрыта
	door := game.Grid.At(4, 2)
	require.True(t, door.Revealed)

	// 2. Комната и коридор слились в один регион
	assert.Equal(t, 1, game.Regions)
	assert.Equal(t, game.Grid.At(2, 2).RegionID, game.Grid.At(5, 2).RegionID)

	// 3. Дверь больше не заслоняет обзор: коридор за ней исследован
	assert.True(t, game.Grid.At(5, 2).Explored)
}

func TestSearch_NothingFound(t *testing.T) {
	game := newTestGame(&scriptedRand{floats: []float64{0.5}})
	game.cfg.SearchChance = 0

	game.Search()

	// Пустой обыск все равно тратит ход
	assert.Equal(t, 1, game.Turn)
	logs := game.LogTail()
	require.NotEmpty(t, logs)
	assert.Equal(t, "Вы ничего не нашли.", logs[len(logs)-1].Text)
}

func TestRestart_ResetsRun(t *testing.T) {
	game := NewGame(Config{Seed: 123})
	game.Search()
	game.Player.Gold = 77
	require.Equal(t, 1, game.Turn)

	game.Restart()

	// 1. Счетчик ходов и герой сброшены
	assert.Equal(t, 0, game.Turn)
	assert.Equal(t, domain.PlayerMaxHP, game.Player.HP)
	assert.Equal(t, 0, game.Player.Gold)
	assert.Equal(t, game.Start, game.Player.Pos)
	assert.False(t, game.Combat.Active)

	// 2. Журнал начат заново
	logs := game.LogTail()
	require.Len(t, logs, 1)
	assert.Equal(t, domain.LogSystem, logs[0].Kind)
}

func TestRestart_AfterDeath(t *testing.T) {
	game := newTestGame(&scriptedRand{ints: []int{3, 2}})
	game.Player.HP = 1
	m := &domain.Instance{ID: "wight-1", ArchetypeID: "wight", HP: 20, Pos: domain.Position{X: 3, Y: 2}}
	domain.PlaceMonster(game.Grid, game.Monsters, m)
	game.Combat.Active = true
	game.Combat.MonsterID = "wight-1"

	game.Attack()
	require.False(t, game.Player.Alive())

	game.Restart()

	assert.True(t, game.Player.Alive())
	assert.False(t, game.Combat.Active)
	assert.Equal(t, 0, game.Turn)
}

func TestLog_BoundedTail(t *testing.T) {
	game := newTestGame(&scriptedRand{})

	for i := 0; i < domain.LogCapacity+10; i++ {
		game.addLog(domain.LogInfo, fmt.Sprintf("запись %d", i))
	}

	tail := game.LogTail()
	require.Len(t, tail, domain.LogCapacity)

	// Старые записи вытеснены, самая свежая на месте
	assert.Equal(t, "запись 10", tail[0].Text)
	assert.Equal(t, fmt.Sprintf("запись %d", domain.LogCapacity+9), tail[len(tail)-1].Text)
}
