package engine

import (
	"testing"

	"github.com/abramin/norse-dungeon-crawler/internal/domain"
	"github.com/abramin/norse-dungeon-crawler/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findTile(t *testing.T, state *api.GameState, x, y int) api.TileView {
	t.Helper()
	for _, tv := range state.Map {
		if tv.X == x && tv.Y == y {
			return tv
		}
	}
	t.Fatalf("tile (%d,%d) not present in snapshot", x, y)
	return api.TileView{}
}

func TestBuildState_OnlyExploredTiles(t *testing.T) {
	game := newTestGame(&scriptedRand{})

	state := BuildState(game, nil)
	require.NotEmpty(t, state.Map)

	// 1. Каждая отправленная клетка исследована
	for _, tv := range state.Map {
		assert.True(t, game.Grid.At(tv.X, tv.Y).Explored,
			"tile (%d,%d) not explored but sent", tv.X, tv.Y)
	}

	// 2. Коридор за нераскрытой дверью не исследован и не отправлен
	for _, tv := range state.Map {
		if tv.X == 5 {
			t.Fatalf("unexplored corridor tile (%d,%d) leaked into snapshot", tv.X, tv.Y)
		}
	}
}

func TestBuildState_MasksHiddenSecrets(t *testing.T) {
	game := newTestGame(&scriptedRand{})

	// Нераскрытая ловушка на уже исследованной клетке комнаты
	game.Grid.At(3, 2).Type = domain.TileTrap

	state := BuildState(game, nil)

	// 1. Ловушка выглядит полом своего класса
	trapView := findTile(t, state, 3, 2)
	assert.Equal(t, "room", trapView.Type)
	assert.Equal(t, ".", trapView.Symbol)
	assert.False(t, trapView.Revealed)
	assert.False(t, trapView.Triggered)

	// 2. Потайная дверь выглядит стеной
	doorView := findTile(t, state, 4, 2)
	assert.Equal(t, "wall", doorView.Type)
	assert.Equal(t, "#", doorView.Symbol)
	assert.False(t, doorView.Revealed)
}

func TestBuildState_RevealedSecretsShown(t *testing.T) {
	game := newTestGame(&scriptedRand{})

	trap := game.Grid.At(3, 2)
	trap.Type = domain.TileTrap
	trap.Revealed = true
	trap.Triggered = true
	game.Grid.At(4, 2).Revealed = true

	state := BuildState(game, nil)

	trapView := findTile(t, state, 3, 2)
	assert.Equal(t, "trap", trapView.Type)
	assert.Equal(t, "^", trapView.Symbol)
	assert.True(t, trapView.Revealed)
	assert.True(t, trapView.Triggered)

	doorView := findTile(t, state, 4, 2)
	assert.Equal(t, "secretDoor", doorView.Type)
	assert.Equal(t, "+", doorView.Symbol)
	assert.True(t, doorView.Revealed)
}

func TestBuildState_Symbols(t *testing.T) {
	game := newTestGame(&scriptedRand{})
	game.Grid.At(1, 1).Type = domain.TileStart
	game.Grid.At(1, 2).Type = domain.TileTreasure
	game.Grid.At(3, 3).Type = domain.TileBoss

	state := BuildState(game, nil)

	assert.Equal(t, "<", findTile(t, state, 1, 1).Symbol)
	assert.Equal(t, "$", findTile(t, state, 1, 2).Symbol)
	assert.Equal(t, ">", findTile(t, state, 3, 3).Symbol)
	assert.Equal(t, ".", findTile(t, state, 2, 2).Symbol)
}

func TestBuildState_MonstersGatedByVision(t *testing.T) {
	game := newTestGame(&scriptedRand{})

	// Монстр в поле зрения героя
	near := &domain.Instance{ID: "wight-1", ArchetypeID: "wight", HP: 20, Pos: domain.Position{X: 3, Y: 2}}
	domain.PlaceMonster(game.Grid, game.Monsters, near)

	// Монстр в отрезанном коридоре; клетка исследована когда-то раньше,
	// но сейчас скрыта туманом
	far := &domain.Instance{ID: "wight-2", ArchetypeID: "wight", HP: 20, Pos: domain.Position{X: 5, Y: 2}}
	domain.PlaceMonster(game.Grid, game.Monsters, far)
	game.Grid.At(5, 2).Explored = true

	state := BuildState(game, nil)

	// 1. В списке монстров только видимый
	require.Len(t, state.Monsters, 1)
	mv := state.Monsters[0]
	assert.Equal(t, "wight-1", mv.ID)
	assert.Equal(t, "Умертвие", mv.Name)
	assert.Equal(t, "w", mv.Glyph)
	assert.Equal(t, "minion", mv.Tier)
	assert.Equal(t, 20, mv.MaxHP)

	// 2. Ссылка на монстра уходит только с видимой клетки
	assert.Equal(t, "wight-1", findTile(t, state, 3, 2).MonsterID)
	assert.Empty(t, findTile(t, state, 5, 2).MonsterID)
}

func TestBuildState_PlayerAndCombat(t *testing.T) {
	game := newTestGame(&scriptedRand{})
	game.Player.HP = 21
	game.Player.Gold = 33
	game.Combat.Active = true
	game.Combat.MonsterID = "wight-9"

	state := BuildState(game, nil)

	require.NotNil(t, state.Grid)
	assert.Equal(t, 8, state.Grid.Size)

	p := state.Player
	require.NotNil(t, p)
	assert.Equal(t, 2, p.X)
	assert.Equal(t, 2, p.Y)
	assert.Equal(t, 21, p.HP)
	assert.Equal(t, domain.PlayerMaxHP, p.MaxHP)
	assert.Equal(t, 33, p.Gold)
	assert.Equal(t, "south", p.Facing)
	assert.False(t, p.IsDead)

	require.NotNil(t, state.Combat)
	assert.True(t, state.Combat.Active)
	assert.Equal(t, "wight-9", state.Combat.MonsterID)
}

func TestBuildState_EffectsAndLogs(t *testing.T) {
	game := newTestGame(&scriptedRand{})
	game.addLog(domain.LogLoot, "Сундук!")

	effects := []domain.Effect{
		{Kind: domain.EffectParticles, X: 3, Y: 2, Variant: "gold"},
		{Kind: domain.EffectScreenShake, Duration: 250, Intensity: 3},
	}
	state := BuildState(game, effects)

	require.Len(t, state.Effects, 2)
	assert.Equal(t, "particles", state.Effects[0].Kind)
	assert.Equal(t, "gold", state.Effects[0].Variant)
	assert.Equal(t, "screenShake", state.Effects[1].Kind)
	assert.Equal(t, 250, state.Effects[1].Duration)
	assert.Equal(t, 3, state.Effects[1].Intensity)

	require.Len(t, state.Logs, 1)
	assert.Equal(t, "Сундук!", state.Logs[0].Text)
	assert.Equal(t, domain.LogLoot, state.Logs[0].Kind)
}
