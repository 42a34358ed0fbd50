package engine

import (
	"github.com/abramin/norse-dungeon-crawler/internal/domain"
	"github.com/abramin/norse-dungeon-crawler/pkg/api"
)

// Готовые символы отрисовки. Нераскрытые секреты сюда не попадают:
// их тип маскируется до обращения к таблице.
var tileSymbols = map[domain.TileType]string{
	domain.TileWall:       "#",
	domain.TileRoom:       ".",
	domain.TileCorridor:   ".",
	domain.TileDoor:       "+",
	domain.TileSecretDoor: "+",
	domain.TileTrap:       "^",
	domain.TileTreasure:   "$",
	domain.TileStart:      "<",
	domain.TileBoss:       ">",
}

// BuildState собирает снапшот симуляции для клиента. Снапшот - копия:
// клиент не может дотянуться до живого состояния через него.
// Правила цензуры применяются здесь, на сервере:
//   - неисследованные клетки не включаются вовсе;
//   - нераскрытая ловушка выглядит как пол своего класса;
//   - нераскрытая потайная дверь выглядит как стена;
//   - монстры включаются только стоящие в текущем поле зрения.
func BuildState(g *Game, effects []domain.Effect) *api.GameState {
	state := &api.GameState{
		Grid: &api.GridMeta{Size: g.Grid.Size},
	}

	for y := 0; y < g.Grid.Size; y++ {
		for x := 0; x < g.Grid.Size; x++ {
			tile := g.Grid.At(x, y)
			if !tile.Explored {
				continue
			}
			state.Map = append(state.Map, tileView(tile, x, y))
		}
	}

	p := g.Player
	state.Player = &api.PlayerView{
		X:      p.Pos.X,
		Y:      p.Pos.Y,
		HP:     p.HP,
		MaxHP:  p.MaxHP,
		Atk:    p.Atk,
		Def:    p.Def,
		Gold:   p.Gold,
		Facing: p.Facing.String(),
		IsDead: !p.Alive(),
	}

	for _, m := range g.Monsters.All() {
		if !g.Grid.At(m.Pos.X, m.Pos.Y).Visible {
			continue
		}
		arch := g.bestiary.MustGet(m.ArchetypeID)
		state.Monsters = append(state.Monsters, api.MonsterView{
			ID:    m.ID,
			Name:  arch.Name,
			Glyph: string(arch.Glyph),
			Tier:  arch.Tier.String(),
			X:     m.Pos.X,
			Y:     m.Pos.Y,
			HP:    m.HP,
			MaxHP: arch.MaxHP,
		})
	}

	if g.Combat.Active {
		state.Combat = &api.CombatView{Active: true, MonsterID: g.Combat.MonsterID}
	}

	for _, e := range effects {
		state.Effects = append(state.Effects, api.EffectView{
			Kind:      e.Kind.String(),
			X:         e.X,
			Y:         e.Y,
			Variant:   e.Variant,
			Target:    e.Target,
			Duration:  e.Duration,
			Intensity: e.Intensity,
		})
	}

	state.Logs = make([]api.LogEntry, 0, len(g.logs))
	for _, entry := range g.logs {
		state.Logs = append(state.Logs, api.LogEntry{Turn: entry.Turn, Kind: entry.Kind, Text: entry.Text})
	}

	return state
}

// tileView переводит клетку в DTO, маскируя нераскрытые секреты.
func tileView(t *domain.Tile, x, y int) api.TileView {
	v := api.TileView{
		X:        x,
		Y:        y,
		Visible:  t.Visible,
		Explored: t.Explored,
	}

	masked := t.Type
	switch {
	case t.Type == domain.TileSecretDoor && !t.Revealed:
		masked = domain.TileWall
	case t.Type == domain.TileTrap && !t.Revealed:
		if t.RegionType == domain.RegionRoom {
			masked = domain.TileRoom
		} else {
			masked = domain.TileCorridor
		}
	}

	v.Type = masked.String()
	v.Symbol = tileSymbols[masked]

	// Флаги уходят клиенту только когда секрет уже раскрыт:
	// по маскированной клетке нельзя понять, что под ней.
	if t.Revealed {
		v.Revealed = true
		v.Triggered = t.Triggered
	}

	if t.Visible {
		v.MonsterID = t.MonsterID
	}
	return v
}
