package domain

import (
	"fmt"
	"sort"
)

// Tier - ранг архетипа монстра.
type Tier uint8

const (
	TierMinion Tier = iota
	TierElite
	TierBoss
)

var tierNames = map[Tier]string{
	TierMinion: "minion",
	TierElite:  "elite",
	TierBoss:   "boss",
}

func (t Tier) String() string { return tierNames[t] }

// Archetype - статический шаблон класса монстра. Экземпляры ссылаются
// на архетип по id и не копируют его поля.
type Archetype struct {
	ID    string
	Name  string
	Glyph rune
	MaxHP int
	Atk   int
	Def   int
	Gold  int
	Tier  Tier
}

// Bestiary - неизменяемый справочник архетипов. Передаётся в симуляцию
// при создании; босс-архетип должен быть ровно один.
type Bestiary struct {
	byID  map[string]Archetype
	order []string
	boss  string
}

// NewBestiary собирает справочник. Нарушение формата (дубликат id, не
// ровно один босс) — ошибка справочных данных, паника.
func NewBestiary(archetypes []Archetype) *Bestiary {
	b := &Bestiary{byID: make(map[string]Archetype, len(archetypes))}
	for _, a := range archetypes {
		if _, dup := b.byID[a.ID]; dup {
			panic(fmt.Sprintf("bestiary: duplicate archetype %q", a.ID))
		}
		b.byID[a.ID] = a
		b.order = append(b.order, a.ID)
		if a.Tier == TierBoss {
			if b.boss != "" {
				panic("bestiary: more than one boss archetype")
			}
			b.boss = a.ID
		}
	}
	if b.boss == "" {
		panic("bestiary: no boss archetype")
	}
	return b
}

// Get возвращает архетип по id.
func (b *Bestiary) Get(id string) (Archetype, bool) {
	a, ok := b.byID[id]
	return a, ok
}

// MustGet - как Get, но паникует на неизвестном id: ссылка на
// отсутствующий архетип означает сломанный инвариант.
func (b *Bestiary) MustGet(id string) Archetype {
	a, ok := b.byID[id]
	if !ok {
		panic(fmt.Sprintf("bestiary: unknown archetype %q", id))
	}
	return a
}

// Boss возвращает единственный босс-архетип.
func (b *Bestiary) Boss() Archetype {
	return b.byID[b.boss]
}

// NonBoss возвращает все архетипы, кроме босса, в порядке объявления.
func (b *Bestiary) NonBoss() []Archetype {
	out := make([]Archetype, 0, len(b.order)-1)
	for _, id := range b.order {
		if id != b.boss {
			out = append(out, b.byID[id])
		}
	}
	return out
}

// Instance - живой монстр. Pos зеркалит обратную ссылку tile.MonsterID:
// обе стороны обязаны совпадать всегда.
type Instance struct {
	ID          string
	ArchetypeID string
	HP          int
	Pos         Position
}

// Registry - реестр живых монстров по id.
type Registry struct {
	monsters map[string]*Instance
}

func NewRegistry() *Registry {
	return &Registry{monsters: make(map[string]*Instance)}
}

func (r *Registry) Get(id string) (*Instance, bool) {
	m, ok := r.monsters[id]
	return m, ok
}

func (r *Registry) Len() int { return len(r.monsters) }

// All возвращает монстров в стабильном порядке id (для снапшотов и тестов).
func (r *Registry) All() []*Instance {
	out := make([]*Instance, 0, len(r.monsters))
	for _, m := range r.monsters {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// PlaceMonster регистрирует монстра и проставляет обратную ссылку на
// клетке одним шагом. Занятая клетка или повторный id — паника.
func PlaceMonster(g *Grid, r *Registry, m *Instance) {
	tile := g.At(m.Pos.X, m.Pos.Y)
	if tile.MonsterID != "" {
		panic(fmt.Sprintf("monster registry: tile %d,%d already occupied by %s", m.Pos.X, m.Pos.Y, tile.MonsterID))
	}
	if _, dup := r.monsters[m.ID]; dup {
		panic(fmt.Sprintf("monster registry: duplicate instance id %s", m.ID))
	}
	r.monsters[m.ID] = m
	tile.MonsterID = m.ID
}

// RemoveMonster удаляет монстра из реестра и чистит ссылку на клетке
// в одной транзакции. Расхождение реестра и карты — паника.
func RemoveMonster(g *Grid, r *Registry, id string) {
	m, ok := r.monsters[id]
	if !ok {
		panic(fmt.Sprintf("monster registry: unknown instance %s", id))
	}
	tile := g.At(m.Pos.X, m.Pos.Y)
	if tile.MonsterID != id {
		panic(fmt.Sprintf("monster registry: tile %d,%d points at %q, expected %s", m.Pos.X, m.Pos.Y, tile.MonsterID, id))
	}
	tile.MonsterID = ""
	delete(r.monsters, id)
}
