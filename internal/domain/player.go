package domain

// Facing - направление взгляда героя. Само ядро его не использует,
// но поддерживает для first-person отображения на стороне клиента.
type Facing uint8

const (
	FacingSouth Facing = iota
	FacingNorth
	FacingEast
	FacingWest
)

var facingNames = map[Facing]string{
	FacingSouth: "south",
	FacingNorth: "north",
	FacingEast:  "east",
	FacingWest:  "west",
}

func (f Facing) String() string { return facingNames[f] }

// FacingFromDelta возвращает направление по вектору шага.
// Нулевой вектор оставляет текущее направление.
func FacingFromDelta(dx, dy int, current Facing) Facing {
	switch {
	case dy < 0:
		return FacingNorth
	case dy > 0:
		return FacingSouth
	case dx > 0:
		return FacingEast
	case dx < 0:
		return FacingWest
	}
	return current
}

// Player - состояние героя.
type Player struct {
	Pos    Position
	HP     int
	MaxHP  int
	Atk    int
	Def    int
	Gold   int
	Facing Facing
}

// NewPlayer создаёт героя с базовыми характеристиками на стартовой клетке.
func NewPlayer(start Position) *Player {
	return &Player{
		Pos:    start,
		HP:     PlayerMaxHP,
		MaxHP:  PlayerMaxHP,
		Atk:    PlayerAtk,
		Def:    PlayerDef,
		Facing: FacingSouth,
	}
}

// TakeDamage наносит урон, hp не опускается ниже нуля.
// Возвращает true, если герой погиб.
func (p *Player) TakeDamage(amount int) bool {
	if amount < 0 {
		amount = 0
	}
	p.HP -= amount
	if p.HP <= 0 {
		p.HP = 0
		return true
	}
	return false
}

// Alive - жив ли герой.
func (p *Player) Alive() bool { return p.HP > 0 }
