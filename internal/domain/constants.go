package domain

// Геометрия подземелья
const (
	DefaultGridSize = 16

	// Меньше нельзя: комната максимального размера плюс кольцо стен
	// уже не помещается, и генератор не сможет разыграть координаты.
	GridMinSize = 8

	RoomMinSize  = 3
	RoomMaxSize  = 5
	RoomMinCount = 4
	RoomMaxCount = 7
)

// Скрытые объекты
const (
	TrapMinCount     = 3
	TrapMaxCount     = 6
	TreasureMinCount = 3
	TreasureMaxCount = 6

	SecretDoorMinCount = 1
	SecretDoorMaxCount = 2
)

// Монстры
const (
	MonsterMinCount = 6
	MonsterMaxCount = 10
)

// Параметры восприятия и поиска
const (
	VisionRadius       = 4
	SearchRadius       = 10
	SearchRevealChance = 0.85
)

// Урон и добыча
const (
	TrapDamageMin = 5
	TrapDamageMax = 15

	TreasureGoldMin = 10
	TreasureGoldMax = 25
)

// Герой
const (
	PlayerMaxHP = 30
	PlayerAtk   = 5
	PlayerDef   = 2
)

// Ёмкость игрового журнала
const LogCapacity = 50
