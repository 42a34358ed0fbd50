package dungeon

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/abramin/norse-dungeon-crawler/internal/domain"
	"github.com/abramin/norse-dungeon-crawler/pkg/logger"
	"github.com/abramin/norse-dungeon-crawler/pkg/utils"
)

// Лимит попыток размещения: генерация обязана завершиться даже когда
// целевое число комнат не помещается на тесной карте.
const maxPlaceAttempts = 200

// Rect - Вспомогательная структура для комнаты
type Rect struct {
	X, Y, W, H int
}

// Center возвращает центр комнаты.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Intersects проверяет пересечение по площади. Неравенства строгие:
// комнаты, касающиеся рёбрами или углами, пересечением не считаются.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.W && other.X < r.X+r.W &&
		r.Y < other.Y+other.H && other.Y < r.Y+r.H
}

// Layout - результат генерации: карта, комнаты и ключевые клетки
type Layout struct {
	Grid  *domain.Grid
	Rooms []Rect
	Start domain.Position
	Boss  domain.Position
}

// Generate создает новое подземелье: карта целиком из стен, затем
// непересекающиеся комнаты, соединённые Г-образными коридорами.
// Комнаты сортируются по (x, затем y); коридор идёт от центра каждой
// к центру следующей. Старт - центр первой комнаты, босс - центр
// самой дальней от старта (при равных расстояниях побеждает первая).
// Старт и босс штампуются после прокладки коридоров, поэтому коридор,
// прошедший через эти клетки, их не затирает.
func Generate(size int, rng utils.Rand) *Layout {
	g := domain.NewGrid(size)

	target := utils.RollRange(rng, domain.RoomMinCount, domain.RoomMaxCount)

	// 1. Генерируем комнаты отбором с отбрасыванием
	var rooms []Rect
	for attempt := 0; attempt < maxPlaceAttempts && len(rooms) < target; attempt++ {
		w := utils.RollRange(rng, domain.RoomMinSize, domain.RoomMaxSize)
		h := utils.RollRange(rng, domain.RoomMinSize, domain.RoomMaxSize)
		x := utils.RollRange(rng, 1, size-w-1)
		y := utils.RollRange(rng, 1, size-h-1)

		newRoom := Rect{X: x, Y: y, W: w, H: h}
		failed := false

		for _, other := range rooms {
			if newRoom.Intersects(other) {
				failed = true
				break
			}
		}

		if !failed {
			carveRoom(g, newRoom)
			rooms = append(rooms, newRoom)
		}
	}

	// 2. Сортируем и соединяем соседние по порядку комнаты
	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].X != rooms[j].X {
			return rooms[i].X < rooms[j].X
		}
		return rooms[i].Y < rooms[j].Y
	})

	for i := 1; i < len(rooms); i++ {
		prevX, prevY := rooms[i-1].Center()
		currX, currY := rooms[i].Center()
		carveCorridor(g, prevX, prevY, currX, currY)
	}

	// 3. Ключевые клетки
	layout := &Layout{Grid: g, Rooms: rooms}

	sx, sy := rooms[0].Center()
	layout.Start = domain.Position{X: sx, Y: sy}

	best := -1
	for _, room := range rooms {
		cx, cy := room.Center()
		center := domain.Position{X: cx, Y: cy}
		if d := layout.Start.DistanceSquaredTo(center); d > best {
			best = d
			layout.Boss = center
		}
	}

	g.At(layout.Start.X, layout.Start.Y).Type = domain.TileStart
	g.At(layout.Boss.X, layout.Boss.Y).Type = domain.TileBoss

	logger.Log.WithFields(logrus.Fields{
		"component": "dungeon",
		"size":      size,
		"rooms":     len(rooms),
		"start":     layout.Start,
		"boss":      layout.Boss,
	}).Info("Dungeon layout generated.")

	return layout
}

// --- Вспомогательные функции ---

func carveRoom(g *domain.Grid, room Rect) {
	for y := room.Y; y < room.Y+room.H; y++ {
		for x := room.X; x < room.X+room.W; x++ {
			g.At(x, y).Type = domain.TileRoom
		}
	}
}

// carveCorridor прорезает Г-образный коридор: сначала горизонтальный
// сегмент на строке источника, затем вертикальный на столбце цели.
// Коридор режет всё на своём пути, включая пол чужих комнат.
func carveCorridor(g *domain.Grid, x1, y1, x2, y2 int) {
	carveHSegment(g, x1, x2, y1)
	carveVSegment(g, y1, y2, x2)
}

func carveHSegment(g *domain.Grid, x1, x2, y int) {
	start := min(x1, x2)
	end := max(x1, x2)
	for x := start; x <= end; x++ {
		g.At(x, y).Type = domain.TileCorridor
	}
}

func carveVSegment(g *domain.Grid, y1, y2, x int) {
	start := min(y1, y2)
	end := max(y1, y2)
	for y := start; y <= end; y++ {
		g.At(x, y).Type = domain.TileCorridor
	}
}
