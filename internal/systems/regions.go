package systems

import (
	"sort"

	"github.com/abramin/norse-dungeon-crawler/internal/domain"
	"github.com/abramin/norse-dungeon-crawler/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// Типы клеток, классифицируемые как комната. Всё остальное проходимое
// считается коридором.
var roomClassTypes = map[domain.TileType]bool{
	domain.TileRoom:     true,
	domain.TileStart:    true,
	domain.TileBoss:     true,
	domain.TileTreasure: true,
}

// LabelRegions размечает регионы проходимых клеток: многостартовый
// поиск в ширину по четырём направлениям, id выдаются последовательно
// с единицы в растровом порядке обхода. Стены и нераскрытые потайные
// двери непроходимы и остаются без региона.
//
// Заливка не пересекает границу топологических классов: комната и
// проходящий вплотную коридор остаются разными регионами, поэтому на
// обычной карте регионов много - по одному на комнату и на связный
// кусок коридоров. Дверные клетки сшивают регионы любых классов:
// раскрытая потайная дверь сливает оба своих региона в один.
// Идемпотентна; перезапускается после размещения дверей и после
// раскрытия. Возвращает число регионов.
func LabelRegions(g *domain.Grid) int {
	// Старая разметка сбрасывается целиком, id назначаются заново
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			g.Tiles[y][x].RegionID = 0
		}
	}

	next := 0
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			tile := g.At(x, y)
			if !tile.Passable() || tile.RegionID != 0 {
				continue
			}
			next++
			floodRegion(g, domain.Position{X: x, Y: y}, next)
		}
	}

	refreshDoorLinks(g)

	logger.Log.WithFields(logrus.Fields{
		"component": "region_system",
		"regions":   next,
	}).Debug("Region labeling complete.")

	return next
}

// refreshDoorLinks пересчитывает пары регионов нераскрытых потайных
// дверей под свежую нумерацию: после слияния старые id ничего не
// значат. Дверь, вокруг которой остался один регион, хранит его с
// обеих сторон и по-прежнему находится обыском из него.
func refreshDoorLinks(g *domain.Grid) {
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			tile := g.At(x, y)
			if tile.Type != domain.TileSecretDoor || tile.Revealed {
				continue
			}
			ids := NeighborRegions(g, x, y)
			switch len(ids) {
			case 0:
			case 1:
				tile.DoorLinks = [2]int{ids[0], ids[0]}
			default:
				tile.DoorLinks = [2]int{ids[0], ids[1]}
			}
		}
	}
}

// NeighborRegions возвращает отсортированные id регионов среди четырёх
// соседей клетки. Размещение потайных дверей ищет этим же тестом
// стены-перегородки между двумя регионами.
func NeighborRegions(g *domain.Grid, x, y int) []int {
	distinct := mapset.New[int]()
	for _, d := range domain.CardinalOffsets {
		nx, ny := x+d.X, y+d.Y
		if !g.InBounds(nx, ny) {
			continue
		}
		if n := g.At(nx, ny); n.Passable() && n.RegionID != 0 {
			distinct.Put(n.RegionID)
		}
	}

	ids := make([]int, 0, distinct.Size())
	distinct.Each(func(id int) {
		ids = append(ids, id)
	})
	sort.Ints(ids)
	return ids
}

// floodRegion помечает один регион, начиная со стартовой клетки.
func floodRegion(g *domain.Grid, start domain.Position, id int) {
	queue := []domain.Position{start}
	markRegion(g.At(start.X, start.Y), id)

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		curr := g.At(p.X, p.Y)

		for _, d := range domain.CardinalOffsets {
			n := p.Shift(d.X, d.Y)
			if !g.InBounds(n.X, n.Y) {
				continue
			}
			tile := g.At(n.X, n.Y)
			if !tile.Passable() || tile.RegionID != 0 || !regionConnects(curr, tile) {
				continue
			}
			markRegion(tile, id)
			queue = append(queue, n)
		}
	}
}

// regionConnects решает, сливаются ли две соседние проходимые клетки
// в один регион: либо общий класс, либо одна из клеток - дверь.
func regionConnects(a, b *domain.Tile) bool {
	return isBridge(a) || isBridge(b) || regionClass(a) == regionClass(b)
}

// isBridge: дверные клетки соединяют регионы независимо от класса.
func isBridge(t *domain.Tile) bool {
	return t.Type == domain.TileDoor || (t.Type == domain.TileSecretDoor && t.Revealed)
}

// regionClass возвращает действующий класс клетки: уже назначенный
// RegionType, иначе класс, выводимый из типа. Ловушка, положенная на
// пол комнаты, так и остаётся комнатной.
func regionClass(t *domain.Tile) domain.RegionType {
	if t.RegionType != domain.RegionNone {
		return t.RegionType
	}
	if roomClassTypes[t.Type] {
		return domain.RegionRoom
	}
	return domain.RegionCorridor
}

// markRegion проставляет id региона и топологический класс клетки.
// Уже назначенный класс сохраняется: ловушка продолжает выглядеть как
// пол того типа, на котором была размещена.
func markRegion(t *domain.Tile, id int) {
	t.RegionID = id
	if t.RegionType == domain.RegionNone {
		if roomClassTypes[t.Type] {
			t.RegionType = domain.RegionRoom
		} else {
			t.RegionType = domain.RegionCorridor
		}
	}
}

// RegionCount возвращает число различных регионов на размеченной карте.
func RegionCount(g *domain.Grid) int {
	ids := mapset.New[int]()
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			if id := g.Tiles[y][x].RegionID; id != 0 {
				ids.Put(id)
			}
		}
	}
	return ids.Size()
}
