package systems

import (
	"github.com/abramin/norse-dungeon-crawler/internal/domain"
)

// HasLineOfSight проверяет прямую видимость между двумя точками.
// Алгоритм Брезенхэма (только целочисленная арифметика); луч блокируют
// непрозрачные клетки СТРОГО между конечными точками, сами точки не
// проверяются. Перед трассировкой точки приводятся к каноническому
// порядку, поэтому ответ не зависит от направления проверки.
func HasLineOfSight(g *domain.Grid, p1, p2 domain.Position) bool {
	if p1 == p2 {
		return true
	}

	if p2.Y < p1.Y || (p2.Y == p1.Y && p2.X < p1.X) {
		p1, p2 = p2, p1
	}

	x0, y0 := p1.X, p1.Y
	x1, y1 := p2.X, p2.Y

	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy < 0 {
		dy = -dy
	}

	sx := sign(x1 - x0)
	sy := sign(y1 - y0)

	err := dx - dy

	for {
		// Проверяем препятствия, ИСКЛЮЧАЯ стартовую и конечную точки.
		isStartPoint := x0 == p1.X && y0 == p1.Y
		isEndPoint := x0 == p2.X && y0 == p2.Y

		if !isStartPoint && !isEndPoint {
			// Выход за границы карты блокирует луч
			if !g.InBounds(x0, y0) {
				return false
			}
			if g.At(x0, y0).Opaque() {
				return false
			}
		}

		if x0 == x1 && y0 == y1 {
			break
		}

		e2 := err * 2
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}

	return true
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
