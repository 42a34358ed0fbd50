package systems

import (
	"testing"

	"github.com/abramin/norse-dungeon-crawler/internal/domain"
)

// Helper для создания карты, целиком заполненной проходимым полом
func createTestGrid(size int) *domain.Grid {
	g := domain.NewGrid(size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			g.Tiles[y][x].Type = domain.TileCorridor
		}
	}
	return g
}

func TestHasLineOfSight(t *testing.T) {
	// Карта 5x5
	// . . . . .
	// . . # . .  (2,1) - стена
	// . # # # .  (1,2), (2,2), (3,2) - стена
	// . . # . .  (2,3) - стена
	// . . . . .

	g := createTestGrid(5)
	g.At(2, 1).Type = domain.TileWall
	g.At(1, 2).Type = domain.TileWall
	g.At(2, 2).Type = domain.TileWall
	g.At(3, 2).Type = domain.TileWall
	g.At(2, 3).Type = domain.TileWall

	tests := []struct {
		name string
		p1   domain.Position
		p2   domain.Position
		want bool
	}{
		{"Clear horizontal", domain.Position{X: 0, Y: 0}, domain.Position{X: 4, Y: 0}, true},
		{"Blocked horizontal", domain.Position{X: 0, Y: 2}, domain.Position{X: 4, Y: 2}, false},
		{"Clear diagonal", domain.Position{X: 0, Y: 0}, domain.Position{X: 1, Y: 1}, true},
		{"Blocked diagonal", domain.Position{X: 0, Y: 0}, domain.Position{X: 4, Y: 4}, false}, // через (2,2)
		{"Adjacent wall", domain.Position{X: 2, Y: 1}, domain.Position{X: 2, Y: 2}, true},     // Стоим рядом со стеной и смотрим на неё
		{"Behind wall", domain.Position{X: 2, Y: 1}, domain.Position{X: 2, Y: 3}, false},      // Стена (2,2) мешает
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasLineOfSight(g, tt.p1, tt.p2); got != tt.want {
				t.Errorf("HasLineOfSight(%v, %v) = %v, want %v", tt.p1, tt.p2, got, tt.want)
			}
		})
	}
}

func TestHasLineOfSight_Symmetric(t *testing.T) {
	g := createTestGrid(7)
	g.At(3, 2).Type = domain.TileWall
	g.At(2, 4).Type = domain.TileWall
	g.At(5, 5).Type = domain.TileWall

	points := []domain.Position{
		{X: 0, Y: 0}, {X: 6, Y: 6}, {X: 0, Y: 6}, {X: 6, Y: 0},
		{X: 3, Y: 0}, {X: 1, Y: 5}, {X: 4, Y: 3}, {X: 6, Y: 2},
	}

	// Результат не должен зависеть от направления проверки
	for _, a := range points {
		for _, b := range points {
			if HasLineOfSight(g, a, b) != HasLineOfSight(g, b, a) {
				t.Errorf("asymmetric line of sight between %v and %v", a, b)
			}
		}
	}
}

func TestHasLineOfSight_SecretDoor(t *testing.T) {
	g := createTestGrid(5)
	door := g.At(2, 2)
	door.Type = domain.TileSecretDoor

	from := domain.Position{X: 0, Y: 2}
	to := domain.Position{X: 4, Y: 2}

	if HasLineOfSight(g, from, to) {
		t.Error("hidden secret door must block line of sight")
	}

	door.Revealed = true
	if !HasLineOfSight(g, from, to) {
		t.Error("revealed secret door must not block line of sight")
	}
}
