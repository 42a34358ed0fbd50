// Генератор карт для отладки балансировки: собирает подземелье тем же
// конвейером, что и сервер, и печатает его глазами сервера - без маскировки.
//
//	go run ./tools/mapgen -seed 42 -size 16
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/abramin/norse-dungeon-crawler/internal/domain"
	"github.com/abramin/norse-dungeon-crawler/pkg/dungeon"
	"github.com/abramin/norse-dungeon-crawler/pkg/utils"
)

func main() {
	var seed int64
	var size int
	flag.Int64Var(&seed, "seed", 0, "World seed (0 = random)")
	flag.IntVar(&size, "size", domain.DefaultGridSize, "Grid side length")
	flag.Parse()

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if size < domain.GridMinSize {
		size = domain.GridMinSize
	}

	d := dungeon.NewDungeon(size, utils.NewSeeded(seed)).
		WithRooms().
		WithHiddenFeatures().
		WithMonsters().
		Build()

	fmt.Printf("seed=%d size=%d\n\n", seed, size)
	fmt.Print(dungeon.RenderASCII(d.Grid, nil))

	var traps, treasure, secret int
	for y := 0; y < d.Grid.Size; y++ {
		for x := 0; x < d.Grid.Size; x++ {
			switch d.Grid.At(x, y).Type {
			case domain.TileTrap:
				traps++
			case domain.TileTreasure:
				treasure++
			case domain.TileSecretDoor:
				secret++
			}
		}
	}
	fmt.Printf("\nrooms=%d regions=%d traps=%d treasure=%d secretDoors=%d\n",
		len(d.Rooms), d.Regions, traps, treasure, secret)

	bestiary := dungeon.DefaultBestiary()
	for _, m := range d.Monsters.All() {
		arch := bestiary.MustGet(m.ArchetypeID)
		fmt.Printf("  %c  %-16s hp=%-3d at (%d, %d)\n",
			arch.Glyph, arch.Name, m.HP, m.Pos.X, m.Pos.Y)
	}
}
