package quilt_test

import (
	"fmt"

	"github.com/matzehuels/quilt/pkg/quilt"
)

func Example() {
	g := quilt.Default()
	buf := g.Render()

	fmt.Println(g.Seed())
	fmt.Println(buf.Width, buf.Height)
	fmt.Println(g.Colors()[:3])
	// Output:
	// 2478459580
	// 250 250
	// [c81ec9 64e6a5 4702fb]
}

func ExampleGenerator_SetGridSize() {
	g := quilt.Default()
	g.SetGridSize(150)
	fmt.Println(g.GridSize())
	g.SetGridSize(-7)
	fmt.Println(g.GridSize())
	// Output:
	// 100
	// 7
}
