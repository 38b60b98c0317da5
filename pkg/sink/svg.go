package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/quilt/pkg/quilt"
)

// RenderSVG draws grid as one rect per cell.
//
// The viewBox is always in unscaled pixels; WithScale only changes the
// width and height attributes.
func RenderSVG(grid quilt.Grid, blockSize int, opts ...Option) []byte {
	o := newOptions(opts)
	side := grid.Size * blockSize

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" shape-rendering="crispEdges">`,
		side*o.scale, side*o.scale, side, side)
	buf.WriteByte('\n')

	if blockSize > 0 {
		for i, c := range grid.Colors {
			col, row := grid.Cell(i)
			fmt.Fprintf(&buf, `  <rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`,
				col*blockSize, row*blockSize, blockSize, blockSize, c.Hex())
			buf.WriteByte('\n')
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
