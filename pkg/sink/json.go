package sink

import (
	"encoding/json"

	"github.com/matzehuels/quilt/pkg/prng"
)

type jsonOutput struct {
	Salt      string         `json:"salt"`
	Seed      uint32         `json:"seed"`
	Algorithm prng.Algorithm `json:"algorithm"`
	GridSize  int            `json:"grid_size"`
	BlockSize int            `json:"block_size"`
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	Colors    []string       `json:"colors"`
	Cells     []jsonCell     `json:"cells"`
}

type jsonCell struct {
	Index  int    `json:"index"`
	Column int    `json:"column"`
	Row    int    `json:"row"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Color  string `json:"color"`
}

// RenderJSON exports the quilt's provenance and colours.
//
// Colors lists "#rrggbb" values in placement order; Cells repeats them with
// their grid and pixel coordinates. WithScale multiplies the reported pixel
// geometry.
func RenderJSON(q *Quilt, opts ...Option) ([]byte, error) {
	o := newOptions(opts)
	block := q.BlockSize * o.scale

	out := jsonOutput{
		Salt:      q.Salt,
		Seed:      q.Seed,
		Algorithm: q.Algorithm,
		GridSize:  q.Grid.Size,
		BlockSize: block,
		Width:     q.Grid.Size * block,
		Height:    q.Grid.Size * block,
		Colors:    make([]string, 0, len(q.Grid.Colors)),
		Cells:     make([]jsonCell, 0, len(q.Grid.Colors)),
	}
	for i, c := range q.Grid.Colors {
		col, row := q.Grid.Cell(i)
		out.Colors = append(out.Colors, c.Hex())
		out.Cells = append(out.Cells, jsonCell{
			Index:  i,
			Column: col,
			Row:    row,
			X:      col * block,
			Y:      row * block,
			Color:  c.Hex(),
		})
	}

	if o.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}
