package cli

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/image/colornames"

	"github.com/matzehuels/quilt/pkg/quilt"
)

func (c *CLI) paletteCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "palette [seed]",
		Short: "Print the colours of a seed's quilt",
		Long: `Print every cell of a seed's quilt in placement order: its column and
row, its hex colour, the nearest CSS colour name and a swatch.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := cfg.Options(args[0])
			flags.apply(cmd, &opts)
			g, err := opts.Generator()
			if err != nil {
				return err
			}

			grid := g.Grid()
			fmt.Fprintln(stdout, StyleTitle.Render(fmt.Sprintf("Quilt %q", g.Salt())))
			printKeyValue("seed", strconv.FormatUint(uint64(g.Seed()), 10))
			printKeyValue("grid", fmt.Sprintf("%d×%d", grid.Size, grid.Size))
			printKeyValue("algorithm", string(g.Algorithm()))
			fmt.Fprintln(stdout, paletteTable(grid))
			return nil
		},
	}

	cmd.Flags().IntVar(&flags.grid, "grid", 0, "cells per side (default 5)")
	cmd.Flags().StringVar(&flags.algorithm, "algorithm", "", "shuffle generator: mt19937 (default), pcg")
	registerFlagCompletions(cmd)

	return cmd
}

func paletteTable(grid quilt.Grid) string {
	rows := make([][]string, len(grid.Colors))
	for i, c := range grid.Colors {
		col, row := grid.Cell(i)
		rows[i] = []string{
			strconv.Itoa(i),
			strconv.Itoa(col),
			strconv.Itoa(row),
			c.Hex(),
			nearestColorName(c.ToRGBA()),
			"    ",
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Col", "Row", "Hex", "Nearest", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == -1: // header
				return base.Inherit(styleHeader)
			case col == 5:
				return base.Background(lipgloss.Color(grid.Colors[row].Hex()))
			case col <= 2:
				return base.Foreground(colorGray)
			}
			return base.Foreground(colorWhite)
		}).
		Render()
}

// nearestColorName returns the CSS colour name closest to c in RGB space.
// Ties go to the alphabetically first name.
func nearestColorName(c color.RGBA) string {
	best, bestDist := "", -1
	for _, name := range colornames.Names {
		n := colornames.Map[name]
		dr := int(c.R) - int(n.R)
		dg := int(c.G) - int(n.G)
		db := int(c.B) - int(n.B)
		if d := dr*dr + dg*dg + db*db; bestDist < 0 || d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}
