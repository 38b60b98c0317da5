package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/quilt/pkg/prng"
	"github.com/matzehuels/quilt/pkg/quilt"
)

// Preview styles
var (
	previewSeedStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	previewDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
	previewCursorChar = lipgloss.NewStyle().Foreground(colorCyan).Render("▏")
)

const (
	previewMaxGrid = 16
	previewCell    = "  " // two columns make a roughly square cell
)

// =============================================================================
// PreviewModel - Interactive quilt preview
// =============================================================================

// PreviewModel is the bubbletea model behind `quilt preview`.
//
// Typing edits the seed and the quilt updates on every keystroke. Up and
// down change the grid size, tab switches the shuffle algorithm.
type PreviewModel struct {
	Seed      string
	GridSize  int
	Algorithm prng.Algorithm

	// Accepted is set when the user confirms with enter.
	Accepted bool

	grid quilt.Grid
}

// NewPreviewModel creates a preview for seed.
func NewPreviewModel(seed string, gridSize int, alg prng.Algorithm) PreviewModel {
	m := PreviewModel{
		Seed:      seed,
		GridSize:  min(max(gridSize, 1), previewMaxGrid),
		Algorithm: alg,
	}
	m.refresh()
	return m
}

func (m *PreviewModel) refresh() {
	g, err := quilt.New(m.Seed, quilt.WithGridSize(m.GridSize), quilt.WithAlgorithm(m.Algorithm))
	if err != nil {
		m.Algorithm = prng.Default
		g, _ = quilt.New(m.Seed, quilt.WithGridSize(m.GridSize))
	}
	m.grid = g.Grid()
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		m.Accepted = true
		return m, tea.Quit
	case tea.KeyUp:
		if m.GridSize < previewMaxGrid {
			m.GridSize++
		}
	case tea.KeyDown:
		if m.GridSize > 1 {
			m.GridSize--
		}
	case tea.KeyTab:
		if m.Algorithm == prng.MT19937 {
			m.Algorithm = prng.PCG
		} else {
			m.Algorithm = prng.MT19937
		}
	case tea.KeyBackspace:
		if r := []rune(m.Seed); len(r) > 0 {
			m.Seed = string(r[:len(r)-1])
		}
	case tea.KeyCtrlU:
		m.Seed = ""
	case tea.KeySpace:
		m.Seed += " "
	case tea.KeyRunes:
		m.Seed += string(key.Runes)
	default:
		return m, nil
	}

	m.refresh()
	return m, nil
}

func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Quilt Preview"))
	b.WriteString("\n")
	b.WriteString(previewDimStyle.Render("type to edit  ↑/↓ grid  tab algorithm  ⏎ accept  esc quit"))
	b.WriteString("\n\n")

	b.WriteString(previewDimStyle.Render("seed "))
	b.WriteString(previewSeedStyle.Render(m.Seed))
	b.WriteString(previewCursorChar)
	b.WriteString("\n\n")

	b.WriteString(renderGridBlocks(m.grid))
	b.WriteString("\n")
	b.WriteString(previewDimStyle.Render(fmt.Sprintf("%d×%d  %s  seed %d",
		m.GridSize, m.GridSize, m.Algorithm, quilt.DeriveSeed(m.Seed))))
	b.WriteString("\n")

	return b.String()
}

// renderGridBlocks draws grid row by row with background-coloured cells.
func renderGridBlocks(grid quilt.Grid) string {
	var b strings.Builder
	for row := 0; row < grid.Size; row++ {
		for col := 0; col < grid.Size; col++ {
			style := lipgloss.NewStyle().Background(lipgloss.Color(grid.At(col, row).Hex()))
			b.WriteString(style.Render(previewCell))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// =============================================================================
// Command
// =============================================================================

func (c *CLI) previewCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "preview [seed]",
		Short: "Explore quilts interactively in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			seed := quilt.DefaultSalt
			if len(args) == 1 {
				seed = args[0]
			}
			opts := cfg.Options(seed)
			flags.apply(cmd, &opts)
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			model := NewPreviewModel(opts.Seed, opts.GridSize, prng.Algorithm(opts.Algorithm))
			final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(PreviewModel); ok && m.Accepted {
				printSuccess("Seed %s", StyleValue.Render(fmt.Sprintf("%q", m.Seed)))
				printNextStep("Render it", fmt.Sprintf("quilt render %q --grid %d --algorithm %s", m.Seed, m.GridSize, m.Algorithm))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&flags.grid, "grid", 0, "initial cells per side (default 5)")
	cmd.Flags().StringVar(&flags.algorithm, "algorithm", "", "initial shuffle generator: mt19937 (default), pcg")
	registerFlagCompletions(cmd)

	return cmd
}
