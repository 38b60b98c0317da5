package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/quilt/pkg/prng"
	"github.com/matzehuels/quilt/pkg/quilt"
)

func press(t *testing.T, m PreviewModel, msgs ...tea.KeyMsg) (PreviewModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(PreviewModel)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewPreviewModelClampsGrid(t *testing.T) {
	tests := []struct{ in, want int }{
		{5, 5},
		{0, 1},
		{-4, 1},
		{100, previewMaxGrid},
	}
	for _, tt := range tests {
		if got := NewPreviewModel("x", tt.in, prng.MT19937).GridSize; got != tt.want {
			t.Errorf("NewPreviewModel grid %d = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPreviewEditing(t *testing.T) {
	m := NewPreviewModel("NaCl", 5, prng.MT19937)

	m, _ = press(t, m, runes("x"), tea.KeyMsg{Type: tea.KeySpace}, runes("yz"))
	if m.Seed != "NaClx yz" {
		t.Errorf("seed = %q, want %q", m.Seed, "NaClx yz")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace})
	if m.Seed != "NaClx " {
		t.Errorf("seed after backspace = %q", m.Seed)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlU})
	if m.Seed != "" {
		t.Errorf("seed after ctrl+u = %q, want empty", m.Seed)
	}

	// backspace on an empty seed is a no-op
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace}, runes("é"), tea.KeyMsg{Type: tea.KeyBackspace})
	if m.Seed != "" {
		t.Errorf("seed = %q, want empty", m.Seed)
	}
}

func TestPreviewGridAndAlgorithm(t *testing.T) {
	m := NewPreviewModel("NaCl", 15, prng.MT19937)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp})
	if m.GridSize != previewMaxGrid {
		t.Errorf("grid = %d, want %d", m.GridSize, previewMaxGrid)
	}
	if m.grid.Size != m.GridSize {
		t.Errorf("rendered grid %d does not follow GridSize %d", m.grid.Size, m.GridSize)
	}

	m = NewPreviewModel("NaCl", 2, prng.MT19937)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	if m.GridSize != 1 {
		t.Errorf("grid = %d, want 1", m.GridSize)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Algorithm != prng.PCG {
		t.Errorf("algorithm = %s, want pcg", m.Algorithm)
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Algorithm != prng.MT19937 {
		t.Errorf("algorithm = %s, want mt19937", m.Algorithm)
	}
}

func TestPreviewMatchesGenerator(t *testing.T) {
	m := NewPreviewModel("NaCl", 5, prng.MT19937)
	g := quilt.Default()
	if got, want := m.grid.Colors[0], g.Colors()[0]; got != want {
		t.Errorf("first colour = %s, want %s", got, want)
	}
}

func TestPreviewQuitAndAccept(t *testing.T) {
	tests := []struct {
		name     string
		key      tea.KeyMsg
		accepted bool
	}{
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, true},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, false},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, cmd := press(t, NewPreviewModel("NaCl", 5, prng.MT19937), tt.key)
			if cmd == nil {
				t.Fatal("expected a quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("command is not tea.Quit")
			}
			if m.Accepted != tt.accepted {
				t.Errorf("Accepted = %v, want %v", m.Accepted, tt.accepted)
			}
		})
	}
}

func TestPreviewIgnoresOtherMessages(t *testing.T) {
	m := NewPreviewModel("NaCl", 5, prng.MT19937)
	next, cmd := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if cmd != nil || next.(PreviewModel).Seed != "NaCl" {
		t.Error("non-key messages should leave the model unchanged")
	}
}

func TestPreviewView(t *testing.T) {
	view := NewPreviewModel("NaCl", 4, prng.MT19937).View()
	for _, want := range []string{"Quilt Preview", "NaCl", "4×4  mt19937  seed 2478459580"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestRenderGridBlocks(t *testing.T) {
	g, _ := quilt.New("NaCl", quilt.WithGridSize(3))
	out := renderGridBlocks(g.Grid())
	if lines := strings.Count(out, "\n"); lines != 3 {
		t.Errorf("renderGridBlocks wrote %d rows, want 3", lines)
	}
}
