package quilt

import (
	"slices"
	"testing"
)

func TestExpandTokens(t *testing.T) {
	// SHA-1("2478459580") = bd74021e65c845f7476408a8a5fbd1e66bb69bc9
	got := ExpandTokens(2478459580, 1)
	want := []Token{"bd", "74", "02"}
	if !slices.Equal(got, want) {
		t.Errorf("ExpandTokens(grid 1) = %v, want %v", got, want)
	}
}

func TestExpandTokensLength(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 5, 10, 100} {
		tokens := ExpandTokens(42, n)
		if len(tokens) != 3*n*n {
			t.Errorf("grid %d: %d tokens, want %d", n, len(tokens), 3*n*n)
		}
		for _, tok := range tokens {
			if len(tok) != 2 {
				t.Fatalf("grid %d: token %q is not 2 characters", n, tok)
			}
		}
	}
}

func TestExpandTokensRepeatsDigest(t *testing.T) {
	// One digest is 40 hex digits, i.e. 20 tokens; longer streams cycle.
	tokens := ExpandTokens(2478459580, 5)
	for i := 20; i < len(tokens); i++ {
		if tokens[i] != tokens[i%20] {
			t.Fatalf("token %d = %q, want %q", i, tokens[i], tokens[i%20])
		}
	}
}

func TestExpandTokensZero(t *testing.T) {
	tokens := ExpandTokens(1, 0)
	if tokens == nil || len(tokens) != 0 {
		t.Errorf("ExpandTokens(grid 0) = %#v, want empty non-nil slice", tokens)
	}
}

func TestAssembleColors(t *testing.T) {
	got := AssembleColors([]Token{"bd", "74", "02", "1e", "65", "c8"})
	want := []Color{"bd7402", "1e65c8"}
	if !slices.Equal(got, want) {
		t.Errorf("AssembleColors = %v, want %v", got, want)
	}

	if got := AssembleColors(nil); len(got) != 0 {
		t.Errorf("AssembleColors(nil) = %v, want empty", got)
	}
}

func TestColorRGB(t *testing.T) {
	tests := []struct {
		c       Color
		r, g, b uint8
		valid   bool
	}{
		{"c81ec9", 0xc8, 0x1e, 0xc9, true},
		{"000000", 0, 0, 0, true},
		{"ffffff", 0xff, 0xff, 0xff, true},
		{"zzzzzz", 0, 0, 0, false},
		{"abc", 0, 0, 0, false},
	}

	for _, tt := range tests {
		r, g, b := tt.c.RGB()
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("%q.RGB() = %d,%d,%d, want %d,%d,%d", tt.c, r, g, b, tt.r, tt.g, tt.b)
		}
		if tt.c.Valid() != tt.valid {
			t.Errorf("%q.Valid() = %v, want %v", tt.c, tt.c.Valid(), tt.valid)
		}
	}

	if got := Color("c81ec9").Hex(); got != "#c81ec9" {
		t.Errorf("Hex() = %q", got)
	}
}

func TestGridCell(t *testing.T) {
	g := Grid{Size: 3, Colors: make([]Color, 9)}
	for i := range 9 {
		col, row := g.Cell(i)
		if col != i/3 || row != i%3 {
			t.Errorf("Cell(%d) = (%d,%d)", i, col, row)
		}
	}
}
