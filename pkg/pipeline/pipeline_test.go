package pipeline

import (
	"reflect"
	"testing"

	"github.com/matzehuels/quilt/pkg/errors"
	"github.com/matzehuels/quilt/pkg/prng"
	"github.com/matzehuels/quilt/pkg/quilt"
)

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		formats []string
		wantErr bool
	}{
		{[]string{"png"}, false},
		{[]string{"png", "svg", "json"}, false},
		{nil, false},
		{[]string{"pdf"}, true},
		{[]string{"PNG"}, true}, // case-sensitive
		{[]string{"png", "png"}, true},
	}

	for _, tt := range tests {
		err := ValidateFormats(tt.formats)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormats(%v) code = %s", tt.formats, errors.GetCode(err))
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := map[string][]string{
		"png":            {"png"},
		"png,svg":        {"png", "svg"},
		" PNG , ,json ,": {"png", "json"},
		"":               nil,
	}
	for in, want := range tests {
		if got := ParseFormats(in); !reflect.DeepEqual(got, want) {
			t.Errorf("ParseFormats(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()

	if o.Seed != quilt.DefaultSalt {
		t.Errorf("Seed = %q", o.Seed)
	}
	if o.GridSize != quilt.DefaultGridSize || o.BlockSize != quilt.DefaultBlockSize {
		t.Errorf("sizes = %d/%d", o.GridSize, o.BlockSize)
	}
	if o.Algorithm != string(prng.Default) {
		t.Errorf("Algorithm = %q", o.Algorithm)
	}
	if !reflect.DeepEqual(o.Formats, []string{"png"}) {
		t.Errorf("Formats = %v", o.Formats)
	}
	if o.Scale != 1 {
		t.Errorf("Scale = %d", o.Scale)
	}
	if o.Limits != DefaultLimits() {
		t.Errorf("Limits = %+v", o.Limits)
	}
	if o.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantCode errors.Code
	}{
		{"defaults", Options{Seed: "x"}, ""},
		{"empty seed", Options{}, ""},
		{"max grid", Options{GridSize: quilt.MaxGridSize, BlockSize: 10}, ""},
		{"null byte seed", Options{Seed: "a\x00b"}, errors.ErrCodeInvalidSeed},
		{"unknown algorithm", Options{Algorithm: "xorshift"}, errors.ErrCodeInvalidAlgorithm},
		{"unknown format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"negative grid", Options{GridSize: -3}, errors.ErrCodeInvalidSize},
		{"grid over limit", Options{GridSize: quilt.MaxGridSize + 1}, errors.ErrCodeInvalidSize},
		{"block over limit", Options{BlockSize: DefaultMaxBlockSize + 1}, errors.ErrCodeInvalidSize},
		{"side over limit", Options{GridSize: 100, BlockSize: 100}, errors.ErrCodeInvalidSize},
		{"scaled side over limit", Options{GridSize: 50, BlockSize: 50, Scale: 4}, errors.ErrCodeInvalidSize},
		{"scale over limit", Options{Scale: DefaultMaxScale + 1}, errors.ErrCodeInvalidSize},
		{"negative scale", Options{Scale: -2}, errors.ErrCodeInvalidSize},
		{"custom limits", Options{GridSize: 8, Limits: Limits{MaxGridSize: 6}}, errors.ErrCodeInvalidSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestValidateAndSetDefaultsIdempotent(t *testing.T) {
	o := Options{Seed: "x", GridSize: 3}
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	first := o
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first.Formats, o.Formats) || first.GridSize != o.GridSize {
		t.Error("second call changed options")
	}
}

func TestGenerator(t *testing.T) {
	o := Options{Seed: "NaCl", GridSize: 3, BlockSize: 7, Algorithm: "pcg"}
	g, err := o.Generator()
	if err != nil {
		t.Fatal(err)
	}
	if g.Salt() != "NaCl" || g.GridSize() != 3 || g.BlockSize() != 7 || g.Algorithm() != prng.PCG {
		t.Errorf("generator = %s/%d/%d/%s", g.Salt(), g.GridSize(), g.BlockSize(), g.Algorithm())
	}
	if g.Seed() != 2478459580 {
		t.Errorf("Seed = %d", g.Seed())
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	o := DefaultOptions()
	k := o.ArtifactKeyOpts("svg")
	if k.Salt != o.Seed || k.Format != "svg" || k.Scale != 1 || k.GridSize != 5 || k.BlockSize != 50 || k.Algorithm != "mt19937" {
		t.Errorf("ArtifactKeyOpts = %+v", k)
	}
}
