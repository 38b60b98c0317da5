package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/matzehuels/quilt/pkg/errors"
)

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		formats []string
		want    []string
	}{
		{"default name", "", []string{"png"}, []string{"identicon.png"}},
		{"single explicit", "out.bin", []string{"png"}, []string{"out.bin"}},
		{"default name several", "", []string{"png", "tiff"}, []string{"identicon.png", "identicon.tiff"}},
		{"base path", "avatars/nacl", []string{"png", "svg"}, []string{"avatars/nacl.png", "avatars/nacl.svg"}},
		{"known extension replaced", "nacl.png", []string{"png", "json"}, []string{"nacl.png", "nacl.json"}},
		{"unknown extension kept", "my.file", []string{"bmp", "svg"}, []string{"my.file.bmp", "my.file.svg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPaths(tt.output, tt.formats); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("outputPaths(%q, %v) = %v, want %v", tt.output, tt.formats, got, tt.want)
			}
		})
	}
}

func TestSeedFromArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		random  bool
		want    string
		wantErr bool
	}{
		{"positional", []string{"NaCl"}, false, "NaCl", false},
		{"empty seed is valid", []string{""}, false, "", false},
		{"missing", nil, false, "", true},
		{"random with seed", []string{"NaCl"}, true, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := seedFromArgs(tt.args, tt.random)
			if (err != nil) != tt.wantErr {
				t.Fatalf("seedFromArgs() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidInput) {
					t.Errorf("error code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidInput)
				}
				return
			}
			if got != tt.want {
				t.Errorf("seedFromArgs() = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("random", func(t *testing.T) {
		got, err := seedFromArgs(nil, true)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := uuid.Parse(got); err != nil {
			t.Errorf("random seed %q is not a UUID: %v", got, err)
		}
	})
}

func TestRenderWritesFiles(t *testing.T) {
	testEnv(t)
	status := captureStdout(t)
	base := filepath.Join(t.TempDir(), "avatars", "nacl")

	if _, err := runCLI(t, nil, "render", "NaCl", "-f", "png,svg,json", "-o", base); err != nil {
		t.Fatalf("render: %v", err)
	}

	png, err := os.ReadFile(base + ".png")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("png output has no PNG signature")
	}
	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte(`fill="#c81ec9"`)) {
		t.Error("svg output does not contain the first NaCl colour")
	}
	if _, err := os.Stat(base + ".json"); err != nil {
		t.Error(err)
	}

	for _, want := range []string{`"NaCl"`, "5×5 cells", "250×250 px", "fresh"} {
		if !strings.Contains(status.String(), want) {
			t.Errorf("status output missing %q:\n%s", want, status.String())
		}
	}

	status.Reset()
	if _, err := runCLI(t, nil, "render", "NaCl", "-f", "png,svg,json", "-o", base); err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !strings.Contains(status.String(), "cached") {
		t.Errorf("second render was not served from cache:\n%s", status.String())
	}
}

func TestRenderToStdout(t *testing.T) {
	testEnv(t)
	captureStdout(t)

	out, err := runCLI(t, nil, "render", "NaCl", "--grid", "3", "-f", "json", "-o", "-", "--no-cache")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var doc struct {
		Seed     uint32   `json:"seed"`
		GridSize int      `json:"grid_size"`
		Colors   []string `json:"colors"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, out)
	}
	if doc.Seed != 2478459580 || doc.GridSize != 3 {
		t.Errorf("seed/grid = %d/%d, want 2478459580/3", doc.Seed, doc.GridSize)
	}
	if len(doc.Colors) != 9 || doc.Colors[0] != "#651ebd" {
		t.Errorf("colors = %v, want 9 starting with #651ebd", doc.Colors)
	}
}

func TestRenderBase64ToStdout(t *testing.T) {
	testEnv(t)
	captureStdout(t)

	out, err := runCLI(t, nil, "render", "NaCl", "-o", "-", "--base64", "--no-cache")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	// base64 of the PNG signature
	if !strings.HasPrefix(out, "iVBORw0KGgo") {
		t.Errorf("output %.20q is not a base64 PNG", out)
	}
}

func TestRenderConfigDefaults(t *testing.T) {
	configHome, _ := testEnv(t)
	captureStdout(t)
	writeConfig(t, configHome, "[render]\ngrid_size = 3\nformats = [\"json\"]\n")

	out, err := runCLI(t, nil, "render", "NaCl", "-o", "-", "--no-cache")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `"grid_size": 3`) && !strings.Contains(out, `"grid_size":3`) {
		t.Errorf("config grid size not applied:\n%s", out)
	}

	out, err = runCLI(t, nil, "render", "NaCl", "-o", "-", "--grid", "4", "--no-cache")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `"grid_size": 4`) && !strings.Contains(out, `"grid_size":4`) {
		t.Errorf("--grid did not override config:\n%s", out)
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"no seed", []string{"render"}, errors.ErrCodeInvalidInput},
		{"bad format", []string{"render", "x", "-f", "gif", "-o", "-"}, errors.ErrCodeInvalidFormat},
		{"bad algorithm", []string{"render", "x", "--algorithm", "xorshift", "-o", "-"}, errors.ErrCodeInvalidAlgorithm},
		{"negative grid", []string{"render", "x", "--grid=-3", "-o", "-"}, errors.ErrCodeInvalidSize},
		{"stdout needs one format", []string{"render", "x", "-f", "png,svg", "-o", "-"}, errors.ErrCodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testEnv(t)
			captureStdout(t)
			_, err := runCLI(t, nil, append(tt.args, "--no-cache")...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}
