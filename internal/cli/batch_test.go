package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/quilt/pkg/errors"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		seed string
		want string
	}{
		{"NaCl", "nacl"},
		{"Alice@Example.com", "alice-example-com"},
		{"hello  world", "hello-world"},
		{"--edge--", "edge"},
		{"über", "ber"},
		{"!!!", ""},
		{"", ""},
		{strings.Repeat("a", 100), strings.Repeat("a", maxSlugLength)},
	}

	for _, tt := range tests {
		t.Run(tt.seed, func(t *testing.T) {
			if got := slug(tt.seed); got != tt.want {
				t.Errorf("slug(%q) = %q, want %q", tt.seed, got, tt.want)
			}
		})
	}
}

func TestSlugsAreUnique(t *testing.T) {
	names := slugs([]string{"a@b", "a.b", "!!!", "???"})

	if names[0] != "a-b" {
		t.Errorf("names[0] = %q, want a-b", names[0])
	}
	if !strings.HasPrefix(names[1], "a-b-") || len(names[1]) != len("a-b-")+8 {
		t.Errorf("names[1] = %q, want a-b-<hash>", names[1])
	}
	for _, n := range names[2:] {
		if !strings.HasPrefix(n, "seed-") {
			t.Errorf("name %q for an unsluggable seed should start with seed-", n)
		}
	}

	seen := map[string]bool{}
	for _, n := range names {
		if seen[n] {
			t.Errorf("duplicate name %q in %v", n, names)
		}
		seen[n] = true
	}

	if again := slugs([]string{"a@b", "a.b", "!!!", "???"}); !reflect.DeepEqual(again, names) {
		t.Errorf("slugs not deterministic: %v vs %v", again, names)
	}
}

func TestSlugsRepeatedSeed(t *testing.T) {
	names := slugs([]string{"bob", "bob", "bob", "bob"})

	seen := map[string]bool{}
	for _, n := range names {
		if seen[n] {
			t.Fatalf("duplicate name %q in %v", n, names)
		}
		seen[n] = true
	}
	if names[0] != "bob" {
		t.Errorf("names[0] = %q, want bob", names[0])
	}
	if names[2] != names[1]+"-2" || names[3] != names[1]+"-3" {
		t.Errorf("names = %v, want counters after %s", names, names[1])
	}
}

func TestReadSeeds(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		code    errors.Code
		wantErr bool
	}{
		{"plain", "alice\nbob\n", []string{"alice", "bob"}, "", false},
		{"comments and blanks", "# users\n\n  alice  \n\t\n# end\nbob", []string{"alice", "bob"}, "", false},
		{"empty", "\n# nothing\n", nil, errors.ErrCodeInvalidInput, true},
		{"null byte", "ali\x00ce\n", nil, errors.ErrCodeInvalidSeed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readSeeds(strings.NewReader(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("readSeeds() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, tt.code) {
					t.Errorf("error code = %s, want %s", errors.GetCode(err), tt.code)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("readSeeds() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBatchCommand(t *testing.T) {
	testEnv(t)
	status := captureStdout(t)

	dir := t.TempDir()
	list := filepath.Join(dir, "seeds.txt")
	if err := os.WriteFile(list, []byte("# team\nalice@example.com\nbob@example.com\nNaCl\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "avatars")

	if _, err := runCLI(t, nil, "batch", list, "-d", out, "-f", "png,svg", "-j", "2"); err != nil {
		t.Fatalf("batch: %v", err)
	}

	for _, name := range []string{"alice-example-com", "bob-example-com", "nacl"} {
		for _, ext := range []string{".png", ".svg"} {
			if _, err := os.Stat(filepath.Join(out, name+ext)); err != nil {
				t.Errorf("missing %s%s: %v", name, ext, err)
			}
		}
	}
	if !strings.Contains(status.String(), "Wrote 3 quilts") {
		t.Errorf("status = %q", status.String())
	}
}

func TestBatchFromStdin(t *testing.T) {
	testEnv(t)
	captureStdout(t)
	out := t.TempDir()

	_, err := runCLI(t, strings.NewReader("one\ntwo\n"), "batch", "-", "-d", out, "-f", "json", "--no-cache")
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("wrote %d files, want 2", len(entries))
	}
}

func TestBatchRepeatedSeeds(t *testing.T) {
	testEnv(t)
	status := captureStdout(t)
	out := t.TempDir()

	_, err := runCLI(t, strings.NewReader("bob\nbob\nbob\n"), "batch", "-", "-d", out, "-f", "svg", "-j", "3")
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("wrote %d files for 3 seeds, want 3", len(entries))
	}
	if !strings.Contains(status.String(), "Wrote 3 quilts") {
		t.Errorf("status = %q", status.String())
	}
}

func TestBatchErrors(t *testing.T) {
	testEnv(t)
	captureStdout(t)

	if _, err := runCLI(t, nil, "batch", filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing seed file")
	}
	_, err := runCLI(t, strings.NewReader("alice\n"), "batch", "-", "-d", t.TempDir(), "--grid=500")
	if !errors.Is(err, errors.ErrCodeInvalidSize) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidSize)
	}
}
