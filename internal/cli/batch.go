package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"unicode"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/quilt/pkg/cache"
	"github.com/matzehuels/quilt/pkg/errors"
	"github.com/matzehuels/quilt/pkg/sink"
)

const maxSlugLength = 64

func (c *CLI) batchCommand() *cobra.Command {
	var (
		flags renderFlags
		dir   string
		jobs  int
	)

	cmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "Render one quilt per seed listed in a file",
		Long: `Render one quilt per line of a seed file ("-" reads stdin).

Blank lines and lines starting with # are skipped. Each quilt is written to
<dir>/<slug>.<ext>, where the slug is a file-name-safe form of the seed.`,
		Example: `  quilt batch users.txt -d avatars -f png,svg
  cut -d, -f2 users.csv | quilt batch - -d avatars`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seeds, err := readSeedFile(cmd, args[0])
			if err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := cfg.Options("")
			flags.apply(cmd, &opts)
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			if err := errors.ValidateOutputPath(dir); err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}

			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			runner := c.newRunner(ctx, cfg, flags.noCache)
			defer runner.Close()

			names := slugs(seeds)
			prog := newProgress(logger)
			spin := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d quilts", len(seeds)))
			spin.Start()

			var (
				mu       sync.Mutex
				failures []string
				done     atomic.Int64
			)
			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(max(jobs, 1))
			for i, seed := range seeds {
				g.Go(func() error {
					o := opts
					o.Seed = seed
					o.Logger = logger
					res, err := runner.Execute(gctx, o)
					if err == nil {
						paths := make([]string, len(o.Formats))
						for j, f := range o.Formats {
							paths[j] = filepath.Join(dir, names[i]+"."+sink.Extension(f))
						}
						err = writeArtifacts(gctx, res, o.Formats, paths)
					}
					if err != nil {
						if gctx.Err() != nil {
							return gctx.Err()
						}
						mu.Lock()
						failures = append(failures, fmt.Sprintf("%q: %s", seed, errors.UserMessage(err)))
						mu.Unlock()
					}
					spin.SetMessage("Rendering quilts %d/%d", done.Add(1), len(seeds))
					return nil
				})
			}
			err = g.Wait()
			spin.Stop()
			if err != nil {
				return err
			}

			for _, f := range failures {
				printWarning("%s", f)
			}
			if len(failures) > 0 {
				return fmt.Errorf("%d of %d seeds failed", len(failures), len(seeds))
			}
			prog.done(fmt.Sprintf("Rendered %d quilts", len(seeds)))
			printSuccess("Wrote %d quilts to %s", len(seeds), StyleValue.Render(dir))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "output directory")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "parallel renders")

	return cmd
}

func readSeedFile(cmd *cobra.Command, path string) ([]string, error) {
	if path == "-" {
		return readSeeds(cmd.InOrStdin())
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readSeeds(f)
}

// readSeeds returns the trimmed, non-blank, non-comment lines of r.
func readSeeds(r io.Reader) ([]string, error) {
	var seeds []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := errors.ValidateSeed(line); err != nil {
			return nil, err
		}
		seeds = append(seeds, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(seeds) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no seeds found")
	}
	return seeds, nil
}

// slug converts a seed into a file-name-safe string: lowercase letters and
// digits, with runs of anything else collapsed to a single dash.
func slug(seed string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(seed) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if len(s) > maxSlugLength {
		s = strings.TrimSuffix(s[:maxSlugLength], "-")
	}
	return s
}

// slugs names every seed uniquely. Seeds whose slug is empty or already
// taken get a short hash suffix, and a counter when even that is taken
// (the same seed listed several times).
func slugs(seeds []string) []string {
	names := make([]string, len(seeds))
	used := make(map[string]bool, len(seeds))
	for i, seed := range seeds {
		name := slug(seed)
		if name == "" || used[name] {
			suffix := cache.Hash([]byte(seed))[:8]
			if name == "" {
				name = "seed-" + suffix
			} else {
				name += "-" + suffix
			}
			base := name
			for n := 2; used[name]; n++ {
				name = base + "-" + strconv.Itoa(n)
			}
		}
		used[name] = true
		names[i] = name
	}
	return names
}
