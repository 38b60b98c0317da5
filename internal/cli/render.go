package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/quilt/pkg/config"
	"github.com/matzehuels/quilt/pkg/errors"
	"github.com/matzehuels/quilt/pkg/pipeline"
	"github.com/matzehuels/quilt/pkg/sink"
)

const defaultBaseName = "identicon"

// renderFlags holds the command-line flags shared by render and batch.
type renderFlags struct {
	formats   string
	grid      int
	block     int
	algorithm string
	scale     int
	base64    bool
	noCache   bool
	refresh   bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): png (default), bmp, tiff, svg, json (comma-separated)")
	cmd.Flags().IntVar(&f.grid, "grid", 0, "cells per side (default 5)")
	cmd.Flags().IntVar(&f.block, "block", 0, "cell size in pixels (default 50)")
	cmd.Flags().StringVar(&f.algorithm, "algorithm", "", "shuffle generator: mt19937 (default), pcg")
	cmd.Flags().IntVar(&f.scale, "scale", 0, "integer upscale factor")
	cmd.Flags().BoolVar(&f.base64, "base64", false, "write base64 text instead of raw bytes")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "re-render even if cached")
	registerFlagCompletions(cmd)
}

// apply overlays explicitly set flags on opts. Unset flags keep config values.
func (f *renderFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	flags := cmd.Flags()
	if flags.Changed("format") {
		opts.Formats = pipeline.ParseFormats(f.formats)
	}
	if flags.Changed("grid") {
		opts.GridSize = f.grid
	}
	if flags.Changed("block") {
		opts.BlockSize = f.block
	}
	if flags.Changed("algorithm") {
		opts.Algorithm = strings.ToLower(f.algorithm)
	}
	if flags.Changed("scale") {
		opts.Scale = f.scale
	}
	opts.Base64 = f.base64
	opts.Refresh = f.refresh
}

func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags  renderFlags
		output string
		random bool
	)

	cmd := &cobra.Command{
		Use:   "render [seed]",
		Short: "Render the quilt for a seed",
		Long: `Render the quilt for a seed string and write it to a file.

With several formats, --output is used as a base path and each format gets
its own extension. Use --output - to stream a single format to stdout.`,
		Example: `  quilt render hello@example.com
  quilt render NaCl --grid 8 -f png,svg -o avatars/nacl
  quilt render --random -o - | base64`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := seedFromArgs(args, random)
			if err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := cfg.Options(seed)
			flags.apply(cmd, &opts)
			return c.runRender(cmd, cfg, opts, output, flags.noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file, base path for several formats, or "-" for stdout`)
	cmd.Flags().BoolVar(&random, "random", false, "use a random UUID as the seed")

	return cmd
}

// seedFromArgs returns the positional seed, or a fresh UUID with --random.
// An explicit empty argument is a valid seed.
func seedFromArgs(args []string, random bool) (string, error) {
	switch {
	case random && len(args) > 0:
		return "", errors.New(errors.ErrCodeInvalidInput, "--random cannot be combined with a seed argument")
	case random:
		return uuid.NewString(), nil
	case len(args) == 0:
		return "", errors.New(errors.ErrCodeInvalidInput, "a seed argument is required (or use --random)")
	}
	return args[0], nil
}

func (c *CLI) runRender(cmd *cobra.Command, cfg config.Config, opts pipeline.Options, output string, noCache bool) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	toStdout := output == "-"
	if toStdout && len(opts.Formats) > 1 {
		return errors.New(errors.ErrCodeInvalidPath, "stdout output needs exactly one format, got %d", len(opts.Formats))
	}
	if output != "" {
		if err := errors.ValidateOutputPath(output); err != nil {
			return err
		}
	}

	runner := c.newRunner(ctx, cfg, noCache)
	defer runner.Close()

	opts.Logger = logger
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}

	if toStdout {
		_, err := cmd.OutOrStdout().Write(res.Artifacts[opts.Formats[0]])
		return err
	}

	paths := outputPaths(output, opts.Formats)
	if err := writeArtifacts(ctx, res, opts.Formats, paths); err != nil {
		return err
	}

	printSuccess("Rendered %s", StyleValue.Render(fmt.Sprintf("%q", opts.Seed)))
	printStats(opts.GridSize, res.Stats.Width, res.Stats.Height, res.CacheInfo.Hit)
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// outputPaths maps each format to a file path. An empty output means
// identicon.<ext> in the working directory. With several formats a known
// extension on output is replaced per format.
func outputPaths(output string, formats []string) []string {
	paths := make([]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[0] = output
		return paths
	}

	base := output
	if base == "" {
		base = defaultBaseName
	} else if ext := filepath.Ext(base); sink.ValidFormats[strings.TrimPrefix(ext, ".")] {
		base = strings.TrimSuffix(base, ext)
	}
	for i, f := range formats {
		paths[i] = base + "." + sink.Extension(f)
	}
	return paths
}

func writeArtifacts(ctx context.Context, res *pipeline.Result, formats, paths []string) error {
	logger := loggerFromContext(ctx)
	for i, f := range formats {
		path := paths[i]
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, res.Artifacts[f], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Debug("wrote artifact", "path", path, "bytes", len(res.Artifacts[f]))
	}
	return nil
}
