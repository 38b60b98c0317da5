package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/quilt/pkg/pipeline"
	"github.com/matzehuels/quilt/pkg/sink"
)

// formatOrder lists formats in the order completions offer them.
var formatOrder = []string{sink.FormatPNG, sink.FormatSVG, sink.FormatJSON, sink.FormatBMP, sink.FormatTIFF}

func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for quilt.

Besides commands and flags, the scripts complete --format (one entry of a
comma-separated list at a time) and --algorithm:

  $ quilt render NaCl --format png,<TAB>
  png,svg  png,json  png,bmp  png,tiff

To load completions:

Bash:
  $ source <(quilt completion bash)
  # every session:
  $ quilt completion bash > /etc/bash_completion.d/quilt

Zsh:
  $ quilt completion zsh > "${fpath[1]}/_quilt"

Fish:
  $ quilt completion fish > ~/.config/fish/completions/quilt.fish

PowerShell:
  PS> quilt completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// registerFlagCompletions attaches value completion to the --format and
// --algorithm flags cmd defines.
func registerFlagCompletions(cmd *cobra.Command) {
	if cmd.Flags().Lookup("format") != nil {
		_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	}
	if cmd.Flags().Lookup("algorithm") != nil {
		_ = cmd.RegisterFlagCompletionFunc("algorithm", completeAlgorithms)
	}
}

// completeFormats completes the last entry of a comma-separated format list,
// skipping formats already listed.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix, last := "", toComplete
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix, last = toComplete[:i+1], toComplete[i+1:]
	}
	chosen := make(map[string]bool)
	for _, f := range pipeline.ParseFormats(prefix) {
		chosen[f] = true
	}

	var out []string
	for _, f := range formatOrder {
		if !chosen[f] && strings.HasPrefix(f, strings.ToLower(last)) {
			out = append(out, prefix+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

func completeAlgorithms(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{
		"mt19937\tdefault, matches existing quilts",
		"pcg\tmath/rand/v2 PCG",
	}, cobra.ShellCompDirectiveNoFileComp
}
