package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/repeatmap/pkg/logo"
	"github.com/matzehuels/repeatmap/pkg/options"
	"github.com/matzehuels/repeatmap/pkg/render"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for repeatmap.

Besides commands and flags, the scripts complete output formats, strands and
label positions, and offer only .json, .toml and GFF files to render.

To load completions:

Bash:
  $ source <(repeatmap completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ repeatmap completion bash > /etc/bash_completion.d/repeatmap
  # macOS:
  $ repeatmap completion bash > $(brew --prefix)/etc/bash_completion.d/repeatmap

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ repeatmap completion zsh > "${fpath[1]}/_repeatmap"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ repeatmap completion fish | source

  # To load completions for each session, execute once:
  $ repeatmap completion fish > ~/.config/fish/completions/repeatmap.fish

PowerShell:
  PS> repeatmap completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> repeatmap completion powershell > repeatmap.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}

	return cmd
}

// inputExtensions are the document types render reads.
var inputExtensions = []string{"json", "toml", "gff", "gff3", "gtf"}

// registerCompletions attaches value completion to the enumerated flags and
// the render input argument of root's subcommands.
func registerCompletions(root *cobra.Command) {
	for _, sub := range root.Commands() {
		switch sub.Name() {
		case "render":
			sub.ValidArgsFunction = func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
				return inputExtensions, cobra.ShellCompDirectiveFilterFileExt
			}
			_ = sub.RegisterFlagCompletionFunc("format", fixedValues(render.Formats...))
			_ = sub.RegisterFlagCompletionFunc("input-format", fixedValues("json", "toml", "gff"))
			_ = sub.RegisterFlagCompletionFunc("strand", fixedValues("+", "-", "."))
			_ = sub.RegisterFlagCompletionFunc("label-position",
				fixedValues(options.LabelStart, options.LabelMiddle, options.LabelEnd))
		case "logo":
			_ = sub.RegisterFlagCompletionFunc("format", fixedValues(logo.FormatPNG, logo.FormatJSON))
		}
	}
}

func fixedValues(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}
