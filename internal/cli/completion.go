package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand prints a shell completion script. Besides subcommands,
// the scripts complete the object kinds of count and census.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion bash|zsh|fish|powershell",
		Short: "Print a shell completion script",
		Long: `Print a shell completion script for funcstructs.

Load it for the current shell:
  bash:        source <(funcstructs completion bash)
  zsh:         source <(funcstructs completion zsh)
  fish:        funcstructs completion fish | source
  powershell:  funcstructs completion powershell | Out-String | Invoke-Expression

Write it once to your shell's completion directory to keep it, e.g.
  funcstructs completion zsh > "${fpath[1]}/_funcstructs"`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
