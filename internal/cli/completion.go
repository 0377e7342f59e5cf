package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/assetrack/internal/constants"
)

// argKind names what a positional argument holds, for shell completion.
type argKind int

const (
	argProject argKind = iota
	argItem
	argStatus
	argFile
)

// completionFunc is the signature cobra expects for ValidArgsFunction.
type completionFunc func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective)

// AddCompletionCommand adds the completion command to the root command.
// It replaces Cobra's default so the help text names assetrack.
func AddCompletionCommand(rootCmd *cobra.Command) {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	completionCmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completions",
		Long: `Generate shell completion scripts for assetrack. Project names, item
paths and statuses complete from your data directory.

To load completions in the current session:
  source <(assetrack completion bash)
  source <(assetrack completion zsh)
  assetrack completion fish | source
  assetrack completion powershell | Out-String | Invoke-Expression`,
	}

	completionCmd.AddCommand(&cobra.Command{
		Use:                   "bash",
		Short:                 "Generate bash completion script",
		DisableFlagsInUseLine: true,
		Args:                  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Root().GenBashCompletionV2(cmd.OutOrStdout(), true)
		},
	})
	completionCmd.AddCommand(&cobra.Command{
		Use:                   "zsh",
		Short:                 "Generate zsh completion script",
		DisableFlagsInUseLine: true,
		Args:                  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
		},
	})
	completionCmd.AddCommand(&cobra.Command{
		Use:                   "fish",
		Short:                 "Generate fish completion script",
		DisableFlagsInUseLine: true,
		Args:                  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
		},
	})
	completionCmd.AddCommand(&cobra.Command{
		Use:                   "powershell",
		Short:                 "Generate powershell completion script",
		DisableFlagsInUseLine: true,
		Args:                  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
		},
	})

	rootCmd.AddCommand(completionCmd)
}

// completeArgs completes positional arguments laid out as kinds. Project and
// item candidates come from the store; without an execution context only
// statuses complete.
func completeArgs(kinds ...argKind) completionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) >= len(kinds) {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		switch kinds[len(args)] {
		case argFile:
			return nil, cobra.ShellCompDirectiveDefault
		case argStatus:
			statuses := constants.ValidItemStatuses()
			names := make([]string, 0, len(statuses))
			for _, s := range statuses {
				names = append(names, string(s))
			}
			return withPrefix(names, toComplete), cobra.ShellCompDirectiveNoFileComp
		case argProject:
			return completeProjects(cmd, toComplete), cobra.ShellCompDirectiveNoFileComp
		case argItem:
			return completeItems(cmd, args[0], toComplete), cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
}

func completeProjects(cmd *cobra.Command, toComplete string) []string {
	ec := GetExecutionContext(cmd.Context())
	if ec == nil {
		return nil
	}
	projects, err := ec.Store.ListProjects(cmd.Context())
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(projects))
	for _, p := range projects {
		names = append(names, p.Name)
	}
	return withPrefix(names, toComplete)
}

func completeItems(cmd *cobra.Command, project, toComplete string) []string {
	ec := GetExecutionContext(cmd.Context())
	if ec == nil {
		return nil
	}
	items, err := ec.Store.ListItems(cmd.Context(), project)
	if err != nil {
		return nil
	}
	paths := make([]string, 0, len(items))
	for _, it := range items {
		paths = append(paths, it.Path)
	}
	return withPrefix(paths, toComplete)
}

func withPrefix(candidates []string, prefix string) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}
