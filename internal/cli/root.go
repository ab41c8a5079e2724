package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "remerge",
	Short: "Resolve three-way merge conflicts for a single file",
	Long: `remerge resolves textual merge conflicts (base/ours/theirs) for one
file at a time. It attempts a deterministic line-based three-way merge
first and falls back to a workspace-local reasoning agent when the
content cannot be merged mechanically.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("workspace", "", "Workspace root override (overrides REMERGE_WORKSPACE_ROOT)")
	rootCmd.PersistentFlags().String("backend", "", "Deterministic merge backend: diff3 or gitfile")
}
