package cli

import (
	"fmt"

	"github.com/lherron/remerge/internal/config"
	"github.com/lherron/remerge/internal/workspace"
	"github.com/spf13/cobra"
)

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Print the resolved workspace root",
	Long: `Resolve and print the workspace root containing the reasoning-agent
module, using the same candidate order as conflict resolution: explicit
override, environment variables, conventional roots, then upward
traversal from the current directory.`,
	RunE: runLocate,
}

func init() {
	rootCmd.AddCommand(locateCmd)
}

func runLocate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	override := cmd.Flag("workspace").Value.String()
	if override == "" {
		override = cfg.WorkspaceRoot
	}

	root, err := workspace.Locate(override)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), root)
	return nil
}
