package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lherron/remerge/internal/agent"
	"github.com/lherron/remerge/internal/config"
	"github.com/lherron/remerge/internal/merge"
	"github.com/lherron/remerge/internal/resolve"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve one merge conflict and print the final content",
	Long: `Resolve a single-file merge conflict.

The request is a JSON object with base, ours, theirs, and an optional
source provenance hint, read from --file (or stdin when --file is "-").
The three sides may instead be supplied as files with --base, --ours and
--theirs. The resolved content is written to stdout. Exit code 4 when the
conflict could not be resolved.

Examples:
  remerge resolve --file conflict.json
  echo '{"base":"","ours":"a\n","theirs":"b\n"}' | remerge resolve
  remerge resolve --base base.txt --ours ours.txt --theirs theirs.txt --source stash
`,
	RunE: runResolve,
}

var (
	resolveFile   string
	resolveBase   string
	resolveOurs   string
	resolveTheirs string
	resolveSource string
)

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringVar(&resolveFile, "file", "-", "Request JSON file (\"-\" for stdin)")
	resolveCmd.Flags().StringVar(&resolveBase, "base", "", "Path to the base version")
	resolveCmd.Flags().StringVar(&resolveOurs, "ours", "", "Path to our version")
	resolveCmd.Flags().StringVar(&resolveTheirs, "theirs", "", "Path to their version")
	resolveCmd.Flags().StringVar(&resolveSource, "source", "", "Conflict provenance hint (e.g. stash)")
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	req, err := loadRequest(cmd)
	if err != nil {
		return err
	}

	resolver := resolve.New(newWorkspaceAgent(cmd, cfg), newMerger(cmd, cfg))

	content, err := resolver.Resolve(cmd.Context(), req)
	if err != nil {
		if isUnresolved(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(4) // Conflict exit code
		}
		return err
	}

	_, err = io.WriteString(cmd.OutOrStdout(), content)
	return err
}

// loadRequest builds the request from side files when given, otherwise
// from the JSON document named by --file.
func loadRequest(cmd *cobra.Command) (resolve.Request, error) {
	if resolveOurs != "" || resolveTheirs != "" || resolveBase != "" {
		var req resolve.Request
		var err error
		if req.Base, err = readSide(resolveBase); err != nil {
			return resolve.Request{}, err
		}
		if req.Ours, err = readSide(resolveOurs); err != nil {
			return resolve.Request{}, err
		}
		if req.Theirs, err = readSide(resolveTheirs); err != nil {
			return resolve.Request{}, err
		}
		req.Source = resolveSource
		return req, nil
	}

	var data []byte
	var err error
	if resolveFile == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(resolveFile)
	}
	if err != nil {
		return resolve.Request{}, fmt.Errorf("failed to read request: %w", err)
	}

	req, err := resolve.ParseRequest(data)
	if err != nil {
		return resolve.Request{}, err
	}
	if resolveSource != "" {
		req.Source = resolveSource
	}
	return req, nil
}

// readSide reads one side's snapshot; a missing flag means an empty side
// (e.g. a file added on only one branch).
func readSide(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// newMerger picks the deterministic backend from the --backend flag or
// config.
func newMerger(cmd *cobra.Command, cfg *config.Config) merge.Merger {
	backend := cmd.Flag("backend").Value.String()
	if backend == "" {
		backend = cfg.MergeBackend
	}
	return merge.New(backend)
}

// newWorkspaceAgent wires the deferred workspace-discovered agent unless a
// default has been registered by the host.
func newWorkspaceAgent(cmd *cobra.Command, cfg *config.Config) agent.Agent {
	if a := agent.Default(); a != nil {
		return a
	}
	override := cmd.Flag("workspace").Value.String()
	if override == "" {
		override = cfg.WorkspaceRoot
	}
	return &agent.Deferred{Override: override, Command: cfg.AgentCommand}
}

// isUnresolved reports whether the error means the conflict stayed
// unresolved, as opposed to the request being malformed.
func isUnresolved(err error) bool {
	return errors.Is(err, resolve.ErrWorkspaceNotFound) ||
		errors.Is(err, resolve.ErrAgentUnavailable) ||
		errors.Is(err, resolve.ErrEmptyResolution)
}
