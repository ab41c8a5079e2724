package agent

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/lherron/remerge/internal/workspace"
)

// CommandAgent executes prompts by running the workspace-local agent
// module as an external process. The prompt is written to stdin and the
// generated text read from stdout; stderr is kept for error context only.
type CommandAgent struct {
	// Command is the interpreter to run, e.g. "node".
	Command string
	// Args precede the module path.
	Args []string
	// ModulePath is the agent module entry point.
	ModulePath string
	// Dir is the working directory for the process (the workspace root).
	Dir string
}

// defaultLocate keeps Deferred decoupled from the workspace package in
// tests.
func defaultLocate(override string) (string, error) {
	return workspace.Locate(override)
}

// FromWorkspace builds a CommandAgent rooted at the given workspace. The
// command defaults to "node" when empty.
func FromWorkspace(root, command string) *CommandAgent {
	if command == "" {
		command = "node"
	}
	return &CommandAgent{
		Command:    command,
		ModulePath: filepath.Join(root, filepath.FromSlash(workspace.AgentModuleSuffix)),
		Dir:        root,
	}
}

// ExecutePrompt implements Agent.
func (a *CommandAgent) ExecutePrompt(ctx context.Context, promptText string, opts ExecuteOptions) (string, error) {
	if _, err := os.Stat(a.ModulePath); err != nil {
		return "", fmt.Errorf("%w: agent module %s: %v", ErrUnavailable, a.ModulePath, err)
	}
	if _, err := exec.LookPath(a.Command); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	args := append([]string{}, a.Args...)
	args = append(args, a.ModulePath)
	if opts.Mode != "" {
		args = append(args, "--mode", opts.Mode)
	}
	if opts.Shape != "" {
		args = append(args, "--format", opts.Shape)
	}

	cmd := exec.CommandContext(ctx, a.Command, args...)
	cmd.Dir = a.Dir
	cmd.Stdin = strings.NewReader(promptText)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("agent execution failed: %w: %s", err, msg)
		}
		return "", fmt.Errorf("agent execution failed: %w", err)
	}

	return stdout.String(), nil
}
