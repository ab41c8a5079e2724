// Package workspace discovers the root directory that holds the external
// reasoning-agent module. The agent library may be installed relative to
// several different root conventions depending on deployment, so the
// search order encodes priority: explicit override, environment, fixed
// conventional roots, then upward traversal from the working directory.
package workspace

import (
	"errors"
	"os"
	"path/filepath"
)

// AgentModuleSuffix is the relative path that marks a valid workspace
// root.
const AgentModuleSuffix = "node_modules/achillesAgentLib/LLMAgents/index.mjs"

// Environment variables consulted for an override root, in priority
// order.
var rootEnvVars = []string{
	"REMERGE_WORKSPACE_ROOT",
	"ACHILLES_WORKSPACE_ROOT",
	"AGENT_WORKSPACE_ROOT",
}

// ErrNotFound means no candidate or ancestor directory contains the agent
// module.
var ErrNotFound = errors.New("workspace root not found")

// Locate returns the first directory containing the agent module. The
// override argument, when non-empty, is always tried first.
func Locate(override string) (string, error) {
	candidates := make([]string, 0, 8)
	if override != "" {
		candidates = append(candidates, override)
	}
	for _, key := range rootEnvVars {
		if v := os.Getenv(key); v != "" {
			candidates = append(candidates, v)
			break
		}
	}
	candidates = append(candidates, conventionalRoots()...)

	cwd, cwdErr := os.Getwd()
	if cwdErr == nil {
		candidates = append(candidates, cwd)
	}

	for _, dir := range candidates {
		if hasAgentModule(dir) {
			return dir, nil
		}
	}

	// None of the fixed candidates matched; walk upward from cwd toward
	// the filesystem root.
	if cwdErr == nil {
		dir := filepath.Clean(cwd)
		for {
			if hasAgentModule(dir) {
				return dir, nil
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	return "", ErrNotFound
}

func conventionalRoots() []string {
	roots := []string{"/workspace", "/app"}
	if home, err := os.UserHomeDir(); err == nil {
		roots = append(roots, filepath.Join(home, "workspace"))
	}
	return roots
}

func hasAgentModule(dir string) bool {
	if dir == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(AgentModuleSuffix)))
	return err == nil
}
