// Package resolve orchestrates conflict resolution for a single file:
// validate the request, attempt a deterministic three-way merge, and fall
// back to the reasoning agent when the merge cannot produce clean content.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lherron/remerge/internal/agent"
	"github.com/lherron/remerge/internal/merge"
	"github.com/lherron/remerge/internal/prompt"
	"github.com/lherron/remerge/internal/workspace"
)

// Error taxonomy for a resolution request. Matched with errors.Is.
var (
	// ErrInvalidInput means the input is not an object with coercible
	// string fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrMissingContent means both ours and theirs are empty.
	ErrMissingContent = errors.New("conflict has no content on either side")
	// ErrWorkspaceNotFound means no workspace contains the agent module.
	ErrWorkspaceNotFound = errors.New("workspace not found")
	// ErrAgentUnavailable means no usable agent instance could be
	// obtained.
	ErrAgentUnavailable = errors.New("reasoning agent unavailable")
	// ErrEmptyResolution means the agent responded but the sanitized
	// output is empty.
	ErrEmptyResolution = errors.New("agent returned empty resolution")
)

// Request carries the three snapshots of the conflicted file plus an
// optional provenance hint (e.g. "stash") that drives strategy selection.
type Request struct {
	Base   string `json:"base"`
	Ours   string `json:"ours"`
	Theirs string `json:"theirs"`
	Source string `json:"source,omitempty"`
}

// Resolver runs the resolution pipeline. Both collaborators are injected:
// the merger is the deterministic first attempt and the agent resolves
// what the merger cannot.
type Resolver struct {
	agent  agent.Agent
	merger merge.Merger
}

// New creates a Resolver. A nil merger selects the default diff3 backend;
// a nil agent defers to the registered default agent at resolve time.
func New(a agent.Agent, m merge.Merger) *Resolver {
	if m == nil {
		m = merge.New(merge.BackendDiff3)
	}
	return &Resolver{agent: a, merger: m}
}

// Resolve produces the final file content for one conflict. The
// deterministic merge path never invokes the agent; the fallback path
// fails outright rather than returning partial content.
func (r *Resolver) Resolve(ctx context.Context, req Request) (string, error) {
	if req.Ours == "" && req.Theirs == "" {
		return "", ErrMissingContent
	}

	if out := r.merger.Merge(req.Base, req.Ours, req.Theirs); out.Resolved() {
		return out.Content, nil
	}

	a := r.agent
	if a == nil {
		a = agent.Default()
	}
	if a == nil {
		return "", ErrAgentUnavailable
	}

	promptText := prompt.Build(req.Base, req.Ours, req.Theirs, req.Source)
	raw, err := a.ExecutePrompt(ctx, promptText, agent.ExecuteOptions{
		Mode:  agent.ModeFast,
		Shape: agent.ShapeText,
	})
	if err != nil {
		switch {
		case errors.Is(err, workspace.ErrNotFound):
			return "", fmt.Errorf("%w: %v", ErrWorkspaceNotFound, err)
		case errors.Is(err, agent.ErrUnavailable):
			return "", fmt.Errorf("%w: %v", ErrAgentUnavailable, err)
		}
		return "", fmt.Errorf("execute prompt: %w", err)
	}

	content := StripFences(raw)
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyResolution
	}

	return content, nil
}
