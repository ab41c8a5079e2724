package agent

import (
	"context"
	"sync"
)

// Deferred locates the workspace and builds the command-backed agent on
// first use, so the deterministic merge path never pays for (or fails on)
// workspace discovery.
type Deferred struct {
	// Override is an explicit workspace root tried before discovery.
	Override string
	// Command is the interpreter for the agent module.
	Command string

	// Locate resolves the workspace root; defaults to workspace.Locate.
	Locate func(override string) (string, error)

	once  sync.Once
	inner Agent
	err   error
}

// ExecutePrompt implements Agent.
func (d *Deferred) ExecutePrompt(ctx context.Context, promptText string, opts ExecuteOptions) (string, error) {
	d.once.Do(d.init)
	if d.err != nil {
		return "", d.err
	}
	return d.inner.ExecutePrompt(ctx, promptText, opts)
}

func (d *Deferred) init() {
	locate := d.Locate
	if locate == nil {
		locate = defaultLocate
	}
	root, err := locate(d.Override)
	if err != nil {
		d.err = err
		return
	}
	d.inner = FromWorkspace(root, d.Command)
}
