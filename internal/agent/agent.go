// Package agent defines the reasoning-agent capability used for semantic
// conflict resolution. The core depends only on the Agent interface; how
// an agent is located and executed is a deployment concern.
package agent

import (
	"context"
	"errors"
	"sync"
)

// ErrUnavailable means no usable agent instance could be obtained.
var ErrUnavailable = errors.New("agent unavailable")

// Mode and shape values for ExecuteOptions.
const (
	ModeFast  = "fast"
	ShapeText = "text"
)

// ExecuteOptions tune a single prompt execution.
type ExecuteOptions struct {
	// Mode selects the agent's latency/quality tradeoff.
	Mode string
	// Shape selects the response format.
	Shape string
}

// Agent executes a natural-language prompt and returns generated text.
type Agent interface {
	ExecutePrompt(ctx context.Context, promptText string, opts ExecuteOptions) (string, error)
}

var (
	defaultMu    sync.Mutex
	defaultAgent Agent
)

// Default returns the registered default agent, or nil when none has been
// registered.
func Default() Agent {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultAgent
}

// RegisterDefault installs the process-wide default agent.
func RegisterDefault(a Agent) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultAgent = a
}
