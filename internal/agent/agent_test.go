package agent

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/lherron/remerge/internal/workspace"
)

func TestDefaultRegistry(t *testing.T) {
	RegisterDefault(nil)
	if Default() != nil {
		t.Fatal("Expected no default agent")
	}

	a := &CommandAgent{Command: "node"}
	RegisterDefault(a)
	defer RegisterDefault(nil)

	if Default() != Agent(a) {
		t.Error("Expected registered agent to be returned")
	}
}

func TestCommandAgentMissingModule(t *testing.T) {
	a := &CommandAgent{
		Command:    "node",
		ModulePath: filepath.Join(t.TempDir(), "missing.mjs"),
	}

	_, err := a.ExecutePrompt(context.Background(), "prompt", ExecuteOptions{})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Expected ErrUnavailable, got %v", err)
	}
}

func TestCommandAgentMissingInterpreter(t *testing.T) {
	modulePath := filepath.Join(t.TempDir(), "index.mjs")
	if err := os.WriteFile(modulePath, []byte("export default {}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	a := &CommandAgent{
		Command:    "remerge-no-such-interpreter",
		ModulePath: modulePath,
	}

	_, err := a.ExecutePrompt(context.Background(), "prompt", ExecuteOptions{})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Expected ErrUnavailable, got %v", err)
	}
}

func TestCommandAgentExecutes(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script agent stub")
	}

	dir := t.TempDir()
	modulePath := filepath.Join(dir, "index.mjs")
	if err := os.WriteFile(modulePath, []byte("ignored\n"), 0644); err != nil {
		t.Fatal(err)
	}

	// Stub interpreter that echoes stdin back, like an agent returning
	// the resolved content.
	stub := filepath.Join(dir, "stub-agent")
	script := "#!/bin/sh\ncat -\n"
	if err := os.WriteFile(stub, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}

	a := &CommandAgent{
		Command:    stub,
		ModulePath: modulePath,
		Dir:        dir,
	}

	out, err := a.ExecutePrompt(context.Background(), "resolved text\n", ExecuteOptions{
		Mode:  ModeFast,
		Shape: ShapeText,
	})
	if err != nil {
		t.Fatalf("ExecutePrompt failed: %v", err)
	}
	if out != "resolved text\n" {
		t.Errorf("Expected prompt echoed back, got %q", out)
	}
}

func TestCommandAgentReportsStderr(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script agent stub")
	}

	dir := t.TempDir()
	modulePath := filepath.Join(dir, "index.mjs")
	if err := os.WriteFile(modulePath, []byte("ignored\n"), 0644); err != nil {
		t.Fatal(err)
	}

	stub := filepath.Join(dir, "stub-agent")
	script := "#!/bin/sh\necho 'model overloaded' >&2\nexit 1\n"
	if err := os.WriteFile(stub, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}

	a := &CommandAgent{Command: stub, ModulePath: modulePath, Dir: dir}

	_, err := a.ExecutePrompt(context.Background(), "prompt", ExecuteOptions{})
	if err == nil {
		t.Fatal("Expected execution error")
	}
	if !strings.Contains(err.Error(), "model overloaded") {
		t.Errorf("Expected stderr in error context, got %v", err)
	}
}

func TestDeferredLocateFailure(t *testing.T) {
	calls := 0
	d := &Deferred{
		Locate: func(override string) (string, error) {
			calls++
			return "", workspace.ErrNotFound
		},
	}

	for i := 0; i < 2; i++ {
		_, err := d.ExecutePrompt(context.Background(), "prompt", ExecuteOptions{})
		if !errors.Is(err, workspace.ErrNotFound) {
			t.Fatalf("Expected ErrNotFound, got %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("Expected one locate attempt, got %d", calls)
	}
}

func TestDeferredPassesOverride(t *testing.T) {
	var seen string
	d := &Deferred{
		Override: "/somewhere",
		Locate: func(override string) (string, error) {
			seen = override
			return "", workspace.ErrNotFound
		},
	}

	_, _ = d.ExecutePrompt(context.Background(), "prompt", ExecuteOptions{})
	if seen != "/somewhere" {
		t.Errorf("Expected override to reach locate, got %q", seen)
	}
}

func TestFromWorkspace(t *testing.T) {
	a := FromWorkspace("/ws", "")
	if a.Command != "node" {
		t.Errorf("Expected default node command, got %s", a.Command)
	}
	if a.Dir != "/ws" {
		t.Errorf("Expected workspace dir, got %s", a.Dir)
	}
	want := filepath.Join("/ws", filepath.FromSlash(workspace.AgentModuleSuffix))
	if a.ModulePath != want {
		t.Errorf("Expected module path %s, got %s", want, a.ModulePath)
	}
}
