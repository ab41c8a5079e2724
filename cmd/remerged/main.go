package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lherron/remerge/internal/cli"
)

func main() {
	addr := flag.String("addr", os.Getenv("REMERGED_ADDR"), "Listen address (default 127.0.0.1:7272)")
	unixPath := flag.String("unix", os.Getenv("REMERGED_UNIX"), "Listen on unix socket path")
	token := flag.String("token", os.Getenv("REMERGED_TOKEN"), "Shared token for local auth")
	workspace := flag.String("workspace", "", "Workspace root override (defaults to config)")
	backend := flag.String("backend", "", "Deterministic merge backend override")
	flag.Parse()

	opts := cli.DaemonOptions{
		Addr:      *addr,
		Unix:      *unixPath,
		Token:     *token,
		Workspace: *workspace,
		Backend:   *backend,
	}

	if err := cli.ServeDaemon(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
