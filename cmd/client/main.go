package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"market/internal/cli/commands"
	"market/internal/config"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// -h before any command prints the grouped command list, not only the flags
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), commands.FormatGlobalUsage())
		fmt.Fprintln(flag.CommandLine.Output(), "\nFlags:")
		flag.PrintDefaults()
	}

	// Load unified config (env + flags)
	cfg := config.NewConfig()

	if cfg.Version {
		printVersion(os.Stdout, cfg)
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	exitCode := commands.Dispatch(ctx, cfg, flag.Args())
	if exitCode == 0 {
		return
	}
	cancel()
	os.Exit(exitCode)
}

// printVersion shows the build and where the client talks to.
func printVersion(w io.Writer, cfg *config.Config) {
	fmt.Fprintf(w, "market CLI\nVersion: %s\nBuild date: %s\nServer: %s\nToken file: %s\n",
		version, buildDate, cfg.ServerURL, cfg.TokenFile)
}
