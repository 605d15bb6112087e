package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"market/internal/cli/api"
	"market/internal/config"
	"os"
	"strings"
)

// Exit codes of the CLI process.
const (
	exitOK          = 0
	exitFailure     = 1
	exitUsage       = 2
	exitInterrupted = 130
)

// Dispatch is the single entry point to execute CLI commands.
// It prints help and usage messages and returns a process exit code.
func Dispatch(ctx context.Context, cfg *config.Config, args []string) int {
	// If user passed global --help after flags parsing, show global usage
	for _, a := range os.Args[1:] {
		if a == "--help" || a == "-h" {
			fmt.Fprint(Out, FormatGlobalUsage())
			return exitOK
		}
	}

	if !flag.Parsed() {
		flag.Parse()
	}

	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return exitUsage
	}

	name := strings.ToLower(args[0])
	if name == "help" { // market-cli help [command]
		return help(args[1:])
	}

	c, ok := Get(name)
	if !ok {
		unknown(name)
		return exitUsage
	}
	return report(ctx, c, c.Run(ctx, cfg, args[1:]))
}

func help(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return exitOK
	}
	if c, ok := Get(args[0]); ok {
		fmt.Fprint(Out, FormatCommandUsage(c))
		return exitOK
	}
	unknown(args[0])
	return exitUsage
}

func unknown(name string) {
	fmt.Fprintf(Out, "Unknown command: %s\n", name)
	if s := Suggest(name); len(s) > 0 {
		fmt.Fprintf(Out, "Did you mean: %s?\n", strings.Join(s, ", "))
	}
	fmt.Fprintln(Out)
	fmt.Fprint(Out, FormatGlobalUsage())
}

// report turns the command result into output and an exit code.
func report(ctx context.Context, c Command, err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, ErrUsage):
		fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
		return exitUsage
	case errors.Is(err, ErrNotLoggedIn):
		fmt.Fprintf(Out, "%s: you are not logged in. Run: market-cli %s\n", c.Name(), loginCmd{}.Usage())
		return exitFailure
	case ctx.Err() != nil && errors.Is(err, ctx.Err()):
		fmt.Fprintf(Out, "%s: interrupted\n", c.Name())
		return exitInterrupted
	}

	fmt.Fprintf(Out, "%s error: %v\n", c.Name(), err)
	// a 401 from login means a wrong password, not an expired session
	if api.IsUnauthorized(err) && c.Name() != (loginCmd{}).Name() {
		fmt.Fprintf(Out, "Session expired or invalid. Run: market-cli %s\n", loginCmd{}.Usage())
	}
	return exitFailure
}
