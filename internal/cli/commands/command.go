package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"market/internal/config"
	"os"
	"sort"
	"strings"
)

// ErrUsage is returned by a command when arguments are invalid and usage should be shown.
var ErrUsage = errors.New("usage")

// Command represents a CLI subcommand.
type Command interface {
	// Name returns the command name as typed by the user, e.g. "login".
	Name() string
	// Description is a short human-readable description shown in help.
	Description() string
	// Usage returns the exact usage string, e.g. "propose <itemId> <price>".
	Usage() string
	// Run executes the command with provided args (without the command name).
	Run(ctx context.Context, cfg *config.Config, args []string) error
}

// registry holds available commands by name.
var registry = map[string]Command{}

// Out: общий writer для вывода CLI. По умолчанию os.Stdout, в тестах переназначается.
var Out io.Writer = os.Stdout

// helpGroups orders the global help by marketplace area.
// Registered commands missing here are listed under "Other".
var helpGroups = []struct {
	title string
	names []string
}{
	{"Account", []string{"register", "login", "logout", "status", "scope"}},
	{"Items", []string{"items", "item", "item-add", "item-status"}},
	{"Deals", []string{"propose", "proposals", "review", "reviews"}},
}

// aliases maps short forms to command names.
var aliases = map[string]string{
	"me":     "status",
	"ls":     "items",
	"show":   "item",
	"sell":   "item-add",
	"offer":  "propose",
	"offers": "proposals",
}

// RegisterCmd adds a command to the registry. Should be called from init() of each command.
func RegisterCmd(cmd Command) {
	registry[cmd.Name()] = cmd
}

// Get returns a command by name or alias, case-insensitively.
func Get(name string) (Command, bool) {
	name = strings.ToLower(name)
	if target, ok := aliases[name]; ok {
		name = target
	}
	c, ok := registry[name]
	return c, ok
}

// List returns all registered commands sorted by name.
func List() []Command {
	list := make([]Command, 0, len(registry))
	for _, c := range registry {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// Suggest returns registered command names starting with prefix.
func Suggest(prefix string) []string {
	prefix = strings.ToLower(prefix)
	if prefix == "" {
		return nil
	}
	var out []string
	for _, c := range List() {
		if strings.HasPrefix(c.Name(), prefix) {
			out = append(out, c.Name())
		}
	}
	return out
}

// FormatGlobalUsage builds the help text: commands grouped by area, then aliases.
func FormatGlobalUsage() string {
	lines := []string{
		"market CLI: browse items, make offers and leave reviews on the marketplace",
		"",
		"Usage:",
		"  market-cli [--base-url <host:port>] [--https] [--token-file <path>] <command> [args]",
	}

	listed := map[string]bool{}
	for _, g := range helpGroups {
		var group []string
		for _, name := range g.names {
			if c, ok := registry[name]; ok {
				group = append(group, formatLine(c))
				listed[name] = true
			}
		}
		if len(group) > 0 {
			lines = append(lines, "", g.title+":")
			lines = append(lines, group...)
		}
	}

	var other []string
	for _, c := range List() {
		if !listed[c.Name()] {
			other = append(other, formatLine(c))
		}
	}
	if len(other) > 0 {
		lines = append(lines, "", "Other:")
		lines = append(lines, other...)
	}

	short := make([]string, 0, len(aliases))
	for a, target := range aliases {
		short = append(short, a+"="+target)
	}
	sort.Strings(short)
	lines = append(lines, "", "Aliases: "+strings.Join(short, ", "))
	lines = append(lines, "Run 'market-cli help <command>' for details.")
	return strings.Join(lines, "\n") + "\n"
}

// FormatCommandUsage is the help of a single command.
func FormatCommandUsage(c Command) string {
	text := fmt.Sprintf("Usage: %s\n  %s\n", c.Usage(), c.Description())
	var short []string
	for a, target := range aliases {
		if target == c.Name() {
			short = append(short, a)
		}
	}
	if len(short) > 0 {
		sort.Strings(short)
		text += fmt.Sprintf("  alias: %s\n", strings.Join(short, ", "))
	}
	return text
}

func formatLine(c Command) string {
	return fmt.Sprintf("  %-44s %s", c.Usage(), c.Description())
}
