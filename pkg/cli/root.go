package cli

import (
	"errors"
	"flag"
	"fmt"
	"sort"
)

// ErrAccessDenied marks an authorization denial. Execute maps it to a
// distinct exit code so scripts can tell "not allowed" from "failed".
var ErrAccessDenied = errors.New("access denied")

// Exit codes returned by ExitCode
const (
	ExitOK           = 0
	ExitError        = 1
	ExitAccessDenied = 4
)

// ExitCode maps a command error to the process exit code
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrAccessDenied):
		return ExitAccessDenied
	default:
		return ExitError
	}
}

// Command represents a CLI command
type Command struct {
	Name        string
	Description string
	Run         func(args []string) error
	Subcommands map[string]*Command
	Flags       *flag.FlagSet
}

// NewRootCommand creates the mwapctl command tree
func NewRootCommand(app *App) *Command {
	root := &Command{
		Name:        "mwapctl",
		Description: "mwapctl - MWAP admin console CLI",
		Subcommands: make(map[string]*Command),
		Flags:       flag.NewFlagSet("mwapctl", flag.ExitOnError),
	}

	root.Subcommands["login"] = newLoginCommand(app)
	root.Subcommands["logout"] = newLogoutCommand(app)
	root.Subcommands["whoami"] = newWhoamiCommand(app)
	root.Subcommands["refresh-roles"] = newRefreshRolesCommand(app)
	root.Subcommands["context"] = newContextCommand(app)
	root.Subcommands["tenants"] = newTenantsCommand(app)
	root.Subcommands["projects"] = newProjectsCommand(app)
	root.Subcommands["project-types"] = newProjectTypesCommand(app)
	root.Subcommands["providers"] = newProvidersCommand(app)
	root.Subcommands["members"] = newMembersCommand(app)
	root.Subcommands["integrations"] = newIntegrationsCommand(app)
	root.Subcommands["files"] = newFilesCommand(app)

	return root
}

// Execute runs the command tree against args (without the program name)
func (c *Command) Execute(args []string) error {
	return c.dispatch(args)
}

// dispatch routes args into the subcommand map
func (c *Command) dispatch(args []string) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		return c.usage()
	}
	if sub, ok := c.Subcommands[args[0]]; ok {
		return sub.Run(args[1:])
	}
	return fmt.Errorf("unknown command: %s", args[0])
}

// usage prints the command usage
func (c *Command) usage() error {
	fmt.Printf("Usage: %s <command> [args]\n\n", c.Name)
	fmt.Printf("Commands:\n")
	names := make([]string, 0, len(c.Subcommands))
	for name := range c.Subcommands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-15s %s\n", name, c.Subcommands[name].Description)
	}
	return nil
}
