package cli

import (
	"flag"
	"fmt"

	"github.com/mwapio/console/pkg/config"
)

func newContextCommand(app *App) *Command {
	cmd := &Command{
		Name:        "context",
		Description: "Manage named API contexts",
		Subcommands: make(map[string]*Command),
		Flags:       flag.NewFlagSet("context", flag.ExitOnError),
	}
	cmd.Subcommands["list"] = newContextListCommand(app)
	cmd.Subcommands["use"] = newContextUseCommand(app)
	cmd.Subcommands["set"] = newContextSetCommand(app)
	cmd.Run = cmd.dispatch
	return cmd
}

func newContextListCommand(app *App) *Command {
	fs := flag.NewFlagSet("context list", flag.ExitOnError)
	cmd := &Command{
		Name:        "list",
		Description: "List configured contexts",
		Flags:       fs,
	}
	cmd.Run = func(args []string) error {
		if err := fs.Parse(args); err != nil {
			return err
		}
		rows := make([][]string, 0, len(app.contexts.Contexts))
		for _, nc := range app.contexts.Contexts {
			current := ""
			if nc.Name == app.contexts.CurrentContext {
				current = "*"
			}
			rows = append(rows, []string{current, nc.Name, nc.APIBaseURL, nc.IssuerURL})
		}
		printTable(app.Out, []string{"", "NAME", "API URL", "ISSUER"}, rows)
		return nil
	}
	return cmd
}

func newContextUseCommand(app *App) *Command {
	fs := flag.NewFlagSet("context use", flag.ExitOnError)
	cmd := &Command{
		Name:        "use",
		Description: "Select the current context",
		Flags:       fs,
	}
	cmd.Run = func(args []string) error {
		if err := fs.Parse(args); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return fmt.Errorf("usage: mwapctl context use <name>")
		}
		name := fs.Arg(0)
		if err := app.contexts.Use(name); err != nil {
			return err
		}
		if err := app.contexts.Save(app.contextsPath); err != nil {
			return err
		}
		fmt.Fprintf(app.Out, "Switched to context %q\n", name)
		return nil
	}
	return cmd
}

func newContextSetCommand(app *App) *Command {
	fs := flag.NewFlagSet("context set", flag.ExitOnError)
	apiURL := fs.String("api-url", "", "Backend API base URL")
	issuerURL := fs.String("issuer-url", "", "OIDC issuer URL")
	clientID := fs.String("client-id", "", "OIDC client ID")
	cmd := &Command{
		Name:        "set",
		Description: "Add or update a named context",
		Flags:       fs,
	}
	cmd.Run = func(args []string) error {
		if err := fs.Parse(args); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return fmt.Errorf("usage: mwapctl context set -api-url <url> [-issuer-url <url>] [-client-id <id>] <name>")
		}
		if *apiURL == "" {
			return fmt.Errorf("-api-url is required")
		}

		name := fs.Arg(0)
		app.contexts.Set(config.NamedContext{
			Name:       name,
			APIBaseURL: *apiURL,
			IssuerURL:  *issuerURL,
			ClientID:   *clientID,
		})
		if app.contexts.CurrentContext == "" {
			app.contexts.CurrentContext = name
		}
		if err := app.contexts.Save(app.contextsPath); err != nil {
			return err
		}
		fmt.Fprintf(app.Out, "Context %q saved\n", name)
		return nil
	}
	return cmd
}
