package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/mwapio/console/pkg/authz"
	"github.com/mwapio/console/pkg/entities"
)

func newProvidersCommand(app *App) *Command {
	cmd := &Command{
		Name:        "providers",
		Description: "Manage the cloud-provider catalog",
		Subcommands: make(map[string]*Command),
		Flags:       flag.NewFlagSet("providers", flag.ExitOnError),
	}
	cmd.Subcommands["list"] = newProviderListCommand(app)
	cmd.Subcommands["create"] = newProviderCreateCommand(app)
	cmd.Subcommands["update"] = newProviderUpdateCommand(app)
	cmd.Subcommands["delete"] = newProviderDeleteCommand(app)
	cmd.Run = cmd.dispatch
	return cmd
}

func newProviderListCommand(app *App) *Command {
	fs := flag.NewFlagSet("providers list", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "Print JSON instead of a table")
	cmd := &Command{
		Name:        "list",
		Description: "List cloud providers",
		Flags:       fs,
	}
	cmd.Run = func(args []string) error {
		if err := fs.Parse(args); err != nil {
			return err
		}
		ctx := context.Background()
		if err := app.connect(ctx, false); err != nil {
			return err
		}
		if _, err := app.resolveRoles(ctx); err != nil {
			return err
		}

		providers, err := app.services.Providers.List(ctx, nil)
		if err != nil {
			return err
		}
		if *asJSON {
			return printJSON(app.Out, providers)
		}

		rows := make([][]string, 0, len(providers))
		for _, p := range providers {
			rows = append(rows, []string{p.ID, p.Name, p.Slug, p.AuthType})
		}
		printTable(app.Out, []string{"ID", "NAME", "SLUG", "AUTH"}, rows)
		return nil
	}
	return cmd
}

func newProviderCreateCommand(app *App) *Command {
	fs := flag.NewFlagSet("providers create", flag.ExitOnError)
	name := fs.String("name", "", "Provider display name")
	slug := fs.String("slug", "", "Provider slug")
	authType := fs.String("auth-type", "OAuth2", "Provider auth type")
	tokenURL := fs.String("token-url", "", "OAuth token endpoint")
	authorizeURL := fs.String("authorize-url", "", "OAuth authorize endpoint")
	cmd := &Command{
		Name:        "create",
		Description: "Create a cloud provider",
		Flags:       fs,
	}
	cmd.Run = func(args []string) error {
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *name == "" || *slug == "" {
			return fmt.Errorf("-name and -slug are required")
		}
		ctx := context.Background()
		if err := app.connect(ctx, false); err != nil {
			return err
		}
		summary, err := app.resolveRoles(ctx)
		if err != nil {
			return err
		}
		if err := app.requireAccess(summary, authz.RequireSuperAdmin(), "manage cloud providers"); err != nil {
			return err
		}

		provider, err := app.services.Providers.Create(ctx, entities.CreateCloudProviderRequest{
			Name:         *name,
			Slug:         *slug,
			AuthType:     *authType,
			TokenURL:     *tokenURL,
			AuthorizeURL: *authorizeURL,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(app.Out, "Cloud provider %s created (%s)\n", provider.Name, provider.ID)
		return nil
	}
	return cmd
}

func newProviderUpdateCommand(app *App) *Command {
	fs := flag.NewFlagSet("providers update", flag.ExitOnError)
	name := fs.String("name", "", "New display name")
	authType := fs.String("auth-type", "", "New auth type")
	tokenURL := fs.String("token-url", "", "New token endpoint")
	authorizeURL := fs.String("authorize-url", "", "New authorize endpoint")
	cmd := &Command{
		Name:        "update",
		Description: "Update a cloud provider",
		Flags:       fs,
	}
	cmd.Run = func(args []string) error {
		if err := fs.Parse(args); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return fmt.Errorf("usage: mwapctl providers update [flags] <id>")
		}
		ctx := context.Background()
		if err := app.connect(ctx, false); err != nil {
			return err
		}
		summary, err := app.resolveRoles(ctx)
		if err != nil {
			return err
		}
		if err := app.requireAccess(summary, authz.RequireSuperAdmin(), "manage cloud providers"); err != nil {
			return err
		}

		req := entities.UpdateCloudProviderRequest{}
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "name":
				req.Name = name
			case "auth-type":
				req.AuthType = authType
			case "token-url":
				req.TokenURL = tokenURL
			case "authorize-url":
				req.AuthorizeURL = authorizeURL
			}
		})

		provider, err := app.services.Providers.Update(ctx, fs.Arg(0), req)
		if err != nil {
			return err
		}
		fmt.Fprintf(app.Out, "Cloud provider %s updated\n", provider.ID)
		return nil
	}
	return cmd
}

func newProviderDeleteCommand(app *App) *Command {
	fs := flag.NewFlagSet("providers delete", flag.ExitOnError)
	cmd := &Command{
		Name:        "delete",
		Description: "Delete a cloud provider",
		Flags:       fs,
	}
	cmd.Run = func(args []string) error {
		if err := fs.Parse(args); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return fmt.Errorf("usage: mwapctl providers delete <id>")
		}
		ctx := context.Background()
		if err := app.connect(ctx, false); err != nil {
			return err
		}
		summary, err := app.resolveRoles(ctx)
		if err != nil {
			return err
		}
		if err := app.requireAccess(summary, authz.RequireSuperAdmin(), "manage cloud providers"); err != nil {
			return err
		}

		if err := app.services.Providers.Delete(ctx, fs.Arg(0)); err != nil {
			return err
		}
		fmt.Fprintf(app.Out, "Cloud provider %s deleted\n", fs.Arg(0))
		return nil
	}
	return cmd
}
