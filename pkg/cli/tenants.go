package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/mwapio/console/pkg/authz"
	"github.com/mwapio/console/pkg/entities"
)

func newTenantsCommand(app *App) *Command {
	cmd := &Command{
		Name:        "tenants",
		Description: "Manage tenants",
		Subcommands: make(map[string]*Command),
		Flags:       flag.NewFlagSet("tenants", flag.ExitOnError),
	}
	cmd.Subcommands["list"] = newTenantListCommand(app)
	cmd.Subcommands["get"] = newTenantGetCommand(app)
	cmd.Subcommands["create"] = newTenantCreateCommand(app)
	cmd.Subcommands["update"] = newTenantUpdateCommand(app)
	cmd.Subcommands["delete"] = newTenantDeleteCommand(app)
	cmd.Run = cmd.dispatch
	return cmd
}

func newTenantListCommand(app *App) *Command {
	fs := flag.NewFlagSet("tenants list", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "Print JSON instead of a table")
	cmd := &Command{
		Name:        "list",
		Description: "List tenants",
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

		tenants, err := app.services.Tenants.List(ctx, nil)
		if err != nil {
			return err
		}
		if *asJSON {
			return printJSON(app.Out, tenants)
		}

		rows := make([][]string, 0, len(tenants))
		for _, t := range tenants {
			rows = append(rows, []string{t.ID, t.Name, t.OwnerID, formatBool(t.Archived), formatTime(t.CreatedAt)})
		}
		printTable(app.Out, []string{"ID", "NAME", "OWNER", "ARCHIVED", "CREATED"}, rows)
		return nil
	}
	return cmd
}

func newTenantGetCommand(app *App) *Command {
	fs := flag.NewFlagSet("tenants get", flag.ExitOnError)
	cmd := &Command{
		Name:        "get",
		Description: "Show one tenant",
		Flags:       fs,
	}
	cmd.Run = func(args []string) error {
		if err := fs.Parse(args); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return fmt.Errorf("usage: mwapctl tenants get <id>")
		}
		ctx := context.Background()
		if err := app.connect(ctx, false); err != nil {
			return err
		}
		if _, err := app.resolveRoles(ctx); err != nil {
			return err
		}

		tenant, err := app.services.Tenants.Get(ctx, fs.Arg(0))
		if err != nil {
			return err
		}
		return printJSON(app.Out, tenant)
	}
	return cmd
}

func newTenantCreateCommand(app *App) *Command {
	fs := flag.NewFlagSet("tenants create", flag.ExitOnError)
	name := fs.String("name", "", "Tenant name")
	cmd := &Command{
		Name:        "create",
		Description: "Create a tenant",
		Flags:       fs,
	}
	cmd.Run = func(args []string) error {
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *name == "" {
			return fmt.Errorf("-name is required")
		}
		ctx := context.Background()
		if err := app.connect(ctx, false); err != nil {
			return err
		}
		summary, err := app.resolveRoles(ctx)
		if err != nil {
			return err
		}
		if err := app.requireAccess(summary, authz.RequireAuthenticated(), "create a tenant"); err != nil {
			return err
		}

		tenant, err := app.services.Tenants.Create(ctx, entities.CreateTenantRequest{Name: *name})
		if err != nil {
			return err
		}
		fmt.Fprintf(app.Out, "Tenant %s created (%s)\n", tenant.Name, tenant.ID)
		return nil
	}
	return cmd
}

func newTenantUpdateCommand(app *App) *Command {
	fs := flag.NewFlagSet("tenants update", flag.ExitOnError)
	name := fs.String("name", "", "New tenant name")
	archived := fs.Bool("archived", false, "Archive the tenant")
	cmd := &Command{
		Name:        "update",
		Description: "Update a tenant",
		Flags:       fs,
	}
	cmd.Run = func(args []string) error {
		if err := fs.Parse(args); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return fmt.Errorf("usage: mwapctl tenants update [flags] <id>")
		}
		ctx := context.Background()
		if err := app.connect(ctx, false); err != nil {
			return err
		}
		summary, err := app.resolveRoles(ctx)
		if err != nil {
			return err
		}
		if err := app.requireAny(summary, "update a tenant",
			authz.RequireTenantOwner(), authz.RequireSuperAdmin()); err != nil {
			return err
		}

		req := entities.UpdateTenantRequest{}
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "name":
				req.Name = name
			case "archived":
				req.Archived = archived
			}
		})

		tenant, err := app.services.Tenants.Update(ctx, fs.Arg(0), req)
		if err != nil {
			return err
		}
		fmt.Fprintf(app.Out, "Tenant %s updated\n", tenant.ID)
		return nil
	}
	return cmd
}

func newTenantDeleteCommand(app *App) *Command {
	fs := flag.NewFlagSet("tenants delete", flag.ExitOnError)
	cmd := &Command{
		Name:        "delete",
		Description: "Delete a tenant",
		Flags:       fs,
	}
	cmd.Run = func(args []string) error {
		if err := fs.Parse(args); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return fmt.Errorf("usage: mwapctl tenants delete <id>")
		}
		ctx := context.Background()
		if err := app.connect(ctx, false); err != nil {
			return err
		}
		summary, err := app.resolveRoles(ctx)
		if err != nil {
			return err
		}
		if err := app.requireAccess(summary, authz.RequireSuperAdmin(), "delete a tenant"); err != nil {
			return err
		}

		if err := app.services.Tenants.Delete(ctx, fs.Arg(0)); err != nil {
			return err
		}
		fmt.Fprintf(app.Out, "Tenant %s deleted\n", fs.Arg(0))
		return nil
	}
	return cmd
}
