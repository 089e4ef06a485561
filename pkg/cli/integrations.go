package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/mwapio/console/pkg/authz"
	"github.com/mwapio/console/pkg/entities"
)

func newIntegrationsCommand(app *App) *Command {
	cmd := &Command{
		Name:        "integrations",
		Description: "Manage tenant cloud-provider integrations",
		Subcommands: make(map[string]*Command),
		Flags:       flag.NewFlagSet("integrations", flag.ExitOnError),
	}
	cmd.Subcommands["list"] = newIntegrationListCommand(app)
	cmd.Subcommands["create"] = newIntegrationCreateCommand(app)
	cmd.Subcommands["delete"] = newIntegrationDeleteCommand(app)
	cmd.Run = cmd.dispatch
	return cmd
}

func newIntegrationListCommand(app *App) *Command {
	fs := flag.NewFlagSet("integrations list", flag.ExitOnError)
	tenantID := fs.String("tenant", "", "Tenant ID")
	asJSON := fs.Bool("json", false, "Print JSON instead of a table")
	cmd := &Command{
		Name:        "list",
		Description: "List a tenant's integrations",
		Flags:       fs,
	}
	cmd.Run = func(args []string) error {
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *tenantID == "" {
			return fmt.Errorf("-tenant is required")
		}
		ctx := context.Background()
		if err := app.connect(ctx, false); err != nil {
			return err
		}
		if _, err := app.resolveRoles(ctx); err != nil {
			return err
		}

		integrations, err := app.services.Integrations.List(ctx, *tenantID)
		if err != nil {
			return err
		}
		if *asJSON {
			return printJSON(app.Out, integrations)
		}

		rows := make([][]string, 0, len(integrations))
		for _, in := range integrations {
			rows = append(rows, []string{in.ID, in.CloudProviderID, in.Status, formatTime(in.ConnectedAt)})
		}
		printTable(app.Out, []string{"ID", "PROVIDER", "STATUS", "CONNECTED"}, rows)
		return nil
	}
	return cmd
}

func newIntegrationCreateCommand(app *App) *Command {
	fs := flag.NewFlagSet("integrations create", flag.ExitOnError)
	tenantID := fs.String("tenant", "", "Tenant ID")
	providerID := fs.String("provider", "", "Cloud provider ID")
	cmd := &Command{
		Name:        "create",
		Description: "Connect a tenant to a cloud provider",
		Flags:       fs,
	}
	cmd.Run = func(args []string) error {
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *tenantID == "" || *providerID == "" {
			return fmt.Errorf("-tenant and -provider are required")
		}
		ctx := context.Background()
		if err := app.connect(ctx, false); err != nil {
			return err
		}
		summary, err := app.resolveRoles(ctx)
		if err != nil {
			return err
		}
		if err := app.requireAny(summary, "manage tenant integrations",
			authz.RequireTenantOwner(), authz.RequireSuperAdmin()); err != nil {
			return err
		}

		integration, err := app.services.Integrations.Create(ctx, *tenantID, entities.CreateIntegrationRequest{
			CloudProviderID: *providerID,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(app.Out, "Integration %s created\n", integration.ID)
		return nil
	}
	return cmd
}

func newIntegrationDeleteCommand(app *App) *Command {
	fs := flag.NewFlagSet("integrations delete", flag.ExitOnError)
	tenantID := fs.String("tenant", "", "Tenant ID")
	cmd := &Command{
		Name:        "delete",
		Description: "Disconnect an integration",
		Flags:       fs,
	}
	cmd.Run = func(args []string) error {
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *tenantID == "" || fs.NArg() != 1 {
			return fmt.Errorf("usage: mwapctl integrations delete -tenant <tenantId> <integrationId>")
		}
		ctx := context.Background()
		if err := app.connect(ctx, false); err != nil {
			return err
		}
		summary, err := app.resolveRoles(ctx)
		if err != nil {
			return err
		}
		if err := app.requireAny(summary, "manage tenant integrations",
			authz.RequireTenantOwner(), authz.RequireSuperAdmin()); err != nil {
			return err
		}

		if err := app.services.Integrations.Delete(ctx, *tenantID, fs.Arg(0)); err != nil {
			return err
		}
		fmt.Fprintf(app.Out, "Integration %s deleted\n", fs.Arg(0))
		return nil
	}
	return cmd
}
