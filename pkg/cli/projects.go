package cli

import (
	"context"
	"flag"
	"fmt"
	"net/url"

	"github.com/mwapio/console/pkg/authz"
	"github.com/mwapio/console/pkg/entities"
	"github.com/mwapio/console/pkg/roles"
)

func newProjectsCommand(app *App) *Command {
	cmd := &Command{
		Name:        "projects",
		Description: "Manage projects",
		Subcommands: make(map[string]*Command),
		Flags:       flag.NewFlagSet("projects", flag.ExitOnError),
	}
	cmd.Subcommands["list"] = newProjectListCommand(app)
	cmd.Subcommands["get"] = newProjectGetCommand(app)
	cmd.Subcommands["create"] = newProjectCreateCommand(app)
	cmd.Subcommands["update"] = newProjectUpdateCommand(app)
	cmd.Subcommands["delete"] = newProjectDeleteCommand(app)
	cmd.Run = cmd.dispatch
	return cmd
}

func newProjectListCommand(app *App) *Command {
	fs := flag.NewFlagSet("projects list", flag.ExitOnError)
	tenantID := fs.String("tenant", "", "Scope the listing to one tenant")
	asJSON := fs.Bool("json", false, "Print JSON instead of a table")
	cmd := &Command{
		Name:        "list",
		Description: "List projects",
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

		var query url.Values
		if *tenantID != "" {
			query = url.Values{"tenantId": {*tenantID}}
		}
		projects, err := app.services.Projects.List(ctx, query)
		if err != nil {
			return err
		}
		if *asJSON {
			return printJSON(app.Out, projects)
		}

		rows := make([][]string, 0, len(projects))
		for _, p := range projects {
			rows = append(rows, []string{p.ID, p.Name, p.TenantID, p.ProjectTypeID, formatBool(p.Archived)})
		}
		printTable(app.Out, []string{"ID", "NAME", "TENANT", "TYPE", "ARCHIVED"}, rows)
		return nil
	}
	return cmd
}

func newProjectGetCommand(app *App) *Command {
	fs := flag.NewFlagSet("projects get", flag.ExitOnError)
	cmd := &Command{
		Name:        "get",
		Description: "Show one project",
		Flags:       fs,
	}
	cmd.Run = func(args []string) error {
		if err := fs.Parse(args); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return fmt.Errorf("usage: mwapctl projects get <id>")
		}
		ctx := context.Background()
		if err := app.connect(ctx, false); err != nil {
			return err
		}
		if _, err := app.resolveRoles(ctx); err != nil {
			return err
		}

		project, err := app.services.Projects.Get(ctx, fs.Arg(0))
		if err != nil {
			return err
		}
		return printJSON(app.Out, project)
	}
	return cmd
}

func newProjectCreateCommand(app *App) *Command {
	fs := flag.NewFlagSet("projects create", flag.ExitOnError)
	name := fs.String("name", "", "Project name")
	tenantID := fs.String("tenant", "", "Owning tenant ID")
	typeID := fs.String("type", "", "Project type ID")
	providerID := fs.String("provider", "", "Cloud provider ID")
	folder := fs.String("folder", "", "Cloud folder path")
	cmd := &Command{
		Name:        "create",
		Description: "Create a project",
		Flags:       fs,
	}
	cmd.Run = func(args []string) error {
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *name == "" || *tenantID == "" || *typeID == "" || *providerID == "" {
			return fmt.Errorf("-name, -tenant, -type, and -provider are required")
		}
		ctx := context.Background()
		if err := app.connect(ctx, false); err != nil {
			return err
		}
		summary, err := app.resolveRoles(ctx)
		if err != nil {
			return err
		}
		if err := app.requireAny(summary, "create a project",
			authz.RequireTenantOwner(), authz.RequireSuperAdmin()); err != nil {
			return err
		}

		project, err := app.services.Projects.Create(ctx, entities.CreateProjectRequest{
			Name:            *name,
			TenantID:        *tenantID,
			ProjectTypeID:   *typeID,
			CloudProviderID: *providerID,
			Folder:          *folder,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(app.Out, "Project %s created (%s)\n", project.Name, project.ID)
		return nil
	}
	return cmd
}

func newProjectUpdateCommand(app *App) *Command {
	fs := flag.NewFlagSet("projects update", flag.ExitOnError)
	name := fs.String("name", "", "New project name")
	folder := fs.String("folder", "", "New cloud folder path")
	archived := fs.Bool("archived", false, "Archive the project")
	cmd := &Command{
		Name:        "update",
		Description: "Update a project",
		Flags:       fs,
	}
	cmd.Run = func(args []string) error {
		if err := fs.Parse(args); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return fmt.Errorf("usage: mwapctl projects update [flags] <id>")
		}
		projectID := fs.Arg(0)
		ctx := context.Background()
		if err := app.connect(ctx, false); err != nil {
			return err
		}
		summary, err := app.resolveRoles(ctx)
		if err != nil {
			return err
		}
		if err := app.requireAny(summary, "update this project",
			authz.RequireProjectRole(projectID, roles.RoleDeputy),
			authz.RequireTenantOwner(), authz.RequireSuperAdmin()); err != nil {
			return err
		}

		req := entities.UpdateProjectRequest{}
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "name":
				req.Name = name
			case "folder":
				req.Folder = folder
			case "archived":
				req.Archived = archived
			}
		})

		project, err := app.services.Projects.Update(ctx, projectID, req)
		if err != nil {
			return err
		}
		fmt.Fprintf(app.Out, "Project %s updated\n", project.ID)
		return nil
	}
	return cmd
}

func newProjectDeleteCommand(app *App) *Command {
	fs := flag.NewFlagSet("projects delete", flag.ExitOnError)
	cmd := &Command{
		Name:        "delete",
		Description: "Delete a project",
		Flags:       fs,
	}
	cmd.Run = func(args []string) error {
		if err := fs.Parse(args); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return fmt.Errorf("usage: mwapctl projects delete <id>")
		}
		projectID := fs.Arg(0)
		ctx := context.Background()
		if err := app.connect(ctx, false); err != nil {
			return err
		}
		summary, err := app.resolveRoles(ctx)
		if err != nil {
			return err
		}
		if err := app.requireAny(summary, "delete this project",
			authz.RequireProjectRole(projectID, roles.RoleOwner),
			authz.RequireTenantOwner(), authz.RequireSuperAdmin()); err != nil {
			return err
		}

		if err := app.services.Projects.Delete(ctx, projectID); err != nil {
			return err
		}
		fmt.Fprintf(app.Out, "Project %s deleted\n", projectID)
		return nil
	}
	return cmd
}
