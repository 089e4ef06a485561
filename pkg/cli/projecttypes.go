package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/mwapio/console/pkg/authz"
	"github.com/mwapio/console/pkg/entities"
)

func newProjectTypesCommand(app *App) *Command {
	cmd := &Command{
		Name:        "project-types",
		Description: "Manage the project-type catalog",
		Subcommands: make(map[string]*Command),
		Flags:       flag.NewFlagSet("project-types", flag.ExitOnError),
	}
	cmd.Subcommands["list"] = newProjectTypeListCommand(app)
	cmd.Subcommands["create"] = newProjectTypeCreateCommand(app)
	cmd.Subcommands["update"] = newProjectTypeUpdateCommand(app)
	cmd.Subcommands["delete"] = newProjectTypeDeleteCommand(app)
	cmd.Run = cmd.dispatch
	return cmd
}

func newProjectTypeListCommand(app *App) *Command {
	fs := flag.NewFlagSet("project-types list", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "Print JSON instead of a table")
	cmd := &Command{
		Name:        "list",
		Description: "List project types",
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

		types, err := app.services.ProjectTypes.List(ctx, nil)
		if err != nil {
			return err
		}
		if *asJSON {
			return printJSON(app.Out, types)
		}

		rows := make([][]string, 0, len(types))
		for _, pt := range types {
			rows = append(rows, []string{pt.ID, pt.Name, formatBool(pt.Active), pt.Description})
		}
		printTable(app.Out, []string{"ID", "NAME", "ACTIVE", "DESCRIPTION"}, rows)
		return nil
	}
	return cmd
}

func newProjectTypeCreateCommand(app *App) *Command {
	fs := flag.NewFlagSet("project-types create", flag.ExitOnError)
	name := fs.String("name", "", "Project type name")
	description := fs.String("description", "", "Project type description")
	cmd := &Command{
		Name:        "create",
		Description: "Create a project type",
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
		if err := app.requireAccess(summary, authz.RequireSuperAdmin(), "manage project types"); err != nil {
			return err
		}

		pt, err := app.services.ProjectTypes.Create(ctx, entities.CreateProjectTypeRequest{
			Name:        *name,
			Description: *description,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(app.Out, "Project type %s created (%s)\n", pt.Name, pt.ID)
		return nil
	}
	return cmd
}

func newProjectTypeUpdateCommand(app *App) *Command {
	fs := flag.NewFlagSet("project-types update", flag.ExitOnError)
	name := fs.String("name", "", "New name")
	description := fs.String("description", "", "New description")
	active := fs.Bool("active", true, "Whether the type is selectable")
	cmd := &Command{
		Name:        "update",
		Description: "Update a project type",
		Flags:       fs,
	}
	cmd.Run = func(args []string) error {
		if err := fs.Parse(args); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return fmt.Errorf("usage: mwapctl project-types update [flags] <id>")
		}
		ctx := context.Background()
		if err := app.connect(ctx, false); err != nil {
			return err
		}
		summary, err := app.resolveRoles(ctx)
		if err != nil {
			return err
		}
		if err := app.requireAccess(summary, authz.RequireSuperAdmin(), "manage project types"); err != nil {
			return err
		}

		req := entities.UpdateProjectTypeRequest{}
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "name":
				req.Name = name
			case "description":
				req.Description = description
			case "active":
				req.Active = active
			}
		})

		pt, err := app.services.ProjectTypes.Update(ctx, fs.Arg(0), req)
		if err != nil {
			return err
		}
		fmt.Fprintf(app.Out, "Project type %s updated\n", pt.ID)
		return nil
	}
	return cmd
}

func newProjectTypeDeleteCommand(app *App) *Command {
	fs := flag.NewFlagSet("project-types delete", flag.ExitOnError)
	cmd := &Command{
		Name:        "delete",
		Description: "Delete a project type",
		Flags:       fs,
	}
	cmd.Run = func(args []string) error {
		if err := fs.Parse(args); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return fmt.Errorf("usage: mwapctl project-types delete <id>")
		}
		ctx := context.Background()
		if err := app.connect(ctx, false); err != nil {
			return err
		}
		summary, err := app.resolveRoles(ctx)
		if err != nil {
			return err
		}
		if err := app.requireAccess(summary, authz.RequireSuperAdmin(), "manage project types"); err != nil {
			return err
		}

		if err := app.services.ProjectTypes.Delete(ctx, fs.Arg(0)); err != nil {
			return err
		}
		fmt.Fprintf(app.Out, "Project type %s deleted\n", fs.Arg(0))
		return nil
	}
	return cmd
}
