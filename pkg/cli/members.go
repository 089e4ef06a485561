package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/mwapio/console/pkg/authz"
	"github.com/mwapio/console/pkg/entities"
	"github.com/mwapio/console/pkg/roles"
)

func newMembersCommand(app *App) *Command {
	cmd := &Command{
		Name:        "members",
		Description: "Manage project members",
		Subcommands: make(map[string]*Command),
		Flags:       flag.NewFlagSet("members", flag.ExitOnError),
	}
	cmd.Subcommands["list"] = newMemberListCommand(app)
	cmd.Subcommands["add"] = newMemberAddCommand(app)
	cmd.Subcommands["set-role"] = newMemberSetRoleCommand(app)
	cmd.Subcommands["remove"] = newMemberRemoveCommand(app)
	cmd.Run = cmd.dispatch
	return cmd
}

func newMemberListCommand(app *App) *Command {
	fs := flag.NewFlagSet("members list", flag.ExitOnError)
	projectID := fs.String("project", "", "Project ID")
	asJSON := fs.Bool("json", false, "Print JSON instead of a table")
	cmd := &Command{
		Name:        "list",
		Description: "List a project's members",
		Flags:       fs,
	}
	cmd.Run = func(args []string) error {
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *projectID == "" {
			return fmt.Errorf("-project is required")
		}
		ctx := context.Background()
		if err := app.connect(ctx, false); err != nil {
			return err
		}
		if _, err := app.resolveRoles(ctx); err != nil {
			return err
		}

		members, err := app.services.Members.List(ctx, *projectID)
		if err != nil {
			return err
		}
		if *asJSON {
			return printJSON(app.Out, members)
		}

		rows := make([][]string, 0, len(members))
		for _, m := range members {
			rows = append(rows, []string{m.UserID, m.Role})
		}
		printTable(app.Out, []string{"USER", "ROLE"}, rows)
		return nil
	}
	return cmd
}

// requireMemberAdmin gates membership mutations on project ownership,
// with tenant-owner and super-admin escalation.
func requireMemberAdmin(app *App, summary *roles.RoleSummary, projectID string) error {
	return app.requireAny(summary, "manage members of this project",
		authz.RequireProjectRole(projectID, roles.RoleOwner),
		authz.RequireTenantOwner(), authz.RequireSuperAdmin())
}

func newMemberAddCommand(app *App) *Command {
	fs := flag.NewFlagSet("members add", flag.ExitOnError)
	projectID := fs.String("project", "", "Project ID")
	userID := fs.String("user", "", "User ID to add")
	role := fs.String("role", "MEMBER", "Role: OWNER, DEPUTY, or MEMBER")
	cmd := &Command{
		Name:        "add",
		Description: "Add a member to a project",
		Flags:       fs,
	}
	cmd.Run = func(args []string) error {
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *projectID == "" || *userID == "" {
			return fmt.Errorf("-project and -user are required")
		}
		if !roles.Role(*role).Valid() {
			return fmt.Errorf("invalid role: %s", *role)
		}
		ctx := context.Background()
		if err := app.connect(ctx, false); err != nil {
			return err
		}
		summary, err := app.resolveRoles(ctx)
		if err != nil {
			return err
		}
		if err := requireMemberAdmin(app, summary, *projectID); err != nil {
			return err
		}

		member, err := app.services.Members.Add(ctx, *projectID, entities.AddMemberRequest{
			UserID: *userID,
			Role:   *role,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(app.Out, "Added %s as %s\n", member.UserID, member.Role)
		return nil
	}
	return cmd
}

func newMemberSetRoleCommand(app *App) *Command {
	fs := flag.NewFlagSet("members set-role", flag.ExitOnError)
	projectID := fs.String("project", "", "Project ID")
	userID := fs.String("user", "", "User ID")
	role := fs.String("role", "", "New role: OWNER, DEPUTY, or MEMBER")
	cmd := &Command{
		Name:        "set-role",
		Description: "Change a member's role",
		Flags:       fs,
	}
	cmd.Run = func(args []string) error {
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *projectID == "" || *userID == "" || *role == "" {
			return fmt.Errorf("-project, -user, and -role are required")
		}
		if !roles.Role(*role).Valid() {
			return fmt.Errorf("invalid role: %s", *role)
		}
		ctx := context.Background()
		if err := app.connect(ctx, false); err != nil {
			return err
		}
		summary, err := app.resolveRoles(ctx)
		if err != nil {
			return err
		}
		if err := requireMemberAdmin(app, summary, *projectID); err != nil {
			return err
		}

		member, err := app.services.Members.UpdateRole(ctx, *projectID, *userID, entities.UpdateMemberRequest{
			Role: *role,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(app.Out, "%s is now %s\n", member.UserID, member.Role)
		return nil
	}
	return cmd
}

func newMemberRemoveCommand(app *App) *Command {
	fs := flag.NewFlagSet("members remove", flag.ExitOnError)
	projectID := fs.String("project", "", "Project ID")
	userID := fs.String("user", "", "User ID to remove")
	cmd := &Command{
		Name:        "remove",
		Description: "Remove a member from a project",
		Flags:       fs,
	}
	cmd.Run = func(args []string) error {
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *projectID == "" || *userID == "" {
			return fmt.Errorf("-project and -user are required")
		}
		ctx := context.Background()
		if err := app.connect(ctx, false); err != nil {
			return err
		}
		summary, err := app.resolveRoles(ctx)
		if err != nil {
			return err
		}
		if err := requireMemberAdmin(app, summary, *projectID); err != nil {
			return err
		}

		if err := app.services.Members.Remove(ctx, *projectID, *userID); err != nil {
			return err
		}
		fmt.Fprintf(app.Out, "Removed %s from %s\n", *userID, *projectID)
		return nil
	}
	return cmd
}
