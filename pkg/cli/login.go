package cli

import (
	"context"
	"flag"
	"fmt"
)

func newLoginCommand(app *App) *Command {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	cmd := &Command{
		Name:        "login",
		Description: "Sign in through the identity provider",
		Flags:       fs,
	}
	cmd.Run = func(args []string) error {
		if err := fs.Parse(args); err != nil {
			return err
		}
		ctx := context.Background()
		if err := app.connect(ctx, true); err != nil {
			return err
		}
		if err := app.store.Login(ctx); err != nil {
			return err
		}
		sess := app.store.Current()
		fmt.Fprintf(app.Out, "Logged in as %s\n", sess.Profile.DisplayName)
		return nil
	}
	return cmd
}

func newLogoutCommand(app *App) *Command {
	fs := flag.NewFlagSet("logout", flag.ExitOnError)
	cmd := &Command{
		Name:        "logout",
		Description: "Sign out and clear the cached credential",
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
		if err := app.store.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(app.Out, "Logged out")
		return nil
	}
	return cmd
}

func newWhoamiCommand(app *App) *Command {
	fs := flag.NewFlagSet("whoami", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "Print JSON instead of text")
	cmd := &Command{
		Name:        "whoami",
		Description: "Show the signed-in user and resolved roles",
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

		summary, err := app.resolveRoles(ctx)
		if err != nil {
			return err
		}
		sess := app.store.Current()

		if *asJSON {
			return printJSON(app.Out, map[string]interface{}{
				"profile": sess.Profile,
				"roles":   summary,
			})
		}

		fmt.Fprintf(app.Out, "User:         %s\n", sess.Profile.DisplayName)
		fmt.Fprintf(app.Out, "Email:        %s\n", sess.Profile.Email)
		fmt.Fprintf(app.Out, "Subject:      %s\n", sess.Profile.SubjectID)
		if summary != nil {
			fmt.Fprintf(app.Out, "Super admin:  %s\n", formatBool(summary.IsSuperAdmin))
			fmt.Fprintf(app.Out, "Tenant owner: %s\n", formatBool(summary.IsTenantOwner))
			if summary.TenantID != "" {
				fmt.Fprintf(app.Out, "Tenant:       %s\n", summary.TenantID)
			}
			if len(summary.ProjectRoles) > 0 {
				fmt.Fprintln(app.Out, "Project roles:")
				for _, pr := range summary.ProjectRoles {
					fmt.Fprintf(app.Out, "  %s: %s\n", pr.ProjectID, pr.Role)
				}
			}
		}
		if err := app.resolver.Err(); err != nil {
			fmt.Fprintf(app.Out, "Role fetch error: %v\n", err)
		}
		return nil
	}
	return cmd
}

func newRefreshRolesCommand(app *App) *Command {
	fs := flag.NewFlagSet("refresh-roles", flag.ExitOnError)
	cmd := &Command{
		Name:        "refresh-roles",
		Description: "Discard and re-fetch the role summary",
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
		if !app.store.Current().Authenticated {
			return fmt.Errorf("not logged in: run 'mwapctl login' first")
		}

		summary, err := app.resolver.Refresh(ctx)
		if err != nil {
			return fmt.Errorf("role refresh failed: %w", err)
		}
		fmt.Fprintf(app.Out, "Roles refreshed for %s (super admin: %s, tenant owner: %s, %d project roles)\n",
			summary.UserID, formatBool(summary.IsSuperAdmin), formatBool(summary.IsTenantOwner), len(summary.ProjectRoles))
		return nil
	}
	return cmd
}
