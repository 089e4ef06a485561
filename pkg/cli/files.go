package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mwapio/console/pkg/async"
)

func newFilesCommand(app *App) *Command {
	cmd := &Command{
		Name:        "files",
		Description: "Manage project files",
		Subcommands: make(map[string]*Command),
		Flags:       flag.NewFlagSet("files", flag.ExitOnError),
	}
	cmd.Subcommands["list"] = newFileListCommand(app)
	cmd.Subcommands["upload"] = newFileUploadCommand(app)
	cmd.Subcommands["delete"] = newFileDeleteCommand(app)
	cmd.Run = cmd.dispatch
	return cmd
}

func newFileListCommand(app *App) *Command {
	fs := flag.NewFlagSet("files list", flag.ExitOnError)
	projectID := fs.String("project", "", "Project ID")
	asJSON := fs.Bool("json", false, "Print JSON instead of a table")
	cmd := &Command{
		Name:        "list",
		Description: "List a project's files",
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

		files, err := app.services.Files.List(ctx, *projectID)
		if err != nil {
			return err
		}
		if *asJSON {
			return printJSON(app.Out, files)
		}

		rows := make([][]string, 0, len(files))
		for _, f := range files {
			rows = append(rows, []string{f.ID, f.Name, fmt.Sprintf("%d", f.Size), f.MimeType, formatTime(f.CreatedAt)})
		}
		printTable(app.Out, []string{"ID", "NAME", "SIZE", "TYPE", "CREATED"}, rows)
		return nil
	}
	return cmd
}

func newFileUploadCommand(app *App) *Command {
	fs := flag.NewFlagSet("files upload", flag.ExitOnError)
	projectID := fs.String("project", "", "Project ID")
	workers := fs.Int("workers", 4, "Concurrent uploads when passing several paths")
	cmd := &Command{
		Name:        "upload",
		Description: "Upload one or more files to a project",
		Flags:       fs,
	}
	cmd.Run = func(args []string) error {
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *projectID == "" || fs.NArg() == 0 {
			return fmt.Errorf("usage: mwapctl files upload -project <projectId> <path>...")
		}
		ctx := context.Background()
		if err := app.connect(ctx, false); err != nil {
			return err
		}
		if _, err := app.resolveRoles(ctx); err != nil {
			return err
		}

		upload := func(ctx context.Context, path string) error {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", path, err)
			}
			defer f.Close()

			file, err := app.services.Files.Upload(ctx, *projectID, filepath.Base(path), f)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			fmt.Fprintf(app.Out, "Uploaded %s (%s)\n", file.Name, file.ID)
			return nil
		}

		if fs.NArg() == 1 {
			return upload(ctx, fs.Arg(0))
		}

		errs := async.Batch(ctx, fs.Args(), *workers, "file upload",
			app.cfg.API.Timeout, app.logger, upload)
		if len(errs) > 0 {
			for _, err := range errs {
				app.Log.WithError(err).Error("upload failed")
			}
			return fmt.Errorf("%d of %d uploads failed", len(errs), fs.NArg())
		}
		return nil
	}
	return cmd
}

func newFileDeleteCommand(app *App) *Command {
	fs := flag.NewFlagSet("files delete", flag.ExitOnError)
	projectID := fs.String("project", "", "Project ID")
	cmd := &Command{
		Name:        "delete",
		Description: "Delete a project file",
		Flags:       fs,
	}
	cmd.Run = func(args []string) error {
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *projectID == "" || fs.NArg() != 1 {
			return fmt.Errorf("usage: mwapctl files delete -project <projectId> <fileId>")
		}
		ctx := context.Background()
		if err := app.connect(ctx, false); err != nil {
			return err
		}
		if _, err := app.resolveRoles(ctx); err != nil {
			return err
		}

		if err := app.services.Files.Delete(ctx, *projectID, fs.Arg(0)); err != nil {
			return err
		}
		fmt.Fprintf(app.Out, "File %s deleted\n", fs.Arg(0))
		return nil
	}
	return cmd
}
