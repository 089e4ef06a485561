package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mwapio/console/pkg/cli"
)

func main() {
	app, err := cli.NewApp(os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitError)
	}

	rootCmd := cli.NewRootCommand(app)
	err = rootCmd.Execute(os.Args[1:])

	if cerr := app.Close(context.Background()); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitCode(err))
	}
}
