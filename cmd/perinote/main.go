package main

import (
	"fmt"
	"os"

	app "github.com/perinote/perinote/internal"
	"github.com/perinote/perinote/internal/cli"
)

// Set by goreleaser ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersionInfo(version, commit, date)

	cli.Initialize = func(vaultDir string) error {
		_, err := app.NewApp(app.ResolveVaultPath(vaultDir))
		return err
	}

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
