package main

import (
	"os"

	"github.com/gojira/gojira/pkg/cli"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	root := cli.NewRootCommand(cli.Options{Version: version})
	root.AddCommand(newUpdateCmd(newUpdater(version)))

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
