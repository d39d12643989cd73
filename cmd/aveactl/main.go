package main

import (
	"context"
	"os"

	"github.com/jmylchreest/aveactl/cmd/aveactl/commands"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	// Configuration, logging and the Bluetooth transport are set up by the
	// root command once flags are parsed
	rootCmd := commands.NewRootCommand(version, commit, buildDate)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
