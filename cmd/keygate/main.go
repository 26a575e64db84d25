package main

import (
	"os"

	"github.com/spf13/cobra"

	"keygate/internal/interfaces/cli/migrate"
	"keygate/internal/interfaces/cli/mirror"
	"keygate/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "keygate",
		Short: "keygate - machine access grants backed by digital keys",
		Long:  `keygate records which users may reach which machines through which digital keys, and keeps a file snapshot of every key and grant.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		mirror.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
