package main

import (
	"os"

	"github.com/spf13/cobra"

	"cardly/internal/interfaces/cli/codes"
	"cardly/internal/interfaces/cli/migrate"
	"cardly/internal/interfaces/cli/server"
	"cardly/internal/interfaces/cli/users"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "cardly",
		Short:        "Cardly - digital business cards",
		Long:         `Cardly serves public digital business cards and the admin API that issues them, with migration and activation code tooling.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		codes.NewCommand(),
		users.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
