package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configFile string
	envFile    string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	run := runCmd(flags)
	cmd := &cobra.Command{
		Use:          "calabi",
		Short:        "Bets YES on GitHub incident markets while the incident is live",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         run.RunE,
	}

	cmd.PersistentFlags().StringVar(&flags.configFile, "config", "", "config file (default: searched next to the binary)")
	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", "", "env file loaded before the environment is read (default: .env)")

	cmd.AddCommand(run, statusCmd(flags), targetsCmd(flags), versionCmd())
	return cmd
}
