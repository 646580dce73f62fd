package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alextes/calabi/githubstatus"
	"github.com/alextes/calabi/incident"
	"github.com/alextes/calabi/logger"
)

func statusCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check GitHub's status once and print the indicator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			cfg.ApplyDefaults()
			if err := cfg.GitHub.Validate(); err != nil {
				return err
			}
			initCLILogger(cfg)

			client, err := githubstatus.New(cfg.GitHub)
			if err != nil {
				return err
			}
			env, err := client.IncidentStatus(cmd.Context())
			if err != nil {
				return err
			}

			var b strings.Builder
			fmt.Fprintf(&b, "indicator:   %s\n", env.Indicator())
			fmt.Fprintf(&b, "description: %s\n", env.Description())
			var parseErr error
			if !env.IsOK() {
				t, err := incident.ParseIndicator(env.Indicator())
				if err == nil {
					fmt.Fprintf(&b, "incident:    %s\n", t)
				}
				parseErr = err
			}
			if _, err := io.WriteString(cmd.OutOrStdout(), b.String()); err != nil {
				return err
			}
			return parseErr
		},
	}
}

// initCLILogger installs the configured logger for one-shot commands, which
// skip the app bootstrap. Logs go to stderr so stdout stays parseable.
func initCLILogger(cfg *Config) {
	logCfg := cfg.Logging
	logCfg.Output = "stderr"
	if err := logCfg.Validate(); err != nil {
		return
	}
	logger.Init(&logCfg)
}
