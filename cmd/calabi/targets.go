package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/alextes/calabi/bot"
	"github.com/alextes/calabi/incident"
	"github.com/alextes/calabi/manifold"
	"github.com/alextes/calabi/validation"
)

// Output formats for targets.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

func targetsCmd(flags *rootFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "targets",
		Short: "List the incident markets calabi would track right now (no bets)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := validation.New().
				Required("output", output).
				OneOf("output", output, []string{outputTable, outputJSON, outputYAML}).
				Validate()
			if err != nil {
				return err
			}

			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			cfg.ApplyDefaults()
			initCLILogger(cfg)

			client, err := manifold.NewReadOnly(cfg.Manifold)
			if err != nil {
				return err
			}
			registry := incident.NewRegistry()
			updater := bot.NewUpdater(client, manifold.NewClassifier(cfg.Manifold.TrustedCreators...), registry, bot.UTCClock{}, cfg.Bot.MarketsInterval)
			if err := updater.Update(cmd.Context()); err != nil {
				return err
			}
			return writeTargets(cmd.OutOrStdout(), output, registry.Targets())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table, json or yaml")
	return cmd
}

func writeTargets(w io.Writer, format string, targets []incident.Target) error {
	if targets == nil {
		targets = []incident.Target{}
	}
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(targets)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(targets); err != nil {
			return err
		}
		return enc.Close()
	default:
		if len(targets) == 0 {
			_, err := fmt.Fprintln(w, "(no targets)")
			return err
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		if _, err := fmt.Fprintln(tw, "CONTRACT\tTYPE\tDATE"); err != nil {
			return err
		}
		for _, t := range targets {
			if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n", t.ContractID, t.Type, t.DateString()); err != nil {
				return err
			}
		}
		return tw.Flush()
	}
}
