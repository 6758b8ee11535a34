package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/username/class-schedule/pkg/dateutil"
)

func holidaysCmd() *cobra.Command {
	var registry string

	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "Inspect the holiday registry",
	}

	cmd.PersistentFlags().StringVarP(&registry, "registry", "r", "", "Holiday registry file or URL (default: registry.source from config)")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every dated entry of the holiday section",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(registry)
			if err != nil {
				return err
			}

			reg := initializeRegistry(cfg)
			if reg == nil {
				return fmt.Errorf("no holiday registry configured, use --registry")
			}

			entries, err := reg.Entries()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Holidays in %s (%d):\n", cfg.Registry.Source, len(entries))
			for _, entry := range entries {
				fmt.Fprintf(out, "  %s  %-3s  %s\n",
					dateutil.FormatDate(entry.Date),
					entry.Date.Weekday().String()[:3],
					entry.Label)
			}

			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "check DATE",
		Short: "Tell whether DATE is a holiday",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateutil.ParseDate(args[0])
			if err != nil {
				return fmt.Errorf("invalid date: %w", err)
			}

			cfg, err := loadConfig(registry)
			if err != nil {
				return err
			}

			resolver, err := initializeResolver(cfg)
			if err != nil {
				return err
			}
			if resolver == nil {
				return fmt.Errorf("no holiday registry configured, use --registry")
			}

			lookup, err := resolver.Resolve(date)
			if err != nil {
				return fmt.Errorf("holiday lookup failed: %w", err)
			}

			out := cmd.OutOrStdout()
			if lookup.IsHoliday() {
				fmt.Fprintf(out, "%s: %s\n", dateutil.FormatDate(date), lookup.Label)
			} else {
				fmt.Fprintf(out, "%s: %s\n", dateutil.FormatDate(date), lookup.Status)
			}

			return nil
		},
	})

	return cmd
}
