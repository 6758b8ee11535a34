package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/username/class-schedule/internal/render"
	"github.com/username/class-schedule/internal/schedule"
	"github.com/username/class-schedule/pkg/dateutil"
	"go.uber.org/zap"
)

func generateCmd() *cobra.Command {
	var (
		daysStr     string
		fromStr     string
		toStr       string
		repeatMonth bool
		format      string
		locale      string
		registry    string
		output      string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print the session table for a date range",
		Long: "Walk the days from --from up to (not including) --to, keep the weekdays given in --days, " +
			"number each class and mark registered holidays without a number.",
		Example: "  class-schedule generate --days monday,wednesday --from 2024-03-01 --to 2024-07-01 --registry feriados.org",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(registry)
			if err != nil {
				return err
			}

			if daysStr == "" {
				daysStr = cfg.Schedule.Weekdays
			}
			if !cmd.Flags().Changed("repeat-month") {
				repeatMonth = cfg.Schedule.RepeatMonth
			}
			if format == "" {
				format = cfg.Output.Format
			}
			if locale == "" {
				locale = cfg.Schedule.Locale
			}

			if fromStr == "" || toStr == "" {
				return fmt.Errorf("both --from and --to must be specified")
			}
			from, err := dateutil.ParseDate(fromStr)
			if err != nil {
				return fmt.Errorf("invalid from date: %w", err)
			}
			to, err := dateutil.ParseDate(toStr)
			if err != nil {
				return fmt.Errorf("invalid to date: %w", err)
			}

			translator, err := schedule.NewTranslator(locale, cfg.Schedule.Names)
			if err != nil {
				return err
			}

			weekdays, unknown := schedule.ParseWeekdays(daysStr, translator)
			if len(unknown) > 0 {
				logger.Warn("Ignoring unrecognized weekday names", zap.Strings("names", unknown))
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: unrecognized weekday names ignored: %s\n", strings.Join(unknown, ", "))
			}
			if len(weekdays) == 0 {
				return fmt.Errorf("no weekdays selected, use --days (e.g. --days monday,wednesday)")
			}

			renderer, err := render.New(format, cfg.Output.Columns)
			if err != nil {
				return err
			}

			resolver, err := initializeResolver(cfg)
			if err != nil {
				return err
			}

			if !from.Before(to) {
				logger.Info("Empty date range, nothing to schedule",
					zap.String("from", dateutil.FormatDate(from)),
					zap.String("to", dateutil.FormatDate(to)))
			}

			generator := schedule.NewGenerator(resolver, translator, logger)
			result := generator.Generate(schedule.Request{
				Weekdays:    weekdays,
				Start:       from,
				End:         to,
				RepeatMonth: repeatMonth,
			})

			if len(result.Unresolved) > 0 {
				dates := make([]string, len(result.Unresolved))
				for i, d := range result.Unresolved {
					dates[i] = dateutil.FormatDate(d)
				}
				fmt.Fprintf(cmd.ErrOrStderr(),
					"Warning: holiday lookup failed for %d date(s), listed as regular sessions: %s\n",
					len(dates), strings.Join(dates, ", "))
			}

			var out io.Writer = cmd.OutOrStdout()
			if output != "" {
				if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
					return fmt.Errorf("failed to create output path: %w", err)
				}
				f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
				if err != nil {
					return fmt.Errorf("failed to open output file: %w", err)
				}
				defer f.Close()
				out = f
			}

			if err := renderer.Render(out, result.Rows); err != nil {
				return fmt.Errorf("failed to render schedule: %w", err)
			}

			logger.Info("Schedule written",
				zap.String("format", format),
				zap.String("output", output),
				zap.Int("sessions", result.Sessions()),
				zap.Int("holidays", result.Holidays()))

			return nil
		},
	}

	cmd.Flags().StringVarP(&daysStr, "days", "d", "", "Comma separated weekdays (default: schedule.weekdays from config)")
	cmd.Flags().StringVar(&fromStr, "from", "", "First date (YYYY-MM-DD), included")
	cmd.Flags().StringVar(&toStr, "to", "", "End date (YYYY-MM-DD), excluded")
	cmd.Flags().BoolVar(&repeatMonth, "repeat-month", false, "Show the month on every row instead of only when it changes")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: "+strings.Join(render.Formats, ", ")+" (default: output.format from config)")
	cmd.Flags().StringVar(&locale, "locale", "", "Label locale: es or en (default: schedule.locale from config)")
	cmd.Flags().StringVarP(&registry, "registry", "r", "", "Holiday registry file or URL (default: registry.source from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the table to this file instead of stdout")

	return cmd
}
