package commands

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/redoswald/all-friends/internal/cadence"
	"github.com/redoswald/all-friends/internal/config"
	"github.com/redoswald/all-friends/internal/engine"
	"github.com/spf13/cobra"
)

// defaultSnoozeWindow is the span covered when --to is omitted.
const defaultSnoozeWindow = 6

func newSnoozeCmd(opts *options) *cobra.Command {
	var (
		from, to string
		days     int
		jsonOut  bool
	)

	cmd := &cobra.Command{
		Use:   "snooze",
		Short: "Preview a bulk snooze over a date range",
		Long: `List the contacts whose next due date falls between --from and --to,
both included, and the date they would be snoozed until.

The address book is not modified: write the X-SNOOZED-UNTIL property
with your contacts application to apply the snooze.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clock := cadence.RealClock{}
			now := clock.Now()

			start, err := parseDay(from, now)
			if err != nil {
				return err
			}
			end, err := parseDay(to, start.AddDate(0, 0, defaultSnoozeWindow))
			if err != nil {
				return err
			}

			_, contacts, evaluatedAt, err := syncOnce(cmd.Context(), opts.settings, clock)
			if err != nil {
				return err
			}

			plan, err := engine.SelectForSnooze(contacts, evaluatedAt, start, end, days)
			if err != nil {
				return err
			}

			slog.Info(config.MsgSnoozePlan,
				config.LogKeyComponent, config.CompMain,
				config.LogKeyCount, len(plan.Contacts))

			if jsonOut {
				return outputJSON(cmd.OutOrStdout(), plan)
			}
			return printSnoozePlan(cmd, plan)
		},
	}

	cmd.Flags().StringVar(&from, config.FlagFrom, "", config.FlagDescFrom)
	cmd.Flags().StringVar(&to, config.FlagTo, "", config.FlagDescTo)
	cmd.Flags().IntVar(&days, config.FlagDays, 7, config.FlagDescDays)
	cmd.Flags().BoolVar(&jsonOut, config.FlagJSON, false, config.FlagDescJSON)
	return cmd
}

// parseDay reads a YYYY-MM-DD flag in local time, or returns fallback.
func parseDay(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	t, err := time.ParseInLocation(config.DateFormatFullDash, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", config.ErrDateParse, err)
	}
	return t, nil
}

func printSnoozePlan(cmd *cobra.Command, plan engine.SnoozePlan) error {
	w := cmd.OutOrStdout()
	if len(plan.Contacts) == 0 {
		_, err := fmt.Fprintln(w, config.MsgNoSnooze)
		return err
	}

	loc := plan.RangeStart.Location()
	for _, c := range plan.Contacts {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", c.DueDate.In(loc).Format(config.DateFormatFullDash), c.Name); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, config.MsgSnoozeResult,
		len(plan.Contacts),
		plan.SnoozedUntil.In(loc).Format(config.DateFormatFullDash))
	return err
}
