package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/redoswald/all-friends/internal/app"
	"github.com/redoswald/all-friends/internal/cadence"
	"github.com/redoswald/all-friends/internal/config"
	"github.com/redoswald/all-friends/internal/engine"
	"github.com/redoswald/all-friends/internal/i18n"
	"github.com/spf13/cobra"
)

type statusReport struct {
	Lang        string                `json:"lang"`
	EvaluatedAt time.Time             `json:"evaluatedAt"`
	Stats       engine.DashboardStats `json:"stats"`
	Contacts    []engine.ContactEntry `json:"contacts"`
}

func newStatusCmd(opts *options) *cobra.Command {
	var (
		lang    string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the cadence status of every contact",
		Long: `Read the address book once and print every contact with its status,
next due date and cadence. Contacts needing attention come first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if lang != "" {
				opts.settings.Language = lang
			}

			report, err := buildStatusReport(cmd.Context(), opts.settings, cadence.RealClock{})
			if err != nil {
				return err
			}

			if jsonOut {
				return outputJSON(cmd.OutOrStdout(), report)
			}
			return printStatus(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().StringVar(&lang, config.FlagLang, "", config.FlagDescLang)
	cmd.Flags().BoolVar(&jsonOut, config.FlagJSON, false, config.FlagDescJSON)
	return cmd
}

// syncOnce runs a single synchronization without publishing it.
func syncOnce(ctx context.Context, settings config.Settings, clock cadence.Clock) (*i18n.Localizer, []engine.ContactEntry, time.Time, error) {
	tr, err := i18n.New()
	if err != nil {
		return nil, nil, time.Time{}, err
	}
	settings.Language = tr.Match(settings.Language)

	ctrl := app.NewController(settings, clock, tr, nil)
	if _, err := ctrl.Sync(ctx, true); err != nil {
		return nil, nil, time.Time{}, err
	}

	contacts, evaluatedAt := ctrl.Contacts()
	return tr.Localizer(settings.Language), contacts, evaluatedAt, nil
}

func buildStatusReport(ctx context.Context, settings config.Settings, clock cadence.Clock) (statusReport, error) {
	loc, contacts, evaluatedAt, err := syncOnce(ctx, settings, clock)
	if err != nil {
		return statusReport{}, err
	}

	d := engine.BuildDashboard(contacts, evaluatedAt)

	// Attention first, in dashboard order, then everyone else by name.
	ordered := make([]engine.ContactEntry, 0, len(contacts))
	ordered = append(ordered, d.NeedsAttention...)
	for _, c := range contacts {
		if !c.NeedsAttention(evaluatedAt) {
			ordered = append(ordered, c)
		}
	}

	return statusReport{
		Lang:        loc.Lang(),
		EvaluatedAt: evaluatedAt,
		Stats:       d.Stats,
		Contacts:    ordered,
	}, nil
}

func printStatus(w io.Writer, r statusReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "NAME\tSTATUS\tNEXT\tCADENCE")
	for _, c := range r.Contacts {
		next := "-"
		if c.Due != nil {
			next = c.Due.Date.In(r.EvaluatedAt.Location()).Format(config.DateFormatFullDash)
		}
		freq := c.AnnualFrequency
		if freq == "" {
			freq = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Name, c.StatusText, next, freq)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d contacts, %d overdue, %d due, %d away, %d planned\n",
		r.Stats.TotalContacts,
		r.Stats.OverdueContacts,
		r.Stats.DueContacts,
		r.Stats.AwayContacts,
		r.Stats.PlannedContacts,
	)
	return err
}
