package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redoswald/all-friends/internal/app"
	"github.com/redoswald/all-friends/internal/cadence"
	"github.com/redoswald/all-friends/internal/config"
	"github.com/redoswald/all-friends/internal/i18n"
	"github.com/redoswald/all-friends/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the reminder feed and the contact API",
		Long: `Serve the reminder calendar feed and the read-only JSON API on
127.0.0.1, refreshing the address book periodically.

Send SIGHUP to force an immediate refresh.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return runServe(ctx, opts.settings)
		},
	}
}

// runServe wires the dependencies and blocks until ctx is cancelled.
func runServe(ctx context.Context, settings config.Settings) error {
	logStartupInfo()

	tr, err := i18n.New()
	if err != nil {
		return err
	}

	srv := server.NewReminderServer(settings.Port, tr)
	ctrl := app.NewController(settings, cadence.RealClock{}, tr, srv)

	hup := make(chan os.Signal, config.ChannelBufferSize)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				ctrl.Refresh()
			}
		}
	}()

	go ctrl.Run(ctx)

	if err := srv.Start(ctx); err != nil {
		return err
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return nil
}
