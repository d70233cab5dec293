// Package commands implements the all-friends command line.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/redoswald/all-friends/internal/config"
	"github.com/spf13/cobra"
)

// options holds the global flags and the state shared by subcommands.
type options struct {
	debug   bool
	envFile string

	settings  config.Settings
	openLog   func(debug bool, console io.Writer) io.Closer
	logCloser io.Closer
}

func newOptions() *options {
	return &options{openLog: setupLogging}
}

// closeLog releases the log file opened before the command ran.
func (o *options) closeLog() {
	if o.logCloser != nil {
		_ = o.logCloser.Close()
		o.logCloser = nil
	}
}

// Execute runs the CLI.
func Execute() error {
	return execute(newOptions(), os.Args[1:], os.Stdout, os.Stderr)
}

// execute runs the command tree and closes the log file afterwards. cobra
// skips post-run hooks when a command fails, so the close happens here.
func execute(opts *options, args []string, stdout, stderr io.Writer) error {
	defer opts.closeLog()

	root := newRootCmd(opts)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.Execute()
}

func newRootCmd(opts *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "all-friends",
		Short: "Keep in touch with the people who matter",
		Long: `All Friends reads contact cadences from a vCard address book and tells
you who is due for a catch-up.

It serves a reminder calendar feed that any calendar client can subscribe
to, and a small JSON API describing every contact.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			opts.logCloser = opts.openLog(opts.debug, cmd.ErrOrStderr())

			s, err := config.LoadSettings(opts.envFile)
			if err != nil {
				return err
			}
			opts.settings = s
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVar(&opts.debug, config.FlagDebug, false, config.FlagDescDebug)
	rootCmd.PersistentFlags().StringVar(&opts.envFile, config.FlagEnvFile, config.DefaultEnvFile, config.FlagDescEnvFile)

	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newStatusCmd(opts))
	rootCmd.AddCommand(newSnoozeCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func outputJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrEncodeJSON, err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
