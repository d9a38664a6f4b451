package cmd

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/malusev998/xrate"
)

const (
	dateLayout        = "2006-1-2"
	defaultConfigFile = "./config.yml"
	storageAnnotation = "storage"
)

type (
	App struct {
		Provider   xrate.Provider
		Currencies []string
		Reader     xrate.Reader
		Service    xrate.Service
		Conversion xrate.Conversion
		Close      func() error
	}

	BuildOptions struct {
		ConfigFile  string
		Logger      *log.Logger
		WithStorage bool
	}

	// Builder wires the application from the configuration file.
	Builder func(ctx context.Context, options BuildOptions) (*App, error)

	options struct {
		debug      bool
		configFile string
		app        *App
	}
)

func configFile(cmd *cobra.Command, file string) string {
	if cmd.Flags().Changed("config") {
		return file
	}

	if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
		return ""
	}

	return file
}

func NewRootCommand(build Builder) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "xrate",
		Short:         "Exchange rates for a given day",
		Version:       "v1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var logger *log.Logger

			if opts.debug {
				logger = log.New(cmd.ErrOrStderr(), "xrate-debug ", log.LstdFlags)
			}

			app, err := build(cmd.Context(), BuildOptions{
				ConfigFile:  configFile(cmd, opts.configFile),
				Logger:      logger,
				WithStorage: cmd.Annotations[storageAnnotation] == "true",
			})
			if err != nil {
				return err
			}

			opts.app = app

			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Debug flag")
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", defaultConfigFile, "Path to config file")

	rootCmd.AddCommand(
		rate(opts),
		cross(opts),
		fetch(opts),
		convert(opts),
	)

	return rootCmd
}

func (o *options) close() error {
	if o.app == nil || o.app.Close == nil {
		return nil
	}

	return o.app.Close()
}

// closing releases the application after run returns, whether it failed
// or not. Post run hooks are skipped by cobra when run fails.
func closing(opts *options, run func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if closeErr := opts.close(); err == nil {
				err = closeErr
			}
		}()

		return run(cmd, args)
	}
}

func Execute(ctx context.Context, build Builder) error {
	rootCmd := NewRootCommand(build)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.New(rootCmd.ErrOrStderr(), "xrate-error ", 0).Printf("ERROR: %v", err)
		return err
	}

	return nil
}

func parseDate(value string) (xrate.Date, error) {
	if value == "" {
		return xrate.NewDate(time.Now()), nil
	}

	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return xrate.Date{}, err
	}

	return xrate.NewDate(t), nil
}
