package cmd

import (
	"context"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/malusev998/xrate"
)

func handleRatesSave(ctx context.Context, app *App, date xrate.Date, debug bool, logger *log.Logger) error {
	ratesMap, err := app.Service.Save(ctx, date, app.Currencies)
	if err != nil {
		return err
	}

	if !debug {
		return nil
	}

	for storage, rates := range ratesMap {
		for i, r := range rates {
			logger.Printf("%d\tRate %s_%s for %s saved to %s: Rate: %f\n", i, r.Base, r.Currency, date, storage, r.Rate.Rate)
		}
	}

	return nil
}

func fetchCobraCommand(
	opts *options,
	date *string,
	standalone *bool,
	after *time.Duration,
) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		logger := log.New(cmd.OutOrStdout(), "fetch ", 0)
		errLogger := log.New(cmd.ErrOrStderr(), "fetch-error ", 0)
		ctx := cmd.Context()

		d, err := parseDate(*date)
		if err != nil {
			return err
		}

		if !*standalone {
			return handleRatesSave(ctx, opts.app, d, opts.debug, logger)
		}

		if err := handleRatesSave(ctx, opts.app, d, opts.debug, logger); err != nil {
			errLogger.Printf("ERROR: %v", err)
		}

		for {
			select {
			case <-time.After(*after):
				if err := handleRatesSave(ctx, opts.app, xrate.NewDate(time.Now()), opts.debug, logger); err != nil {
					errLogger.Printf("ERROR: %v", err)
				}
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func fetch(opts *options) *cobra.Command {
	var (
		date       string
		standalone bool
		after      time.Duration
	)

	fetchCmd := &cobra.Command{
		Use:         "fetch",
		Short:       "Archive the rates of a day into the configured storages",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{storageAnnotation: "true"},
	}

	fetchCmd.RunE = closing(opts, fetchCobraCommand(opts, &date, &standalone, &after))
	fetchCmd.Flags().StringVar(&date, "date", "", "Day to archive (YYYY-MM-DD), today when empty")
	fetchCmd.Flags().BoolVar(&standalone, "standalone", false, "Start up a long running fetching service")
	fetchCmd.Flags().DurationVar(&after, "after", time.Duration(1)*time.Hour, "Fetching for standalone process")

	return fetchCmd
}
