package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}

func rate(opts *options) *cobra.Command {
	var date string

	rateCmd := &cobra.Command{
		Use:   "rate CURRENCY",
		Short: "Rate of a currency against the base currency",
		Args:  cobra.ExactArgs(1),
		RunE: closing(opts, func(cmd *cobra.Command, args []string) error {
			d, err := parseDate(date)
			if err != nil {
				return err
			}

			currency := strings.ToUpper(args[0])

			value, err := opts.app.Reader.SingleRate(cmd.Context(), currency, d.Year, d.Month, d.Day)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), formatRate(value))

			return err
		}),
	}

	rateCmd.Flags().StringVar(&date, "date", "", "Day of the rate (YYYY-MM-DD), today when empty")

	return rateCmd
}

func cross(opts *options) *cobra.Command {
	var date string

	crossCmd := &cobra.Command{
		Use:   "cross FROM TO",
		Short: "Rate of FROM expressed in TO",
		Args:  cobra.ExactArgs(2),
		RunE: closing(opts, func(cmd *cobra.Command, args []string) error {
			d, err := parseDate(date)
			if err != nil {
				return err
			}

			value, err := opts.app.Reader.CrossRate(cmd.Context(), strings.ToUpper(args[0]), strings.ToUpper(args[1]), d.Year, d.Month, d.Day)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), formatRate(value))

			return err
		}),
	}

	crossCmd.Flags().StringVar(&date, "date", "", "Day of the rate (YYYY-MM-DD), today when empty")

	return crossCmd
}
