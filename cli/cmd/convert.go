package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func convert(opts *options) *cobra.Command {
	var date string

	convertCmd := &cobra.Command{
		Use:         "convert FROM TO AMOUNT",
		Short:       "Convert an amount using archived rates",
		Args:        cobra.ExactArgs(3),
		Annotations: map[string]string{storageAnnotation: "true"},
		RunE: closing(opts, func(cmd *cobra.Command, args []string) error {
			d, err := parseDate(date)
			if err != nil {
				return err
			}

			amount, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("amount %q is not a number: %w", args[2], err)
			}

			value, err := opts.app.Conversion.Convert(cmd.Context(), strings.ToUpper(args[0]), strings.ToUpper(args[1]), opts.app.Provider, amount, d.Time())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), formatRate(value))

			return err
		}),
	}

	convertCmd.Flags().StringVar(&date, "date", "", "Day of the archived rates (YYYY-MM-DD), today when empty")

	return convertCmd
}
