package cmd

import (
	"db-migcheck/internal/report"
	"db-migcheck/internal/validation"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

var rowsCmd = &cobra.Command{
	Use:   "rows",
	Short: "Compare per-table row counts of source and target",
	RunE: func(cmd *cobra.Command, args []string) error {
		source, target, _, closeAll, err := openSides(cmd.Context(), viper.GetViper())
		if err != nil {
			return err
		}
		defer closeAll()

		var srcRows, tgtRows []validation.Row
		eg, ctx := errgroup.WithContext(cmd.Context())
		eg.Go(func() (err error) {
			srcRows, err = source.FetchRowCounts(ctx)
			return err
		})
		eg.Go(func() (err error) {
			tgtRows, err = target.FetchRowCounts(ctx)
			return err
		})
		if err := eg.Wait(); err != nil {
			return err
		}

		rc, err := validation.CompareRowCounts(srcRows, tgtRows)
		if err != nil {
			return err
		}
		return report.PrintRowCounts(cmd.OutOrStdout(), rc)
	},
}

func init() {
	RootCmd.AddCommand(rowsCmd)
}
