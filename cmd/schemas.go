package cmd

import (
	"db-migcheck/internal/report"
	"db-migcheck/internal/validation"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "List source and target schemas and the ones missing on the target",
	RunE: func(cmd *cobra.Command, args []string) error {
		source, target, _, closeAll, err := openSides(cmd.Context(), viper.GetViper())
		if err != nil {
			return err
		}
		defer closeAll()

		var srcRows, tgtRows []validation.Row
		eg, ctx := errgroup.WithContext(cmd.Context())
		eg.Go(func() (err error) {
			srcRows, err = source.FetchSchemas(ctx)
			return err
		})
		eg.Go(func() (err error) {
			tgtRows, err = target.FetchSchemas(ctx)
			return err
		})
		if err := eg.Wait(); err != nil {
			return err
		}

		src, err := validation.Normalize(validation.RawInventory{Side: validation.SourceSide, Schemas: srcRows})
		if err != nil {
			return err
		}
		tgt, err := validation.Normalize(validation.RawInventory{Side: validation.TargetSide, Schemas: tgtRows})
		if err != nil {
			return err
		}
		return report.PrintSchemas(cmd.OutOrStdout(), src, tgt)
	},
}

func init() {
	RootCmd.AddCommand(schemasCmd)
}
