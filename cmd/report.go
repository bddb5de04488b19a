package cmd

import (
	"fmt"
	"os"
	"time"

	"db-migcheck/internal/report"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	format     string
	outputDir  string
	parallel   bool
	noProgress bool
	exactRows  bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compare source and target and write a migration summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		source, target, settings, closeAll, err := openSides(ctx, viper.GetViper())
		if err != nil {
			return err
		}
		defer closeAll()

		g := &report.Generator{
			Source:   source,
			Target:   target,
			Logger:   Logger,
			Parallel: settings.Parallel,
			Format:   settings.FileFormat,
		}
		if !noProgress {
			g.Progress = os.Stderr
		}

		Logger.Info("starting validation",
			zap.String("source", source.Dialect.Name()),
			zap.String("target", target.Dialect.Name()))
		start := time.Now()

		res, err := g.Run(ctx)
		if err != nil {
			return err
		}

		path, err := report.WriteFile(settings.OutputDir, res, settings.FileFormat)
		if err != nil {
			return err
		}

		if err := report.PrintSummary(cmd.OutOrStdout(), res); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n📄 Report written to %s\n", path)
		Logger.Info("done", zap.String("file", path), zap.Duration("elapsed", time.Since(start)))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&format, "format", "", "Report format: yaml or json (overrides config)")
	reportCmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for the report file (overrides config)")
	reportCmd.Flags().BoolVar(&parallel, "parallel", true, "Fetch source and target concurrently")
	reportCmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable progress bars")
	reportCmd.Flags().BoolVar(&exactRows, "exact-row-counts", false, "Count rows with COUNT(*) instead of statistics")

	viper.BindPFlag("settings.file_format", reportCmd.Flags().Lookup("format"))
	viper.BindPFlag("settings.output_dir", reportCmd.Flags().Lookup("output-dir"))
	viper.BindPFlag("settings.parallel", reportCmd.Flags().Lookup("parallel"))
	viper.BindPFlag("settings.exact_row_counts", reportCmd.Flags().Lookup("exact-row-counts"))
}
