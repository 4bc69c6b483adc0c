package main

import (
	"fmt"
	"os"

	"goexplore/adapters/console"
	"goexplore/adapters/excel"
	"goexplore/adapters/gonumplot"
	"goexplore/app"
	"goexplore/internal"
	"goexplore/internal/config"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "goexplore",
		Short: "Interactive exploratory data analysis for CSV and Excel files",
		Long: `Load a CSV or Excel file, print its structure and summary statistics,
then pick charts, statistical tests and missing-data fixes from a menu.

Settings are read from EDA_* environment variables and an optional .env file:
- EDA_CHART_DIR (default: charts)
- EDA_CHART_OPEN (default: true)
- EDA_CHART_WIDTH / EDA_CHART_HEIGHT in inches (default: 10 / 6)
- EDA_HISTOGRAM_BINS (default: 0, chosen from the data)
- EDA_TTEST_EQUAL_VAR (default: true)
- EDA_EXCEL_SHEET (default: first sheet)
- EDA_LOG_LEVEL (default: warn)`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel), os.Stderr)

			explorer := app.NewExplorer(app.Deps{
				Console:       console.NewTerminal(os.Stdin, os.Stdout),
				Renderer:      gonumplot.NewRenderer(rendererConfig(cfg), logger),
				Logger:        logger,
				ReaderOptions: readerOptions(cfg),
				HistogramBins: cfg.Bins,
				EqualVariance: cfg.TTestEqualVar,
			})
			return explorer.Run(cmd.Context())
		},
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rendererConfig(cfg *config.Config) gonumplot.Config {
	return gonumplot.Config{
		Dir:    cfg.ChartConfig.Dir,
		Width:  cfg.Width,
		Height: cfg.Height,
		Open:   cfg.ChartConfig.Open,
	}
}

func readerOptions(cfg *config.Config) []excel.Option {
	rc := excel.DefaultReaderConfig()
	rc.Sheet = cfg.ExcelSheet
	return []excel.Option{excel.WithConfig(rc)}
}
