package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"PivotBoard/internal/collector"
	"PivotBoard/internal/formatter"
)

type rootOptions struct {
	configPath string
	period     string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "pivotboard",
		Short:         "Pivot levels, MA20, RSI and Supertrend for NSE daily bars",
		SilenceUsage:  true,
	}

	defaultConfig := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultConfig = v
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", defaultConfig, "path to the YAML config file")

	cmd.AddCommand(
		newLevelsCmd(opts),
		newTableCmd(opts),
		newExportCmd(opts),
		newSymbolsCmd(),
		newServeCmd(opts),
	)
	return cmd
}

func addPeriodFlag(cmd *cobra.Command, opts *rootOptions) {
	cmd.Flags().StringVarP(&opts.period, "period", "p", "", "history range (1mo, 3mo, 6mo, 1y, 2y, 5y); default from config")
}

// analyze loads config, wires the collector and runs one analysis.
func analyze(ctx context.Context, opts *rootOptions, symbol string) (*collector.Analysis, error) {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	a, err := newApp(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer a.Close()

	period := opts.period
	if period == "" {
		period = cfg.DataSource.DefaultPeriod
	}
	return a.collector.Analyze(ctx, symbol, period)
}

func newLevelsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "levels SYMBOL",
		Short: "Print support, pivot and resistance levels from the latest bar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := analyze(cmd.Context(), opts, args[0])
			if err != nil {
				return err
			}
			name := collector.DisplaySymbol(res.Symbol)
			if res.Info != nil && res.Info.CompanyName != "" {
				name = fmt.Sprintf("%s (%s)", name, res.Info.CompanyName)
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatLevelsReport(name, res.LastClose(), res.Levels))
			fmt.Fprint(out, formatter.FormatSummary(res.Summary))
			return nil
		},
	}
	addPeriodFlag(cmd, opts)
	return cmd
}

func newTableCmd(opts *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "table SYMBOL",
		Short: "Print the indicator table, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := analyze(cmd.Context(), opts, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTableText(res.Table.Head(limit)))
			return nil
		},
	}
	addPeriodFlag(cmd, opts)
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of rows to print; 0 prints all")
	return cmd
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export SYMBOL",
		Short: "Write the indicator table to a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := analyze(cmd.Context(), opts, args[0])
			if err != nil {
				return err
			}
			path := out
			if path == "" {
				path = formatter.ExportFilename(collector.DisplaySymbol(res.Symbol))
			}
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create output dir: %w", err)
				}
			}
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create %s: %w", path, err)
			}
			if err := formatter.WriteCSV(f, res.Table.Rows); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows to %s\n", len(res.Table.Rows), path)
			return nil
		},
	}
	addPeriodFlag(cmd, opts)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file; default <SYMBOL>_stock_data.csv")
	return cmd
}

func newSymbolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "symbols",
		Short: "List the default NSE catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "SYMBOL\tTRADINGVIEW\tCOMPANY")
			for _, l := range collector.NSESymbols() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", collector.DisplaySymbol(l.Symbol), collector.TradingViewSymbol(l.Symbol), l.CompanyName)
			}
			return tw.Flush()
		},
	}
}
