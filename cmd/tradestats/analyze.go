package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tradestats/internal/app"
	"tradestats/internal/config"
	apperrors "tradestats/internal/errors"
	"tradestats/internal/exporter"
	"tradestats/internal/infrastructure"
	"tradestats/internal/validation"
	"tradestats/pkg/contracts/domain"
)

// analyzeOptions are the analyze command flags
type analyzeOptions struct {
	format    string
	export    string
	outDir    string
	noWarning bool
}

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <statement>",
		Short: "Parse a broker statement and print its trading statistics",
		Long: `Parse a broker statement (.csv, .html or .htm) and print its trading
statistics. A statement with no recoverable trades is an error.

Examples:
  tradestats analyze ReportHistory.html
  tradestats analyze history.csv --format json
  tradestats analyze ReportHistory.html --export xlsx --out reports`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			return runAnalyze(cmd, cfg, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "table", "Output format (table|json)")
	cmd.Flags().StringVar(&opts.export, "export", "", "Also write the trades as csv|json|parquet|xlsx")
	cmd.Flags().StringVar(&opts.outDir, "out", "", "Export directory (default: the configured export dir)")
	cmd.Flags().BoolVar(&opts.noWarning, "no-warnings", false, "Do not list skipped rows")
	return cmd
}

// statementError names the file when err means the statement itself cannot
// be used, as opposed to an I/O or configuration failure.
func statementError(path string, err error) error {
	if apperrors.IsFatalParseError(err) {
		return fmt.Errorf("%s is not a usable statement: %w", filepath.Base(path), err)
	}
	return err
}

func runAnalyze(cmd *cobra.Command, cfg *config.Config, opts *analyzeOptions, path string) error {
	format := strings.ToLower(opts.format)
	if format != "table" && format != "json" {
		return fmt.Errorf("unsupported output format %q (use: table, json)", opts.format)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	files := validation.NewFileValidator(logger, cfg.Upload.MaxBytes)
	if _, err := files.ValidateStatementFile(path); err != nil {
		return statementError(path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	analyzer, err := app.NewAnalyzer(cfg.Analysis, logger, nil)
	if err != nil {
		return err
	}
	report, err := analyzer.Analyze(cmd.Context(), filepath.Base(path), data)
	if err != nil {
		return statementError(path, err)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		err = exporter.WriteReportJSON(out, report)
	default:
		err = printReport(out, report, !opts.noWarning)
	}
	if err != nil {
		return err
	}

	if opts.export == "" {
		return nil
	}
	dir := opts.outDir
	if dir == "" {
		dir = cfg.Export.Dir
	}
	written, err := exportReport(report, opts.export, dir, files, logger)
	if err != nil {
		return err
	}
	for _, p := range written {
		fmt.Fprintln(cmd.ErrOrStderr(), "wrote", p)
	}
	return nil
}

// exportReport writes the trades in format under dir. The xlsx export
// carries the statistics sheets and the csv export gets a statistics file
// next to it. It returns the written paths.
func exportReport(report *domain.Report, format, dir string, files *validation.FileValidator, logger *slog.Logger) ([]string, error) {
	saver, err := exporter.NewTradeSaver(format)
	if err != nil {
		return nil, err
	}
	if err := files.ValidateOutputDirectory(dir); err != nil {
		return nil, err
	}

	base := strings.TrimSuffix(report.Parse.Filename, filepath.Ext(report.Parse.Filename))
	tradesPath := filepath.Join(dir, base+"-trades."+saver.Extension())

	switch saver.Extension() {
	case exporter.FormatXLSX:
		tradesPath = filepath.Join(dir, base+"-report.xlsx")
		if err := exporter.NewXLSXReport(logger).Save(report, tradesPath); err != nil {
			return nil, err
		}
		return []string{tradesPath}, nil

	case exporter.FormatCSV:
		if err := saver.Save(report.Parse.Trades, tradesPath); err != nil {
			return nil, err
		}
		statsName := base + "-statistics.csv"
		if err := exporter.NewCSVWriter(dir, logger).WriteStatisticsCSV(statsName, report.Statistics); err != nil {
			return nil, err
		}
		return []string{tradesPath, filepath.Join(dir, statsName)}, nil

	default:
		if err := saver.Save(report.Parse.Trades, tradesPath); err != nil {
			return nil, err
		}
		return []string{tradesPath}, nil
	}
}

// printReport renders the summary metrics, the top symbols and the skipped
// rows as aligned text
func printReport(out io.Writer, report *domain.Report, withWarnings bool) error {
	parsed := report.Parse
	fmt.Fprintf(out, "%s (%s, %s)\n", parsed.Filename, parsed.Format, parsed.Encoding)
	if acct := parsed.Account; !acct.IsEmpty() {
		fmt.Fprintf(out, "Account: %s %s (%s)\n", acct.Number, acct.Name, acct.Company)
	}
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, row := range exporter.Summary(report.Statistics) {
		fmt.Fprintf(w, "%s\t%s\n", row.Metric, row.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(report.Statistics.Symbols) > 0 {
		fmt.Fprintln(out)
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Symbol\tTrades\tProfit\tWin Rate")
		fmt.Fprintln(w, "------\t------\t------\t--------")
		for _, s := range report.Statistics.Symbols {
			fmt.Fprintf(w, "%s\t%d\t%s\t%.2f%%\n", s.Symbol, s.Count,
				exporter.FormatMoney(s.Profit, report.Statistics.Currency), s.WinRate*100)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if withWarnings && len(parsed.Warnings) > 0 {
		fmt.Fprintf(out, "\n%d rows skipped:\n", len(parsed.Warnings))
		for _, warn := range parsed.Warnings {
			fmt.Fprintf(out, "  row %d: %s\n", warn.Row, warn.Reason)
		}
	}
	return nil
}
