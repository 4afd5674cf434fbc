// Package main provides the CLI entry point for sheetfilter.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetfilter-go/internal/config"
	"github.com/ukaji3/sheetfilter-go/internal/logging"
	"github.com/ukaji3/sheetfilter-go/internal/metrics"
	"github.com/ukaji3/sheetfilter-go/internal/server"
	"github.com/ukaji3/sheetfilter-go/pkg/sheetfilter"
	"github.com/ukaji3/sheetfilter-go/pkg/sheetfilter/output"
)

var (
	configPath string
	verbose    bool

	sheetName  string
	column     string
	query      string
	format     string
	outputPath string
	pretty     bool
	rawValues  bool
	cellRange  string
	printArea  bool

	listenAddress string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sheetfilter [input.xlsx]",
		Short: "Filter spreadsheet rows by a keyword in one column",
		Long: `sheetfilter reads one sheet of an Excel workbook and prints the rows whose
column value contains a keyword, ignoring case.`,
		Args:         cobra.ExactArgs(1),
		RunE:         runFilter,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.Flags().StringVarP(&query, "query", "q", "", "Keyword to search for (required)")
	rootCmd.Flags().StringVarP(&sheetName, "sheet", "s", "", "Sheet name (default from config: Historial)")
	rootCmd.Flags().StringVarP(&column, "column", "c", "", "Column to search (default from config: Acción)")
	rootCmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, json, csv")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().BoolVar(&rawValues, "raw", false, "Read stored cell values instead of formatted text")
	rootCmd.Flags().StringVar(&cellRange, "range", "", "Only read this cell range, e.g. A1:F200")
	rootCmd.Flags().BoolVar(&printArea, "print-area", false, "Only read the sheet's print area, if defined")

	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

func newServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:          "serve",
		Short:        "Serve the upload-and-filter web form",
		Args:         cobra.NoArgs,
		RunE:         runServe,
		SilenceUsage: true,
	}

	serveCmd.Flags().StringVar(&listenAddress, "listen", "", "Listen address (overrides server.listen_address)")

	return serveCmd
}

func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.New(cfg.Logging, os.Stderr)
	if err != nil {
		return nil, nil, err
	}

	return cfg, logger, nil
}

func runFilter(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	// Validate input file exists
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	outFormat, err := output.ParseFormat(format)
	if err != nil {
		return err
	}

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	req := sheetfilter.Request{
		SheetName: sheetName,
		Column:    column,
		Query:     query,
	}.WithDefaults(cfg.Filter.SheetName, cfg.Filter.Column)

	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: pass --query", err)
	}

	opts := sheetfilter.Options{
		RawValues:    rawValues || cfg.Filter.RawValues,
		Range:        cellRange,
		UsePrintArea: printArea,
	}

	logger.Debug("filtering workbook", "path", inputPath, "sheet", req.SheetName, "column", req.Column, "query", req.Query)

	table, err := sheetfilter.FilterFile(inputPath, req, opts)
	if err != nil {
		var columnErr *sheetfilter.ColumnNotFoundError
		if errors.As(err, &columnErr) {
			return err
		}
		return fmt.Errorf("failed to process file: %w", err)
	}

	logger.Debug("filter completed", "range", table.Range, "rows", table.Len())

	if table.Empty() && outFormat == output.FormatTable {
		fmt.Fprintf(cmd.ErrOrStderr(), "No rows contain %q in column %q.\n", req.Query, req.Column)
		return nil
	}

	var w io.Writer = cmd.OutOrStdout()
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := output.Write(w, table, outFormat, pretty); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	if listenAddress != "" {
		cfg.Server.ListenAddress = listenAddress
	}

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	collector := metrics.NewCollector(cfg.Metrics)
	srv, err := server.New(cfg, logger, collector)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
