package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abubakr3800/sc-standards/internal/common"
	"github.com/abubakr3800/sc-standards/internal/compliance"
	"github.com/abubakr3800/sc-standards/internal/consolidate"
	"github.com/abubakr3800/sc-standards/internal/entity"
	"github.com/abubakr3800/sc-standards/internal/export"
	"github.com/abubakr3800/sc-standards/internal/extract"
	"github.com/abubakr3800/sc-standards/internal/pipeline"
	"github.com/abubakr3800/sc-standards/internal/segment"
	"github.com/abubakr3800/sc-standards/internal/textsource"
)

var (
	flagOut       string
	flagXLSX      string
	flagStandards []string
	flagVerbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "standards-audit",
	Short: "Analyze lighting study PDFs against illumination standards",
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		level := slog.LevelInfo
		if flagVerbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
	},
}

var processCmd = &cobra.Command{
	Use:   "process [pdf...]",
	Short: "Run lighting study PDFs through the analysis pipeline",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProcess,
}

var standardsCmd = &cobra.Command{
	Use:   "standards",
	Short: "Inspect and validate standards databases",
}

var standardsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the loaded standards and their requirement rows",
	RunE:  runStandardsList,
}

var standardsValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate an external standards JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runStandardsValidate,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	processCmd.Flags().StringVarP(&flagOut, "out", "o", "", "write report JSON to this file or directory instead of stdout")
	processCmd.Flags().StringVar(&flagXLSX, "xlsx", "", "also write an XLSX workbook per document into this directory")
	processCmd.Flags().StringSliceVar(&flagStandards, "standards", nil, "restrict evaluation to these standard IDs")

	standardsCmd.AddCommand(standardsListCmd)
	standardsCmd.AddCommand(standardsValidateCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(standardsCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	logger := slog.Default()
	cfg, err := common.LoadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	db, err := loadStandards(cfg.Pipeline.StandardsPath)
	if err != nil {
		return err
	}
	if err := checkStandardIDs(db, flagStandards); err != nil {
		return err
	}

	processor := pipeline.NewProcessor(
		textsource.NewSource(logger),
		extract.NewExtractor(cfg.Tuning, logger),
		segment.NewSegmenter(logger),
		consolidate.NewConsolidator(cfg.Tuning, logger),
		compliance.NewEngine(db, logger),
		cfg.Pipeline.DocumentTimeout,
		logger,
	)
	processor.Standards = flagStandards

	batch := pipeline.NewBatch(processor, cfg.Pipeline.Workers, logger)
	reports := batch.Run(cmd.Context(), args)

	failures := 0
	for i := range reports {
		if reports[i].ExtractionFailed {
			failures++
		}
		if err := emitReport(cmd.Context(), &reports[i], logger); err != nil {
			return err
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d documents failed extraction", failures, len(reports))
	}
	return nil
}

func emitReport(_ context.Context, report *entity.DocumentReport, logger *slog.Logger) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	switch {
	case flagOut == "":
		fmt.Println(string(data))
	default:
		path := flagOut
		if info, err := os.Stat(flagOut); err == nil && info.IsDir() {
			path = filepath.Join(flagOut, report.ID.String()+".json")
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		logger.Info("cli.report.written", "path", path)
	}

	if flagXLSX != "" {
		if err := os.MkdirAll(flagXLSX, 0o755); err != nil {
			return fmt.Errorf("create xlsx dir: %w", err)
		}
		svc := export.NewService(logger)
		wb, err := svc.ReportXLSX(report)
		if err != nil {
			return fmt.Errorf("build workbook: %w", err)
		}
		path := filepath.Join(flagXLSX, report.ID.String()+".xlsx")
		if err := os.WriteFile(path, wb, 0o644); err != nil {
			return fmt.Errorf("write workbook: %w", err)
		}
		logger.Info("cli.xlsx.written", "path", path)
	}
	return nil
}

func runStandardsList(cmd *cobra.Command, _ []string) error {
	cfg, err := common.LoadConfig()
	if err != nil {
		return err
	}
	db, err := loadStandards(cfg.Pipeline.StandardsPath)
	if err != nil {
		return err
	}
	for _, id := range db.StandardIDs() {
		cmd.Println(id)
	}
	return nil
}

func runStandardsValidate(cmd *cobra.Command, args []string) error {
	db, err := compliance.LoadFile(args[0])
	if err != nil {
		return err
	}
	cmd.Printf("%s: valid (%d standards, %d requirements)\n", args[0], len(db.StandardIDs()), len(db.Requirements()))
	return nil
}

func loadStandards(path string) (*compliance.DB, error) {
	if path != "" {
		return compliance.LoadFile(path)
	}
	return compliance.LoadDefault()
}

func checkStandardIDs(db *compliance.DB, ids []string) error {
	known := db.StandardIDs()
	for _, id := range ids {
		found := false
		for _, k := range known {
			if k == id {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("unknown standard %q, available: %s", id, strings.Join(known, ", "))
		}
	}
	return nil
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
