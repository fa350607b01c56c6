package cli

import (
	"github.com/spf13/cobra"

	"github.com/tendertools/tender-autofill/internal/document"
	"github.com/tendertools/tender-autofill/internal/history"
	"github.com/tendertools/tender-autofill/internal/pipeline"
	"github.com/tendertools/tender-autofill/internal/rules"
	"github.com/tendertools/tender-autofill/internal/schema"
	"github.com/tendertools/tender-autofill/internal/workbook"
)

var (
	fillDocs          string
	fillOut           string
	fillColumns       string
	fillTags          string
	fillTemplate      string
	fillHistory       string
	fillIncludeHidden bool
)

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Extract fields from documents and append rows to the output workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		s, err := schema.Load(fillColumns)
		if err != nil {
			return err
		}
		ruleSet, err := rules.Load(fillTags, logger)
		if err != nil {
			return err
		}
		logger.Info("fill.config",
			"master_sheet", s.MasterSheet,
			"columns", len(s.Columns),
			"tags", len(ruleSet.Tags),
			"patterns", ruleSet.PatternCount(),
		)

		extractor := document.NewExtractor(document.Config{
			MaxFileSize: cfg.MaxFileSizeBytes(),
		}, logger)

		var store *history.Store
		if fillHistory != "" {
			cfg.History.Enabled = true
			cfg.History.Path = fillHistory
		}
		if cfg.History.Enabled {
			store, err = history.Open(ctx, cfg.History.Path, logger)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
		}

		w, err := workbook.Open(fillTemplate, s, logger)
		if err != nil {
			return err
		}
		defer func() { _ = w.Close() }()

		proc := pipeline.NewProcessor(extractor, ruleSet, s, logger)
		proc.History = store
		proc.SkipHidden = cfg.Extract.SkipHidden && !fillIncludeHidden

		results, stats, err := proc.Run(ctx, fillDocs, w)
		if err != nil {
			return err
		}
		if stats.Filled == 0 {
			logger.Warn("fill.no_rows", "docs", fillDocs)
		}
		if err := w.Save(fillOut, len(s.Columns)); err != nil {
			return err
		}

		FormatRunSummary(cmd.OutOrStdout(), fillOut, stats, results)
		return nil
	},
}

func init() {
	fillCmd.Flags().StringVar(&fillDocs, "docs", "", "folder with input tender files (required)")
	fillCmd.Flags().StringVar(&fillOut, "out", "", "output XLSX path (required)")
	fillCmd.Flags().StringVar(&fillColumns, "columns", "", "JSON file with master columns/schema (required)")
	fillCmd.Flags().StringVar(&fillTags, "tags", "", "YAML file with tag regex rules (required)")
	fillCmd.Flags().StringVar(&fillTemplate, "template", "", "optional template workbook to start from")
	fillCmd.Flags().StringVar(&fillHistory, "history", "", "record per-file jobs in this sqlite database")
	fillCmd.Flags().BoolVar(&fillIncludeHidden, "include-hidden", false, "do not skip hidden files and directories")
	_ = fillCmd.MarkFlagRequired("docs")
	_ = fillCmd.MarkFlagRequired("out")
	_ = fillCmd.MarkFlagRequired("columns")
	_ = fillCmd.MarkFlagRequired("tags")
	rootCmd.AddCommand(fillCmd)
}
