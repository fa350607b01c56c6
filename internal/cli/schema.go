package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tendertools/tender-autofill/internal/schema"
	"github.com/tendertools/tender-autofill/internal/workbook"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Inspect or derive the output column schema",
}

var (
	deriveFrom  string
	deriveSheet string
	deriveOut   string
)

var schemaDeriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Learn the column schema from a reference workbook's master sheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, err := setup()
		if err != nil {
			return err
		}
		s, err := workbook.Derive(deriveFrom, deriveSheet)
		if err != nil {
			return err
		}
		out, err := s.Marshal()
		if err != nil {
			return err
		}
		if deriveOut == "" {
			_, err = cmd.OutOrStdout().Write(out)
			return err
		}
		if err := os.WriteFile(deriveOut, out, 0o644); err != nil {
			return fmt.Errorf("write columns file: %w", err)
		}
		logger.Info("schema.derived",
			"sheet", s.MasterSheet, "columns", len(s.Columns), "path", deriveOut)
		return nil
	},
}

var schemaShowCmd = &cobra.Command{
	Use:   "show <columns.json>",
	Short: "Validate a columns file and print its layout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, _, err := setup(); err != nil {
			return err
		}
		s, err := schema.Load(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "master sheet: %s\n", s.MasterSheet)
		for i, col := range s.Columns {
			fmt.Fprintf(cmd.OutOrStdout(), "%3d  %-40s %s\n", i+1, col, schema.NormalizeKey(col))
		}
		return nil
	},
}

func init() {
	schemaDeriveCmd.Flags().StringVar(&deriveFrom, "from", "", "reference workbook (required)")
	schemaDeriveCmd.Flags().StringVar(&deriveSheet, "sheet", "", "sheet name (default: detect master sheet)")
	schemaDeriveCmd.Flags().StringVar(&deriveOut, "out", "", "write columns JSON here instead of stdout")
	_ = schemaDeriveCmd.MarkFlagRequired("from")
	schemaCmd.AddCommand(schemaDeriveCmd)
	schemaCmd.AddCommand(schemaShowCmd)
	rootCmd.AddCommand(schemaCmd)
}
