package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/lead-ingest/internal/ingest"
	"github.com/sells-group/lead-ingest/internal/model"
)

var (
	ingestFilePath string
	ingestXLSXPath string
	ingestDryRun   bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Run one ingestion batch from NDJSON or XLSX input",
	Long:  "Reads provider records from --file, --xlsx, or stdin, resolves each against the store, and prints the batch summary as JSON.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("ingest"); err != nil {
			return err
		}
		if ingestFilePath != "" && ingestXLSXPath != "" {
			return eris.New("--file and --xlsx are mutually exclusive")
		}

		env, err := initPipeline(ctx, ingestDryRun)
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.Store.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		var summary *model.BatchSummary
		if ingestXLSXPath != "" {
			records, err := ingest.RecordsFromXLSX(ingestXLSXPath)
			if err != nil {
				return err
			}
			summary, err = env.Runner.RunRecords(ctx, records, 0)
			if err != nil {
				return err
			}
		} else {
			raw, err := readInput()
			if err != nil {
				return err
			}
			summary, err = env.Runner.Run(ctx, raw)
			if err != nil {
				return err
			}
		}

		zap.L().Info("ingest complete",
			zap.Int("processed", summary.Processed),
			zap.Int("contacts_created", summary.ContactsCreated),
			zap.Int("companies_created", summary.CompaniesCreated),
			zap.Bool("dry_run", ingestDryRun),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	},
}

func readInput() (string, error) {
	if ingestFilePath != "" {
		data, err := os.ReadFile(ingestFilePath)
		if err != nil {
			return "", eris.Wrap(err, "read input file")
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", eris.Wrap(err, "read stdin")
	}
	return string(data), nil
}

func init() {
	ingestCmd.Flags().StringVar(&ingestFilePath, "file", "", "path to NDJSON file (default: stdin)")
	ingestCmd.Flags().StringVar(&ingestXLSXPath, "xlsx", "", "path to XLSX export")
	ingestCmd.Flags().BoolVar(&ingestDryRun, "dry-run", false, "process against an in-memory store, persist nothing")
	rootCmd.AddCommand(ingestCmd)
}
