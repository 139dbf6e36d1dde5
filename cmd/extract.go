package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/policy-extract/internal/report"
)

var (
	extractFile string
	extractOut  string
	extractJSON bool
	extractSave bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract fields from a single document",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEngine(ctx, "extract")
		if err != nil {
			return err
		}
		defer env.Close()

		text, err := env.OCR.ExtractText(ctx, extractFile)
		if err != nil {
			return eris.Wrap(err, "extract text")
		}

		doc := env.Engine.Extract(text, filepath.Base(extractFile))

		zap.L().Info("extraction complete",
			zap.String("file", doc.Filename),
			zap.Int("fields_found", doc.Quality.FoundFields),
			zap.Float64("success_rate", doc.Quality.SuccessRate),
		)

		if extractSave {
			rec, err := env.Store.SaveExtraction(ctx, doc)
			if err != nil {
				return eris.Wrap(err, "save extraction")
			}
			zap.L().Info("extraction saved", zap.String("id", rec.ID))
		}

		if extractOut != "" {
			if err := report.WriteWorkbook(doc, extractOut); err != nil {
				return err
			}
			zap.L().Info("workbook written", zap.String("path", extractOut))
		}

		if extractJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		}

		fmt.Print(report.Summary(doc))
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractFile, "file", "", "path to PDF or text document (required)")
	extractCmd.Flags().StringVar(&extractOut, "out", "", "write a detailed XLSX workbook to this path")
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "print the full extraction record as JSON")
	extractCmd.Flags().BoolVar(&extractSave, "save", false, "persist the extraction to the store")
	_ = extractCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(extractCmd)
}
