package report

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/policy-extract/internal/model"
)

// WriteBatchWorkbook writes one workbook for a batch of documents: a main
// sheet with one row per document and a summary sheet with per-field
// statistics across the batch. Column order follows the registry's field
// declaration order.
func WriteBatchWorkbook(docs []*model.DocumentExtraction, reg *model.FieldRegistry, outputPath string) error {
	f := xlsx.NewFile()

	if err := addBatchDataSheet(f, docs, reg); err != nil {
		return err
	}
	if err := addFieldSummarySheet(f, docs, reg); err != nil {
		return err
	}

	if err := f.Save(outputPath); err != nil {
		return eris.Wrap(err, "report: save batch workbook")
	}
	return nil
}

func addBatchDataSheet(f *xlsx.File, docs []*model.DocumentExtraction, reg *model.FieldRegistry) error {
	sheet, err := f.AddSheet("Insurance Data")
	if err != nil {
		return eris.Wrap(err, "report: add batch data sheet")
	}

	header := []string{"Filename", "Timestamp", "Overall Confidence"}
	for _, spec := range reg.Fields {
		header = append(header,
			spec.DisplayName,
			spec.DisplayName+" (Confidence)",
			spec.DisplayName+" (Found)",
		)
	}
	writeRow(sheet, header...)

	for _, doc := range docs {
		row := []string{
			doc.Filename,
			doc.Timestamp.Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%.2f", doc.Quality.AverageConfidence),
		}
		for _, spec := range reg.Fields {
			fr := doc.Result(spec.Key)
			if fr == nil || fr.BestMatch == nil {
				row = append(row, "Not found", "0.00", "No")
				continue
			}
			row = append(row,
				fr.BestMatch.Value,
				fmt.Sprintf("%.2f", fr.BestMatch.CombinedScore()),
				"Yes",
			)
		}
		writeRow(sheet, row...)
	}
	return nil
}

func addFieldSummarySheet(f *xlsx.File, docs []*model.DocumentExtraction, reg *model.FieldRegistry) error {
	sheet, err := f.AddSheet("Field Summary")
	if err != nil {
		return eris.Wrap(err, "report: add field summary sheet")
	}

	writeRow(sheet, "Field Name", "Found Count", "Missing Count", "Success Rate (%)", "Average Confidence")

	for _, spec := range reg.Fields {
		var found int
		var confSum float64
		for _, doc := range docs {
			fr := doc.Result(spec.Key)
			if fr != nil && fr.BestMatch != nil {
				found++
				confSum += fr.BestMatch.CombinedScore()
			}
		}

		missing := len(docs) - found
		rate := 0.0
		avgConf := 0.0
		if len(docs) > 0 {
			rate = float64(found) / float64(len(docs)) * 100
		}
		if found > 0 {
			avgConf = confSum / float64(found)
		}

		writeRow(sheet,
			spec.DisplayName,
			fmt.Sprintf("%d", found),
			fmt.Sprintf("%d", missing),
			fmt.Sprintf("%.1f", rate),
			fmt.Sprintf("%.2f", avgConf),
		)
	}
	return nil
}
