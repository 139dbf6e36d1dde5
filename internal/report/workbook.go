package report

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/policy-extract/internal/model"
)

// WriteWorkbook writes a single document's extraction as a multi-sheet
// XLSX workbook: the per-field results, the full candidate pool, the
// unmatched leftovers, and the quality metrics.
func WriteWorkbook(doc *model.DocumentExtraction, outputPath string) error {
	f := xlsx.NewFile()

	if err := addFieldsSheet(f, doc); err != nil {
		return err
	}
	if err := addCandidatesSheet(f, doc); err != nil {
		return err
	}
	if err := addUnmatchedSheet(f, doc); err != nil {
		return err
	}
	if err := addQualitySheet(f, doc); err != nil {
		return err
	}

	if err := f.Save(outputPath); err != nil {
		return eris.Wrap(err, "report: save workbook")
	}
	return nil
}

func addFieldsSheet(f *xlsx.File, doc *model.DocumentExtraction) error {
	sheet, err := f.AddSheet("Required Fields")
	if err != nil {
		return eris.Wrap(err, "report: add fields sheet")
	}

	writeRow(sheet, "Field Name", "Status", "Value", "Confidence", "Method", "Validation Score", "Context")

	for _, fr := range doc.FieldResults {
		if fr.BestMatch == nil {
			writeRow(sheet, fr.Field.DisplayName, "Not Found", "N/A", "N/A", "N/A", "N/A", "N/A")
			continue
		}
		bm := fr.BestMatch
		writeRow(sheet,
			fr.Field.DisplayName,
			"Found",
			bm.Value,
			fmt.Sprintf("%.2f", bm.MethodConfidence),
			bm.Method,
			fmt.Sprintf("%.2f", bm.ValidationScore),
			truncate(bm.Context, 100),
		)
	}
	return nil
}

func addCandidatesSheet(f *xlsx.File, doc *model.DocumentExtraction) error {
	sheet, err := f.AddSheet("All Candidates")
	if err != nil {
		return eris.Wrap(err, "report: add candidates sheet")
	}

	writeRow(sheet, "Field Name", "Candidate Value", "Confidence", "Validation Score", "Method", "Selected", "Context")

	for _, fr := range doc.FieldResults {
		for _, c := range fr.Candidates {
			selected := "NO"
			if fr.BestMatch != nil && c.Value == fr.BestMatch.Value {
				selected = "YES"
			}
			writeRow(sheet,
				fr.Field.DisplayName,
				c.Value,
				fmt.Sprintf("%.2f", c.MethodConfidence),
				fmt.Sprintf("%.2f", c.ValidationScore),
				c.Method,
				selected,
				truncate(c.Context, 150),
			)
		}
	}
	return nil
}

func addUnmatchedSheet(f *xlsx.File, doc *model.DocumentExtraction) error {
	sheet, err := f.AddSheet("Unmatched Data")
	if err != nil {
		return eris.Wrap(err, "report: add unmatched sheet")
	}

	writeRow(sheet, "Type", "Value", "Context", "Position")

	writeUnmatched(sheet, "Monetary Amount", doc.Unmatched.Amounts)
	writeUnmatched(sheet, "Code", doc.Unmatched.Codes)
	writeUnmatched(sheet, "Date", doc.Unmatched.Dates)
	writeUnmatched(sheet, "Label", doc.Unmatched.Labels)
	return nil
}

func writeUnmatched(sheet *xlsx.Sheet, typeName string, entries []model.UnmatchedCandidate) {
	for _, e := range entries {
		writeRow(sheet, typeName, e.Value, truncate(e.Context, 150), fmt.Sprintf("%d", e.Position))
	}
}

func addQualitySheet(f *xlsx.File, doc *model.DocumentExtraction) error {
	sheet, err := f.AddSheet("Quality Metrics")
	if err != nil {
		return eris.Wrap(err, "report: add quality sheet")
	}

	q := doc.Quality
	writeRow(sheet, "Metric", "Value")
	writeRow(sheet, "Total Fields", fmt.Sprintf("%d", q.TotalFields))
	writeRow(sheet, "Found Fields", fmt.Sprintf("%d", q.FoundFields))
	writeRow(sheet, "Success Rate (%)", fmt.Sprintf("%.1f%%", q.SuccessRate))
	writeRow(sheet, "Average Confidence", fmt.Sprintf("%.2f", q.AverageConfidence))
	writeRow(sheet, "High Confidence Fields (>80%)", fmt.Sprintf("%d", q.HighConfidence))
	writeRow(sheet, "Medium Confidence Fields (50-80%)", fmt.Sprintf("%d", q.MediumConfidence))
	writeRow(sheet, "Low Confidence Fields (<50%)", fmt.Sprintf("%d", q.LowConfidence))
	return nil
}

func writeRow(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
