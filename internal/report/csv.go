package report

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/policy-extract/internal/model"
)

// ExportCSV writes a batch of extractions as a flat CSV file, one row per
// document. Field columns follow the registry's declaration order.
func ExportCSV(docs []*model.DocumentExtraction, reg *model.FieldRegistry, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return eris.Wrap(err, "report: create csv file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"Filename", "Success Rate (%)", "Average Confidence"}
	for _, spec := range reg.Fields {
		header = append(header, spec.DisplayName)
	}
	if err := w.Write(header); err != nil {
		return eris.Wrap(err, "report: write csv header")
	}

	for _, doc := range docs {
		row := []string{
			doc.Filename,
			fmt.Sprintf("%.1f", doc.Quality.SuccessRate),
			fmt.Sprintf("%.2f", doc.Quality.AverageConfidence),
		}
		for _, spec := range reg.Fields {
			value := doc.BestValue(spec.Key)
			if value == "" {
				value = "Not found"
			}
			row = append(row, value)
		}
		if err := w.Write(row); err != nil {
			return eris.Wrap(err, "report: write csv row")
		}
	}

	return nil
}
