package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/policy-extract/internal/model"
	"github.com/sells-group/policy-extract/internal/registry"
)

func testExtraction(filename string) *model.DocumentExtraction {
	reg := registry.Production()

	doc := &model.DocumentExtraction{
		Filename:  filename,
		Timestamp: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	}
	for _, spec := range reg.Fields {
		doc.FieldResults = append(doc.FieldResults, model.FieldResult{Field: spec})
	}

	// Give the first field (policy number) a selected match with one
	// rejected competitor.
	best := model.Candidate{
		Value:            "ABC123/2024/001",
		MethodConfidence: 0.9,
		ValidationScore:  1.0,
		Method:           "direct pattern 1",
		Context:          "Policy Number: ABC123/2024/001",
	}
	loser := model.Candidate{
		Value:            "XYZ",
		MethodConfidence: 0.5,
		ValidationScore:  0.5,
		Method:           "inventory fallback",
	}
	doc.FieldResults[0].Candidates = []model.Candidate{best, loser}
	doc.FieldResults[0].BestMatch = &doc.FieldResults[0].Candidates[0]

	doc.Unmatched = model.UnmatchedData{
		Amounts: []model.UnmatchedCandidate{
			{Value: "2500.00", Type: "monetary", Context: "Third Party Premium Rs. 2,500.00", Position: 10},
		},
	}
	doc.Quality = model.QualityMetrics{
		TotalFields:       reg.Len(),
		FoundFields:       1,
		SuccessRate:       float64(1) / float64(reg.Len()) * 100,
		AverageConfidence: 0.9,
		HighConfidence:    1,
		LowConfidence:     reg.Len() - 1,
	}
	return doc
}

func sheetRows(t *testing.T, path, sheetName string) [][]string {
	t.Helper()
	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	sheet, ok := f.Sheet[sheetName]
	require.True(t, ok, "sheet %q missing", sheetName)

	var rows [][]string
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}
	return rows
}

func TestWriteWorkbook_Sheets(t *testing.T) {
	doc := testExtraction("policy.pdf")
	path := filepath.Join(t.TempDir(), "out.xlsx")

	require.NoError(t, WriteWorkbook(doc, path))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	for _, name := range []string{"Required Fields", "All Candidates", "Unmatched Data", "Quality Metrics"} {
		_, ok := f.Sheet[name]
		assert.True(t, ok, "sheet %q missing", name)
	}
}

func TestWriteWorkbook_FieldsSheet(t *testing.T) {
	doc := testExtraction("policy.pdf")
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, WriteWorkbook(doc, path))

	rows := sheetRows(t, path, "Required Fields")
	require.Len(t, rows, 16) // header + 15 fields

	assert.Equal(t, "Policy no.", rows[1][0])
	assert.Equal(t, "Found", rows[1][1])
	assert.Equal(t, "ABC123/2024/001", rows[1][2])

	assert.Equal(t, "Not Found", rows[2][1])
	assert.Equal(t, "N/A", rows[2][2])
}

func TestWriteWorkbook_CandidatesSheetMarksSelection(t *testing.T) {
	doc := testExtraction("policy.pdf")
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, WriteWorkbook(doc, path))

	rows := sheetRows(t, path, "All Candidates")
	require.Len(t, rows, 3) // header + 2 candidates

	assert.Equal(t, "YES", rows[1][5])
	assert.Equal(t, "NO", rows[2][5])
}

func TestWriteWorkbook_UnmatchedSheet(t *testing.T) {
	doc := testExtraction("policy.pdf")
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, WriteWorkbook(doc, path))

	rows := sheetRows(t, path, "Unmatched Data")
	require.Len(t, rows, 2)
	assert.Equal(t, "Monetary Amount", rows[1][0])
	assert.Equal(t, "2500.00", rows[1][1])
}

func TestWriteBatchWorkbook(t *testing.T) {
	reg := registry.Production()
	docs := []*model.DocumentExtraction{
		testExtraction("a.pdf"),
		testExtraction("b.pdf"),
	}
	path := filepath.Join(t.TempDir(), "batch.xlsx")
	require.NoError(t, WriteBatchWorkbook(docs, reg, path))

	rows := sheetRows(t, path, "Insurance Data")
	require.Len(t, rows, 3) // header + 2 documents
	assert.Equal(t, "a.pdf", rows[1][0])
	assert.Equal(t, "b.pdf", rows[2][0])
	// 3 fixed columns + 3 per field.
	assert.Len(t, rows[0], 3+reg.Len()*3)
	// Policy number found with value in the first field column.
	assert.Equal(t, "ABC123/2024/001", rows[1][3])
	assert.Equal(t, "Yes", rows[1][5])

	summary := sheetRows(t, path, "Field Summary")
	require.Len(t, summary, 1+reg.Len())
	assert.Equal(t, "Policy no.", summary[1][0])
	assert.Equal(t, "2", summary[1][1]) // found in both docs
	assert.Equal(t, "100.0", summary[1][3])
}

func TestExportCSV(t *testing.T) {
	reg := registry.Production()
	docs := []*model.DocumentExtraction{testExtraction("a.pdf")}
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, ExportCSV(docs, reg, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Filename", records[0][0])
	assert.Len(t, records[0], 3+reg.Len())
	assert.Equal(t, "a.pdf", records[1][0])
	assert.Equal(t, "ABC123/2024/001", records[1][3])
	assert.Equal(t, "Not found", records[1][4])
}

func TestSummary_RendersFoundAndMissing(t *testing.T) {
	doc := testExtraction("policy.pdf")
	out := Summary(doc)

	assert.Contains(t, out, "policy.pdf")
	assert.Contains(t, out, "ABC123/2024/001")
	assert.Contains(t, out, "not found")
	assert.Contains(t, out, "1 unmatched values recorded for review")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, strings.Repeat("a", 10)+"...", truncate(strings.Repeat("a", 25), 10))
}
