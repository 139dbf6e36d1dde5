package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/policy-extract/internal/ocr"
	"github.com/sells-group/policy-extract/internal/store"
)

func writeTestDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestListDocuments_FiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	writeTestDoc(t, dir, "b.txt", "x")
	writeTestDoc(t, dir, "a.pdf", "x")
	writeTestDoc(t, dir, "notes.md", "x")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	paths, err := listDocuments(dir)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "a.pdf"), paths[0])
	assert.Equal(t, filepath.Join(dir, "b.txt"), paths[1])
}

func TestListDocuments_MissingDir(t *testing.T) {
	_, err := listDocuments(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestProcessBatch_ExtractsAndPersists(t *testing.T) {
	env := newTestEnv(t)
	env.OCR = ocr.PlainText{}

	dir := t.TempDir()
	writeTestDoc(t, dir, "one.txt", "Policy Number: ABC123/2024/001\nTotal Premium: Rs. 17,500.00\n")
	writeTestDoc(t, dir, "two.txt", "Cheque Date: 15/01/2024\n")

	paths, err := listDocuments(dir)
	require.NoError(t, err)

	docs, err := processBatch(context.Background(), env, paths, 2)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	// Name order regardless of worker completion order.
	assert.Equal(t, "one.txt", docs[0].Filename)
	assert.Equal(t, "two.txt", docs[1].Filename)
	assert.Equal(t, "ABC123/2024/001", docs[0].BestValue("policy_no"))
	assert.Equal(t, "17500.00", docs[0].BestValue("total_premium"))
	assert.Equal(t, "15/01/2024", docs[1].BestValue("cheque_date"))

	records, err := env.Store.ListExtractions(context.Background(), store.Filter{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestProcessBatch_SkipsUnreadableDocument(t *testing.T) {
	env := newTestEnv(t)
	env.OCR = ocr.PlainText{}

	dir := t.TempDir()
	good := writeTestDoc(t, dir, "good.txt", "Policy Number: ABC123/2024/001\n")
	missing := filepath.Join(dir, "missing.txt")

	docs, err := processBatch(context.Background(), env, []string{good, missing}, 1)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "good.txt", docs[0].Filename)
}

func TestProcessBatch_EmptyInput(t *testing.T) {
	env := newTestEnv(t)

	docs, err := processBatch(context.Background(), env, nil, 4)
	require.NoError(t, err)
	assert.Nil(t, docs)
}
