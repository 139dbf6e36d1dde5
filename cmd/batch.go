package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/policy-extract/internal/fetcher"
	"github.com/sells-group/policy-extract/internal/model"
	"github.com/sells-group/policy-extract/internal/report"
)

var (
	batchDir   string
	batchFetch bool
	batchOut   string
	batchCSV   string
	batchLimit int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Extract fields from every document in a directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEngine(ctx, "batch")
		if err != nil {
			return err
		}
		defer env.Close()

		if batchFetch {
			if cfg.FTP.Addr == "" {
				return eris.New("batch: --fetch requires ftp.addr to be configured")
			}
			inbox := fetcher.NewFTPInbox(fetcher.FTPOptions{
				Addr:     cfg.FTP.Addr,
				User:     cfg.FTP.User,
				Password: cfg.FTP.Password,
				Dir:      cfg.FTP.Dir,
			}, zap.L())
			fetched, err := inbox.FetchAll(ctx, batchDir)
			if err != nil {
				return eris.Wrap(err, "fetch inbox")
			}
			zap.L().Info("inbox fetched", zap.Int("documents", len(fetched)))
		}

		paths, err := listDocuments(batchDir)
		if err != nil {
			return err
		}
		if batchLimit > 0 && len(paths) > batchLimit {
			paths = paths[:batchLimit]
		}

		docs, err := processBatch(ctx, env, paths, cfg.Batch.MaxConcurrentDocuments)
		if err != nil {
			return err
		}

		if batchOut != "" {
			if err := report.WriteBatchWorkbook(docs, env.Fields, batchOut); err != nil {
				return err
			}
			zap.L().Info("batch workbook written", zap.String("path", batchOut))
		}
		if batchCSV != "" {
			if err := report.ExportCSV(docs, env.Fields, batchCSV); err != nil {
				return err
			}
			zap.L().Info("batch csv written", zap.String("path", batchCSV))
		}

		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchDir, "dir", "", "directory of documents to process (required)")
	batchCmd.Flags().BoolVar(&batchFetch, "fetch", false, "download the FTP inbox into --dir first")
	batchCmd.Flags().StringVar(&batchOut, "out", "", "write a batch XLSX workbook to this path")
	batchCmd.Flags().StringVar(&batchCSV, "csv", "", "write a flat CSV of results to this path")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "max number of documents to process (0 = all)")
	_ = batchCmd.MarkFlagRequired("dir")
	rootCmd.AddCommand(batchCmd)
}

// documentExtensions mirrors what the OCR layer can handle.
var documentExtensions = map[string]bool{
	".pdf": true,
	".txt": true,
}

// listDocuments returns the processable files in dir, sorted by name so
// batch output order is stable.
func listDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "batch: read dir %s", dir)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !documentExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// processBatch runs extraction over the given paths with bounded
// concurrency. Individual document failures are logged, not fatal.
func processBatch(ctx context.Context, env *engineEnv, paths []string, concurrency int) ([]*model.DocumentExtraction, error) {
	if len(paths) == 0 {
		zap.L().Info("no documents to process")
		return nil, nil
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	zap.L().Info("processing batch",
		zap.Int("documents", len(paths)),
		zap.Int("concurrency", concurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var mu sync.Mutex
	var docs []*model.DocumentExtraction
	var succeeded, failed atomic.Int64

	for _, path := range paths {
		g.Go(func() error {
			log := zap.L().With(zap.String("file", filepath.Base(path)))

			text, err := env.OCR.ExtractText(gctx, path)
			if err != nil {
				failed.Add(1)
				log.Error("text extraction failed", zap.Error(err))
				return nil // keep processing the rest of the batch
			}

			doc := env.Engine.Extract(text, filepath.Base(path))

			if _, err := env.Store.SaveExtraction(gctx, doc); err != nil {
				failed.Add(1)
				log.Error("save failed", zap.Error(err))
				return nil
			}

			succeeded.Add(1)
			log.Info("document processed",
				zap.Int("fields_found", doc.Quality.FoundFields),
				zap.Float64("success_rate", doc.Quality.SuccessRate),
			)

			mu.Lock()
			docs = append(docs, doc)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "batch processing")
	}

	// Workers append in completion order; restore name order for reports.
	sort.Slice(docs, func(i, j int) bool { return docs[i].Filename < docs[j].Filename })

	zap.L().Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)
	return docs, nil
}
