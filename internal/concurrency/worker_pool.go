package concurrency

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"sync"

	"filetug/internal/common"
	"filetug/internal/domain/thumbnail"

	"github.com/panjf2000/ants/v2"
)

// WorkItem represents a single file to be processed
type WorkItem struct {
	ID       string
	FilePath string
}

// ProcessorFunc handles one item and returns its status
type ProcessorFunc func(ctx context.Context, item WorkItem) (string, error)

// WorkerPool runs a ProcessorFunc over a batch of files on an ants pool
type WorkerPool struct {
	maxWorkers int
	processor  ProcessorFunc
	logger     *slog.Logger
}

// NewWorkerPool creates a new worker pool instance
func NewWorkerPool(processor ProcessorFunc, logger *slog.Logger) *WorkerPool {
	return &WorkerPool{
		maxWorkers: calculateOptimalWorkerCount(),
		processor:  processor,
		logger:     logger,
	}
}

// ProcessBatch processes files concurrently. progress, when set, is called
// from worker goroutines once per item as soon as it finishes. Items not yet
// started when ctx is cancelled are reported as errors.
func (wp *WorkerPool) ProcessBatch(ctx context.Context, files []string, progress func(thumbnail.ItemResult)) thumbnail.BatchResult {
	if len(files) == 0 {
		return thumbnail.BatchResult{
			Success: false,
			Error:   common.ErrNoFilesProvided.Error(),
		}
	}

	pool, err := ants.NewPool(wp.maxWorkers)
	if err != nil {
		wp.logger.Error("Failed to create worker pool", "error", err)
		return thumbnail.BatchResult{
			Success: false,
			Error:   err.Error(),
		}
	}
	defer pool.Release()

	results := make([]thumbnail.ItemResult, len(files))
	var wg sync.WaitGroup

	for i, filePath := range files {
		index := i
		item := WorkItem{ID: common.GenerateUUID(), FilePath: filePath}

		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			results[index] = wp.run(ctx, item)
			if progress != nil {
				progress(results[index])
			}
		})
		if err != nil {
			wg.Done()
			wp.logger.Error("Failed to submit task", "file", filePath, "error", err)
			results[index] = errorResult(item, err)
		}
	}

	wg.Wait()

	batch := thumbnail.BatchResult{
		Success: ctx.Err() == nil,
		Results: results,
		Total:   len(results),
	}
	for _, r := range results {
		switch r.Status {
		case thumbnail.StatusCompleted:
			batch.Completed++
		case thumbnail.StatusSkipped:
			batch.Skipped++
		default:
			batch.Failed++
		}
	}
	if err := ctx.Err(); err != nil {
		batch.Error = err.Error()
	}

	return batch
}

func (wp *WorkerPool) run(ctx context.Context, item WorkItem) thumbnail.ItemResult {
	select {
	case <-ctx.Done():
		return errorResult(item, ctx.Err())
	default:
	}

	status, err := wp.processor(ctx, item)
	if err != nil {
		wp.logger.Debug("Error processing file", "file", item.FilePath, "error", err)
		return errorResult(item, err)
	}

	return thumbnail.ItemResult{
		ItemID:   item.ID,
		Filename: filepath.Base(item.FilePath),
		Status:   status,
	}
}

func errorResult(item WorkItem, err error) thumbnail.ItemResult {
	return thumbnail.ItemResult{
		ItemID:   item.ID,
		Filename: filepath.Base(item.FilePath),
		Status:   thumbnail.StatusError,
		Error:    err.Error(),
	}
}

// calculateOptimalWorkerCount determines the optimal number of workers
func calculateOptimalWorkerCount() int {
	maxConcurrency := runtime.NumCPU()
	if maxConcurrency > common.MaxConcurrencyLimit {
		maxConcurrency = common.MaxConcurrencyLimit
	}
	return maxConcurrency
}
