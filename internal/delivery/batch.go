package delivery

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"sync"

	"github.com/gammazero/workerpool"
	"github.com/hydrosim/hydrosim-cli/internal/notification"
	"github.com/schollz/progressbar/v3"
)

type BatchResult struct {
	File   string
	Report *Report
}

const maxBatchWorkers = 8

// ForecastBatch forecasts every csv file in dir. Results follow file name
// order; the first failing file aborts the batch.
func (s *Service) ForecastBatch(ctx context.Context, dir string, horizon int) ([]BatchResult, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("error listing %s: %w", dir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no csv files found in %s", dir)
	}
	sort.Strings(files)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu          sync.Mutex
		results     = make([]BatchResult, len(files))
		progressBar = progressbar.Default(int64(len(files)), "Forecasting files")
	)

	wp := workerpool.New(min(maxBatchWorkers, len(files)))
	errChan := make(chan error, 1)
	var stopProcessing sync.Once

	for i, file := range files {
		i, file := i, file
		wp.Submit(func() {
			if ctx.Err() != nil {
				return
			}

			report, err := s.ForecastFile(ctx, file, horizon)
			if err != nil {
				stopProcessing.Do(func() {
					errChan <- fmt.Errorf("%s: %w", filepath.Base(file), err)
					cancel()
				})
				return
			}

			mu.Lock()
			results[i] = BatchResult{File: file, Report: report}
			progressBar.Add(1)
			mu.Unlock()
		})
	}

	go func() {
		wp.StopWait()
		close(errChan)
	}()

	if err := <-errChan; err != nil {
		if nErr := notification.SendDiscordErrorNotification(context.Background(), err.Error()); nErr != nil {
			log.Printf("Warning: failed to send error notification: %v", nErr)
		}
		return nil, fmt.Errorf("error during batch forecast: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	progressBar.Finish()

	if nErr := notification.SendDiscordSuccessNotification(ctx, fmt.Sprintf("Forecasted %d files from %s", len(files), dir)); nErr != nil {
		log.Printf("Warning: failed to send success notification: %v", nErr)
	}
	return results, nil
}
