// Playweight - Sparse Interaction Matrix Reweighting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playweight

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// minRowsPerTask keeps tiny matrices from paying one task per row.
const minRowsPerTask = 64

// workers returns the effective pool size.
func (p *Pipeline) workers() int {
	if p.cfg.Workers > 0 {
		return p.cfg.Workers
	}
	return runtime.NumCPU()
}

// chunkSize splits numRows into roughly four tasks per worker so that
// uneven rows still balance.
func chunkSize(numRows, workers int) int {
	size := (numRows + 4*workers - 1) / (4 * workers)
	return max(size, minRowsPerTask)
}

// forEachRow calls fn for every row in [0, numRows) on a bounded worker
// pool. fn may only write state owned by its row. The first failure
// cancels the remaining work and is returned.
func (p *Pipeline) forEachRow(ctx context.Context, numRows int, fn func(ctx context.Context, row int) error) error {
	if numRows == 0 {
		return ctx.Err()
	}

	workers := p.workers()
	pool, err := ants.NewPool(workers)
	if err != nil {
		return fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	chunk := chunkSize(numRows, workers)
	var wg sync.WaitGroup
	errCh := make(chan error, (numRows+chunk-1)/chunk)

	for start := 0; start < numRows; start += chunk {
		end := min(start+chunk, numRows)

		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			for r := start; r < end; r++ {
				if err := ctx.Err(); err != nil {
					errCh <- err
					return
				}
				if err := fn(ctx, r); err != nil {
					errCh <- err
					cancel()
					return
				}
			}
		})
		if err != nil {
			wg.Done()
			errCh <- fmt.Errorf("failed to submit row task: %w", err)
			cancel()
			break
		}
	}

	wg.Wait()
	close(errCh)

	return firstCause(errCh)
}

// firstCause drains errCh, preferring a real failure over the
// cancellations it triggered in sibling tasks.
func firstCause(errCh <-chan error) error {
	var first error
	for err := range errCh {
		if first == nil || (isCancellation(first) && !isCancellation(err)) {
			first = err
		}
	}
	return first
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled)
}
