//
// Tencent is pleased to support the open source community by making trpc-strgraph-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-strgraph-go is licensed under the Apache License Version 2.0.
//
//

package graph

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// BatchRequest is one independent evaluation: a target port and its feed.
type BatchRequest struct {
	Target string
	Feed   map[string]string
}

// BatchResult pairs the produced value with the per-request error.
type BatchResult struct {
	Value string
	Err   error
}

// BatchOption configures RunBatch.
type BatchOption func(*batchOptions)

type batchOptions struct {
	parallelism int
}

// WithParallelism caps the number of evaluations running at once.
// Defaults to GOMAXPROCS.
func WithParallelism(n int) BatchOption {
	return func(o *batchOptions) {
		o.parallelism = n
	}
}

// RunBatch evaluates many independent requests against the compiled graph
// on a worker pool. Each evaluation keeps its own output buffers; the
// compiled structure is shared and immutable, so requests never interact.
// Results are returned in request order. Per-request failures land in the
// corresponding BatchResult; the call itself only fails when the pool
// cannot be created.
func (c *CompiledGraph) RunBatch(ctx context.Context, reqs []BatchRequest, opts ...BatchOption) ([]BatchResult, error) {
	results := make([]BatchResult, len(reqs))
	if len(reqs) == 0 {
		return results, nil
	}
	var options batchOptions
	for _, opt := range opts {
		opt(&options)
	}
	size := options.parallelism
	if size <= 0 {
		size = runtime.GOMAXPROCS(0)
	}
	if size > len(reqs) {
		size = len(reqs)
	}

	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, fmt.Errorf("create batch pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := range reqs {
		i := i
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			results[i].Value, results[i].Err = c.run(ctx, reqs[i].Target, reqs[i].Feed)
		})
		if submitErr != nil {
			wg.Done()
			results[i].Err = fmt.Errorf("submit batch request %d: %w", i, submitErr)
		}
	}
	wg.Wait()
	return results, nil
}
