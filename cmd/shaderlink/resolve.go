package main

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/gogpu/shadercfg/capability"
	"github.com/gogpu/shadercfg/pipeline"
)

// resolver resolves pipeline files, optionally against a shared
// capability description.
type resolver struct {
	caps    *capability.Description
	workers int
	log     *slog.Logger
}

func newResolver(capsPath string, workers int, logger *slog.Logger) (*resolver, error) {
	r := &resolver{workers: max(workers, 1), log: logger}
	if capsPath != "" {
		d, err := capability.Load(capsPath)
		if err != nil {
			return nil, err
		}
		r.caps = &d
	}
	return r, nil
}

// outcome is the result of resolving one file.
type outcome struct {
	path string
	res  *pipeline.Result
	err  error
}

func (r *resolver) resolve(path string) (*pipeline.Result, error) {
	d, err := pipeline.Load(path)
	if err != nil {
		return nil, err
	}
	if r.caps != nil {
		d.Capability = *r.caps
	}
	return pipeline.Resolve(d, r.log)
}

// resolveAll resolves every file on a worker pool. Outcomes are returned
// in input order.
func (r *resolver) resolveAll(paths []string) []outcome {
	outcomes := make([]outcome, len(paths))
	if len(paths) == 1 {
		res, err := r.resolve(paths[0])
		outcomes[0] = outcome{path: paths[0], res: res, err: err}
		return outcomes
	}

	pool := worker.NewDynamicWorkerPool(min(r.workers, len(paths)), len(paths), time.Second)
	defer pool.Stop()

	// Each task writes only its own slot; the WaitGroup is the barrier.
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				res, err := r.resolve(path)
				outcomes[i] = outcome{path: path, res: res, err: err}
				return nil, nil
			},
		})
	}
	wg.Wait()

	return outcomes
}

// printAll writes every successful dump and logs every failure. It returns
// the number of failures.
func (r *resolver) printAll(w io.Writer, outcomes []outcome) int {
	failed := 0
	for _, o := range outcomes {
		if o.err != nil {
			r.log.Error("resolve failed", "file", o.path, "err", o.err)
			failed++
			continue
		}
		if err := o.res.Dump(w); err != nil {
			r.log.Error("write failed", "file", o.path, "err", err)
			failed++
			continue
		}
		if len(outcomes) > 1 {
			fmt.Fprintln(w)
		}
	}
	return failed
}
