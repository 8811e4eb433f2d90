// Package driver runs the middle-end pipeline over one translation unit:
// parallel stream validation and artifact read/write around the TAC codec.
package driver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"tacc/internal/observ"
	"tacc/internal/tac"
)

// clampJobs normalizes a worker count: zero or negative means one worker
// per CPU, and the count never exceeds the number of functions.
func clampJobs(jobs, funcs int) int {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if funcs > 0 && jobs > funcs {
		jobs = funcs
	}
	if jobs < 1 {
		jobs = 1
	}
	return jobs
}

// CheckModule validates every function's TAC stream, jobs functions at a
// time. The first context cancellation or validation failure stops the run.
func CheckModule(ctx context.Context, m *tac.Module, jobs int) error {
	if m == nil {
		return nil
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(clampJobs(jobs, len(m.Funcs)))

	for _, f := range m.Funcs {
		f := f
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := tac.ValidateFunc(f); err != nil {
				return fmt.Errorf("function %s: %w", f.Name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// WriteArtifact validates the module and writes its artifact to path.
// Phase durations land in timer when one is given.
func WriteArtifact(ctx context.Context, path string, m *tac.Module, jobs int, timer *observ.Timer) error {
	phase := -1
	if timer != nil {
		phase = timer.Begin("validate")
	}
	err := CheckModule(ctx, m, jobs)
	if timer != nil {
		timer.End(phase, noteFuncs(m))
	}
	if err != nil {
		return err
	}

	if timer != nil {
		phase = timer.Begin("encode")
	}
	err = tac.WriteFile(path, m)
	if timer != nil {
		timer.End(phase, path)
	}
	return err
}

// ReadArtifact decodes and re-validates a module artifact.
func ReadArtifact(ctx context.Context, path string, jobs int, timer *observ.Timer) (*tac.Module, error) {
	phase := -1
	if timer != nil {
		phase = timer.Begin("decode")
	}
	m, err := tac.ReadFile(path)
	if timer != nil {
		timer.End(phase, path)
	}
	if err != nil {
		return nil, err
	}
	if err := CheckModule(ctx, m, jobs); err != nil {
		return nil, fmt.Errorf("artifact %s: %w", path, err)
	}
	return m, nil
}

func noteFuncs(m *tac.Module) string {
	return fmt.Sprintf("funcs=%d", len(m.Funcs))
}
