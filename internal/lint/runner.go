package lint

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// ResultCache is the slice of the cache surface the runner needs. Lint
// results are stored as JSON keyed by source checksum, so an unchanged
// file skips the whole lex/parse/rule pass.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RunnerConfig configures a multi-file lint run
type RunnerConfig struct {
	// Workers bounds the number of files linted concurrently.
	// Zero means one worker per CPU.
	Workers int
	// Cache, when set, short-circuits files whose content hash was
	// linted before.
	CacheTTL time.Duration
	Cache    ResultCache
}

// Runner lints many files concurrently. Files are independent units of
// work: no shared mutable state crosses them, so results are identical
// whatever the schedule.
type Runner struct {
	engine   *Engine
	workers  int
	cache    ResultCache
	cacheTTL time.Duration
}

// NewRunner creates a runner over the given engine
func NewRunner(engine *Engine, config RunnerConfig) *Runner {
	workers := config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ttl := config.CacheTTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &Runner{
		engine:   engine,
		workers:  workers,
		cache:    config.Cache,
		cacheTTL: ttl,
	}
}

// Engine returns the engine this runner lints with
func (r *Runner) Engine() *Engine {
	return r.engine
}

// Run lints the given files and returns one result per file, in input
// order. The first file read error aborts the run.
func (r *Runner) Run(ctx context.Context, files []string) ([]*FileResult, error) {
	results := make([]*FileResult, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.workers)

	for i, path := range files {
		i, path := i, path
		group.Go(func() error {
			select {
			case <-groupCtx.Done():
				return groupCtx.Err()
			default:
			}

			result, err := r.lintPath(groupCtx, path)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// lintPath lints a single file, consulting the result cache first
func (r *Runner) lintPath(ctx context.Context, path string) (*FileResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	source := string(data)

	if r.cache == nil {
		return r.engine.LintSource(path, source), nil
	}

	key := "result:" + Checksum(source)

	if payload, err := r.cache.Get(ctx, key); err == nil {
		var cached FileResult
		if err := json.Unmarshal(payload, &cached); err == nil {
			// The hash key is content-derived; only paths need refreshing
			cached.File = path
			for i := range cached.Diagnostics {
				cached.Diagnostics[i].Location.File = path
			}
			return &cached, nil
		}
	}

	result := r.engine.LintSource(path, source)

	if payload, err := json.Marshal(result); err == nil {
		// Best effort: a failing cache never fails the lint
		_ = r.cache.Set(ctx, key, payload, r.cacheTTL)
	}

	return result, nil
}
