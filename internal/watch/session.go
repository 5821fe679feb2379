package watch

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/aabha-lang/aabhalint/internal/lint"
	"github.com/aabha-lang/aabhalint/internal/report"
	"github.com/aabha-lang/aabhalint/internal/utils"
)

// SessionConfig configures a watch session.
type SessionConfig struct {
	// Paths are the files and directories to watch.
	Paths []string
	// Runner executes the lint passes.
	Runner *lint.Runner
	// Reporter renders each pass to Out.
	Reporter report.Reporter
	// Out receives terminal output. Defaults to stdout.
	Out io.Writer
	// Debounce is the quiet window before a change batch is linted.
	Debounce time.Duration
	// DashboardPort serves the live dashboard when non-zero.
	DashboardPort int
}

// Session watches a tree of Aabha sources and re-lints files as they
// change. It keeps the latest result for every file so the dashboard
// always shows a full picture, not just the last save.
type Session struct {
	paths     []string
	runner    *lint.Runner
	reporter  report.Reporter
	out       io.Writer
	debounce  time.Duration
	dashboard *Dashboard

	results map[string]*lint.FileResult
	mutex   sync.Mutex

	// passMutex serializes lint passes: a save burst that lands during
	// a pass waits rather than being dropped.
	passMutex sync.Mutex

	ctx context.Context
}

// NewSession creates a watch session.
func NewSession(config SessionConfig) (*Session, error) {
	if len(config.Paths) == 0 {
		config.Paths = []string{"."}
	}
	if config.Runner == nil {
		return nil, fmt.Errorf("watch session requires a runner")
	}
	if config.Reporter == nil {
		config.Reporter = &report.TextReporter{}
	}
	if config.Out == nil {
		config.Out = os.Stdout
	}

	s := &Session{
		paths:    config.Paths,
		runner:   config.Runner,
		reporter: config.Reporter,
		out:      config.Out,
		debounce: config.Debounce,
		results:  make(map[string]*lint.FileResult),
	}

	if config.DashboardPort > 0 {
		s.dashboard = NewDashboard(config.DashboardPort)
	}

	return s, nil
}

// Run performs an initial pass over all sources, then blocks re-linting
// changed files until the context is cancelled.
func (s *Session) Run(ctx context.Context) error {
	s.ctx = ctx

	if s.dashboard != nil {
		if err := s.dashboard.Start(); err != nil {
			return fmt.Errorf("failed to start dashboard: %w", err)
		}
		defer s.dashboard.Close()
		fmt.Fprintf(s.out, "Dashboard running at %s\n", s.dashboard.URL())
	}

	files, err := utils.FindAabhaFiles(s.paths...)
	if err != nil {
		return fmt.Errorf("failed to discover files: %w", err)
	}
	if err := s.lintFiles(files); err != nil {
		return err
	}

	watcher, err := NewFileWatcher(s.paths, s.debounce, s.handleChanges)
	if err != nil {
		return err
	}
	if err := watcher.Start(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Stop()

	fmt.Fprintln(s.out, "Watching for changes... (ctrl-c to stop)")

	<-ctx.Done()
	return nil
}

// handleChanges is the debounced watcher callback.
func (s *Session) handleChanges(changed []string) error {
	var existing []string
	var removed []string
	for _, path := range changed {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			removed = append(removed, path)
		} else {
			existing = append(existing, path)
		}
	}

	if len(removed) > 0 {
		s.mutex.Lock()
		for _, path := range removed {
			delete(s.results, path)
		}
		s.mutex.Unlock()
	}

	if len(existing) == 0 {
		if len(removed) > 0 {
			s.publish()
		}
		return nil
	}

	fmt.Fprintf(s.out, "\n[%s] %d file(s) changed\n", time.Now().Format("15:04:05"), len(existing))
	return s.lintFiles(existing)
}

// lintFiles lints the given files, reports them, and publishes the
// merged snapshot to the dashboard.
func (s *Session) lintFiles(files []string) error {
	s.passMutex.Lock()
	defer s.passMutex.Unlock()

	if s.dashboard != nil {
		s.dashboard.NotifyLinting(files)
	}

	results, err := s.runner.Run(s.ctx, files)
	if err != nil {
		return fmt.Errorf("lint pass failed: %w", err)
	}

	s.mutex.Lock()
	for _, result := range results {
		s.results[result.File] = result
	}
	s.mutex.Unlock()

	if err := s.reporter.Report(s.out, results); err != nil {
		return err
	}

	s.publish()
	return nil
}

// publish pushes the merged state of all files to the dashboard.
func (s *Session) publish() {
	if s.dashboard == nil {
		return
	}
	s.dashboard.Publish(s.snapshot())
}

// snapshot assembles the current per-file results in path order.
func (s *Session) snapshot() *Snapshot {
	s.mutex.Lock()
	files := make([]*lint.FileResult, 0, len(s.results))
	for _, result := range s.results {
		files = append(files, result)
	}
	s.mutex.Unlock()

	sort.Slice(files, func(i, j int) bool { return files[i].File < files[j].File })

	return &Snapshot{
		GeneratedAt: time.Now(),
		Files:       files,
		Summary:     report.Summarize(files),
	}
}
