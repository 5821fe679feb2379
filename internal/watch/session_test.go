package watch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aabha-lang/aabhalint/internal/lint"
	"github.com/aabha-lang/aabhalint/internal/lint/rules"
	"github.com/aabha-lang/aabhalint/internal/report"
)

const sessionFixture = `@Context({ name: 'Orders' })
class Orders {}
`

func newTestSession(t *testing.T, paths []string) (*Session, *bytes.Buffer) {
	t.Helper()

	engine := lint.NewEngine(rules.All, nil)
	runner := lint.NewRunner(engine, lint.RunnerConfig{})
	out := &bytes.Buffer{}

	session, err := NewSession(SessionConfig{
		Paths:    paths,
		Runner:   runner,
		Reporter: &report.TextReporter{NoColor: true},
		Out:      out,
	})
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	return session, out
}

func TestSession_LintPass(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "session-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	file := filepath.Join(tmpDir, "orders.aabha")
	if err := os.WriteFile(file, []byte(sessionFixture), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	session, out := newTestSession(t, []string{tmpDir})
	session.ctx = context.Background()

	if err := session.lintFiles([]string{file}); err != nil {
		t.Fatalf("lintFiles failed: %v", err)
	}

	if !strings.Contains(out.String(), "context-description") {
		t.Errorf("Expected context-description diagnostic in output, got:\n%s", out.String())
	}

	snapshot := session.snapshot()
	if len(snapshot.Files) != 1 {
		t.Fatalf("Expected 1 file in snapshot, got %d", len(snapshot.Files))
	}
	if snapshot.Summary.Problems == 0 {
		t.Error("Expected at least one problem in summary")
	}
}

func TestSession_RemovedFileDropsFromSnapshot(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "session-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	file := filepath.Join(tmpDir, "orders.aabha")
	if err := os.WriteFile(file, []byte(sessionFixture), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	session, _ := newTestSession(t, []string{tmpDir})
	session.ctx = context.Background()

	if err := session.lintFiles([]string{file}); err != nil {
		t.Fatalf("lintFiles failed: %v", err)
	}
	if len(session.snapshot().Files) != 1 {
		t.Fatal("Expected 1 file before removal")
	}

	if err := os.Remove(file); err != nil {
		t.Fatalf("Failed to remove file: %v", err)
	}
	if err := session.handleChanges([]string{file}); err != nil {
		t.Fatalf("handleChanges failed: %v", err)
	}

	if len(session.snapshot().Files) != 0 {
		t.Error("Expected snapshot to drop removed file")
	}
}

func TestSession_SnapshotOrder(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "session-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	var files []string
	for _, name := range []string{"zulu.aabha", "alpha.aabha", "mike.aabha"} {
		file := filepath.Join(tmpDir, name)
		if err := os.WriteFile(file, []byte(sessionFixture), 0644); err != nil {
			t.Fatalf("Failed to write fixture: %v", err)
		}
		files = append(files, file)
	}

	session, _ := newTestSession(t, []string{tmpDir})
	session.ctx = context.Background()

	if err := session.lintFiles(files); err != nil {
		t.Fatalf("lintFiles failed: %v", err)
	}

	snapshot := session.snapshot()
	if len(snapshot.Files) != 3 {
		t.Fatalf("Expected 3 files, got %d", len(snapshot.Files))
	}
	for i := 1; i < len(snapshot.Files); i++ {
		if snapshot.Files[i-1].File > snapshot.Files[i].File {
			t.Errorf("Snapshot files not sorted: %s before %s",
				snapshot.Files[i-1].File, snapshot.Files[i].File)
		}
	}
}

func TestSession_RunRelintsOnChange(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "session-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	file := filepath.Join(tmpDir, "orders.aabha")
	if err := os.WriteFile(file, []byte(sessionFixture), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	session, out := newTestSession(t, []string{tmpDir})

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := session.Run(ctx); err != nil {
			t.Errorf("Run returned error: %v", err)
		}
	}()

	// Let the initial pass and watcher startup finish
	time.Sleep(400 * time.Millisecond)

	if err := os.WriteFile(file, []byte(sessionFixture+"\n"), 0644); err != nil {
		t.Fatalf("Failed to modify file: %v", err)
	}

	time.Sleep(400 * time.Millisecond)
	cancel()
	wg.Wait()

	if !strings.Contains(out.String(), "file(s) changed") {
		t.Errorf("Expected re-lint banner in output, got:\n%s", out.String())
	}
}
