package runner

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/arthur-debert/docforge/pkg/config"
	"github.com/arthur-debert/docforge/pkg/mode"
	"github.com/arthur-debert/docforge/pkg/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_CoalescesBurst(t *testing.T) {
	var mu sync.Mutex
	var batches [][]string
	d := NewDebouncer(30*time.Millisecond, 10, func(paths []string) {
		mu.Lock()
		batches = append(batches, paths)
		mu.Unlock()
	})

	d.Add("b.go")
	d.Add("a.go")
	d.Add("b.go")

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(batches) == 1
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	assert.Equal(t, []string{"a.go", "b.go"}, batches[0])
	mu.Unlock()
}

func TestDebouncer_MaxBatchFlushesImmediately(t *testing.T) {
	flushed := make(chan []string, 1)
	d := NewDebouncer(time.Hour, 2, func(paths []string) { flushed <- paths })

	d.Add("a.go")
	d.Add("b.go")

	select {
	case paths := <-flushed:
		assert.Equal(t, []string{"a.go", "b.go"}, paths)
	case <-time.After(time.Second):
		t.Fatal("batch was not flushed")
	}
}

func TestDebouncer_Stop(t *testing.T) {
	called := make(chan struct{}, 1)
	d := NewDebouncer(10*time.Millisecond, 10, func([]string) { called <- struct{}{} })

	d.Add("a.go")
	d.Stop()
	d.Add("b.go")

	select {
	case <-called:
		t.Fatal("flushed after Stop")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestWatcher_Matches(t *testing.T) {
	settings := config.Default().Viewer
	w, err := NewWatcher(WatchOptions{Root: t.TempDir(), Watch: settings.Watch, Ignore: settings.Ignore}, nil)
	require.NoError(t, err)
	defer w.Close()

	tests := []struct {
		path string
		want bool
	}{
		{"main.go", true},
		{"sim/model.go", true},
		{"refs.bib", true},
		{"data/runs.csv", true},
		{"docforge.toml", true},
		{"main.md", false},
		{"main.pdf", false},
		{"figures/plot.png", false},
		{".git/HEAD", false},
		{"notes.txt", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, w.Matches(tt.path))
		})
	}
}

func TestWatcher_ReportsChanges(t *testing.T) {
	dir := t.TempDir()
	changes := make(chan []string, 4)
	w, err := NewWatcher(WatchOptions{
		Root:     dir,
		Watch:    []string{"**/*.go"},
		Ignore:   []string{"figures/**"},
		Debounce: 20 * time.Millisecond,
	}, func(paths []string) { changes <- paths })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main"), 0644))

	select {
	case paths := <-changes:
		assert.Equal(t, []string{"main.go"}, paths)
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestView_RestartsOnChange(t *testing.T) {
	dir, doc := writeDoc(t)
	settings := config.Default()
	settings.Viewer.Debounce = 20 * time.Millisecond
	fake := &fakeRunner{block: true, started: make(chan struct{}, 4)}
	r := New(settings, WithCommandRunner(fake))

	var mu sync.Mutex
	var triggers [][]string
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- r.View(ctx, ViewOptions{
			Doc:    doc,
			Format: widget.FormatText,
			OnRun: func(changed []string) {
				mu.Lock()
				triggers = append(triggers, changed)
				mu.Unlock()
			},
		})
	}()

	waitStarted(t, fake.started)
	require.NoError(t, os.WriteFile(doc, []byte("package main\n\nfunc main() { println() }\n"), 0644))
	waitStarted(t, fake.started)

	cancel()
	require.NoError(t, <-done)

	calls := fake.calls()
	require.GreaterOrEqual(t, len(calls), 2)
	for _, c := range calls {
		assert.Equal(t, dir, c.Dir)
		assert.Equal(t, "1", envValue(c.Env, mode.EnvViewer))
		assert.Equal(t, "text", envValue(c.Env, widget.EnvFormat))
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Nil(t, triggers[0], "the first run has no trigger")
	changed := triggers[1]
	sort.Strings(changed)
	assert.Equal(t, []string{"report.go"}, changed)
}

func waitStarted(t *testing.T, started <-chan struct{}) {
	t.Helper()
	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("document run did not start")
	}
}

func TestExecRunner_CancelKillsSpawnedPrograms(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("process groups are unix only")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	dir := t.TempDir()
	marker := filepath.Join(dir, "marker")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- ExecRunner{}.Run(ctx, Command{
			Name:   "sh",
			Args:   []string{"-c", "(sleep 1; echo late > marker) & wait"},
			Dir:    dir,
			Stdout: io.Discard,
			Stderr: io.Discard,
		})
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}

	time.Sleep(1500 * time.Millisecond)
	_, err := os.Stat(marker)
	assert.True(t, os.IsNotExist(err), "background program kept running after cancellation")
}
