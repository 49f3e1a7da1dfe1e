package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cdcx/internal/core/domain"
	"github.com/custodia-labs/cdcx/internal/core/ports/driving"
)

// mockImportService records every import it is asked to run.
type mockImportService struct {
	mu    sync.Mutex
	paths []string
	opts  []driving.ImportOptions
	err   error
}

func (m *mockImportService) Import(_ context.Context, path string, opts driving.ImportOptions) (*domain.ImportResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paths = append(m.paths, path)
	m.opts = append(m.opts, opts)
	if m.err != nil {
		return nil, m.err
	}
	return &domain.ImportResult{Path: path, Stored: 1}, nil
}

func (m *mockImportService) imported() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.paths...)
}

func TestNew_RequiresImporter(t *testing.T) {
	_, err := New(nil, Options{})

	assert.ErrorIs(t, err, ErrMissingImportService)
}

func TestNew_Defaults(t *testing.T) {
	w, err := New(&mockImportService{}, Options{})

	require.NoError(t, err)
	assert.Equal(t, DefaultSettle, w.opts.Settle)
}

func TestIsStatement(t *testing.T) {
	assert.True(t, IsStatement("/inbox/statement.pdf"))
	assert.True(t, IsStatement("REPORT.PDF"))
	assert.False(t, IsStatement("/inbox/.statement.pdf"))
	assert.False(t, IsStatement("/inbox/statement.pdf.part"))
	assert.False(t, IsStatement("/inbox/notes.txt"))
}

func TestShouldImport(t *testing.T) {
	dir := t.TempDir()
	pdf := filepath.Join(dir, "statement.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF"), 0600))
	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0600))
	sub := filepath.Join(dir, "archive.pdf")
	require.NoError(t, os.Mkdir(sub, 0700))

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{name: "create pdf", event: fsnotify.Event{Name: pdf, Op: fsnotify.Create}, want: true},
		{name: "write pdf", event: fsnotify.Event{Name: pdf, Op: fsnotify.Write}, want: true},
		{name: "write and chmod", event: fsnotify.Event{Name: pdf, Op: fsnotify.Write | fsnotify.Chmod}, want: true},
		{name: "chmod only", event: fsnotify.Event{Name: pdf, Op: fsnotify.Chmod}},
		{name: "remove", event: fsnotify.Event{Name: pdf, Op: fsnotify.Remove}},
		{name: "not a pdf", event: fsnotify.Event{Name: txt, Op: fsnotify.Create}},
		{name: "directory", event: fsnotify.Event{Name: sub, Op: fsnotify.Create}},
		{name: "vanished", event: fsnotify.Event{Name: filepath.Join(dir, "gone.pdf"), Op: fsnotify.Create}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, ok := shouldImport(tt.event)
			assert.Equal(t, tt.want, ok)
			if tt.want {
				assert.Equal(t, tt.event.Name, path)
			}
		})
	}
}

func TestWatcher_Due(t *testing.T) {
	w, err := New(&mockImportService{}, Options{Settle: time.Second})
	require.NoError(t, err)

	now := time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return now }
	w.pending["/inbox/b.pdf"] = now.Add(-2 * time.Second)
	w.pending["/inbox/a.pdf"] = now.Add(-time.Second)
	w.pending["/inbox/c.pdf"] = now.Add(-100 * time.Millisecond)

	assert.Equal(t, []string{"/inbox/a.pdf", "/inbox/b.pdf"}, w.due())
	assert.Len(t, w.pending, 1)
	assert.Empty(t, w.due())
}

func TestWatcher_ImportFile_ReportsResult(t *testing.T) {
	importer := &mockImportService{err: errors.New("broken pdf")}
	var gotPath string
	var gotErr error
	w, err := New(importer, Options{DryRun: true, OnResult: func(path string, _ *domain.ImportResult, err error) {
		gotPath, gotErr = path, err
	}})
	require.NoError(t, err)

	require.NoError(t, w.importFile(context.Background(), "/inbox/a.pdf"))

	assert.Equal(t, "/inbox/a.pdf", gotPath)
	assert.EqualError(t, gotErr, "broken pdf")
	assert.True(t, importer.opts[0].DryRun)
}

func TestWatcher_ImportFile_CancelledWhileThrottled(t *testing.T) {
	importer := &mockImportService{}
	w, err := New(importer, Options{ImportsPerMinute: 1})
	require.NoError(t, err)

	// The first import spends the only token.
	require.NoError(t, w.importFile(context.Background(), "/inbox/a.pdf"))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.Error(t, w.importFile(ctx, "/inbox/b.pdf"))
	assert.Equal(t, []string{"/inbox/a.pdf"}, importer.imported())
}

func TestWatcher_Run_NotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "statement.pdf")
	require.NoError(t, os.WriteFile(file, nil, 0600))
	w, err := New(&mockImportService{}, Options{})
	require.NoError(t, err)

	assert.ErrorIs(t, w.Run(context.Background(), file), domain.ErrInvalidInput)
	assert.Error(t, w.Run(context.Background(), filepath.Join(t.TempDir(), "missing")))
}

func TestWatcher_Run_ImportsNewAndExistingFiles(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "existing.pdf")
	require.NoError(t, os.WriteFile(existing, []byte("%PDF"), 0600))

	importer := &mockImportService{}
	w, err := New(importer, Options{Settle: 100 * time.Millisecond, ImportExisting: true})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, dir) }()

	require.Eventually(t, func() bool {
		return len(importer.imported()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	dropped := filepath.Join(dir, "dropped.pdf")
	require.NoError(t, os.WriteFile(dropped, []byte("%PDF"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0600))

	require.Eventually(t, func() bool {
		return len(importer.imported()) == 2
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, []string{existing, dropped}, importer.imported())
}
