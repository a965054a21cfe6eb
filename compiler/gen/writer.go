package gen

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// FileWriter persists generated units under a Laravel project root with
// parallel writes.
type FileWriter struct {
	root string
	cfg  *Config

	// Metrics for reporting
	mu      sync.Mutex
	metrics *WriterMetrics
}

// WriterMetrics tracks what a FileWriter wrote.
type WriterMetrics struct {
	FilesWritten int
	TotalBytes   int64
	Paths        []string
}

// NewFileWriter creates a writer for the project at root.
func NewFileWriter(root string, cfg *Config) *FileWriter {
	if cfg == nil {
		cfg, _ = NewConfig()
	}
	return &FileWriter{
		root:    root,
		cfg:     cfg,
		metrics: &WriterMetrics{},
	}
}

// Metrics returns a snapshot of the write metrics.
func (w *FileWriter) Metrics() *WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	m := *w.metrics
	m.Paths = append([]string(nil), w.metrics.Paths...)
	return &m
}

// Path returns the file path of u below the project root.
func (w *FileWriter) Path(u *Unit) string {
	dir := w.cfg.ModelsDir
	if u.Kind == MigrationUnit {
		dir = w.cfg.MigrationsDir
	}
	return filepath.Join(w.root, dir, u.Name)
}

// Write writes all units, creating folders as needed. It stops at the first
// failure and returns it as a *GenerationError.
func (w *FileWriter) Write(ctx context.Context, units []*Unit) error {
	if w.root == "" {
		return NewConfigError("Root", nil, "missing project root")
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.cfg.Workers)

	for _, u := range units {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.writeUnit(u)
			}
		})
	}

	return eg.Wait()
}

// existingMigration returns the migration file already creating the table of
// u, or "" if there is none.
func (w *FileWriter) existingMigration(u *Unit) string {
	dir := filepath.Join(w.root, w.cfg.MigrationsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	suffix := "_create_" + u.Entity + "_table.php"
	for _, e := range entries {
		name := e.Name()
		// yyyy_mm_dd_hhmmss
		if !e.IsDir() && strings.HasSuffix(name, suffix) && len(name) == 17+len(suffix) {
			return filepath.Join(dir, name)
		}
	}
	return ""
}

// writeUnit writes a single unit. A migration of a table that already has
// one overwrites the existing file, so regenerating keeps its timestamp.
func (w *FileWriter) writeUnit(u *Unit) error {
	path := w.Path(u)
	if u.Kind == MigrationUnit {
		if existing := w.existingMigration(u); existing != "" {
			path = existing
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return NewGenerationError("write", path, "create directory", err)
	}
	if err := os.WriteFile(path, u.Source, 0o644); err != nil {
		return NewGenerationError("write", path, "write file", err)
	}

	w.mu.Lock()
	w.metrics.FilesWritten++
	w.metrics.TotalBytes += int64(len(u.Source))
	w.metrics.Paths = append(w.metrics.Paths, path)
	w.mu.Unlock()

	w.cfg.Logger.WithField("path", path).Info("generated")
	return nil
}
