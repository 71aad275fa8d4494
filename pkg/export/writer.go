package export

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/KeleWarg/design-theme-library/pkg/generate"
)

// AssetLoader fetches the bytes behind an AssetRef. The default loader is
// wired by the CLI (ingest.FetchSource); a nil loader skips assets with a
// warning instead of failing the write.
type AssetLoader func(ctx context.Context, url string) ([]byte, error)

// Writer materializes a built package on disk or into a zip archive.
type Writer struct {
	logger    *slog.Logger
	loadAsset AssetLoader
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithWriterLogger sets the writer's logger.
func WithWriterLogger(logger *slog.Logger) WriterOption {
	return func(w *Writer) { w.logger = logger }
}

// WithAssetLoader sets the loader used for font and other binary assets.
func WithAssetLoader(load AssetLoader) WriterOption {
	return func(w *Writer) { w.loadAsset = load }
}

// NewWriter creates a Writer.
func NewWriter(opts ...WriterOption) *Writer {
	w := &Writer{logger: slog.Default()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// sortedKeys returns the package paths in deterministic write order.
func sortedKeys(files map[string]generate.File) []string {
	keys := make([]string, 0, len(files))
	for k := range files {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WriteDir writes every package file under dir, creating directories as
// needed. Per-file failures are joined; text files that already wrote stay
// on disk.
func (w *Writer) WriteDir(ctx context.Context, res *Result, dir string) error {
	var errs []error
	for _, key := range sortedKeys(res.Files) {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		data, err := w.fileBytes(ctx, key, res.Files[key])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if data == nil {
			continue // skipped asset
		}

		target := filepath.Join(dir, filepath.FromSlash(key))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			errs = append(errs, fmt.Errorf("mkdir for %s: %w", key, err))
			continue
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			errs = append(errs, fmt.Errorf("write %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// WriteArchive streams the package as a zip archive.
func (w *Writer) WriteArchive(ctx context.Context, res *Result, out io.Writer) error {
	zw := zip.NewWriter(out)
	var errs []error
	for _, key := range sortedKeys(res.Files) {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		data, err := w.fileBytes(ctx, key, res.Files[key])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if data == nil {
			continue
		}

		entry, err := zw.Create(key)
		if err != nil {
			errs = append(errs, fmt.Errorf("archive entry %s: %w", key, err))
			continue
		}
		if _, err := entry.Write(data); err != nil {
			errs = append(errs, fmt.Errorf("archive write %s: %w", key, err))
		}
	}
	if err := zw.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close archive: %w", err))
	}
	return errors.Join(errs...)
}

// fileBytes resolves a package file to its bytes. Assets go through the
// loader; nil bytes with nil error means the file was deliberately skipped.
func (w *Writer) fileBytes(ctx context.Context, key string, f generate.File) ([]byte, error) {
	if f.Asset == nil {
		return []byte(f.Text), nil
	}
	if w.loadAsset == nil {
		w.logger.Warn("no asset loader configured, skipping", "path", key, "url", f.Asset.URL)
		return nil, nil
	}
	data, err := w.loadAsset(ctx, f.Asset.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch asset %s: %w", key, err)
	}
	return data, nil
}
