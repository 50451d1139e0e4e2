// Package filesystem provides the local upload directory for facerelay.
// Writes are atomic (temp file plus rename) and hashed with SHA-256.
package filesystem

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sagarc03/facerelay"
)

// Store provides file system storage operations.
type Store struct {
	root *os.Root
}

// NewFileStorage creates a new Store with the given root directory.
// The root provides sandboxed file operations preventing path traversal.
func NewFileStorage(root *os.Root) *Store {
	return &Store{root: root}
}

// Open creates dir if needed and returns a Store rooted at it along with the
// root handle, which the caller must close.
func Open(dir string) (*Store, *os.Root, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, nil, fmt.Errorf("create upload directory: %w", err)
	}

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("open upload directory: %w", err)
	}

	return NewFileStorage(root), root, nil
}

// Location returns the path a stored name is reported under.
func (s *Store) Location(name string) string {
	return filepath.ToSlash(filepath.Join(s.root.Name(), name))
}

// Get opens a file for reading. Returns facerelay.ErrNotFound if the file does not exist.
func (s *Store) Get(ctx context.Context, name string) (io.ReadSeekCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := s.root.Open(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, facerelay.ErrNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return f, nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *ctxReader) Read(p []byte) (n int, err error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}

// Write atomically writes content under name using a temp file and rename,
// replacing any file already stored under that name. It returns the number
// of bytes written, the SHA256-based etag, the location of the file and
// its content type.
// The operation respects context cancellation.
func (s *Store) Write(ctx context.Context, name string, content io.Reader) (facerelay.SaveResult, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return facerelay.SaveResult{}, ctxErr
	}

	tmpFile := tmpFileName()
	t, createErr := s.root.Create(tmpFile)
	if createErr != nil {
		return facerelay.SaveResult{}, fmt.Errorf("could not open temp file: %w", createErr)
	}

	success := false
	defer func() {
		if closeErr := t.Close(); closeErr != nil {
			slog.Warn("failed to close tmp file", "err", closeErr)
		}
		if !success {
			if rmErr := s.root.Remove(tmpFile); rmErr != nil {
				slog.Warn("failed to remove tmp file", "err", rmErr)
			}
		}
	}()

	h := sha256.New()
	w := io.MultiWriter(h, t)

	fileSizeBytes, err := io.Copy(w, &ctxReader{ctx: ctx, r: content})
	if err != nil {
		return facerelay.SaveResult{}, fmt.Errorf("could not copy file contents: %w", err)
	}

	err = t.Sync()
	if err != nil {
		return facerelay.SaveResult{}, fmt.Errorf("could not sync written file: %w", err)
	}

	if renameErr := s.root.Rename(tmpFile, name); renameErr != nil {
		return facerelay.SaveResult{}, fmt.Errorf("failed to rename file: %w", renameErr)
	}

	success = true

	return facerelay.SaveResult{
		BytesWritten: fileSizeBytes,
		Etag:         hex.EncodeToString(h.Sum(nil)),
		Location:     s.Location(name),
		ContentType:  ContentType(name),
	}, nil
}

// ContentType returns the MIME type for a stored name based on its extension.
func ContentType(name string) string {
	contentType := mime.TypeByExtension(filepath.Ext(name))

	if contentType == "" {
		return "application/octet-stream"
	}

	return contentType
}

func tmpFileName() string {
	return fmt.Sprintf(".t%s", uuid.New().String())
}
