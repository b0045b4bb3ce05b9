package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Filesystem reads and writes local paths. Keys are paths as given on the
// command line; "-" opens stdin.
type Filesystem struct {
	// Stdin backs the "-" key. Defaults to os.Stdin.
	Stdin io.Reader
}

func (s *Filesystem) Driver() Driver { return DriverFilesystem }

func (s *Filesystem) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if key == "-" {
		in := s.Stdin
		if in == nil {
			in = os.Stdin
		}
		return io.NopCloser(in), nil
	}
	fh, err := os.Open(key)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return fh, err
}

// Put streams r to a temp file next to key, then renames it into place.
func (s *Filesystem) Put(ctx context.Context, key string, r io.Reader, _ PutOptions) (retErr error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "-" {
		return errors.New("cannot write output to stdin location \"-\"")
	}
	dir := filepath.Dir(key)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(key)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err := io.Copy(tmp, r); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), key)
}
