// Package fsys is the thin operating system layer used by the grep stages.
package fsys

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

var (
	ErrOpenDir  = errors.New("unable to open directory")
	ErrOpenFile = errors.New("unable to open file")
	ErrStat     = errors.New("unable to stat file")
	ErrNotFound = errors.New("file no longer exists")
)

// Metadata is the subset of a file status the filters rely on.
type Metadata struct {
	Size int64
	UID  int64
	GID  int64
}

// FS gives access to the regular files of a single directory.
type FS interface {
	// ListRegular returns the names of the regular files of the directory, sorted by name.
	// Symbolic links are not followed.
	ListRegular(ctx context.Context) ([]string, error)
	// Lstat returns the metadata of name without following symbolic links.
	Lstat(name string) (Metadata, error)
	// Open opens name for reading.
	Open(name string) (io.ReadCloser, error)
}

// Dir is an FS rooted at a directory of the local file system.
type Dir struct {
	root string
}

// NewDir returns an FS rooted at root.
func NewDir(root string) *Dir {
	return &Dir{root: filepath.Clean(root)}
}

func (d *Dir) path(name string) string {
	return filepath.Join(d.root, name)
}

func (d *Dir) ListRegular(ctx context.Context) ([]string, error) {
	info, err := os.Stat(d.root)
	if err != nil {
		return nil, errors.Wrapf(ErrOpenDir, "%s: %v", d.root, err)
	}

	if !info.IsDir() {
		return nil, errors.Wrapf(ErrOpenDir, "%s: not a directory", d.root)
	}

	var (
		mu    sync.Mutex
		names []string
	)

	conf := fastwalk.Config{Follow: false}

	err = fastwalk.Walk(&conf, d.root, func(path string, entry fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return err
		}

		if filepath.Clean(path) == d.root {
			return nil
		}

		// only the top level is listed
		if entry.IsDir() {
			return fastwalk.SkipDir
		}

		if !entry.Type().IsRegular() {
			return nil
		}

		mu.Lock()
		names = append(names, entry.Name())
		mu.Unlock()

		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		return nil, errors.Wrapf(ErrOpenDir, "%s: %v", d.root, err)
	}

	sort.Strings(names)

	return names, nil
}

func (d *Dir) Lstat(name string) (Metadata, error) {
	var st unix.Stat_t

	err := unix.Lstat(d.path(name), &st)
	if errors.Is(err, unix.ENOENT) {
		return Metadata{}, errors.Wrap(ErrNotFound, name)
	}

	if err != nil {
		return Metadata{}, errors.Wrapf(ErrStat, "%s: %v", name, err)
	}

	return Metadata{
		Size: st.Size,
		UID:  int64(st.Uid),
		GID:  int64(st.Gid),
	}, nil
}

func (d *Dir) Open(name string) (io.ReadCloser, error) {
	file, err := os.Open(d.path(name))
	if err != nil {
		return nil, errors.Wrapf(ErrOpenFile, "%s: %v", name, err)
	}

	return file, nil
}

var _ FS = (*Dir)(nil)
