package grep_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/askiada/pipegrep/internal/config"
	"github.com/askiada/pipegrep/internal/fsys"
)

type fakeFile struct {
	content string
	md      fsys.Metadata
	openErr error
}

// fakeFS is an in-memory fsys.FS.
type fakeFS struct {
	files    map[string]fakeFile
	vanished []string
	listErr  error
}

func (f *fakeFS) ListRegular(_ context.Context) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}

	names := make([]string, 0, len(f.files)+len(f.vanished))
	for name := range f.files {
		names = append(names, name)
	}

	names = append(names, f.vanished...)

	sort.Strings(names)

	return names, nil
}

func (f *fakeFS) Lstat(name string) (fsys.Metadata, error) {
	if slices.Contains(f.vanished, name) {
		return fsys.Metadata{}, fsys.ErrNotFound
	}

	file, ok := f.files[name]
	if !ok {
		return fsys.Metadata{}, fsys.ErrStat
	}

	md := file.md
	if md.Size == 0 {
		md.Size = int64(len(file.content))
	}

	return md, nil
}

func (f *fakeFS) Open(name string) (io.ReadCloser, error) {
	file, ok := f.files[name]
	if !ok {
		return nil, fsys.ErrOpenFile
	}

	if file.openErr != nil {
		return nil, file.openErr
	}

	return io.NopCloser(strings.NewReader(file.content)), nil
}

var _ fsys.FS = (*fakeFS)(nil)

func newConfig(t *testing.T, bufferSize int, size, uid, gid int64, pattern string) *config.Config {
	t.Helper()

	return &config.Config{
		BufferSize:    bufferSize,
		SizeThreshold: size,
		OwnerID:       uid,
		GroupID:       gid,
		Pattern:       pattern,
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()

	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}
