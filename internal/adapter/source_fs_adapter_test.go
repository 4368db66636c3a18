package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "aigcap.dev/pkg/aigcap/internal/model"
)

func TestLocalSourceFSAdapter_ReadWriteRoundTrip(t *testing.T) {
	fs := NewLocalSourceFSAdapter()
	path := m.Path(filepath.Join(t.TempDir(), "f.txt"))

	require.NoError(t, fs.WriteFile(path, []byte("hello"), 0o644))

	content, err := fs.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), content)
}

func TestLocalSourceFSAdapter_Walk(t *testing.T) {
	fs := NewLocalSourceFSAdapter()
	root := t.TempDir()

	require.NoError(t, fs.MkdirAll(m.Path(filepath.Join(root, "sub", "deep")), 0o755))
	require.NoError(t, fs.WriteFile(m.Path(filepath.Join(root, "a.txt")), nil, 0o644))
	require.NoError(t, fs.WriteFile(m.Path(filepath.Join(root, "sub", "deep", "b.txt")), nil, 0o644))

	var files []string

	err := fs.Walk(m.Path(root), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() {
			files = append(files, filepath.Base(path))
		}

		return nil
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.txt", "b.txt"}, files)
}

func TestLocalSourceFSAdapter_WalkSkipDir(t *testing.T) {
	fs := NewLocalSourceFSAdapter()
	root := t.TempDir()

	require.NoError(t, fs.MkdirAll(m.Path(filepath.Join(root, "skipme")), 0o755))
	require.NoError(t, fs.WriteFile(m.Path(filepath.Join(root, "skipme", "x.txt")), nil, 0o644))
	require.NoError(t, fs.WriteFile(m.Path(filepath.Join(root, "keep.txt")), nil, 0o644))

	var files []string

	err := fs.Walk(m.Path(root), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() && filepath.Base(path) == "skipme" {
			return SkipDir
		}

		if !info.IsDir() {
			files = append(files, filepath.Base(path))
		}

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"keep.txt"}, files)
}

func TestLocalSourceFSAdapter_Paths(t *testing.T) {
	fs := NewLocalSourceFSAdapter()

	rel, err := fs.RelPath(m.Path(filepath.Join("a", "b")), m.Path(filepath.Join("a", "b", "c", "d.go")))
	require.NoError(t, err)
	assert.Equal(t, m.Path(filepath.Join("c", "d.go")), rel)

	joined := fs.JoinPath("a", "b", "c")
	assert.Equal(t, m.Path(filepath.Join("a", "b", "c")), joined)

	abs, err := fs.AbsPath(".")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(string(abs)))
}

func TestLocalSourceFSAdapter_FileInfo(t *testing.T) {
	fs := NewLocalSourceFSAdapter()
	root := t.TempDir()

	info, err := fs.FileInfo(m.Path(root))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = fs.FileInfo(m.Path(filepath.Join(root, "missing")))
	require.Error(t, err)
}
