package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func TestFindDatasetFiles(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)

	touch(t, dir, "old.csv", base)
	touch(t, dir, "new.xlsx", base.Add(10*time.Minute))
	touch(t, dir, "notes.txt", base.Add(20*time.Minute))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0755))

	files, err := NewDiscovery(".").FindDatasetFiles(dir)
	require.NoError(t, err)

	require.Len(t, files, 2)
	assert.Equal(t, "old.csv", files[0].Name)
	assert.Equal(t, "new.xlsx", files[1].Name)
}

func TestFindDatasetFiles_MissingDir(t *testing.T) {
	_, err := NewDiscovery(".").FindDatasetFiles(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestFindDatasetFiles_RelativeToBase(t *testing.T) {
	base := t.TempDir()
	sub := filepath.Join(base, "data")
	require.NoError(t, os.Mkdir(sub, 0755))
	touch(t, sub, "reviews.csv", time.Now())

	files, err := NewDiscovery(base).FindDatasetFiles("data")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "reviews.csv", files[0].Name)
}

func TestLatestDataset(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	touch(t, dir, "first.csv", base)
	latest := touch(t, dir, "second.csv", base.Add(time.Minute))

	got, err := NewDiscovery(".").LatestDataset(dir)
	require.NoError(t, err)
	assert.Equal(t, latest, got.Path)
}

func TestLatestDataset_Empty(t *testing.T) {
	_, err := NewDiscovery(".").LatestDataset(t.TempDir())
	assert.Error(t, err)
}
