package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopySingleFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "events.db")
	require.NoError(t, os.WriteFile(src, []byte("v1"), 0o600))

	dst := filepath.Join(dir, "backup", "events.db.bak")
	require.NoError(t, CopySingleFile(src, dst, "skip"))
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "v1", string(got))

	require.NoError(t, os.WriteFile(src, []byte("v2"), 0o600))
	require.NoError(t, CopySingleFile(src, dst, "skip"))
	got, _ = os.ReadFile(dst)
	assert.Equal(t, "v1", string(got), "skip keeps the existing copy")

	require.NoError(t, CopySingleFile(src, dst, "overwrite"))
	got, _ = os.ReadFile(dst)
	assert.Equal(t, "v2", string(got))
}

func TestIsNotExistMkDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	assert.True(t, CheckNotExist(dir))
	require.NoError(t, IsNotExistMkDir(dir))
	assert.True(t, Exists(dir))
	require.NoError(t, IsNotExistMkDir(dir))
}
