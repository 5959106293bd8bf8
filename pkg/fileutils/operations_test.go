package fileutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/shishobooks/removecrud/internal/testgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExists(t *testing.T) {
	dir := testgen.TempDir(t, "fileutils-exists-*")
	file := testgen.WriteFile(t, dir, "movie.mkv", []byte("video"))

	exists, err := Exists(file)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = Exists(dir)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = Exists(filepath.Join(dir, "missing.mkv"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestIsDir(t *testing.T) {
	dir := testgen.TempDir(t, "fileutils-isdir-*")
	file := testgen.WriteFile(t, dir, "movie.mkv", []byte("video"))

	ok, err := IsDir(dir)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsDir(file)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = IsDir(filepath.Join(dir, "nope"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRenameNoOverwrite(t *testing.T) {
	dir := testgen.TempDir(t, "fileutils-rename-*")
	src := testgen.WriteFile(t, dir, "movie.mkv.junk", []byte("video"))
	dst := filepath.Join(dir, "movie.mkv")

	err := RenameNoOverwrite(src, dst)
	require.NoError(t, err)

	assert.False(t, testgen.FileExists(src))
	assert.Equal(t, []byte("video"), testgen.ReadFile(t, dst))
}

func TestRenameNoOverwrite_TargetExists(t *testing.T) {
	dir := testgen.TempDir(t, "fileutils-rename-*")
	src := testgen.WriteFile(t, dir, "movie.mkv.junk", []byte("new"))
	dst := testgen.WriteFile(t, dir, "movie.mkv", []byte("old"))

	err := RenameNoOverwrite(src, dst)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTargetExists))

	assert.Equal(t, []byte("new"), testgen.ReadFile(t, src))
	assert.Equal(t, []byte("old"), testgen.ReadFile(t, dst))
}

func TestRenameNoOverwrite_TargetIsDirectory(t *testing.T) {
	dir := testgen.TempDir(t, "fileutils-rename-*")
	src := testgen.WriteFile(t, dir, "movie.mkv.junk", []byte("new"))
	dst := testgen.CreateSubDir(t, dir, "movie.mkv")

	err := RenameNoOverwrite(src, dst)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTargetExists))
	assert.True(t, testgen.FileExists(src))
}

func TestRenameNoOverwrite_SourceMissing(t *testing.T) {
	dir := testgen.TempDir(t, "fileutils-rename-*")

	err := RenameNoOverwrite(filepath.Join(dir, "gone.mkv.x"), filepath.Join(dir, "gone.mkv"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrTargetExists))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
