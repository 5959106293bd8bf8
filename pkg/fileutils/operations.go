package fileutils

import (
	"os"

	"github.com/pkg/errors"
)

// ErrTargetExists is returned by RenameNoOverwrite when something already
// occupies the destination.
var ErrTargetExists = errors.New("target already exists")

// Exists reports whether anything (file, directory, symlink) occupies path.
// Symlinks are not followed.
func Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, errors.WithStack(err)
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, errors.WithStack(err)
	}
	return info.IsDir(), nil
}

// RenameNoOverwrite renames src to dst and never replaces an existing dst.
// It returns ErrTargetExists when dst is occupied.
func RenameNoOverwrite(src, dst string) error {
	return renameNoReplace(src, dst)
}

// checkThenRename is the portable fallback. The gap between the check and the
// rename is not protected against other processes.
func checkThenRename(src, dst string) error {
	exists, err := Exists(dst)
	if err != nil {
		return err
	}
	if exists {
		return errors.WithStack(ErrTargetExists)
	}
	if err := os.Rename(src, dst); err != nil {
		return errors.WithStack(err)
	}
	return nil
}
