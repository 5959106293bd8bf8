//go:build linux

package fileutils

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// renameNoReplace uses renameat2(RENAME_NOREPLACE) so the collision check and
// the rename are one atomic step. Filesystems without support fall back to
// checkThenRename.
func renameNoReplace(src, dst string) error {
	err := unix.Renameat2(unix.AT_FDCWD, src, unix.AT_FDCWD, dst, unix.RENAME_NOREPLACE)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, unix.EEXIST):
		return errors.WithStack(ErrTargetExists)
	case errors.Is(err, unix.ENOSYS), errors.Is(err, unix.EINVAL), errors.Is(err, unix.ENOTSUP):
		return checkThenRename(src, dst)
	default:
		return errors.WithStack(&os.LinkError{Op: "rename", Old: src, New: dst, Err: err})
	}
}
