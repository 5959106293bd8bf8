//go:build !linux

package fileutils

func renameNoReplace(src, dst string) error {
	return checkThenRename(src, dst)
}
