package worker

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/shishobooks/removecrud/pkg/mediafile"
)

// FileEntry is a supported file found by a scan.
type FileEntry struct {
	Path string
	Dir  string
	Name string
	// Ext is the recognized extension, lowercase.
	Ext string
}

// ScanResult holds what a scan found. Err is the first traversal error, if
// any; Files still holds everything found outside the failed subtrees.
type ScanResult struct {
	Files []FileEntry
	Err   error
}

// Scan walks root recursively and returns every regular file whose name
// carries a supported extension. A symlinked root is resolved first; symlinks
// below it aren't followed. Unreadable directories are logged and skipped, so
// the result may be partial; the scan itself never fails.
func Scan(ctx context.Context, root string) *ScanResult {
	log := logger.FromContext(ctx).Data(logger.Data{"root": root})
	result := &ScanResult{Files: make([]FileEntry, 0)}

	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		log.Warn("error resolving directory", logger.Data{"error": err.Error()})
		result.Err = errors.WithStack(err)
		return result
	}

	err = filepath.WalkDir(resolved, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn("error getting supported files", logger.Data{"path": path, "error": err.Error()})
			if result.Err == nil {
				result.Err = errors.WithStack(err)
			}
			// Returning nil skips the unreadable directory and carries on.
			return nil
		}
		if !d.Type().IsRegular() {
			// Directories are walked into; symlinks and devices are ignored.
			return nil
		}

		name := d.Name()
		ext, ok := mediafile.Recognize(name)
		if !ok {
			return nil
		}

		// Report paths under root as given, even when it was a symlink.
		rel, err := filepath.Rel(resolved, path)
		if err != nil {
			return errors.WithStack(err)
		}
		path = filepath.Join(root, rel)

		result.Files = append(result.Files, FileEntry{
			Path: path,
			Dir:  filepath.Dir(path),
			Name: name,
			Ext:  ext,
		})
		return nil
	})
	if err != nil && result.Err == nil {
		result.Err = errors.WithStack(err)
	}

	log.Debug("finished scan", logger.Data{"count": len(result.Files)})
	return result
}
