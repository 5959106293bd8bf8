package fileutils

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/shishobooks/removecrud/pkg/mediafile"
)

// CleanName returns filename truncated right after its recognized media
// extension: "show.s01e01.mkv.xyz123" becomes "show.s01e01.mkv". Names without
// a recognized extension are returned unchanged.
//
// The cut happens at the first occurrence of the extension token, so
// "a.mkv.b.mkv" becomes "a.mkv". The casing the filename used at the cut is
// kept, so "Movie.MKV" is already clean.
func CleanName(filename string) (clean string) {
	defer func() {
		if r := recover(); r != nil {
			logger.New().Err(errors.New(fmt.Sprint(r))).Error("failed to clean filename", logger.Data{"filename": filename})
			clean = filename
		}
	}()

	ext, ok := mediafile.Recognize(filename)
	if !ok {
		return filename
	}

	lower := mediafile.LowerASCII(filename)
	limit := len(lower)
	if mediafile.LowerASCII(filepath.Ext(filename)) == ext {
		// The name already ends with the extension, so only look before it.
		limit -= len(ext)
	}

	idx := firstToken(lower, ext, limit)
	if idx < 0 {
		return filename
	}
	return filename[:idx+len(ext)]
}

// IsClean reports whether filename needs no renaming.
func IsClean(filename string) bool {
	return CleanName(filename) == filename
}

// SiblingPath returns the path of name inside the directory containing path.
func SiblingPath(path, name string) string {
	return filepath.Join(filepath.Dir(path), name)
}

func firstToken(lower, ext string, limit int) int {
	for i := 0; i < limit; {
		j := strings.Index(lower[i:limit], ext)
		if j < 0 {
			return -1
		}
		if mediafile.IsTokenAt(lower, ext, i+j, limit) {
			return i + j
		}
		i += j + 1
	}
	return -1
}
