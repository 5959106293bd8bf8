package mediafile

import (
	"path/filepath"
	"sort"
	"strings"
)

// Category groups allow-listed extensions by the kind of media they hold.
type Category string

const (
	CategoryVideo    Category = "video"
	CategorySubtitle Category = "subtitle"
	CategoryImage    Category = "image"
)

// extensions is the fixed allow-list. Keys are lowercase and dot-prefixed.
var extensions = map[string]Category{
	// Video files
	".mp4": CategoryVideo,
	".mkv": CategoryVideo,
	".avi": CategoryVideo,
	".mov": CategoryVideo,
	".wmv": CategoryVideo,
	".flv": CategoryVideo,
	// Subtitle files
	".srt": CategorySubtitle,
	".sub": CategorySubtitle,
	".ass": CategorySubtitle,
	".ssa": CategorySubtitle,
	".vtt": CategorySubtitle,
	// Image files
	".jpg":  CategoryImage,
	".jpeg": CategoryImage,
	".png":  CategoryImage,
	".gif":  CategoryImage,
	".webp": CategoryImage,
}

// Extensions returns the allow-list sorted alphabetically.
func Extensions() []string {
	exts := make([]string, 0, len(extensions))
	for ext := range extensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// IsSupported reports whether ext (with its leading dot, any casing) is on the
// allow-list.
func IsSupported(ext string) bool {
	_, ok := extensions[LowerASCII(ext)]
	return ok
}

// CategoryOf returns the category of ext, or "" when ext isn't supported.
func CategoryOf(ext string) Category {
	return extensions[LowerASCII(ext)]
}

// Recognize finds the allow-listed extension carried by name. It returns the
// lowercase extension and whether one was found.
//
// A name carries an extension when its final extension is on the allow-list
// ("movie.mkv"), or when an allow-listed token is followed by trailing
// characters that start with something other than a letter or digit
// ("movie.mkv.xyz123", "movie.mkv-RARBG"). In the second case the last such
// token wins. ".Subway" or ".avif" are never read as ".sub" or ".avi".
func Recognize(name string) (string, bool) {
	if ext := LowerASCII(filepath.Ext(name)); IsSupported(ext) {
		return ext, true
	}

	lower := LowerASCII(name)
	for i := strings.LastIndexByte(lower, '.'); i >= 0; i = strings.LastIndexByte(lower[:i], '.') {
		for ext := range extensions {
			if IsTokenAt(lower, ext, i, len(lower)) && i+len(ext) < len(lower) {
				return ext, true
			}
		}
	}
	return "", false
}

// IsTokenAt reports whether lower[i:] starts with ext and the match ends a
// token: either at limit or before a byte that isn't an ASCII letter or digit.
// Bytes of multi-byte runes count as letters.
func IsTokenAt(lower, ext string, i, limit int) bool {
	end := i + len(ext)
	if end > limit || lower[i:end] != ext {
		return false
	}
	return end == limit || !isWordByte(lower[end])
}

// LowerASCII lowercases A-Z only, so byte offsets into the result are valid
// offsets into s.
func LowerASCII(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; 'A' <= c && c <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if 'A' <= b[j] && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}

func isWordByte(c byte) bool {
	return c >= 0x80 ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}
