package fsutil

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// IsPattern reports whether path contains glob metacharacters.
func IsPattern(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}

// Glob returns the regular files matching pattern, which may use "**" to
// cross directories, in lexical order. A pattern matching nothing is an
// error wrapping fs.ErrNotExist.
func Glob(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("pattern %q matches no files: %w", pattern, fs.ErrNotExist)
	}
	sort.Strings(matches)
	return matches, nil
}
