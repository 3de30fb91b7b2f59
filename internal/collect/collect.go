// Package collect resolves a glob pattern to the result files to summarize.
package collect

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// DefaultPattern is used when no pattern is configured.
const DefaultPattern = "*.json"

const globMeta = "*?[{\\"

// Collect returns the files in fs matching pattern, sorted lexically.
// A pattern without glob metacharacters names a single file. Zero matches is
// not an error, a malformed pattern is. Names starting with a dot are only
// matched by a pattern segment that starts with a dot. A leading "./" in the
// pattern is kept on every returned path.
func Collect(fs afero.Fs, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	raw := filepath.ToSlash(pattern)
	pattern = path.Clean(raw)
	prefix := ""
	if strings.HasPrefix(raw, "./") && pattern != "." {
		prefix = "./"
	}

	if !strings.ContainsAny(pattern, globMeta) {
		info, err := fs.Stat(filepath.FromSlash(pattern))
		if err != nil || info.IsDir() {
			return []string{}, nil
		}
		return []string{prefix + pattern}, nil
	}

	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	root, rest := splitStatic(pattern)
	segments := strings.Split(rest, "/")
	maxDepth := -1
	if !strings.Contains(rest, "**") && !strings.Contains(rest, "{") {
		maxDepth = len(segments)
	}

	matches := []string{}
	err := afero.Walk(fs, filepath.FromSlash(root), func(p string, info os.FileInfo, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal.
			return nil
		}
		name := filepath.ToSlash(p)
		if name == root {
			return nil
		}
		depth := relativeDepth(root, name)

		if strings.HasPrefix(info.Name(), ".") && !allowsHidden(segments, depth, maxDepth >= 0) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			if maxDepth >= 0 && depth >= maxDepth {
				return filepath.SkipDir
			}
			return nil
		}
		if maxDepth >= 0 && depth != maxDepth {
			return nil
		}

		ok, err := doublestar.Match(pattern, name)
		if err != nil {
			return fmt.Errorf("matching %s: %w", name, err)
		}
		if ok {
			matches = append(matches, prefix+name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(matches)
	return matches, nil
}

// allowsHidden reports whether a dot-prefixed entry depth segments below the
// walk root may match. With a fixed depth only the segment at that position
// counts; otherwise any dot-prefixed segment allows it.
func allowsHidden(segments []string, depth int, fixed bool) bool {
	if fixed {
		return depth <= len(segments) && strings.HasPrefix(segments[depth-1], ".")
	}
	for _, seg := range segments {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}

// splitStatic splits a cleaned pattern into the leading directory without
// glob metacharacters and the remaining segments.
func splitStatic(pattern string) (root, rest string) {
	segments := strings.Split(pattern, "/")
	i := 0
	for i < len(segments)-1 && !strings.ContainsAny(segments[i], globMeta) {
		i++
	}

	root = strings.Join(segments[:i], "/")
	switch {
	case root == "" && strings.HasPrefix(pattern, "/"):
		root = "/"
	case root == "":
		root = "."
	}
	return root, strings.Join(segments[i:], "/")
}

// relativeDepth returns how many segments name lies below root.
func relativeDepth(root, name string) int {
	if name == root {
		return 0
	}
	rel := name
	switch root {
	case ".":
	case "/":
		rel = strings.TrimPrefix(name, "/")
	default:
		rel = strings.TrimPrefix(name, root+"/")
	}
	return strings.Count(rel, "/") + 1
}
