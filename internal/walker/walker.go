package walker

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// IgnoreFile names the per-project ignore list.
const IgnoreFile = ".coderagignore"

// maxFileSize is the largest file considered for indexing (1 MB).
const maxFileSize = 1 << 20

// defaultIgnores are used when no ignore file exists.
var defaultIgnores = []string{
	".git",
	".svn",
	".hg",
	"node_modules",
	"vendor",
	"__pycache__",
	".idea",
	".vscode",
	".coderag",
	"dist",
	"build",
}

// Collect walks the tree rooted at root and returns the candidate file
// paths in sorted order. Entries matching ignore patterns, symlinks,
// empty files, and files over the size cap are skipped. No extension
// filtering happens here — unrecognized files take the pipeline's chunking
// fallback.
func Collect(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	ignores := loadIgnorePatterns(absRoot)

	var paths []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries, keep walking
		}
		rel, _ := filepath.Rel(absRoot, path)
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path == absRoot {
				return nil
			}
			if matchesIgnore(d.Name(), rel, ignores) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if d.Name() == IgnoreFile {
			return nil
		}
		if matchesIgnore(d.Name(), rel, ignores) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.Size() > maxFileSize || info.Size() == 0 {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// loadIgnorePatterns reads the ignore file from the project root, falling
// back to the defaults when it is missing or empty.
func loadIgnorePatterns(root string) []string {
	f, err := os.Open(filepath.Join(root, IgnoreFile))
	if err != nil {
		return defaultIgnores
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if len(patterns) == 0 {
		return defaultIgnores
	}
	return patterns
}

// matchesIgnore checks a directory name or relative path against the
// ignore patterns: exact names, path prefixes, and globs.
func matchesIgnore(name, relPath string, patterns []string) bool {
	for _, p := range patterns {
		if name == p {
			return true
		}
		if relPath == p || strings.HasPrefix(relPath, p+"/") {
			return true
		}
		if matched, _ := filepath.Match(p, relPath); matched {
			return true
		}
		if matched, _ := filepath.Match(p, name); matched {
			return true
		}
	}
	return false
}
