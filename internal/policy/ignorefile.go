package policy

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// IgnoreFileName holds one package-name glob per line in the project dir.
const IgnoreFileName = ".licensecheckignore"

// LoadIgnoreFile reads the globs in dir's ignore file. Blank lines and lines
// starting with # are skipped. A missing file yields no globs and no error.
func LoadIgnoreFile(dir string) ([]string, error) {
	f, err := os.Open(filepath.Join(dir, IgnoreFileName))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var globs []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		globs = append(globs, line)
	}
	return globs, sc.Err()
}

// AppendIgnore adds pattern to dir's ignore file, creating it if missing.
// It reports whether the file changed; existing patterns are left alone.
func AppendIgnore(dir, pattern string) (bool, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return false, errors.New("empty ignore pattern")
	}
	existing, err := LoadIgnoreFile(dir)
	if err != nil {
		return false, err
	}
	for _, g := range existing {
		if g == pattern {
			return false, nil
		}
	}

	path := filepath.Join(dir, IgnoreFileName)
	prefix := ""
	if b, err := os.ReadFile(path); err == nil && len(b) > 0 && b[len(b)-1] != '\n' {
		prefix = "\n"
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return false, err
	}
	if _, err := f.WriteString(prefix + pattern + "\n"); err != nil {
		_ = f.Close()
		return false, err
	}
	return true, f.Close()
}
