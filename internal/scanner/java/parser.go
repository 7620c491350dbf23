package java

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/varalys/licensecheck/internal/types"
)

// ParseThirdParty reads a THIRD-PARTY.txt produced by license-maven-plugin.
//
// Lines in the plugin's own layout
//
//	(License A) (License B) Display Name (group:artifact:version - url)
//
// are keyed by group:artifact. Any other line is split on ":" and its first
// two fields are taken as name and license; lines with fewer fields are
// skipped. A name or license containing ":" is mis-split by that fallback.
func ParseThirdParty(r io.Reader) (*types.Record, error) {
	rec := types.NewRecord()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if d, ok := parsePluginLine(line); ok {
			rec.Set(d)
			continue
		}
		parts := strings.Split(line, ":")
		if len(parts) < 2 {
			continue
		}
		rec.Set(types.Dependency{
			Name:      strings.TrimSpace(parts[0]),
			License:   strings.TrimSpace(parts[1]),
			Ecosystem: types.Java,
		})
	}
	if err := sc.Err(); err != nil {
		return types.NewRecord(), fmt.Errorf("failed to read THIRD-PARTY.txt: %w", err)
	}
	return rec, nil
}

func parsePluginLine(line string) (types.Dependency, bool) {
	if !strings.HasPrefix(line, "(") || !strings.HasSuffix(line, ")") {
		return types.Dependency{}, false
	}

	var licenses []string
	rest := line
	for strings.HasPrefix(rest, "(") {
		group, after, ok := balanced(rest)
		if !ok {
			return types.Dependency{}, false
		}
		licenses = append(licenses, strings.TrimSpace(group))
		rest = strings.TrimSpace(after)
	}

	open := lastGroupStart(rest)
	if open <= 0 {
		return types.Dependency{}, false
	}
	coords := rest[open+1 : len(rest)-1]
	if i := strings.Index(coords, " - "); i >= 0 {
		coords = coords[:i]
	}
	fields := strings.Split(strings.TrimSpace(coords), ":")
	if len(fields) < 3 {
		return types.Dependency{}, false
	}
	return types.Dependency{
		Name:      fields[0] + ":" + fields[1],
		Version:   fields[len(fields)-1],
		License:   strings.Join(licenses, ", "),
		Ecosystem: types.Java,
	}, true
}

// balanced returns the contents of the parenthesized group at the start of s
// and the text following it.
func balanced(s string) (string, string, bool) {
	depth := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[1:i], s[i+1:], true
			}
		}
	}
	return "", "", false
}

// lastGroupStart returns the index of the "(" that opens the group closing
// at the end of s, or -1.
func lastGroupStart(s string) int {
	depth := 0
	for i := len(s) - 1; i >= 0; i-- {
		switch s[i] {
		case ')':
			depth++
		case '(':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
