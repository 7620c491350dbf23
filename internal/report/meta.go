package report

import (
	"fmt"
	"strings"
)

func metaLine(m Meta) string {
	parts := []string{fmt.Sprintf("Ecosystem: %s", m.Ecosystem)}
	if !m.GeneratedAt.IsZero() {
		parts = append(parts, "Generated: "+m.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	}
	if m.Repo != "" {
		parts = append(parts, "Repository: "+m.Repo)
	}
	if m.Branch != "" {
		parts = append(parts, "Branch: "+m.Branch)
	}
	if m.Commit != "" {
		parts = append(parts, "Commit: "+shortCommit(m.Commit))
	}
	return strings.Join(parts, "  |  ")
}

func shortCommit(c string) string {
	if len(c) > 12 {
		return c[:12]
	}
	return c
}
