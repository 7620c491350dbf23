package licensecheck

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}

// pickDuration parses the config values as Go durations ("90s", "5m").
func pickDuration(cli time.Duration, local, global *string) (time.Duration, error) {
	if cli != 0 {
		return cli, nil
	}
	s := pickString("", local, global)
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q in config: %w", s, err)
	}
	return d, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func strPtr(s string) *string { return &s }
func boolPtr(v bool) *bool    { return &v }
