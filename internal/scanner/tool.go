package scanner

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	lcexec "github.com/varalys/licensecheck/internal/exec"
)

// Tool locates and runs one license enumeration binary.
type Tool struct {
	// Name is the binary looked up in $PATH when no custom path is set.
	Name string
	// VersionArgs are passed to the binary to print its version.
	VersionArgs []string
	// Install is a one-line installation hint shown when the binary is missing.
	Install string

	customPath string
}

// NewTool creates a tool. customPath may be empty.
func NewTool(name, customPath, install string, versionArgs ...string) *Tool {
	return &Tool{
		Name:        name,
		VersionArgs: versionArgs,
		Install:     install,
		customPath:  customPath,
	}
}

// Find locates the binary using the following search order:
// 1. Custom path (if provided)
// 2. $PATH lookup
func (t *Tool) Find() (string, error) {
	if t.customPath != "" {
		if _, err := os.Stat(t.customPath); err == nil {
			return t.customPath, nil
		}
		return "", fmt.Errorf("custom %s path not found: %s", t.Name, t.customPath)
	}
	path, err := exec.LookPath(t.Name)
	if err != nil {
		msg := fmt.Sprintf("%s binary not found in PATH", t.Name)
		if t.Install != "" {
			msg += "\n\nTo fix this:\n  " + t.Install
		}
		return "", fmt.Errorf("%s: %w", msg, exec.ErrNotFound)
	}
	return path, nil
}

// Run resolves the binary and executes it with args in dir.
func (t *Tool) Run(ctx context.Context, dir string, args ...string) (lcexec.Result, error) {
	bin, err := t.Find()
	if err != nil {
		return lcexec.Result{ExitCode: lcexec.ExitNotFound}, err
	}
	return lcexec.Run(ctx, bin, args, dir)
}

// Version runs the binary's version flag and returns the first output line.
func (t *Tool) Version(ctx context.Context) (string, error) {
	res, err := t.Run(ctx, "", t.VersionArgs...)
	if err != nil {
		return "", fmt.Errorf("failed to get %s version: %w", t.Name, err)
	}
	out := strings.TrimSpace(res.Stdout)
	if out == "" {
		out = strings.TrimSpace(res.Stderr)
	}
	if lines := strings.Split(out, "\n"); len(lines) > 0 {
		out = strings.TrimSpace(lines[0])
	}
	out = strings.TrimPrefix(out, "version ")
	return strings.TrimPrefix(out, "v"), nil
}
